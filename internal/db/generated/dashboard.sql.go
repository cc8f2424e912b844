// source: dashboard.sql

package dbgen

import (
	"context"
)

const countMatchesByStatus = `-- name: CountMatchesByStatus :many
SELECT status, COUNT(*) AS match_count
FROM matches
GROUP BY status
ORDER BY status
`

type CountMatchesByStatusRow struct {
	Status     string
	MatchCount int64
}

func (q *Queries) CountMatchesByStatus(ctx context.Context) ([]CountMatchesByStatusRow, error) {
	rows, err := q.db.QueryContext(ctx, countMatchesByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountMatchesByStatusRow
	for rows.Next() {
		var i CountMatchesByStatusRow
		if err := rows.Scan(&i.Status, &i.MatchCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTeamsByGroup = `-- name: CountTeamsByGroup :many
SELECT group_name, active, COUNT(*) AS team_count
FROM teams
GROUP BY group_name, active
ORDER BY group_name, active
`

type CountTeamsByGroupRow struct {
	GroupName string
	Active    bool
	TeamCount int64
}

func (q *Queries) CountTeamsByGroup(ctx context.Context) ([]CountTeamsByGroupRow, error) {
	rows, err := q.db.QueryContext(ctx, countTeamsByGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountTeamsByGroupRow
	for rows.Next() {
		var i CountTeamsByGroupRow
		if err := rows.Scan(&i.GroupName, &i.Active, &i.TeamCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
