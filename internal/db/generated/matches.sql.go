// source: matches.sql

package dbgen

import (
	"context"
	"database/sql"
	"time"
)

const createMatch = `-- name: CreateMatch :one
INSERT INTO matches (id, match_date, group_name, round, home_team_id, away_team_id, status)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, match_date, group_name, round, home_team_id, away_team_id, status, created_at, updated_at
`

type CreateMatchParams struct {
	ID         string
	MatchDate  time.Time
	GroupName  string
	Round      sql.NullString
	HomeTeamID string
	AwayTeamID string
	Status     string
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, createMatch,
		arg.ID,
		arg.MatchDate,
		arg.GroupName,
		arg.Round,
		arg.HomeTeamID,
		arg.AwayTeamID,
		arg.Status,
	)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.MatchDate,
		&i.GroupName,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createMatchSet = `-- name: CreateMatchSet :exec
INSERT INTO match_sets (id, match_id, set_number, home_games, away_games)
VALUES (?, ?, ?, ?, ?)
`

type CreateMatchSetParams struct {
	ID        string
	MatchID   string
	SetNumber int64
	HomeGames int64
	AwayGames int64
}

func (q *Queries) CreateMatchSet(ctx context.Context, arg CreateMatchSetParams) error {
	_, err := q.db.ExecContext(ctx, createMatchSet,
		arg.ID,
		arg.MatchID,
		arg.SetNumber,
		arg.HomeGames,
		arg.AwayGames,
	)
	return err
}

const deleteMatch = `-- name: DeleteMatch :execrows
DELETE FROM matches
WHERE id = ?
`

func (q *Queries) DeleteMatch(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMatch, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMatchSets = `-- name: DeleteMatchSets :exec
DELETE FROM match_sets
WHERE match_id = ?
`

func (q *Queries) DeleteMatchSets(ctx context.Context, matchID string) error {
	_, err := q.db.ExecContext(ctx, deleteMatchSets, matchID)
	return err
}

const getMatch = `-- name: GetMatch :one
SELECT id, match_date, group_name, round, home_team_id, away_team_id, status, created_at, updated_at
FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id string) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.MatchDate,
		&i.GroupName,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMatchSets = `-- name: ListMatchSets :many
SELECT id, match_id, set_number, home_games, away_games
FROM match_sets
ORDER BY match_id, set_number
`

func (q *Queries) ListMatchSets(ctx context.Context) ([]MatchSet, error) {
	rows, err := q.db.QueryContext(ctx, listMatchSets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchSet
	for rows.Next() {
		var i MatchSet
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.SetNumber,
			&i.HomeGames,
			&i.AwayGames,
		); err != nil {
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

const listMatchSetsByMatch = `-- name: ListMatchSetsByMatch :many
SELECT id, match_id, set_number, home_games, away_games
FROM match_sets
WHERE match_id = ?
ORDER BY set_number
`

func (q *Queries) ListMatchSetsByMatch(ctx context.Context, matchID string) ([]MatchSet, error) {
	rows, err := q.db.QueryContext(ctx, listMatchSetsByMatch, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchSet
	for rows.Next() {
		var i MatchSet
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.SetNumber,
			&i.HomeGames,
			&i.AwayGames,
		); err != nil {
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

const listMatches = `-- name: ListMatches :many
SELECT id, match_date, group_name, round, home_team_id, away_team_id, status, created_at, updated_at
FROM matches
WHERE (?1 IS NULL OR group_name = ?1)
  AND (?2 IS NULL OR status = ?2)
  AND (?3 IS NULL OR match_date >= ?3)
  AND (?4 IS NULL OR match_date <= ?4)
ORDER BY match_date DESC, id
`

type ListMatchesParams struct {
	GroupName sql.NullString
	Status    sql.NullString
	DateFrom  sql.NullTime
	DateTo    sql.NullTime
}

func (q *Queries) ListMatches(ctx context.Context, arg ListMatchesParams) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatches,
		arg.GroupName,
		arg.Status,
		arg.DateFrom,
		arg.DateTo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.MatchDate,
			&i.GroupName,
			&i.Round,
			&i.HomeTeamID,
			&i.AwayTeamID,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const listOverdueMatches = `-- name: ListOverdueMatches :many
SELECT id, match_date, group_name, round, home_team_id, away_team_id, status, created_at, updated_at
FROM matches
WHERE status = 'scheduled'
  AND match_date < ?
ORDER BY match_date, id
`

func (q *Queries) ListOverdueMatches(ctx context.Context, before time.Time) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listOverdueMatches, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.MatchDate,
			&i.GroupName,
			&i.Round,
			&i.HomeTeamID,
			&i.AwayTeamID,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const updateMatch = `-- name: UpdateMatch :one
UPDATE matches
SET match_date = ?,
    group_name = ?,
    round = ?,
    home_team_id = ?,
    away_team_id = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, match_date, group_name, round, home_team_id, away_team_id, status, created_at, updated_at
`

type UpdateMatchParams struct {
	MatchDate  time.Time
	GroupName  string
	Round      sql.NullString
	HomeTeamID string
	AwayTeamID string
	ID         string
}

func (q *Queries) UpdateMatch(ctx context.Context, arg UpdateMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, updateMatch,
		arg.MatchDate,
		arg.GroupName,
		arg.Round,
		arg.HomeTeamID,
		arg.AwayTeamID,
		arg.ID,
	)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.MatchDate,
		&i.GroupName,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateMatchStatus = `-- name: UpdateMatchStatus :exec
UPDATE matches
SET status = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

type UpdateMatchStatusParams struct {
	Status string
	ID     string
}

func (q *Queries) UpdateMatchStatus(ctx context.Context, arg UpdateMatchStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateMatchStatus, arg.Status, arg.ID)
	return err
}
