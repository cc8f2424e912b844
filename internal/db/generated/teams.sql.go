// source: teams.sql

package dbgen

import (
	"context"
	"database/sql"
)

const addTeamPlayer = `-- name: AddTeamPlayer :exec
INSERT INTO team_players (id, team_id, player_id, role)
VALUES (?, ?, ?, ?)
`

type AddTeamPlayerParams struct {
	ID       string
	TeamID   string
	PlayerID string
	Role     string
}

func (q *Queries) AddTeamPlayer(ctx context.Context, arg AddTeamPlayerParams) error {
	_, err := q.db.ExecContext(ctx, addTeamPlayer,
		arg.ID,
		arg.TeamID,
		arg.PlayerID,
		arg.Role,
	)
	return err
}

const createTeam = `-- name: CreateTeam :one
INSERT INTO teams (id, name, group_name, active)
VALUES (?, ?, ?, ?)
RETURNING id, name, group_name, active, created_at, updated_at
`

type CreateTeamParams struct {
	ID        string
	Name      string
	GroupName string
	Active    bool
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, createTeam,
		arg.ID,
		arg.Name,
		arg.GroupName,
		arg.Active,
	)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.GroupName,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteTeamPlayers = `-- name: DeleteTeamPlayers :exec
DELETE FROM team_players
WHERE team_id = ?
`

func (q *Queries) DeleteTeamPlayers(ctx context.Context, teamID string) error {
	_, err := q.db.ExecContext(ctx, deleteTeamPlayers, teamID)
	return err
}

const getTeam = `-- name: GetTeam :one
SELECT id, name, group_name, active, created_at, updated_at
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.GroupName,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTeamPlayers = `-- name: ListTeamPlayers :many
SELECT tp.team_id, tp.player_id, p.name AS player_name, tp.role
FROM team_players tp
JOIN players p ON p.id = tp.player_id
ORDER BY tp.team_id, tp.role, p.name
`

type ListTeamPlayersRow struct {
	TeamID     string
	PlayerID   string
	PlayerName string
	Role       string
}

func (q *Queries) ListTeamPlayers(ctx context.Context) ([]ListTeamPlayersRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTeamPlayersRow
	for rows.Next() {
		var i ListTeamPlayersRow
		if err := rows.Scan(
			&i.TeamID,
			&i.PlayerID,
			&i.PlayerName,
			&i.Role,
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

const listTeamPlayersByTeam = `-- name: ListTeamPlayersByTeam :many
SELECT tp.team_id, tp.player_id, p.name AS player_name, tp.role
FROM team_players tp
JOIN players p ON p.id = tp.player_id
WHERE tp.team_id = ?
ORDER BY tp.role, p.name
`

type ListTeamPlayersByTeamRow struct {
	TeamID     string
	PlayerID   string
	PlayerName string
	Role       string
}

func (q *Queries) ListTeamPlayersByTeam(ctx context.Context, teamID string) ([]ListTeamPlayersByTeamRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamPlayersByTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTeamPlayersByTeamRow
	for rows.Next() {
		var i ListTeamPlayersByTeamRow
		if err := rows.Scan(
			&i.TeamID,
			&i.PlayerID,
			&i.PlayerName,
			&i.Role,
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

const listTeams = `-- name: ListTeams :many
SELECT id, name, group_name, active, created_at, updated_at
FROM teams
WHERE (?1 IS NULL OR group_name = ?1)
  AND (?2 IS NULL OR active = ?2)
ORDER BY name, id
`

type ListTeamsParams struct {
	GroupName sql.NullString
	Active    sql.NullBool
}

func (q *Queries) ListTeams(ctx context.Context, arg ListTeamsParams) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams, arg.GroupName, arg.Active)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.GroupName,
			&i.Active,
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

const setTeamActive = `-- name: SetTeamActive :one
UPDATE teams
SET active = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, group_name, active, created_at, updated_at
`

type SetTeamActiveParams struct {
	Active bool
	ID     string
}

func (q *Queries) SetTeamActive(ctx context.Context, arg SetTeamActiveParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, setTeamActive, arg.Active, arg.ID)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.GroupName,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateTeam = `-- name: UpdateTeam :one
UPDATE teams
SET name = ?,
    group_name = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, group_name, active, created_at, updated_at
`

type UpdateTeamParams struct {
	Name      string
	GroupName string
	ID        string
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, updateTeam, arg.Name, arg.GroupName, arg.ID)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.GroupName,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
