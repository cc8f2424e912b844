// source: players.sql

package dbgen

import (
	"context"
	"database/sql"
	"time"
)

const createPlayer = `-- name: CreatePlayer :one
INSERT INTO players (id, name, email, phone)
VALUES (?, ?, ?, ?)
RETURNING id, name, email, phone, created_at, updated_at
`

type CreatePlayerParams struct {
	ID    string
	Name  string
	Email sql.NullString
	Phone sql.NullString
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, createPlayer,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPlayer = `-- name: GetPlayer :one
SELECT id, name, email, phone, created_at, updated_at
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayers = `-- name: ListPlayers :many
SELECT id, name, email, phone, created_at, updated_at
FROM players
ORDER BY name, id
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		var i Player
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Email,
			&i.Phone,
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

const listTeamsForPlayer = `-- name: ListTeamsForPlayer :many
SELECT t.id, t.name, t.group_name, t.active, t.created_at, t.updated_at, tp.role
FROM teams t
JOIN team_players tp ON tp.team_id = t.id
WHERE tp.player_id = ?
ORDER BY t.name
`

type ListTeamsForPlayerRow struct {
	ID        string
	Name      string
	GroupName string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Role      string
}

func (q *Queries) ListTeamsForPlayer(ctx context.Context, playerID string) ([]ListTeamsForPlayerRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsForPlayer, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTeamsForPlayerRow
	for rows.Next() {
		var i ListTeamsForPlayerRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.GroupName,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updatePlayer = `-- name: UpdatePlayer :one
UPDATE players
SET name = ?,
    email = ?,
    phone = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, email, phone, created_at, updated_at
`

type UpdatePlayerParams struct {
	Name  string
	Email sql.NullString
	Phone sql.NullString
	ID    string
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, updatePlayer,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.ID,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
