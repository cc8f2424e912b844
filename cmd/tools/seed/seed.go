// cmd/tools/seed/seed.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/districtpadel/league/internal/api/apiutil"
	"github.com/districtpadel/league/internal/api/auth"
	"github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/provider"
)

type importSummary struct {
	Teams   int
	Players int
	Matches int
	Sets    int
}

// importFixture copies a fixture league into the database in one transaction.
// Fixture ids are replaced with fresh UUIDs; team names stay unique, so a
// repeated import fails on the first team.
func importFixture(ctx context.Context, database *db.DB, fixture *provider.Fixture) (importSummary, error) {
	var summary importSummary

	teams, err := fixture.ListTeams(ctx)
	if err != nil {
		return summary, err
	}
	matches, err := fixture.ListMatches(ctx)
	if err != nil {
		return summary, err
	}

	err = database.RunInTx(ctx, func(tx *db.DB) error {
		q := tx.Queries
		teamIDs := make(map[string]string, len(teams))
		playerIDs := make(map[string]string)

		for _, team := range teams {
			teamID := uuid.NewString()
			if _, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
				ID:        teamID,
				Name:      team.Name,
				GroupName: string(team.Group),
				Active:    team.Active,
			}); err != nil {
				if apiutil.IsSQLiteUniqueViolation(err) {
					return fmt.Errorf("team %q already exists", team.Name)
				}
				return fmt.Errorf("create team %q: %w", team.Name, err)
			}
			teamIDs[team.ID] = teamID
			summary.Teams++

			for _, player := range team.Players {
				playerID, created, err := ensurePlayer(ctx, q, playerIDs, player)
				if err != nil {
					return fmt.Errorf("team %q: %w", team.Name, err)
				}
				if created {
					summary.Players++
				}
				role := player.Role
				if role == "" {
					role = models.RoleMain
				}
				if err := q.AddTeamPlayer(ctx, dbgen.AddTeamPlayerParams{
					ID:       uuid.NewString(),
					TeamID:   teamID,
					PlayerID: playerID,
					Role:     string(role),
				}); err != nil {
					return fmt.Errorf("team %q: add player %q: %w", team.Name, player.Name, err)
				}
			}
		}

		for _, match := range matches {
			homeID, okHome := teamIDs[match.HomeTeamID]
			awayID, okAway := teamIDs[match.AwayTeamID]
			if !okHome || !okAway {
				return fmt.Errorf("match %q references an unknown team", match.ID)
			}
			matchID := uuid.NewString()
			if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
				ID:         matchID,
				MatchDate:  match.Date,
				GroupName:  string(match.Group),
				Round:      apiutil.ToNullString(match.Round),
				HomeTeamID: homeID,
				AwayTeamID: awayID,
				Status:     string(match.Status),
			}); err != nil {
				return fmt.Errorf("create match %q: %w", match.ID, err)
			}
			summary.Matches++

			for i := 0; i < len(match.HomeSets) && i < len(match.AwaySets); i++ {
				if err := q.CreateMatchSet(ctx, dbgen.CreateMatchSetParams{
					ID:        uuid.NewString(),
					MatchID:   matchID,
					SetNumber: int64(i + 1),
					HomeGames: int64(match.HomeSets[i]),
					AwayGames: int64(match.AwaySets[i]),
				}); err != nil {
					return fmt.Errorf("match %q set %d: %w", match.ID, i+1, err)
				}
				summary.Sets++
			}
		}
		return nil
	})
	return summary, err
}

// ensurePlayer creates a roster player once per fixture id. Players without an
// id are always created.
func ensurePlayer(ctx context.Context, q *dbgen.Queries, seen map[string]string, player models.Player) (string, bool, error) {
	if id, ok := seen[player.ID]; ok && player.ID != "" {
		return id, false, nil
	}
	name := strings.TrimSpace(player.Name)
	if name == "" {
		return "", false, fmt.Errorf("player name is required")
	}
	id := uuid.NewString()
	if _, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{ID: id, Name: name}); err != nil {
		return "", false, fmt.Errorf("create player %q: %w", name, err)
	}
	if player.ID != "" {
		seen[player.ID] = id
	}
	return id, true, nil
}

// ensureAdmin creates an active admin user, or resets the password of an
// existing one.
func ensureAdmin(ctx context.Context, q *dbgen.Queries, username, email, password string) (bool, error) {
	if len(password) < 8 {
		return false, fmt.Errorf("admin password must be at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	existing, err := q.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if err := q.UpdateUserPassword(ctx, dbgen.UpdateUserPasswordParams{HashedPassword: hash, ID: existing.ID}); err != nil {
			return false, fmt.Errorf("update admin password: %w", err)
		}
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("load admin user: %w", err)
	}

	if _, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}); err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	return true, nil
}
