// internal/provider/database.go
package provider

import (
	"context"
	"fmt"
	"time"

	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
)

// Database serves league data from the SQLite store.
type Database struct {
	queries *dbgen.Queries
}

func NewDatabase(queries *dbgen.Queries) *Database {
	return &Database{queries: queries}
}

func (p *Database) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := p.queries.ListTeams(ctx, dbgen.ListTeamsParams{})
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	rosterRows, err := p.queries.ListTeamPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("query team players: %w", err)
	}

	rosters := RostersFromDB(rosterRows)
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, TeamFromDB(row, rosters[row.ID]))
	}
	return teams, nil
}

func (p *Database) ListMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := p.queries.ListMatches(ctx, dbgen.ListMatchesParams{})
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	setRows, err := p.queries.ListMatchSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("query match sets: %w", err)
	}

	sets := make(map[string][]dbgen.MatchSet, len(rows))
	for _, set := range setRows {
		sets[set.MatchID] = append(sets[set.MatchID], set)
	}

	matches := make([]models.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, MatchFromDB(row, sets[row.ID]))
	}
	return matches, nil
}

// RostersFromDB groups roster rows by team id, keeping row order.
func RostersFromDB(rows []dbgen.ListTeamPlayersRow) map[string][]models.Player {
	rosters := make(map[string][]models.Player)
	for _, row := range rows {
		rosters[row.TeamID] = append(rosters[row.TeamID], models.Player{
			ID:   row.PlayerID,
			Name: row.PlayerName,
			Role: models.PlayerRole(row.Role),
		})
	}
	return rosters
}

// TeamFromDB converts a stored team and its roster.
func TeamFromDB(row dbgen.Team, roster []models.Player) models.Team {
	if roster == nil {
		roster = []models.Player{}
	}
	return models.Team{
		ID:      row.ID,
		Name:    row.Name,
		Group:   models.Group(row.GroupName),
		Active:  row.Active,
		Players: roster,
	}
}

// MatchFromDB converts a stored match. Sets are ordered by set number
// regardless of the order they are passed in.
func MatchFromDB(row dbgen.Match, sets []dbgen.MatchSet) models.Match {
	scores := make([]models.SetScore, 0, len(sets))
	for _, set := range sets {
		scores = append(scores, models.SetScore{
			SetNumber: int(set.SetNumber),
			HomeGames: int(set.HomeGames),
			AwayGames: int(set.AwayGames),
		})
	}
	home, away := models.SplitSets(scores)

	return models.Match{
		ID:         row.ID,
		Date:       row.MatchDate.In(time.UTC),
		Group:      models.Group(row.GroupName),
		Round:      row.Round.String,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeSets:   home,
		AwaySets:   away,
		Status:     models.MatchStatus(row.Status),
	}
}
