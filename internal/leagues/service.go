package leagues

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/districtpadel/league/internal/models"
)

var ErrStandingNotFound = errors.New("team standing not found")

// Provider supplies the teams and matches standings are computed from.
// Match sets must already be ordered by ascending set number.
type Provider interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
}

type StandingsService struct {
	provider Provider
	engine   *Engine
}

func NewStandingsService(provider Provider, engine *Engine) (*StandingsService, error) {
	if provider == nil {
		return nil, errors.New("standings provider is required")
	}
	if engine == nil {
		engine = defaultEngine
	}
	return &StandingsService{provider: provider, engine: engine}, nil
}

// Standings returns the league table. A non-empty group restricts the table
// to that group's teams before ranking, so positions run 1..N within it.
func (s *StandingsService) Standings(ctx context.Context, group models.Group) ([]models.TeamStanding, error) {
	teams, matches, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if group != "" {
		filtered := make([]models.Team, 0, len(teams))
		for _, team := range teams {
			if team.Group == group {
				filtered = append(filtered, team)
			}
		}
		teams = filtered
	}

	return s.engine.Compute(teams, matches), nil
}

// TeamStanding returns a single team's row from the full league table.
func (s *StandingsService) TeamStanding(ctx context.Context, teamID string) (models.TeamStanding, error) {
	standings, err := s.Standings(ctx, "")
	if err != nil {
		return models.TeamStanding{}, err
	}
	for _, standing := range standings {
		if standing.TeamID == teamID {
			return standing, nil
		}
	}
	return models.TeamStanding{}, ErrStandingNotFound
}

func (s *StandingsService) load(ctx context.Context) ([]models.Team, []models.Match, error) {
	var (
		teams   []models.Team
		matches []models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.provider.ListTeams(gctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.provider.ListMatches(gctx)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return teams, matches, nil
}
