// internal/provider/fixture.go
package provider

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/districtpadel/league/internal/models"
)

// Fixture is a read-only league loaded from YAML.
type Fixture struct {
	teams   []models.Team
	matches []models.Match
}

type fixtureFile struct {
	Teams   []fixtureTeam  `yaml:"teams"`
	Matches []fixtureMatch `yaml:"matches"`
}

type fixtureTeam struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Group   string          `yaml:"group"`
	Active  *bool           `yaml:"active"`
	Players []models.Player `yaml:"players"`
}

type fixtureMatch struct {
	ID       string    `yaml:"id"`
	Date     time.Time `yaml:"date"`
	Group    string    `yaml:"group"`
	Round    string    `yaml:"round"`
	Home     string    `yaml:"home"`
	Away     string    `yaml:"away"`
	HomeSets []int     `yaml:"home_sets"`
	AwaySets []int     `yaml:"away_sets"`
	Status   string    `yaml:"status"`
}

// LoadFixture reads a fixture file from disk.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	fixture, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return fixture, nil
}

// ParseFixture decodes fixture YAML. Teams default to active, matches to
// played when sets are present and scheduled otherwise. Match groups default
// to the home team's group.
func ParseFixture(data []byte) (*Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	fixture := &Fixture{
		teams:   make([]models.Team, 0, len(file.Teams)),
		matches: make([]models.Match, 0, len(file.Matches)),
	}

	groups := make(map[string]models.Group, len(file.Teams))
	for i, raw := range file.Teams {
		if raw.ID == "" {
			return nil, fmt.Errorf("teams[%d]: id is required", i)
		}
		if _, ok := groups[raw.ID]; ok {
			return nil, fmt.Errorf("teams[%d]: duplicate team id %q", i, raw.ID)
		}
		name, err := models.ValidateTeamName(raw.Name)
		if err != nil {
			return nil, fmt.Errorf("teams[%d]: %w", i, err)
		}
		group, err := models.ParseGroup(raw.Group)
		if err != nil {
			return nil, fmt.Errorf("teams[%d]: %w", i, err)
		}
		active := true
		if raw.Active != nil {
			active = *raw.Active
		}
		players := raw.Players
		if players == nil {
			players = []models.Player{}
		}

		groups[raw.ID] = group
		fixture.teams = append(fixture.teams, models.Team{
			ID:      raw.ID,
			Name:    name,
			Group:   group,
			Active:  active,
			Players: players,
		})
	}

	for i, raw := range file.Matches {
		if raw.ID == "" {
			raw.ID = fmt.Sprintf("fixture-match-%d", i+1)
		}
		if raw.Home == "" || raw.Away == "" {
			return nil, fmt.Errorf("matches[%d]: home and away are required", i)
		}
		if raw.Home == raw.Away {
			return nil, fmt.Errorf("matches[%d]: a team cannot play itself", i)
		}

		group := groups[raw.Home]
		if raw.Group != "" {
			parsed, err := models.ParseGroup(raw.Group)
			if err != nil {
				return nil, fmt.Errorf("matches[%d]: %w", i, err)
			}
			group = parsed
		}

		status := models.MatchScheduled
		if len(raw.HomeSets) > 0 || len(raw.AwaySets) > 0 {
			status = models.MatchPlayed
		}
		if raw.Status != "" {
			parsed, err := models.ParseMatchStatus(raw.Status)
			if err != nil {
				return nil, fmt.Errorf("matches[%d]: %w", i, err)
			}
			status = parsed
		}

		fixture.matches = append(fixture.matches, models.Match{
			ID:         raw.ID,
			Date:       raw.Date.UTC(),
			Group:      group,
			Round:      raw.Round,
			HomeTeamID: raw.Home,
			AwayTeamID: raw.Away,
			HomeSets:   raw.HomeSets,
			AwaySets:   raw.AwaySets,
			Status:     status,
		})
	}

	return fixture, nil
}

func (f *Fixture) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams := make([]models.Team, len(f.teams))
	copy(teams, f.teams)
	return teams, nil
}

func (f *Fixture) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches := make([]models.Match, len(f.matches))
	copy(matches, f.matches)
	return matches, nil
}
