// internal/models/match.go
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const maxSetsPerMatch = 3

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchPlayed     MatchStatus = "played"
	MatchCancelled  MatchStatus = "cancelled"
)

func ParseMatchStatus(raw string) (MatchStatus, error) {
	switch status := MatchStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case MatchScheduled, MatchInProgress, MatchPlayed, MatchCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("status must be one of scheduled, in_progress, played, cancelled")
	}
}

// Match carries per-set game counts index-aligned by set number:
// HomeSets[i] and AwaySets[i] belong to set i+1.
type Match struct {
	ID         string      `json:"id" yaml:"id"`
	Date       time.Time   `json:"date" yaml:"date"`
	Group      Group       `json:"group" yaml:"group"`
	Round      string      `json:"round,omitempty" yaml:"round,omitempty"`
	HomeTeamID string      `json:"homeTeamId" yaml:"home_team_id"`
	AwayTeamID string      `json:"awayTeamId" yaml:"away_team_id"`
	HomeSets   []int       `json:"homeSets" yaml:"home_sets"`
	AwaySets   []int       `json:"awaySets" yaml:"away_sets"`
	Status     MatchStatus `json:"status" yaml:"status"`
}

type SetScore struct {
	SetNumber int `json:"setNumber" yaml:"set_number"`
	HomeGames int `json:"homeGames" yaml:"home_games"`
	AwayGames int `json:"awayGames" yaml:"away_games"`
}

// ValidateResultSets checks a submitted result: one to three sets, unique
// set numbers between 1 and 3, no negative game counts and no 0-0 set.
func ValidateResultSets(sets []SetScore) error {
	if len(sets) < 1 || len(sets) > maxSetsPerMatch {
		return fmt.Errorf("match must have between 1 and %d sets", maxSetsPerMatch)
	}

	seen := make(map[int]struct{}, len(sets))
	for _, set := range sets {
		if set.SetNumber < 1 || set.SetNumber > maxSetsPerMatch {
			return fmt.Errorf("set numbers must be between 1 and %d", maxSetsPerMatch)
		}
		if _, ok := seen[set.SetNumber]; ok {
			return fmt.Errorf("set numbers must be unique")
		}
		seen[set.SetNumber] = struct{}{}

		if set.HomeGames < 0 || set.AwayGames < 0 {
			return fmt.Errorf("games cannot be negative")
		}
		if set.HomeGames == 0 && set.AwayGames == 0 {
			return fmt.Errorf("set %d cannot have both scores as 0", set.SetNumber)
		}
	}
	return nil
}

// SplitSets orders sets by set number and returns the index-aligned home and
// away game slices used by Match.
func SplitSets(sets []SetScore) ([]int, []int) {
	ordered := make([]SetScore, len(sets))
	copy(ordered, sets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SetNumber < ordered[j].SetNumber
	})

	home := make([]int, 0, len(ordered))
	away := make([]int, 0, len(ordered))
	for _, set := range ordered {
		home = append(home, set.HomeGames)
		away = append(away, set.AwayGames)
	}
	return home, away
}
