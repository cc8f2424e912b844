// internal/models/team.go
package models

import (
	"fmt"
	"strings"
)

const maxTeamNameLength = 100
const maxPlayerNameLength = 100

type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
)

func ParseGroup(raw string) (Group, error) {
	switch Group(strings.ToUpper(strings.TrimSpace(raw))) {
	case GroupA:
		return GroupA, nil
	case GroupB:
		return GroupB, nil
	default:
		return "", fmt.Errorf("group must be A or B")
	}
}

type PlayerRole string

const (
	RoleMain    PlayerRole = "main"
	RoleReserve PlayerRole = "reserve"
)

func ParsePlayerRole(raw string) (PlayerRole, error) {
	switch PlayerRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleMain:
		return RoleMain, nil
	case RoleReserve:
		return RoleReserve, nil
	default:
		return "", fmt.Errorf("role must be 'main' or 'reserve'")
	}
}

type Player struct {
	ID   string     `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`
	Role PlayerRole `json:"role" yaml:"role"`
}

type Team struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Group   Group    `json:"group" yaml:"group"`
	Active  bool     `json:"active" yaml:"active"`
	Players []Player `json:"players" yaml:"players"`
}

// RosterEntry is one requested roster slot: either an existing player
// reference or the name of a player to create.
type RosterEntry struct {
	PlayerID string
	Name     string
	Role     PlayerRole
}

// ValidateTeamName trims the name and enforces length limits.
func ValidateTeamName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len(name) > maxTeamNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxTeamNameLength)
	}
	return name, nil
}

// ValidateRoster checks roster composition: two or three players, at least
// two main players, at most one reserve, and every entry naming exactly one
// of playerId or name.
func ValidateRoster(entries []RosterEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("team must have at least 2 players")
	}
	if len(entries) > 3 {
		return fmt.Errorf("team cannot have more than 3 players")
	}

	mainCount := 0
	reserveCount := 0
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		switch entry.Role {
		case RoleMain:
			mainCount++
		case RoleReserve:
			reserveCount++
		default:
			return fmt.Errorf("players[%d]: role must be 'main' or 'reserve'", i)
		}

		hasID := strings.TrimSpace(entry.PlayerID) != ""
		name := strings.TrimSpace(entry.Name)
		switch {
		case hasID && name != "":
			return fmt.Errorf("players[%d]: cannot provide both playerId and name", i)
		case !hasID && name == "":
			return fmt.Errorf("players[%d]: either playerId or name must be provided", i)
		case !hasID && len(name) > maxPlayerNameLength:
			return fmt.Errorf("players[%d]: name cannot exceed %d characters", i, maxPlayerNameLength)
		}

		if hasID {
			if _, ok := seen[entry.PlayerID]; ok {
				return fmt.Errorf("duplicate player IDs in team")
			}
			seen[entry.PlayerID] = struct{}{}
		}
	}

	if mainCount < 2 {
		return fmt.Errorf("team must have at least 2 main players")
	}
	if reserveCount > 1 {
		return fmt.Errorf("team cannot have more than 1 reserve player")
	}
	return nil
}
