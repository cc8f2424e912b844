package dbgen

import (
	"database/sql"
	"time"
)

type Match struct {
	ID         string
	MatchDate  time.Time
	GroupName  string
	Round      sql.NullString
	HomeTeamID string
	AwayTeamID string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type MatchSet struct {
	ID        string
	MatchID   string
	SetNumber int64
	HomeGames int64
	AwayGames int64
}

type Player struct {
	ID        string
	Name      string
	Email     sql.NullString
	Phone     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID        string
	Name      string
	GroupName string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamPlayer struct {
	ID       string
	TeamID   string
	PlayerID string
	Role     string
}

type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}
