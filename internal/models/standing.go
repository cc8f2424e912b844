package models

// TeamStanding is a derived league table row. It is never persisted.
type TeamStanding struct {
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	Group         Group  `json:"group"`
	MatchesPlayed int    `json:"matchesPlayed"`
	MatchesWon    int    `json:"matchesWon"`
	MatchesLost   int    `json:"matchesLost"`
	SetsFor       int    `json:"setsFor"`
	SetsAgainst   int    `json:"setsAgainst"`
	GamesFor      int    `json:"gamesFor"`
	GamesAgainst  int    `json:"gamesAgainst"`
	Points        int    `json:"points"`
	SetDiff       int    `json:"setDiff"`
	GameDiff      int    `json:"gameDiff"`
	Position      int    `json:"position"`
}
