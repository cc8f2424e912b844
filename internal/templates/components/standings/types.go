package standings

import "github.com/districtpadel/league/internal/models"

type GroupOption struct {
	Value    string
	Label    string
	Selected bool
}

type PageData struct {
	LeagueName string
	Groups     []GroupOption
	Rows       []models.TeamStanding
}
