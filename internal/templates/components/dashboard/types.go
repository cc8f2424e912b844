package dashboard

type GroupCount struct {
	Group  string `json:"group"`
	Active int64  `json:"active"`
	Total  int64  `json:"total"`
}

type TeamStats struct {
	Active  int64        `json:"active"`
	Total   int64        `json:"total"`
	ByGroup []GroupCount `json:"byGroup"`
}

type MatchStats struct {
	Scheduled  int64 `json:"scheduled"`
	InProgress int64 `json:"inProgress"`
	Played     int64 `json:"played"`
	Cancelled  int64 `json:"cancelled"`
	Total      int64 `json:"total"`
}

type DashboardData struct {
	Teams   TeamStats  `json:"teams"`
	Matches MatchStats `json:"matches"`
}
