package leagues

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/districtpadel/league/internal/models"
)

// Engine ranks teams into a league table. Team names that are otherwise tied
// are ordered with the collation rules of Language.
type Engine struct {
	Language language.Tag
}

func NewEngine(lang language.Tag) *Engine {
	return &Engine{Language: lang}
}

var defaultEngine = NewEngine(language.Und)

// ComputeStandings ranks teams with the root collation.
func ComputeStandings(teams []models.Team, matches []models.Match) []models.TeamStanding {
	return defaultEngine.Compute(teams, matches)
}

// Compute returns one row per active team ordered by points, matches won,
// set difference, game difference and finally team name. Only played
// matches are counted. Input slices are never modified.
func (e *Engine) Compute(teams []models.Team, matches []models.Match) []models.TeamStanding {
	played := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		if match.Status == models.MatchPlayed {
			played = append(played, match)
		}
	}

	standings := make([]models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		if !team.Active {
			continue
		}
		standings = append(standings, accumulate(team, played))
	}

	// Collators keep scratch buffers, so each call gets its own.
	collator := collate.New(e.Language, collate.IgnoreCase)
	sort.SliceStable(standings, func(i, j int) bool {
		return less(collator, &standings[i], &standings[j])
	})

	for idx := range standings {
		standings[idx].Position = idx + 1
	}
	return standings
}

func accumulate(team models.Team, played []models.Match) models.TeamStanding {
	entry := models.TeamStanding{
		TeamID:   team.ID,
		TeamName: team.Name,
		Group:    team.Group,
	}

	for _, match := range played {
		isHome := match.HomeTeamID == team.ID
		if !isHome && match.AwayTeamID != team.ID {
			continue
		}

		homeSetsWon, awaySetsWon := CountSetsWon(match.HomeSets, match.AwaySets)
		homeGames, awayGames := CountGames(match.HomeSets, match.AwaySets)

		teamSets, opponentSets := homeSetsWon, awaySetsWon
		teamGames, opponentGames := homeGames, awayGames
		if !isHome {
			teamSets, opponentSets = awaySetsWon, homeSetsWon
			teamGames, opponentGames = awayGames, homeGames
		}

		entry.MatchesPlayed++
		if teamSets > opponentSets {
			entry.MatchesWon++
		} else {
			entry.MatchesLost++
		}
		entry.Points += MatchPoints(teamSets, opponentSets)
		entry.SetsFor += teamSets
		entry.SetsAgainst += opponentSets
		entry.GamesFor += teamGames
		entry.GamesAgainst += opponentGames
	}

	entry.SetDiff = entry.SetsFor - entry.SetsAgainst
	entry.GameDiff = entry.GamesFor - entry.GamesAgainst
	return entry
}

func less(collator *collate.Collator, a, b *models.TeamStanding) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.MatchesWon != b.MatchesWon {
		return a.MatchesWon > b.MatchesWon
	}
	if a.SetDiff != b.SetDiff {
		return a.SetDiff > b.SetDiff
	}
	if a.GameDiff != b.GameDiff {
		return a.GameDiff > b.GameDiff
	}
	if c := collator.CompareString(a.TeamName, b.TeamName); c != 0 {
		return c < 0
	}
	// Names equal under collation still need a fixed order.
	if c := strings.Compare(a.TeamName, b.TeamName); c != 0 {
		return c < 0
	}
	return a.TeamID < b.TeamID
}
