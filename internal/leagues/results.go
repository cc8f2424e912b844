package leagues

import "github.com/districtpadel/league/internal/models"

// comparedSets is the number of set indexes present on both sides.
func comparedSets(homeSets, awaySets []int) int {
	if len(homeSets) < len(awaySets) {
		return len(homeSets)
	}
	return len(awaySets)
}

// CountSetsWon returns how many sets each side won. Only indexes present in
// both slices are compared; a drawn set counts for neither side.
func CountSetsWon(homeSets, awaySets []int) (int, int) {
	homeWon, awayWon := 0, 0
	for i := 0; i < comparedSets(homeSets, awaySets); i++ {
		switch {
		case homeSets[i] > awaySets[i]:
			homeWon++
		case awaySets[i] > homeSets[i]:
			awayWon++
		}
	}
	return homeWon, awayWon
}

// CountGames sums the games of the compared sets for each side.
func CountGames(homeSets, awaySets []int) (int, int) {
	homeGames, awayGames := 0, 0
	for i := 0; i < comparedSets(homeSets, awaySets); i++ {
		homeGames += homeSets[i]
		awayGames += awaySets[i]
	}
	return homeGames, awayGames
}

// MatchPoints awards league points for one match from the team's point of
// view: 3 for a 2-0 win, 2 for a 2-1 win, 1 for a 1-2 loss, otherwise 0.
func MatchPoints(teamSetsWon, opponentSetsWon int) int {
	switch {
	case teamSetsWon == 2 && opponentSetsWon == 0:
		return 3
	case teamSetsWon == 2 && opponentSetsWon == 1:
		return 2
	case teamSetsWon == 1 && opponentSetsWon == 2:
		return 1
	default:
		return 0
	}
}

// DetermineWinner returns the id of the team that won more sets. It reports
// false when no sets were entered or the sets are level.
func DetermineWinner(match models.Match) (string, bool) {
	homeWon, awayWon := CountSetsWon(match.HomeSets, match.AwaySets)
	switch {
	case homeWon > awayWon:
		return match.HomeTeamID, true
	case awayWon > homeWon:
		return match.AwayTeamID, true
	default:
		return "", false
	}
}

// ResultStatus is the status a match takes after its result is entered.
func ResultStatus(match models.Match) models.MatchStatus {
	if _, ok := DetermineWinner(match); ok {
		return models.MatchPlayed
	}
	return models.MatchInProgress
}
