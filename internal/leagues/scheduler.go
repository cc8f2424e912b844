package leagues

import (
	"errors"
	"time"

	"github.com/districtpadel/league/internal/models"
)

type ScheduledMatch struct {
	Group    models.Group
	Round    int
	HomeTeam models.Team
	AwayTeam models.Team
	Date     time.Time
}

type roundPair struct {
	Round    int
	HomeTeam models.Team
	AwayTeam models.Team
}

// GenerateRoundRobinSchedule pairs every active team of group with every
// other one exactly once. Round n is played intervalDays*(n-1) days after
// startDate.
func GenerateRoundRobinSchedule(group models.Group, teams []models.Team, startDate time.Time, intervalDays int) ([]ScheduledMatch, error) {
	if group == "" {
		return nil, errors.New("group is required")
	}
	if intervalDays <= 0 {
		return nil, errors.New("interval days must be positive")
	}
	if startDate.IsZero() {
		return nil, errors.New("start date is required")
	}

	eligible := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		if team.Active && team.Group == group {
			eligible = append(eligible, team)
		}
	}
	if len(eligible) < 2 {
		return nil, errors.New("at least two active teams are required")
	}

	startDate = truncateDate(startDate)
	pairs := buildRoundRobinPairs(eligible)

	schedule := make([]ScheduledMatch, 0, len(pairs))
	for _, pairing := range pairs {
		schedule = append(schedule, ScheduledMatch{
			Group:    group,
			Round:    pairing.Round,
			HomeTeam: pairing.HomeTeam,
			AwayTeam: pairing.AwayTeam,
			Date:     startDate.AddDate(0, 0, (pairing.Round-1)*intervalDays),
		})
	}
	return schedule, nil
}

func buildRoundRobinPairs(teams []models.Team) []roundPair {
	working := make([]*models.Team, 0, len(teams)+1)
	for i := range teams {
		working = append(working, &teams[i])
	}
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	rounds := len(working) - 1
	pairs := make([]roundPair, 0, rounds*len(working)/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			if left == nil || right == nil {
				continue
			}
			home := *left
			away := *right
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, roundPair{
				Round:    round + 1,
				HomeTeam: home,
				AwayTeam: away,
			})
		}
		rotateTeams(working)
	}

	return pairs
}

func rotateTeams(teams []*models.Team) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[2:], teams[1:len(teams)-1])
	teams[1] = last
}

func truncateDate(value time.Time) time.Time {
	loc := value.Location()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc)
}
