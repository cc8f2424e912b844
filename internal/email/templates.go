package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type ResultDetails struct {
	LeagueName string
	HomeTeam   string
	AwayTeam   string
	Group      string
	Round      string
	Date       time.Time
	HomeSets   []int
	AwaySets   []int
	Winner     string
}

type OverdueMatch struct {
	HomeTeam string
	AwayTeam string
	Group    string
	Round    string
	Date     time.Time
}

func FormatMatchDate(date time.Time) string {
	if date.IsZero() {
		return "TBD"
	}
	return date.Format("Monday, Jan 2, 2006")
}

// FormatScore renders index-aligned sets as "6-4, 3-6, 7-5".
func FormatScore(homeSets, awaySets []int) string {
	n := len(homeSets)
	if len(awaySets) < n {
		n = len(awaySets)
	}
	if n == 0 {
		return "no sets recorded"
	}
	sets := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sets = append(sets, fmt.Sprintf("%d-%d", homeSets[i], awaySets[i]))
	}
	return strings.Join(sets, ", ")
}

func BuildResultEmail(details ResultDetails) Message {
	leagueName := strings.TrimSpace(details.LeagueName)
	if leagueName == "" {
		leagueName = "League"
	}

	subject := fmt.Sprintf("%s: %s vs %s", leagueName, details.HomeTeam, details.AwayTeam)

	lines := []string{
		"A match result has been recorded.",
		"",
		fmt.Sprintf("Match: %s vs %s", details.HomeTeam, details.AwayTeam),
		fmt.Sprintf("Date: %s", FormatMatchDate(details.Date)),
		fmt.Sprintf("Group: %s", details.Group),
	}
	if round := strings.TrimSpace(details.Round); round != "" {
		lines = append(lines, fmt.Sprintf("Round: %s", round))
	}
	lines = append(lines, fmt.Sprintf("Score: %s", FormatScore(details.HomeSets, details.AwaySets)))
	if winner := strings.TrimSpace(details.Winner); winner != "" {
		lines = append(lines, fmt.Sprintf("Winner: %s", winner))
	} else {
		lines = append(lines, "Status: in progress")
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildOverdueResultsEmail(leagueName string, matches []OverdueMatch) Message {
	leagueName = strings.TrimSpace(leagueName)
	if leagueName == "" {
		leagueName = "League"
	}

	subject := fmt.Sprintf("%s: %d match results missing", leagueName, len(matches))
	if len(matches) == 1 {
		subject = fmt.Sprintf("%s: 1 match result missing", leagueName)
	}

	lines := []string{
		"The following matches are past their date and still have no result:",
		"",
	}
	for _, match := range matches {
		line := fmt.Sprintf("- %s: %s vs %s (group %s", FormatMatchDate(match.Date), match.HomeTeam, match.AwayTeam, match.Group)
		if round := strings.TrimSpace(match.Round); round != "" {
			line += ", round " + round
		}
		lines = append(lines, line+")")
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}
