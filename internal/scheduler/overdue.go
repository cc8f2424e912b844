package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	"github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/email"
)

const overdueResultsJobName = "overdue_results"

// OverdueResultsJob emails the notify list about scheduled matches from
// earlier days that still have no result.
type OverdueResultsJob struct {
	queries    *dbgen.Queries
	notifier   *email.Notifier
	leagueName string
	now        func() time.Time
}

func NewOverdueResultsJob(queries *dbgen.Queries, notifier *email.Notifier, leagueName string) *OverdueResultsJob {
	return &OverdueResultsJob{
		queries:    queries,
		notifier:   notifier,
		leagueName: leagueName,
		now:        time.Now,
	}
}

// Run sends one summary email and returns how many matches it listed.
func (j *OverdueResultsJob) Run(ctx context.Context) (int, error) {
	if !j.notifier.Enabled() {
		return 0, nil
	}

	now := j.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	matches, err := j.queries.ListOverdueMatches(ctx, startOfDay)
	if err != nil {
		return 0, fmt.Errorf("list overdue matches: %w", err)
	}
	if len(matches) == 0 {
		return 0, nil
	}

	teams, err := j.queries.ListTeams(ctx, dbgen.ListTeamsParams{})
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}

	overdue := make([]email.OverdueMatch, 0, len(matches))
	for _, match := range matches {
		overdue = append(overdue, email.OverdueMatch{
			HomeTeam: names[match.HomeTeamID],
			AwayTeam: names[match.AwayTeamID],
			Group:    match.GroupName,
			Round:    apiutil.FromNullString(match.Round),
			Date:     match.MatchDate,
		})
	}

	if err := j.notifier.Send(ctx, email.BuildOverdueResultsEmail(j.leagueName, overdue)); err != nil {
		return 0, fmt.Errorf("send overdue results email: %w", err)
	}
	return len(overdue), nil
}

// RegisterOverdueResultsJob schedules the overdue results email on the
// scheduler singleton.
func RegisterOverdueResultsJob(database *db.DB, notifier *email.Notifier, leagueName, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("overdue results job requires database")
	}

	jobLogger := log.With().
		Str("component", "overdue_results_job").
		Str("job_name", overdueResultsJobName).
		Str("cron", cronExpr).
		Logger()

	job := NewOverdueResultsJob(database.Queries, notifier, leagueName)
	_, err := AddJob(overdueResultsJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if !notifier.Enabled() {
			jobLogger.Debug().Msg("Overdue results job skipped: email not configured")
			return
		}

		count, err := job.Run(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Overdue results job failed")
			return
		}
		jobLogger.Info().Int("overdue_matches", count).Msg("Overdue results job finished")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add overdue results job: %w", err)
	}

	jobLogger.Info().Msg("Overdue results job registered")
	return nil
}
