package matches

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/provider"
)

const defaultIntervalDays = 7

type scheduleRequest struct {
	Group        string `json:"group"`
	StartDate    string `json:"startDate"`
	IntervalDays *int   `json:"intervalDays"`
	Replace      bool   `json:"replace"`
}

// POST /api/v1/admin/matches/generate
// Creates a round-robin fixture list for one group. Existing scheduled
// matches of the group block generation unless replace is set, in which
// case they are deleted first. Played matches are never touched.
func HandleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req scheduleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	group, err := models.ParseGroup(req.Group)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := apiutil.ParseDateField(req.StartDate, "startDate")
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to generate schedule")
		return
	}
	intervalDays := defaultIntervalDays
	if req.IntervalDays != nil {
		intervalDays = *req.IntervalDays
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var created []string
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		var txErr error
		created, txErr = generateSchedule(ctx, tx.Queries, group, startDate, intervalDays, req.Replace)
		return txErr
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to generate schedule")
		return
	}

	names, err := teamNames(ctx, database.Queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	views := make([]matchView, 0, len(created))
	for _, matchID := range created {
		row, err := database.Queries.GetMatch(ctx, matchID)
		if err != nil {
			logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to fetch generated match")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load schedule")
			return
		}
		views = append(views, newMatchView(row, nil, names))
	}

	logger.Info().
		Str("group", string(group)).
		Int("matches", len(views)).
		Int("interval_days", intervalDays).
		Msg("Round-robin schedule generated")
	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"matches": views}); err != nil {
		logger.Error().Err(err).Msg("Failed to write schedule response")
	}
}

func generateSchedule(ctx context.Context, q *dbgen.Queries, group models.Group, startDate time.Time, intervalDays int, replace bool) ([]string, error) {
	scheduled, err := q.ListMatches(ctx, dbgen.ListMatchesParams{
		GroupName: sql.NullString{String: string(group), Valid: true},
		Status:    sql.NullString{String: string(models.MatchScheduled), Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("list scheduled matches: %w", err)
	}
	if len(scheduled) > 0 {
		if !replace {
			return nil, apiutil.HandlerError{
				Status:  http.StatusConflict,
				Message: fmt.Sprintf("Group %s already has %d scheduled matches", group, len(scheduled)),
			}
		}
		for _, match := range scheduled {
			if _, err := q.DeleteMatch(ctx, match.ID); err != nil {
				return nil, fmt.Errorf("delete scheduled match: %w", err)
			}
		}
	}

	rows, err := q.ListTeams(ctx, dbgen.ListTeamsParams{
		GroupName: sql.NullString{String: string(group), Valid: true},
		Active:    sql.NullBool{Bool: true, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, provider.TeamFromDB(row, nil))
	}

	schedule, err := leagues.GenerateRoundRobinSchedule(group, teams, startDate, intervalDays)
	if err != nil {
		return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}

	ids := make([]string, 0, len(schedule))
	for _, fixture := range schedule {
		match, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
			ID:         apiutil.NewID(),
			MatchDate:  fixture.Date,
			GroupName:  string(fixture.Group),
			Round:      sql.NullString{String: strconv.Itoa(fixture.Round), Valid: true},
			HomeTeamID: fixture.HomeTeam.ID,
			AwayTeamID: fixture.AwayTeam.ID,
			Status:     string(models.MatchScheduled),
		})
		if err != nil {
			return nil, fmt.Errorf("create match: %w", err)
		}
		ids = append(ids, match.ID)
	}
	return ids, nil
}
