// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/email"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/provider"
)

const (
	matchQueryTimeout = 5 * time.Second
	matchIDPathKey    = "id"
	dateOnlyLayout    = "2006-01-02"
)

var (
	database   *appdb.DB
	queries    *dbgen.Queries
	notifier   *email.Notifier
	leagueName string
)

type matchRequest struct {
	Date       string  `json:"date"`
	Group      string  `json:"group"`
	Round      *string `json:"round"`
	HomeTeamID string  `json:"homeTeamId"`
	AwayTeamID string  `json:"awayTeamId"`
}

type matchInput struct {
	Date       time.Time
	Group      models.Group
	Round      sql.NullString
	HomeTeamID string
	AwayTeamID string
}

type matchView struct {
	models.Match
	HomeTeamName string            `json:"homeTeamName"`
	AwayTeamName string            `json:"awayTeamName"`
	Sets         []models.SetScore `json:"sets"`
	WinnerTeamID string            `json:"winnerTeamId,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
// A nil notifier disables result emails.
func InitHandlers(db *appdb.DB, n *email.Notifier, name string) {
	if db == nil {
		log.Warn().Msg("InitHandlers called with nil database; match handlers will be unavailable")
		return
	}
	database = db
	queries = db.Queries
	notifier = n
	leagueName = name
}

// GET /api/v1/public/matches
func HandleMatchesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := listParamsFromQuery(r)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to list matches")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := q.ListMatches(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}
	setRows, err := q.ListMatchSets(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list match sets")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}
	names, err := teamNames(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	sets := make(map[string][]dbgen.MatchSet, len(rows))
	for _, set := range setRows {
		sets[set.MatchID] = append(sets[set.MatchID], set)
	}

	views := make([]matchView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newMatchView(row, sets[row.ID], names))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": views}); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// GET /api/v1/public/matches/{id}
func HandleMatchDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	view, err := loadMatch(ctx, q, matchID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}

// POST /api/v1/admin/matches
func HandleMatchCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req matchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	input, err := parseMatchRequest(ctx, q, req, nil)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create match")
		return
	}

	match, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		ID:         apiutil.NewID(),
		MatchDate:  input.Date,
		GroupName:  string(input.Group),
		Round:      input.Round,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Status:     string(models.MatchScheduled),
	})
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			apiutil.WriteError(w, http.StatusNotFound, "Team not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to create match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create match")
		return
	}

	view, err := loadMatch(ctx, q, match.ID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}

	logger.Info().Str("match_id", match.ID).Str("group", match.GroupName).Msg("Match created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, view); err != nil {
		logger.Error().Err(err).Str("match_id", match.ID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/admin/matches/{id}
func HandleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req matchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	existing, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to fetch match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch match")
		return
	}

	input, err := parseMatchRequest(ctx, q, req, &existing)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update match")
		return
	}

	if _, err := q.UpdateMatch(ctx, dbgen.UpdateMatchParams{
		MatchDate:  input.Date,
		GroupName:  string(input.Group),
		Round:      input.Round,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		ID:         matchID,
	}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to update match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update match")
		return
	}

	view, err := loadMatch(ctx, q, matchID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/admin/matches/{id}
func HandleMatchDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to delete match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete match")
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Match not found")
		return
	}

	logger.Info().Str("match_id", matchID).Msg("Match deleted")
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/admin/matches/{id}/cancel
func HandleMatchCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to fetch match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch match")
		return
	}
	if models.MatchStatus(match.Status) == models.MatchPlayed {
		apiutil.WriteError(w, http.StatusConflict, "Played matches cannot be cancelled")
		return
	}

	if err := q.UpdateMatchStatus(ctx, dbgen.UpdateMatchStatusParams{Status: string(models.MatchCancelled), ID: matchID}); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to cancel match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to cancel match")
		return
	}

	view, err := loadMatch(ctx, q, matchID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}
	logger.Info().Str("match_id", matchID).Msg("Match cancelled")
	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}

// parseMatchRequest validates a create/update payload. On update, omitted
// fields keep the values of existing. A new match takes the home team's group
// when none is given. Both teams must belong to the match's group.
func parseMatchRequest(ctx context.Context, q *dbgen.Queries, req matchRequest, existing *dbgen.Match) (matchInput, error) {
	if existing != nil {
		if strings.TrimSpace(req.Date) == "" {
			req.Date = existing.MatchDate.Format(time.RFC3339)
		}
		if strings.TrimSpace(req.HomeTeamID) == "" {
			req.HomeTeamID = existing.HomeTeamID
		}
		if strings.TrimSpace(req.AwayTeamID) == "" {
			req.AwayTeamID = existing.AwayTeamID
		}
		if strings.TrimSpace(req.Group) == "" {
			req.Group = existing.GroupName
		}
	}
	date, err := apiutil.ParseDateField(req.Date, "date")
	if err != nil {
		return matchInput{}, err
	}

	homeID := strings.TrimSpace(req.HomeTeamID)
	awayID := strings.TrimSpace(req.AwayTeamID)
	if homeID == "" {
		return matchInput{}, apiutil.FieldError{Field: "homeTeamId", Reason: "is required"}
	}
	if awayID == "" {
		return matchInput{}, apiutil.FieldError{Field: "awayTeamId", Reason: "is required"}
	}
	if homeID == awayID {
		return matchInput{}, apiutil.FieldError{Field: "awayTeamId", Reason: "must differ from homeTeamId"}
	}

	home, err := q.GetTeam(ctx, homeID)
	if err != nil {
		return matchInput{}, teamLookupError(err, "Home team not found")
	}
	away, err := q.GetTeam(ctx, awayID)
	if err != nil {
		return matchInput{}, teamLookupError(err, "Away team not found")
	}

	group := models.Group(home.GroupName)
	if raw := strings.TrimSpace(req.Group); raw != "" {
		group, err = models.ParseGroup(raw)
		if err != nil {
			return matchInput{}, apiutil.FieldError{Field: "group", Reason: "must be A or B"}
		}
	}
	if home.GroupName != string(group) || away.GroupName != string(group) {
		return matchInput{}, apiutil.FieldError{Field: "group", Reason: "must contain both teams"}
	}

	var round sql.NullString
	switch {
	case req.Round != nil:
		round = apiutil.ToNullString(*req.Round)
	case existing != nil:
		round = existing.Round
	}

	return matchInput{
		Date:       date,
		Group:      group,
		Round:      round,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
	}, nil
}

func teamLookupError(err error, notFound string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: notFound, Err: err}
	}
	return fmt.Errorf("fetch team: %w", err)
}

func listParamsFromQuery(r *http.Request) (dbgen.ListMatchesParams, error) {
	var params dbgen.ListMatchesParams
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("group")); raw != "" {
		group, err := models.ParseGroup(raw)
		if err != nil {
			return params, apiutil.FieldError{Field: "group", Reason: "must be A or B"}
		}
		params.GroupName = sql.NullString{String: string(group), Valid: true}
	}
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := models.ParseMatchStatus(raw)
		if err != nil {
			return params, apiutil.FieldError{Field: "status", Reason: "must be one of scheduled, in_progress, played, cancelled"}
		}
		params.Status = sql.NullString{String: string(status), Valid: true}
	}

	from, err := apiutil.ParseOptionalDateQuery(r, "date_from")
	if err != nil {
		return params, err
	}
	if from != nil {
		params.DateFrom = sql.NullTime{Time: *from, Valid: true}
	}

	to, err := apiutil.ParseOptionalDateQuery(r, "date_to")
	if err != nil {
		return params, err
	}
	if to != nil {
		end := *to
		// A bare date includes the whole day.
		if len(strings.TrimSpace(query.Get("date_to"))) == len(dateOnlyLayout) {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		params.DateTo = sql.NullTime{Time: end, Valid: true}
	}
	return params, nil
}

func loadMatch(ctx context.Context, q *dbgen.Queries, matchID string) (matchView, error) {
	match, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchView{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
		}
		return matchView{}, fmt.Errorf("fetch match: %w", err)
	}
	sets, err := q.ListMatchSetsByMatch(ctx, matchID)
	if err != nil {
		return matchView{}, fmt.Errorf("fetch match sets: %w", err)
	}

	names := make(map[string]string, 2)
	for _, teamID := range []string{match.HomeTeamID, match.AwayTeamID} {
		team, err := q.GetTeam(ctx, teamID)
		if err != nil {
			return matchView{}, fmt.Errorf("fetch team: %w", err)
		}
		names[team.ID] = team.Name
	}
	return newMatchView(match, sets, names), nil
}

func teamNames(ctx context.Context, q *dbgen.Queries) (map[string]string, error) {
	teams, err := q.ListTeams(ctx, dbgen.ListTeamsParams{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}
	return names, nil
}

func newMatchView(row dbgen.Match, sets []dbgen.MatchSet, names map[string]string) matchView {
	match := provider.MatchFromDB(row, sets)

	scores := make([]models.SetScore, 0, len(sets))
	for _, set := range sets {
		scores = append(scores, models.SetScore{
			SetNumber: int(set.SetNumber),
			HomeGames: int(set.HomeGames),
			AwayGames: int(set.AwayGames),
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].SetNumber < scores[j].SetNumber })

	view := matchView{
		Match:        match,
		HomeTeamName: names[match.HomeTeamID],
		AwayTeamName: names[match.AwayTeamID],
		Sets:         scores,
	}
	if match.Status == models.MatchPlayed {
		view.WinnerTeamID = winnerOf(match)
	}
	return view
}

func loadQueries() *dbgen.Queries {
	return queries
}
