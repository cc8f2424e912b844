package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/email"
	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/models"
)

type resultRequest struct {
	Sets []models.SetScore `json:"sets"`
}

// PUT /api/v1/admin/matches/{id}/result
// Replaces the recorded sets. The match becomes played once a team has won
// more sets, otherwise it stays in progress.
func HandleMatchResult(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req resultRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := models.ValidateResultSets(req.Sets); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var status models.MatchStatus
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		var txErr error
		status, txErr = saveResult(ctx, tx.Queries, matchID, req.Sets)
		return txErr
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to save result")
		return
	}

	view, err := loadMatch(ctx, database.Queries, matchID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch match")
		return
	}

	logger.Info().
		Str("match_id", matchID).
		Str("status", string(status)).
		Int("sets", len(req.Sets)).
		Msg("Match result recorded")

	notifier.SendAsync(r.Context(), resultEmail(view), logger)

	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}

func saveResult(ctx context.Context, q *dbgen.Queries, matchID string, sets []models.SetScore) (models.MatchStatus, error) {
	row, err := q.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
		}
		return "", fmt.Errorf("fetch match: %w", err)
	}

	switch models.MatchStatus(row.Status) {
	case models.MatchScheduled, models.MatchInProgress:
	default:
		return "", apiutil.HandlerError{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("Cannot enter a result for a %s match", row.Status),
		}
	}

	if err := q.DeleteMatchSets(ctx, matchID); err != nil {
		return "", fmt.Errorf("clear match sets: %w", err)
	}
	for _, set := range sets {
		if err := q.CreateMatchSet(ctx, dbgen.CreateMatchSetParams{
			ID:        apiutil.NewID(),
			MatchID:   matchID,
			SetNumber: int64(set.SetNumber),
			HomeGames: int64(set.HomeGames),
			AwayGames: int64(set.AwayGames),
		}); err != nil {
			return "", fmt.Errorf("create match set: %w", err)
		}
	}

	homeSets, awaySets := models.SplitSets(sets)
	status := leagues.ResultStatus(models.Match{
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeSets:   homeSets,
		AwaySets:   awaySets,
	})
	if err := q.UpdateMatchStatus(ctx, dbgen.UpdateMatchStatusParams{Status: string(status), ID: matchID}); err != nil {
		return "", fmt.Errorf("update match status: %w", err)
	}
	return status, nil
}

func winnerOf(match models.Match) string {
	winner, ok := leagues.DetermineWinner(match)
	if !ok {
		return ""
	}
	return winner
}

func resultEmail(view matchView) email.Message {
	winner := ""
	switch view.WinnerTeamID {
	case "":
	case view.HomeTeamID:
		winner = view.HomeTeamName
	case view.AwayTeamID:
		winner = view.AwayTeamName
	}

	return email.BuildResultEmail(email.ResultDetails{
		LeagueName: leagueName,
		HomeTeam:   view.HomeTeamName,
		AwayTeam:   view.AwayTeamName,
		Group:      string(view.Group),
		Round:      view.Round,
		Date:       view.Date,
		HomeSets:   view.HomeSets,
		AwaySets:   view.AwaySets,
		Winner:     winner,
	})
}
