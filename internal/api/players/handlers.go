// internal/api/players/handlers.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
)

const (
	playerQueryTimeout = 5 * time.Second
	playerIDPathKey    = "id"
	maxPlayerName      = 100
)

var (
	queries     *dbgen.Queries
	phoneRegion string
)

type playerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type playerInput struct {
	Name  string
	Email sql.NullString
	Phone sql.NullString
}

type playerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type playerTeamView struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Group  models.Group      `json:"group"`
	Active bool              `json:"active"`
	Role   models.PlayerRole `json:"role"`
}

// InitHandlers must be called during server startup before handling requests.
// region is the default region for phone numbers without a country code.
func InitHandlers(database *appdb.DB, region string) {
	if database == nil {
		log.Warn().Msg("InitHandlers called with nil database; player handlers will be unavailable")
		return
	}
	queries = database.Queries
	phoneRegion = region
}

// GET /api/v1/admin/players
func HandlePlayersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	rows, err := q.ListPlayers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list players")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list players")
		return
	}

	players := make([]playerView, 0, len(rows))
	for _, row := range rows {
		players = append(players, newPlayerView(row))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": players}); err != nil {
		logger.Error().Err(err).Msg("Failed to write players response")
	}
}

// POST /api/v1/admin/players
func HandlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	input, err := decodePlayerInput(r)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create player")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{
		ID:    apiutil.NewID(),
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create player")
		return
	}

	logger.Info().Str("player_id", player.ID).Msg("Player created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newPlayerView(player)); err != nil {
		logger.Error().Err(err).Str("player_id", player.ID).Msg("Failed to write player response")
	}
}

// GET /api/v1/admin/players/{id}
func HandlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid player ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Player not found")
			return
		}
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to fetch player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch player")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newPlayerView(player)); err != nil {
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to write player response")
	}
}

// PUT /api/v1/admin/players/{id}
func HandlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid player ID")
		return
	}

	input, err := decodePlayerInput(r)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update player")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := q.UpdatePlayer(ctx, dbgen.UpdatePlayerParams{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		ID:    playerID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Player not found")
			return
		}
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to update player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update player")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newPlayerView(player)); err != nil {
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to write player response")
	}
}

// GET /api/v1/admin/players/{id}/teams
func HandlePlayerTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid player ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if _, err := q.GetPlayer(ctx, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Player not found")
			return
		}
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to fetch player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch player")
		return
	}

	rows, err := q.ListTeamsForPlayer(ctx, playerID)
	if err != nil {
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to list player teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list player teams")
		return
	}

	teams := make([]playerTeamView, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, playerTeamView{
			ID:     row.ID,
			Name:   row.Name,
			Group:  models.Group(row.GroupName),
			Active: row.Active,
			Role:   models.PlayerRole(row.Role),
		})
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to write player teams response")
	}
}

func decodePlayerInput(r *http.Request) (playerInput, error) {
	var req playerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return playerInput{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err}
	}
	return parsePlayerRequest(req, phoneRegion)
}

func parsePlayerRequest(req playerRequest, region string) (playerInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return playerInput{}, apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if len(name) > maxPlayerName {
		return playerInput{}, apiutil.FieldError{Field: "name", Reason: fmt.Sprintf("must be %d characters or fewer", maxPlayerName)}
	}

	input := playerInput{Name: name}
	if raw := strings.TrimSpace(req.Email); raw != "" {
		address, err := mail.ParseAddress(raw)
		if err != nil || address.Address != raw {
			return playerInput{}, apiutil.FieldError{Field: "email", Reason: "must be a valid email address"}
		}
		input.Email = apiutil.ToNullString(address.Address)
	}

	phone, err := models.NormalizePhone(req.Phone, region)
	if err != nil {
		return playerInput{}, apiutil.FieldError{Field: "phone", Reason: "must be a valid phone number"}
	}
	input.Phone = apiutil.ToNullString(phone)
	return input, nil
}

func newPlayerView(player dbgen.Player) playerView {
	return playerView{
		ID:        player.ID,
		Name:      player.Name,
		Email:     apiutil.FromNullString(player.Email),
		Phone:     apiutil.FromNullString(player.Phone),
		CreatedAt: player.CreatedAt,
		UpdatedAt: player.UpdatedAt,
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}
