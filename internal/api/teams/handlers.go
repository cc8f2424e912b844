// internal/api/teams/handlers.go
package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/provider"
)

const (
	teamQueryTimeout = 5 * time.Second
	teamIDPathKey    = "id"
)

var (
	database *appdb.DB
	queries  *dbgen.Queries
)

type rosterEntryRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type teamRequest struct {
	Name    string               `json:"name"`
	Group   string               `json:"group"`
	Players []rosterEntryRequest `json:"players"`
}

type teamInput struct {
	Name    string
	Group   models.Group
	Roster  []models.RosterEntry
	Replace bool
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB) {
	if db == nil {
		log.Warn().Msg("InitHandlers called with nil database; team handlers will be unavailable")
		return
	}
	database = db
	queries = db.Queries
}

// GET /api/v1/public/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	writeTeamsList(w, r, true)
}

// GET /api/v1/admin/teams
func HandleAdminTeamsList(w http.ResponseWriter, r *http.Request) {
	writeTeamsList(w, r, false)
}

// writeTeamsList lists teams filtered by ?group= and ?active=. Without
// ?active=, archived teams are hidden when activeOnly is set.
func writeTeamsList(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	params, err := listParamsFromQuery(r, activeOnly)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to list teams")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	rows, err := q.ListTeams(ctx, params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}
	rosterRows, err := q.ListTeamPlayers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list team rosters")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	rosters := provider.RostersFromDB(rosterRows)
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, provider.TeamFromDB(row, rosters[row.ID]))
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// GET /api/v1/public/teams/{id}
func HandleTeamDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := loadTeam(ctx, q, teamID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch team")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to write team response")
	}
}

// POST /api/v1/admin/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	input, err := parseTeamRequest(req, true)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	teamID := apiutil.NewID()
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
			ID:        teamID,
			Name:      input.Name,
			GroupName: string(input.Group),
			Active:    true,
		}); err != nil {
			if apiutil.IsSQLiteUniqueViolation(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Team name already exists", Err: err}
			}
			return fmt.Errorf("create team: %w", err)
		}
		return saveRoster(ctx, tx.Queries, teamID, input.Roster)
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to create team")
		return
	}

	team, err := loadTeam(ctx, database.Queries, teamID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch team")
		return
	}

	logger.Info().Str("team_id", teamID).Str("group", string(team.Group)).Msg("Team created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to write team response")
	}
}

// PUT /api/v1/admin/teams/{id}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	input, err := parseTeamRequest(req, false)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		if _, err := tx.Queries.UpdateTeam(ctx, dbgen.UpdateTeamParams{
			Name:      input.Name,
			GroupName: string(input.Group),
			ID:        teamID,
		}); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err}
			case apiutil.IsSQLiteUniqueViolation(err):
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Team name already exists", Err: err}
			}
			return fmt.Errorf("update team: %w", err)
		}
		if !input.Replace {
			return nil
		}
		if err := tx.Queries.DeleteTeamPlayers(ctx, teamID); err != nil {
			return fmt.Errorf("clear roster: %w", err)
		}
		return saveRoster(ctx, tx.Queries, teamID, input.Roster)
	})
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to update team")
		return
	}

	team, err := loadTeam(ctx, database.Queries, teamID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch team")
		return
	}

	logger.Info().Str("team_id", teamID).Bool("roster_replaced", input.Replace).Msg("Team updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to write team response")
	}
}

// DELETE /api/v1/admin/teams/{id}
// Archives the team; its matches stay in the history.
func HandleTeamArchive(w http.ResponseWriter, r *http.Request) {
	setTeamActive(w, r, false)
}

// POST /api/v1/admin/teams/{id}/activate
func HandleTeamActivate(w http.ResponseWriter, r *http.Request) {
	setTeamActive(w, r, true)
}

func setTeamActive(w http.ResponseWriter, r *http.Request, active bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if _, err := q.SetTeamActive(ctx, dbgen.SetTeamActiveParams{Active: active, ID: teamID}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Team not found")
			return
		}
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to update team status")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}

	team, err := loadTeam(ctx, q, teamID)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to fetch team")
		return
	}

	logger.Info().Str("team_id", teamID).Bool("active", active).Msg("Team status changed")
	if err := apiutil.WriteJSON(w, http.StatusOK, team); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to write team response")
	}
}

func decodeTeamRequest(r *http.Request) (teamRequest, error) {
	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		return teamRequest{}, fmt.Errorf("invalid JSON body")
	}
	return req, nil
}

// parseTeamRequest validates the payload. On update an omitted players list
// keeps the current roster.
func parseTeamRequest(req teamRequest, requireRoster bool) (teamInput, error) {
	name, err := models.ValidateTeamName(req.Name)
	if err != nil {
		return teamInput{}, err
	}
	group, err := models.ParseGroup(req.Group)
	if err != nil {
		return teamInput{}, err
	}

	input := teamInput{Name: name, Group: group}
	if req.Players == nil && !requireRoster {
		return input, nil
	}

	roster := make([]models.RosterEntry, 0, len(req.Players))
	for i, entry := range req.Players {
		role, err := models.ParsePlayerRole(entry.Role)
		if err != nil {
			return teamInput{}, fmt.Errorf("players[%d]: %w", i, err)
		}
		roster = append(roster, models.RosterEntry{
			PlayerID: strings.TrimSpace(entry.PlayerID),
			Name:     strings.TrimSpace(entry.Name),
			Role:     role,
		})
	}
	if err := models.ValidateRoster(roster); err != nil {
		return teamInput{}, err
	}

	input.Roster = roster
	input.Replace = true
	return input, nil
}

// saveRoster links each entry to the team, creating players given by name.
func saveRoster(ctx context.Context, q *dbgen.Queries, teamID string, roster []models.RosterEntry) error {
	for _, entry := range roster {
		playerID := entry.PlayerID
		if playerID == "" {
			player, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{
				ID:   apiutil.NewID(),
				Name: entry.Name,
			})
			if err != nil {
				return fmt.Errorf("create player: %w", err)
			}
			playerID = player.ID
		} else if _, err := q.GetPlayer(ctx, playerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Player not found: " + playerID, Err: err}
			}
			return fmt.Errorf("fetch player: %w", err)
		}

		if err := q.AddTeamPlayer(ctx, dbgen.AddTeamPlayerParams{
			ID:       apiutil.NewID(),
			TeamID:   teamID,
			PlayerID: playerID,
			Role:     string(entry.Role),
		}); err != nil {
			return fmt.Errorf("add team player: %w", err)
		}
	}
	return nil
}

func loadTeam(ctx context.Context, q *dbgen.Queries, teamID string) (models.Team, error) {
	row, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err}
		}
		return models.Team{}, fmt.Errorf("fetch team: %w", err)
	}
	rosterRows, err := q.ListTeamPlayersByTeam(ctx, teamID)
	if err != nil {
		return models.Team{}, fmt.Errorf("fetch roster: %w", err)
	}

	roster := make([]models.Player, 0, len(rosterRows))
	for _, entry := range rosterRows {
		roster = append(roster, models.Player{
			ID:   entry.PlayerID,
			Name: entry.PlayerName,
			Role: models.PlayerRole(entry.Role),
		})
	}
	return provider.TeamFromDB(row, roster), nil
}

func listParamsFromQuery(r *http.Request, activeOnly bool) (dbgen.ListTeamsParams, error) {
	var params dbgen.ListTeamsParams
	query := r.URL.Query()
	if activeOnly {
		params.Active = sql.NullBool{Bool: true, Valid: true}
	}

	if raw := strings.TrimSpace(query.Get("group")); raw != "" {
		group, err := models.ParseGroup(raw)
		if err != nil {
			return params, apiutil.FieldError{Field: "group", Reason: "must be A or B"}
		}
		params.GroupName = sql.NullString{String: string(group), Valid: true}
	}
	if raw := strings.TrimSpace(query.Get("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return params, apiutil.FieldError{Field: "active", Reason: "must be true or false"}
		}
		params.Active = sql.NullBool{Bool: active, Valid: true}
	}
	return params, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
