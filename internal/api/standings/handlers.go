// internal/api/standings/handlers.go
package standings

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	"github.com/districtpadel/league/internal/api/htmx"
	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/models"
	standingstempl "github.com/districtpadel/league/internal/templates/components/standings"
	"github.com/districtpadel/league/internal/templates/layouts"
)

const (
	standingsTimeout = 5 * time.Second
	teamIDPathKey    = "id"
)

var (
	service    *leagues.StandingsService
	leagueName string
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *leagues.StandingsService, name string) {
	if svc == nil {
		log.Warn().Msg("InitHandlers called with nil standings service; standings handlers will be unavailable")
		return
	}
	service = svc
	leagueName = name
}

// GET /api/v1/public/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil {
		logger.Error().Msg("Standings service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	group, err := groupFromQuery(r)
	if err != nil {
		apiutil.WriteHandlerError(w, r, err, "Failed to compute standings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), standingsTimeout)
	defer cancel()

	rows, err := service.Standings(ctx, group)
	if err != nil {
		logger.Error().Err(err).Str("group", string(group)).Msg("Failed to compute standings")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to compute standings")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"standings": rows}); err != nil {
		logger.Error().Err(err).Msg("Failed to write standings response")
	}
}

// GET /api/v1/public/standings/teams/{id}
func HandleTeamStanding(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil {
		logger.Error().Msg("Standings service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Fixture data uses free-form ids, so this is not parsed as a UUID.
	teamID := strings.TrimSpace(r.PathValue(teamIDPathKey))
	if teamID == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), standingsTimeout)
	defer cancel()

	standing, err := service.TeamStanding(ctx, teamID)
	if err != nil {
		if errors.Is(err, leagues.ErrStandingNotFound) {
			apiutil.WriteError(w, http.StatusNotFound, "Team not found")
			return
		}
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to compute team standing")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to compute standings")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, standing); err != nil {
		logger.Error().Err(err).Str("team_id", teamID).Msg("Failed to write team standing response")
	}
}

// GET /standings
func HandleStandingsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if service == nil {
		logger.Error().Msg("Standings service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	group, err := groupFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), standingsTimeout)
	defer cancel()

	rows, err := service.Standings(ctx, group)
	if err != nil {
		logger.Error().Err(err).Str("group", string(group)).Msg("Failed to compute standings")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, standingstempl.Table(rows), nil, "Failed to render standings table", "Failed to render table")
		return
	}

	data := standingstempl.PageData{
		LeagueName: leagueName,
		Groups:     groupOptions(group),
		Rows:       rows,
	}
	page := layouts.Base(leagueName+" standings", standingstempl.Page(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render standings page", "Failed to render page")
}

func groupFromQuery(r *http.Request) (models.Group, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("group"))
	if raw == "" {
		return "", nil
	}
	group, err := models.ParseGroup(raw)
	if err != nil {
		return "", apiutil.FieldError{Field: "group", Reason: "must be A or B"}
	}
	return group, nil
}

func groupOptions(selected models.Group) []standingstempl.GroupOption {
	options := []standingstempl.GroupOption{{Value: "", Label: "All groups", Selected: selected == ""}}
	for _, group := range []models.Group{models.GroupA, models.GroupB} {
		options = append(options, standingstempl.GroupOption{
			Value:    string(group),
			Label:    "Group " + string(group),
			Selected: selected == group,
		})
	}
	return options
}
