// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	"github.com/districtpadel/league/internal/api/htmx"
	appdb "github.com/districtpadel/league/internal/db"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
	dashboardtempl "github.com/districtpadel/league/internal/templates/components/dashboard"
)

const dashboardQueryTimeout = 5 * time.Second

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB) {
	if database == nil {
		log.Warn().Msg("InitHandlers called with nil database; dashboard handlers will be unavailable")
		return
	}
	queriesOnce.Do(func() {
		queries = database.Queries
	})
}

// HandleDashboardStats returns team and match counts for GET /api/v1/admin/dashboard/stats.
func HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	data, err := buildDashboardData(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dashboard data")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, dashboardtempl.Stats(data), nil, "Failed to render dashboard stats", "Failed to render stats")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, data); err != nil {
		logger.Error().Err(err).Msg("Failed to write dashboard response")
	}
}

func buildDashboardData(ctx context.Context, q *dbgen.Queries) (dashboardtempl.DashboardData, error) {
	teamRows, err := q.CountTeamsByGroup(ctx)
	if err != nil {
		return dashboardtempl.DashboardData{}, fmt.Errorf("count teams: %w", err)
	}
	matchRows, err := q.CountMatchesByStatus(ctx)
	if err != nil {
		return dashboardtempl.DashboardData{}, fmt.Errorf("count matches: %w", err)
	}

	byGroup := map[string]*dashboardtempl.GroupCount{
		string(models.GroupA): {Group: string(models.GroupA)},
		string(models.GroupB): {Group: string(models.GroupB)},
	}
	var data dashboardtempl.DashboardData
	for _, row := range teamRows {
		count, ok := byGroup[row.GroupName]
		if !ok {
			count = &dashboardtempl.GroupCount{Group: row.GroupName}
			byGroup[row.GroupName] = count
		}
		count.Total += row.TeamCount
		data.Teams.Total += row.TeamCount
		if row.Active {
			count.Active += row.TeamCount
			data.Teams.Active += row.TeamCount
		}
	}
	for _, group := range []models.Group{models.GroupA, models.GroupB} {
		data.Teams.ByGroup = append(data.Teams.ByGroup, *byGroup[string(group)])
	}

	for _, row := range matchRows {
		data.Matches.Total += row.MatchCount
		switch models.MatchStatus(row.Status) {
		case models.MatchScheduled:
			data.Matches.Scheduled += row.MatchCount
		case models.MatchInProgress:
			data.Matches.InProgress += row.MatchCount
		case models.MatchPlayed:
			data.Matches.Played += row.MatchCount
		case models.MatchCancelled:
			data.Matches.Cancelled += row.MatchCount
		}
	}
	return data, nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
