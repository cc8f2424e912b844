// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/districtpadel/league/internal/api"
	"github.com/districtpadel/league/internal/api/auth"
	"github.com/districtpadel/league/internal/api/dashboard"
	"github.com/districtpadel/league/internal/api/matches"
	"github.com/districtpadel/league/internal/api/players"
	"github.com/districtpadel/league/internal/api/standings"
	"github.com/districtpadel/league/internal/api/teams"
	"github.com/districtpadel/league/internal/config"
	"github.com/districtpadel/league/internal/db"
	"github.com/districtpadel/league/internal/email"
	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/ratelimit"
)

type serverDeps struct {
	database  *db.DB
	standings *leagues.StandingsService
	notifier  *email.Notifier
	limiter   *ratelimit.Limiter
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	auth.InitHandlers(deps.database.Queries, cfg, deps.limiter)
	teams.InitHandlers(deps.database)
	players.InitHandlers(deps.database, cfg.League.PhoneRegion)
	matches.InitHandlers(deps.database, deps.notifier, cfg.App.Name)
	standings.InitHandlers(deps.standings, cfg.App.Name)
	dashboard.InitHandlers(deps.database)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithCORS(cfg.App.CORSOrigins),
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/standings", http.StatusFound)
	})
	mux.HandleFunc("GET /standings", standings.HandleStandingsPage)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public routes
	mux.HandleFunc("GET /api/v1/public/standings", standings.HandleStandings)
	mux.HandleFunc("GET /api/v1/public/standings/teams/{id}", standings.HandleTeamStanding)
	mux.HandleFunc("GET /api/v1/public/teams", teams.HandleTeamsList)
	mux.HandleFunc("GET /api/v1/public/teams/{id}", teams.HandleTeamDetail)
	mux.HandleFunc("GET /api/v1/public/matches", matches.HandleMatchesList)
	mux.HandleFunc("GET /api/v1/public/matches/{id}", matches.HandleMatchDetail)

	// Auth routes
	mux.HandleFunc("POST /api/v1/admin/auth/login", auth.HandleLogin)
	admin(mux, "GET /api/v1/admin/auth/me", auth.HandleMe)
	admin(mux, "POST /api/v1/admin/auth/logout", auth.HandleLogout)

	// Team routes
	admin(mux, "GET /api/v1/admin/teams", teams.HandleAdminTeamsList)
	admin(mux, "POST /api/v1/admin/teams", teams.HandleTeamCreate)
	admin(mux, "PUT /api/v1/admin/teams/{id}", teams.HandleTeamUpdate)
	admin(mux, "DELETE /api/v1/admin/teams/{id}", teams.HandleTeamArchive)
	admin(mux, "POST /api/v1/admin/teams/{id}/activate", teams.HandleTeamActivate)

	// Player routes
	admin(mux, "GET /api/v1/admin/players", players.HandlePlayersList)
	admin(mux, "POST /api/v1/admin/players", players.HandlePlayerCreate)
	admin(mux, "GET /api/v1/admin/players/{id}", players.HandlePlayerDetail)
	admin(mux, "PUT /api/v1/admin/players/{id}", players.HandlePlayerUpdate)
	admin(mux, "GET /api/v1/admin/players/{id}/teams", players.HandlePlayerTeams)

	// Match routes
	admin(mux, "POST /api/v1/admin/matches", matches.HandleMatchCreate)
	admin(mux, "POST /api/v1/admin/matches/generate", matches.HandleGenerateSchedule)
	admin(mux, "PUT /api/v1/admin/matches/{id}", matches.HandleMatchUpdate)
	admin(mux, "DELETE /api/v1/admin/matches/{id}", matches.HandleMatchDelete)
	admin(mux, "PUT /api/v1/admin/matches/{id}/result", matches.HandleMatchResult)
	admin(mux, "POST /api/v1/admin/matches/{id}/cancel", matches.HandleMatchCancel)

	// Dashboard
	admin(mux, "GET /api/v1/admin/dashboard/stats", dashboard.HandleDashboardStats)
}

func admin(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, api.WithAdminAuth(h))
}
