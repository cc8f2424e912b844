package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/api/apiutil"
	"github.com/districtpadel/league/internal/api/authz"
	"github.com/districtpadel/league/internal/config"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/ratelimit"
)

var (
	queries   *dbgen.Queries
	appConfig *config.Config
	limiter   *ratelimit.Limiter
)

// Stand-in hash so unknown usernames cost the same bcrypt work as real ones.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3bV8rJ1yY8zRkq0Jb9pQ2u6"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userView  `json:"user"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// InitHandlers wires the auth package. A nil limiter disables throttling.
func InitHandlers(q *dbgen.Queries, cfg *config.Config, l *ratelimit.Limiter) {
	queries = q
	appConfig = cfg
	limiter = l
}

// POST /api/v1/admin/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ip := ratelimit.GetClientIP(r, appConfig != nil && appConfig.IsProduction())
	if limiter != nil {
		if result := limiter.CheckLogin(username, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("login", username, ip, result.Reason)
			w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			apiutil.WriteError(w, http.StatusTooManyRequests, "Too many login attempts")
			return
		}
	}

	user, err := queries.GetUserByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash := dummyPasswordHash
	if err == nil {
		hash = user.HashedPassword
	}
	if !VerifyPassword(hash, req.Password) || err != nil {
		if limiter != nil && limiter.RecordFailure(username, ip) {
			ratelimit.LogRateLimitExceeded("login", username, ip, "lockout")
		}
		logger.Warn().Str("username", ratelimit.SanitizeIdentifier(username)).Msg("Login failed")
		apiutil.WriteError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if !user.IsActive {
		apiutil.WriteError(w, http.StatusForbidden, "Account is inactive")
		return
	}
	if limiter != nil {
		limiter.Reset(username)
	}

	authUser := &authz.AuthUser{ID: user.ID, Username: user.Username, IsActive: user.IsActive}
	token, expiresAt, err := IssueToken(authUser, time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to issue auth token")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	SetAuthCookie(w, token, expiresAt)

	logger.Info().Str("user_id", user.ID).Msg("Admin logged in")
	if err := apiutil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC(),
		User:        userView{ID: user.ID, Username: user.Username, Email: user.Email},
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write login response")
	}
}

// GET /api/v1/admin/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	authUser := authz.UserFromContext(r.Context())
	if authUser == nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := queries.GetUserByID(r.Context(), authUser.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		logger.Error().Err(err).Str("user_id", authUser.ID).Msg("Failed to load current user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, userView{ID: user.ID, Username: user.Username, Email: user.Email}); err != nil {
		logger.Error().Err(err).Msg("Failed to write user response")
	}
}

// POST /api/v1/admin/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
