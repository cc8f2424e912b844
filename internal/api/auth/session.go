package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/districtpadel/league/internal/api/authz"
)

const (
	authCookieName  = "league_auth"
	defaultTokenTTL = 24 * time.Hour
	bearerPrefix    = "Bearer "
)

var (
	errAuthConfigMissing = errors.New("auth configuration missing")
	errInvalidToken      = errors.New("invalid auth token")
	errTokenExpired      = errors.New("auth token expired")
)

type tokenClaims struct {
	UserID    string `json:"sub"`
	Username  string `json:"usr"`
	ExpiresAt int64  `json:"exp"`
}

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

func tokenTTL() time.Duration {
	if appConfig == nil || appConfig.TokenTTL() <= 0 {
		return defaultTokenTTL
	}
	return appConfig.TokenTTL()
}

// IssueToken signs a token for user that expires after the configured TTL.
func IssueToken(user *authz.AuthUser, now time.Time) (string, time.Time, error) {
	if user == nil || user.ID == "" {
		return "", time.Time{}, errors.New("token requires a user")
	}

	expiresAt := now.Add(tokenTTL())
	payload, err := json.Marshal(tokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return "", time.Time{}, err
	}
	return encodedPayload + "." + signature, expiresAt, nil
}

func SetAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the admin from a bearer token or the auth cookie.
// It returns nil without error when the request carries no token.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	token := tokenFromRequest(r)
	if token == "" {
		return nil, nil
	}

	claims, err := parseToken(token, time.Now())
	if err != nil {
		return nil, err
	}

	if queries == nil {
		return nil, errors.New("auth queries not initialized")
	}

	user, err := queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &authz.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		IsActive: user.IsActive,
	}, nil
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(header[len(bearerPrefix):])
		}
		return ""
	}

	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func parseToken(token string, now time.Time) (*tokenClaims, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, errInvalidToken
	}

	encodedPayload := parts[0]
	signature := parts[1]
	expectedSignature, err := signPayload(encodedPayload)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, errInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, errInvalidToken
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errInvalidToken
	}
	if claims.UserID == "" {
		return nil, errInvalidToken
	}
	if claims.ExpiresAt <= now.Unix() {
		return nil, errTokenExpired
	}

	return &claims, nil
}

func signPayload(payload string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}

	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
