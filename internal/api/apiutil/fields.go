package apiutil

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateField parses an RFC 3339 timestamp or a local date/time and
// returns it in UTC.
func ParseDateField(raw string, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, FieldError{Field: field, Reason: "is required"}
	}

	for _, layout := range dateLayouts {
		if layout == time.RFC3339 {
			parsed, err := time.Parse(layout, raw)
			if err == nil {
				return parsed.UTC(), nil
			}
			continue
		}
		parsed, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, FieldError{Field: field, Reason: "must be a valid date"}
}

// ParseOptionalDateQuery parses a query parameter, returning nil when absent.
func ParseOptionalDateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseDateField(raw, key)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// PathID reads a UUID path parameter.
func PathID(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.PathValue(key))
	if raw == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s must be a valid id", key)
	}
	return id.String(), nil
}

func NewID() string {
	return uuid.NewString()
}
