package standings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/provider"
)

const leagueFixture = `
teams:
  - {id: a1, name: Thunder Smash, group: A}
  - {id: a2, name: Net Warriors, group: A}
  - {id: b1, name: Power Serve, group: B}
  - {id: b2, name: "Glass & Co", group: B}
matches:
  - {date: 2025-03-01T18:00:00Z, home: a1, away: a2, home_sets: [6, 6], away_sets: [2, 3]}
  - {date: 2025-03-01T20:00:00Z, home: b2, away: b1, home_sets: [6, 3, 6], away_sets: [4, 6, 2]}
`

func setupStandingsTest(t *testing.T) {
	t.Helper()
	fixture, err := provider.ParseFixture([]byte(leagueFixture))
	if err != nil {
		t.Fatalf("ParseFixture() error = %v", err)
	}
	svc, err := leagues.NewStandingsService(fixture, nil)
	if err != nil {
		t.Fatalf("NewStandingsService() error = %v", err)
	}
	InitHandlers(svc, "District Padel League")
	t.Cleanup(func() {
		service = nil
		leagueName = ""
	})
}

func TestHandleStandingsFiltersGroup(t *testing.T) {
	setupStandingsTest(t)

	tests := []struct {
		query     string
		wantCode  int
		wantFirst string
		wantLen   int
	}{
		{query: "", wantCode: http.StatusOK, wantFirst: "a1", wantLen: 4},
		{query: "?group=b", wantCode: http.StatusOK, wantFirst: "b2", wantLen: 2},
		{query: "?group=C", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/public/standings"+tt.query, nil)
			rec := httptest.NewRecorder()
			HandleStandings(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp struct {
				Standings []models.TeamStanding `json:"standings"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Standings) != tt.wantLen || resp.Standings[0].TeamID != tt.wantFirst {
				t.Fatalf("standings = %+v", resp.Standings)
			}
			if resp.Standings[0].Position != 1 {
				t.Fatalf("first position = %d, want 1", resp.Standings[0].Position)
			}
		})
	}
}

func TestHandleTeamStanding(t *testing.T) {
	setupStandingsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/standings/teams/b1", nil)
	req.SetPathValue("id", "b1")
	rec := httptest.NewRecorder()
	HandleTeamStanding(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var standing models.TeamStanding
	if err := json.NewDecoder(rec.Body).Decode(&standing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if standing.Points != 1 || standing.MatchesLost != 1 {
		t.Fatalf("standing = %+v, want a 1-2 loss worth 1 point", standing)
	}

	req.SetPathValue("id", "missing")
	rec = httptest.NewRecorder()
	HandleTeamStanding(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleStandingsPage(t *testing.T) {
	setupStandingsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/standings?group=B", nil)
	rec := httptest.NewRecorder()
	HandleStandingsPage(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "Glass &amp; Co") {
		t.Fatalf("body = %s, want full page with escaped names", body)
	}
	if strings.Contains(body, "Thunder Smash") {
		t.Fatal("group A team rendered for group B")
	}

	req = httptest.NewRequest(http.MethodGet, "/standings", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	HandleStandingsPage(rec, req)
	body = rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") || !strings.HasPrefix(body, "<table") {
		t.Fatalf("htmx body = %s, want table partial only", body)
	}
}
