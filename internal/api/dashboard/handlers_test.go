package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dbgen "github.com/districtpadel/league/internal/db/generated"
	dashboardtempl "github.com/districtpadel/league/internal/templates/components/dashboard"
	"github.com/districtpadel/league/internal/testutil"
)

func seedDashboard(t *testing.T) *dbgen.Queries {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	q := db.Queries

	for _, team := range []dbgen.CreateTeamParams{
		{ID: "a1", Name: "Thunder Smash", GroupName: "A", Active: true},
		{ID: "a2", Name: "Net Warriors", GroupName: "A", Active: false},
		{ID: "b1", Name: "Power Serve", GroupName: "B", Active: true},
	} {
		if _, err := q.CreateTeam(ctx, team); err != nil {
			t.Fatalf("CreateTeam() error = %v", err)
		}
	}

	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	for i, status := range []string{"scheduled", "scheduled", "played", "cancelled"} {
		if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
			ID:         fmt.Sprintf("match-%d", i),
			MatchDate:  date.AddDate(0, 0, i),
			GroupName:  "A",
			HomeTeamID: "a1",
			AwayTeamID: "b1",
			Status:     status,
		}); err != nil {
			t.Fatalf("CreateMatch() error = %v", err)
		}
	}
	return q
}

func TestBuildDashboardData(t *testing.T) {
	q := seedDashboard(t)

	data, err := buildDashboardData(context.Background(), q)
	if err != nil {
		t.Fatalf("buildDashboardData() error = %v", err)
	}

	if data.Teams.Total != 3 || data.Teams.Active != 2 {
		t.Fatalf("teams = %+v, want 2 of 3 active", data.Teams)
	}
	wantGroups := []dashboardtempl.GroupCount{
		{Group: "A", Active: 1, Total: 2},
		{Group: "B", Active: 1, Total: 1},
	}
	if len(data.Teams.ByGroup) != len(wantGroups) {
		t.Fatalf("byGroup = %+v", data.Teams.ByGroup)
	}
	for i, want := range wantGroups {
		if data.Teams.ByGroup[i] != want {
			t.Fatalf("byGroup[%d] = %+v, want %+v", i, data.Teams.ByGroup[i], want)
		}
	}

	if data.Matches.Total != 4 || data.Matches.Scheduled != 2 || data.Matches.Played != 1 || data.Matches.Cancelled != 1 {
		t.Fatalf("matches = %+v", data.Matches)
	}
}

func TestHandleDashboardStats(t *testing.T) {
	queries = seedDashboard(t)
	t.Cleanup(func() { queries = nil })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	HandleDashboardStats(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data dashboardtempl.DashboardData
	if err := json.NewDecoder(rec.Body).Decode(&data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Matches.Scheduled != 2 {
		t.Fatalf("scheduled = %d, want 2", data.Matches.Scheduled)
	}

	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	HandleDashboardStats(rec, req)
	if !strings.Contains(rec.Body.String(), `id="dashboard-stats"`) {
		t.Fatalf("htmx body = %s, want stats partial", rec.Body.String())
	}
}
