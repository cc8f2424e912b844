package players

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nyaruka/phonenumbers"

	"github.com/districtpadel/league/internal/api/apiutil"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/testutil"
)

func setupPlayersTest(t *testing.T) *dbgen.Queries {
	t.Helper()
	db := testutil.NewTestDB(t)
	InitHandlers(db, "RS")
	t.Cleanup(func() {
		queries = nil
		phoneRegion = ""
	})
	return db.Queries
}

func TestParsePlayerRequest(t *testing.T) {
	example := phonenumbers.GetExampleNumber("RS")
	national := phonenumbers.Format(example, phonenumbers.NATIONAL)
	e164 := phonenumbers.Format(example, phonenumbers.E164)

	tests := []struct {
		name      string
		req       playerRequest
		wantField string
		wantPhone string
	}{
		{name: "national phone", req: playerRequest{Name: " Ana ", Phone: national}, wantPhone: e164},
		{name: "no contact details", req: playerRequest{Name: "Ana"}},
		{name: "missing name", req: playerRequest{Name: "  "}, wantField: "name"},
		{name: "bad email", req: playerRequest{Name: "Ana", Email: "ana@"}, wantField: "email"},
		{name: "bad phone", req: playerRequest{Name: "Ana", Phone: "12"}, wantField: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := parsePlayerRequest(tt.req, "RS")
			if tt.wantField != "" {
				var fieldErr apiutil.FieldError
				if !errors.As(err, &fieldErr) || fieldErr.Field != tt.wantField {
					t.Fatalf("error = %v, want field error on %s", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePlayerRequest() error = %v", err)
			}
			if input.Name != "Ana" {
				t.Fatalf("name = %q, want trimmed", input.Name)
			}
			if input.Phone.String != tt.wantPhone || input.Phone.Valid != (tt.wantPhone != "") {
				t.Fatalf("phone = %+v, want %q", input.Phone, tt.wantPhone)
			}
		})
	}
}

func TestHandlePlayerCreateAndUpdate(t *testing.T) {
	setupPlayersTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/players", strings.NewReader(`{"name":"Marko","email":"marko@example.com"}`))
	rec := httptest.NewRecorder()
	HandlePlayerCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created playerView
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/admin/players/"+created.ID, strings.NewReader(`{"name":"Marko P."}`))
	req.SetPathValue("id", created.ID)
	rec = httptest.NewRecorder()
	HandlePlayerUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated playerView
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Name != "Marko P." || updated.Email != "" {
		t.Fatalf("updated = %+v, want new name and cleared email", updated)
	}
}

func TestHandlePlayerTeams(t *testing.T) {
	q := setupPlayersTest(t)
	ctx := context.Background()

	player, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{ID: "0f9c2a5e-6c1d-4f53-a0a4-6d1f1b2c3d4e", Name: "Ana"})
	if err != nil {
		t.Fatalf("CreatePlayer() error = %v", err)
	}
	if _, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{ID: "team-1", Name: "Thunder Smash", GroupName: "A", Active: true}); err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if err := q.AddTeamPlayer(ctx, dbgen.AddTeamPlayerParams{ID: "tp-1", TeamID: "team-1", PlayerID: player.ID, Role: "reserve"}); err != nil {
		t.Fatalf("AddTeamPlayer() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/players/"+player.ID+"/teams", nil)
	req.SetPathValue("id", player.ID)
	rec := httptest.NewRecorder()
	HandlePlayerTeams(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Teams []playerTeamView `json:"teams"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Teams) != 1 || resp.Teams[0].Name != "Thunder Smash" || resp.Teams[0].Role != "reserve" {
		t.Fatalf("teams = %+v", resp.Teams)
	}
}

func TestHandlePlayerDetailNotFound(t *testing.T) {
	setupPlayersTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/players/x", nil)
	req.SetPathValue("id", "0f9c2a5e-6c1d-4f53-a0a4-000000000000")
	rec := httptest.NewRecorder()
	HandlePlayerDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
