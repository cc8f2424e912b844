package provider

import (
	"context"
	"database/sql"
	"testing"
	"time"

	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/models"
	"github.com/districtpadel/league/internal/testutil"
)

func TestDatabaseProviderAssemblesRostersAndSets(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	q := database.Queries

	for _, team := range []dbgen.CreateTeamParams{
		{ID: "t1", Name: "Thunder Smash", GroupName: "A", Active: true},
		{ID: "t2", Name: "Net Warriors", GroupName: "A", Active: true},
	} {
		if _, err := q.CreateTeam(ctx, team); err != nil {
			t.Fatalf("CreateTeam() error = %v", err)
		}
	}
	if _, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{ID: "p1", Name: "Marko"}); err != nil {
		t.Fatalf("CreatePlayer() error = %v", err)
	}
	if err := q.AddTeamPlayer(ctx, dbgen.AddTeamPlayerParams{ID: "tp1", TeamID: "t1", PlayerID: "p1", Role: "main"}); err != nil {
		t.Fatalf("AddTeamPlayer() error = %v", err)
	}

	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	if _, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		ID:         "m1",
		MatchDate:  date,
		GroupName:  "A",
		Round:      sql.NullString{String: "1", Valid: true},
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		Status:     string(models.MatchPlayed),
	}); err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	// Insert out of order; the provider must return sets by set number.
	for _, set := range []dbgen.CreateMatchSetParams{
		{ID: "s3", MatchID: "m1", SetNumber: 3, HomeGames: 7, AwayGames: 5},
		{ID: "s1", MatchID: "m1", SetNumber: 1, HomeGames: 6, AwayGames: 3},
		{ID: "s2", MatchID: "m1", SetNumber: 2, HomeGames: 4, AwayGames: 6},
	} {
		if err := q.CreateMatchSet(ctx, set); err != nil {
			t.Fatalf("CreateMatchSet() error = %v", err)
		}
	}

	p := NewDatabase(q)
	teams, err := p.ListTeams(ctx)
	if err != nil {
		t.Fatalf("ListTeams() error = %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("len(teams) = %d, want 2", len(teams))
	}
	var thunder models.Team
	for _, team := range teams {
		if team.ID == "t1" {
			thunder = team
		}
	}
	if len(thunder.Players) != 1 || thunder.Players[0].Name != "Marko" {
		t.Fatalf("roster = %+v, want Marko", thunder.Players)
	}

	matches, err := p.ListMatches(ctx)
	if err != nil {
		t.Fatalf("ListMatches() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	got := matches[0]
	if !got.Date.Equal(date) || got.Round != "1" {
		t.Fatalf("match = %+v", got)
	}
	wantHome := []int{6, 4, 7}
	wantAway := []int{3, 6, 5}
	for i := range wantHome {
		if got.HomeSets[i] != wantHome[i] || got.AwaySets[i] != wantAway[i] {
			t.Fatalf("sets = %v/%v, want %v/%v", got.HomeSets, got.AwaySets, wantHome, wantAway)
		}
	}
}

func TestRostersFromDB(t *testing.T) {
	rosters := RostersFromDB([]dbgen.ListTeamPlayersRow{
		{TeamID: "t1", PlayerID: "p1", PlayerName: "Ana", Role: "main"},
		{TeamID: "t2", PlayerID: "p3", PlayerName: "Jovana", Role: "main"},
		{TeamID: "t1", PlayerID: "p2", PlayerName: "Marko", Role: "reserve"},
	})

	if len(rosters) != 2 {
		t.Fatalf("rosters = %d teams, want 2", len(rosters))
	}
	t1 := rosters["t1"]
	if len(t1) != 2 || t1[0].Name != "Ana" || t1[1].ID != "p2" || t1[1].Role != models.RoleReserve {
		t.Fatalf("t1 roster = %+v", t1)
	}
	if got := rosters["t3"]; got != nil {
		t.Fatalf("unknown team roster = %+v, want nil", got)
	}
}
