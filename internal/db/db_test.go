package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dbgen "github.com/districtpadel/league/internal/db/generated"
)

func TestEnsureForeignKeysEnabledDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "league.db", want: "league.db?_fk=1"},
		{in: "league.db?cache=shared", want: "league.db?cache=shared&_fk=1"},
		{in: "league.db?_fk=0", want: "league.db?_fk=0"},
	}

	for _, tt := range tests {
		if got := ensureForeignKeysEnabledDSN(tt.in); got != tt.want {
			t.Errorf("ensureForeignKeysEnabledDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "league.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	boom := errors.New("boom")
	err = database.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
			ID:        "team-1",
			Name:      "Net Warriors",
			GroupName: "A",
			Active:    true,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx() error = %v, want boom", err)
	}

	teams, err := database.Queries.ListTeams(ctx, dbgen.ListTeamsParams{})
	if err != nil {
		t.Fatalf("ListTeams() error = %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("len(teams) = %d, want 0 after rollback", len(teams))
	}
}

func TestForeignKeysAreEnforced(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "league.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = database.Queries.AddTeamPlayer(context.Background(), dbgen.AddTeamPlayerParams{
		ID:       "tp-1",
		TeamID:   "missing-team",
		PlayerID: "missing-player",
		Role:     "main",
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}
