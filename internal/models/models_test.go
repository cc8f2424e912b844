package models

import (
	"reflect"
	"testing"

	"github.com/nyaruka/phonenumbers"
)

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name    string
		entries []RosterEntry
		wantErr bool
	}{
		{
			name: "two main players",
			entries: []RosterEntry{
				{Name: "Marko", Role: RoleMain},
				{Name: "Stefan", Role: RoleMain},
			},
		},
		{
			name: "two main and reserve by id",
			entries: []RosterEntry{
				{PlayerID: "p1", Role: RoleMain},
				{PlayerID: "p2", Role: RoleMain},
				{Name: "Luka", Role: RoleReserve},
			},
		},
		{
			name:    "single player",
			entries: []RosterEntry{{Name: "Solo", Role: RoleMain}},
			wantErr: true,
		},
		{
			name: "four players",
			entries: []RosterEntry{
				{Name: "A", Role: RoleMain},
				{Name: "B", Role: RoleMain},
				{Name: "C", Role: RoleMain},
				{Name: "D", Role: RoleReserve},
			},
			wantErr: true,
		},
		{
			name: "only one main",
			entries: []RosterEntry{
				{Name: "A", Role: RoleMain},
				{Name: "B", Role: RoleReserve},
			},
			wantErr: true,
		},
		{
			name: "two reserves",
			entries: []RosterEntry{
				{Name: "A", Role: RoleMain},
				{Name: "B", Role: RoleReserve},
				{Name: "C", Role: RoleReserve},
			},
			wantErr: true,
		},
		{
			name: "id and name together",
			entries: []RosterEntry{
				{PlayerID: "p1", Name: "A", Role: RoleMain},
				{Name: "B", Role: RoleMain},
			},
			wantErr: true,
		},
		{
			name: "neither id nor name",
			entries: []RosterEntry{
				{Role: RoleMain},
				{Name: "B", Role: RoleMain},
			},
			wantErr: true,
		},
		{
			name: "duplicate player id",
			entries: []RosterEntry{
				{PlayerID: "p1", Role: RoleMain},
				{PlayerID: "p1", Role: RoleMain},
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			entries: []RosterEntry{
				{Name: "A", Role: RoleMain},
				{Name: "B", Role: "captain"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoster(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRoster() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateResultSets(t *testing.T) {
	tests := []struct {
		name    string
		sets    []SetScore
		wantErr bool
	}{
		{name: "straight sets", sets: []SetScore{{1, 6, 4}, {2, 6, 3}}},
		{name: "three sets", sets: []SetScore{{1, 6, 7}, {2, 6, 4}, {3, 10, 8}}},
		{name: "single set", sets: []SetScore{{1, 6, 0}}},
		{name: "empty", sets: nil, wantErr: true},
		{name: "four sets", sets: []SetScore{{1, 6, 4}, {2, 4, 6}, {3, 6, 4}, {3, 6, 4}}, wantErr: true},
		{name: "duplicate set number", sets: []SetScore{{1, 6, 4}, {1, 6, 3}}, wantErr: true},
		{name: "set number out of range", sets: []SetScore{{4, 6, 4}}, wantErr: true},
		{name: "negative games", sets: []SetScore{{1, -1, 6}}, wantErr: true},
		{name: "zero zero set", sets: []SetScore{{1, 0, 0}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResultSets(tt.sets)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateResultSets() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitSetsOrdersBySetNumber(t *testing.T) {
	home, away := SplitSets([]SetScore{
		{SetNumber: 3, HomeGames: 10, AwayGames: 8},
		{SetNumber: 1, HomeGames: 6, AwayGames: 7},
		{SetNumber: 2, HomeGames: 6, AwayGames: 4},
	})

	if want := []int{6, 6, 10}; !reflect.DeepEqual(home, want) {
		t.Fatalf("home = %v, want %v", home, want)
	}
	if want := []int{7, 4, 8}; !reflect.DeepEqual(away, want) {
		t.Fatalf("away = %v, want %v", away, want)
	}
}

func TestParseGroup(t *testing.T) {
	if g, err := ParseGroup(" a "); err != nil || g != GroupA {
		t.Fatalf("ParseGroup(a) = %q, %v", g, err)
	}
	if _, err := ParseGroup("C"); err == nil {
		t.Fatal("expected error for group C")
	}
}

func TestNormalizePhone(t *testing.T) {
	example := phonenumbers.GetExampleNumber("RS")
	if example == nil {
		t.Fatal("expected example number for RS")
	}
	national := phonenumbers.Format(example, phonenumbers.NATIONAL)
	want := phonenumbers.Format(example, phonenumbers.E164)

	got, err := NormalizePhone(national, "rs")
	if err != nil {
		t.Fatalf("NormalizePhone(%q) error = %v", national, err)
	}
	if got != want {
		t.Fatalf("NormalizePhone(%q) = %q, want %q", national, got, want)
	}

	got, err = NormalizePhone("", "RS")
	if err != nil || got != "" {
		t.Fatalf("NormalizePhone(blank) = %q, %v", got, err)
	}

	if _, err := NormalizePhone("not a phone", "RS"); err == nil {
		t.Fatal("expected error for invalid phone")
	}
}
