package standings

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/districtpadel/league/internal/models"
)

func TestTableEscapesTeamNames(t *testing.T) {
	rows := []models.TeamStanding{
		{TeamID: "t1", TeamName: "<Smash & Co>", Group: models.GroupA, Points: 3, Position: 1},
	}

	var buf bytes.Buffer
	if err := Table(rows).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "&lt;Smash &amp; Co&gt;") {
		t.Fatalf("output = %q, want escaped team name", out)
	}
	if !strings.Contains(out, `id="standings-table"`) {
		t.Fatalf("output = %q, want table id", out)
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Table(nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No teams yet.") {
		t.Fatalf("output = %q, want empty message", buf.String())
	}
}

func TestPageMarksSelectedGroup(t *testing.T) {
	data := PageData{
		LeagueName: "District",
		Groups: []GroupOption{
			{Value: "", Label: "All groups"},
			{Value: "B", Label: "Group B", Selected: true},
		},
	}

	var buf bytes.Buffer
	if err := Page(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `<option value="B" selected>Group B</option>`) {
		t.Fatalf("output = %q, want group B selected", buf.String())
	}
}
