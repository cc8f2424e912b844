package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/email"
	"github.com/districtpadel/league/internal/testutil"
)

type recordingSender struct {
	mu       sync.Mutex
	subjects []string
	bodies   []string
}

func (r *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	return r.SendFrom(ctx, recipient, subject, body, "")
}

func (r *recordingSender) SendFrom(ctx context.Context, recipient, subject, body, sender string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, body)
	return nil
}

func TestServiceAddJobValidation(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })

	if _, err := svc.AddJob(" ", "0 9 * * *", func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("AddJob(empty name) error = %v, want ErrEmptyJobName", err)
	}
	if _, err := svc.AddJob("job", "", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("AddJob(empty cron) error = %v, want ErrEmptyCronExpr", err)
	}
	if _, err := svc.AddJob("job", "not a cron", func() {}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}

	job, err := svc.AddJob("job", "0 9 * * *", func() {})
	if err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if job.Name() != "job" {
		t.Fatalf("job name = %q, want job", job.Name())
	}
}

func TestNilServiceReportsNotInitialized(t *testing.T) {
	var svc *Service
	if err := svc.Stop(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Stop() error = %v, want ErrNotInitialized", err)
	}
	if _, err := svc.AddJob("job", "0 9 * * *", func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AddJob() error = %v, want ErrNotInitialized", err)
	}
}

func TestOverdueResultsJobListsPastScheduledMatches(t *testing.T) {
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

	now := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	matches := []dbgen.CreateMatchParams{
		{ID: "overdue", MatchDate: now.AddDate(0, 0, -3), GroupName: "A", Round: sql.NullString{String: "2", Valid: true}, HomeTeamID: "t1", AwayTeamID: "t2", Status: "scheduled"},
		{ID: "today", MatchDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), GroupName: "A", HomeTeamID: "t2", AwayTeamID: "t1", Status: "scheduled"},
		{ID: "played", MatchDate: now.AddDate(0, 0, -10), GroupName: "A", HomeTeamID: "t2", AwayTeamID: "t1", Status: "played"},
	}
	for _, match := range matches {
		if _, err := q.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch(%s) error = %v", match.ID, err)
		}
	}

	sender := &recordingSender{}
	job := NewOverdueResultsJob(q, email.NewNotifier(sender, "league@example.com", []string{"admin@example.com"}), "District Padel League")
	job.now = func() time.Time { return now }

	count, err := job.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("Run() count = %d, want 1", count)
	}
	if len(sender.subjects) != 1 || sender.subjects[0] != "District Padel League: 1 match result missing" {
		t.Fatalf("subjects = %v", sender.subjects)
	}
	if !strings.Contains(sender.bodies[0], "Thunder Smash vs Net Warriors (group A, round 2)") {
		t.Fatalf("body = %q, want overdue match line", sender.bodies[0])
	}
}

func TestOverdueResultsJobSkipsWithoutNotifier(t *testing.T) {
	database := testutil.NewTestDB(t)
	job := NewOverdueResultsJob(database.Queries, nil, "League")

	count, err := job.Run(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("Run() = (%d, %v), want (0, nil)", count, err)
	}
}

func TestOverdueResultsJobNoMatchesSendsNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	sender := &recordingSender{}
	job := NewOverdueResultsJob(database.Queries, email.NewNotifier(sender, "league@example.com", []string{"admin@example.com"}), "League")

	count, err := job.Run(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("Run() = (%d, %v), want (0, nil)", count, err)
	}
	if len(sender.subjects) != 0 {
		t.Fatalf("sent %d emails, want 0", len(sender.subjects))
	}
}
