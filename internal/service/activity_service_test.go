package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mergington-high/activities-api/internal/domain"
	"github.com/mergington-high/activities-api/internal/registry"
)

func newTestService(t *testing.T) ActivityService {
	t.Helper()
	store, err := registry.NewStore([]domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Small Club",
			MaxParticipants: 2,
			Participants:    []string{"a@mergington.edu", "b@mergington.edu"},
		},
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewActivityService(store)
}

func TestListActivities(t *testing.T) {
	svc := newTestService(t)

	activities := svc.ListActivities(context.Background())
	if len(activities) != 2 {
		t.Fatalf("ListActivities() returned %d entries, want 2", len(activities))
	}

	chess, ok := activities["Chess Club"]
	if !ok {
		t.Fatal("ListActivities() missing Chess Club")
	}
	if len(chess.Participants) != 2 {
		t.Errorf("Chess Club roster size = %d, want 2", len(chess.Participants))
	}

	// The returned map is a snapshot; mutating it must not affect the
	// service state.
	chess.Participants[0] = "mutated@mergington.edu"
	again := svc.ListActivities(context.Background())
	if again["Chess Club"].Participants[0] != "michael@mergington.edu" {
		t.Error("snapshot mutation leaked into service state")
	}
}

func TestSignup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conf, err := svc.Signup(ctx, "Chess Club", "new@mergington.edu")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if conf.Activity != "Chess Club" || conf.Student != "new@mergington.edu" {
		t.Errorf("Confirmation = %+v", conf)
	}

	if _, err := svc.Signup(ctx, "Chess Club", "new@mergington.edu"); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Errorf("duplicate Signup() error = %v, want ErrAlreadyEnrolled", err)
	}
	if _, err := svc.Signup(ctx, "Nope", "new@mergington.edu"); !errors.Is(err, domain.ErrActivityNotFound) {
		t.Errorf("unknown activity Signup() error = %v, want ErrActivityNotFound", err)
	}
	if _, err := svc.Signup(ctx, "Small Club", "c@mergington.edu"); !errors.Is(err, domain.ErrActivityFull) {
		t.Errorf("full activity Signup() error = %v, want ErrActivityFull", err)
	}
}

func TestUnregister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	conf, err := svc.Unregister(ctx, "Chess Club", "michael@mergington.edu")
	if err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if conf.Student != "michael@mergington.edu" {
		t.Errorf("Confirmation = %+v", conf)
	}

	if _, err := svc.Unregister(ctx, "Chess Club", "michael@mergington.edu"); !errors.Is(err, domain.ErrNotEnrolled) {
		t.Errorf("repeated Unregister() error = %v, want ErrNotEnrolled", err)
	}
	if _, err := svc.Unregister(ctx, "Nope", "michael@mergington.edu"); !errors.Is(err, domain.ErrActivityNotFound) {
		t.Errorf("unknown activity Unregister() error = %v, want ErrActivityNotFound", err)
	}
}

func TestResultFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrActivityNotFound, "not_found"},
		{domain.ErrAlreadyEnrolled, "already_signed_up"},
		{domain.ErrNotEnrolled, "not_signed_up"},
		{domain.ErrActivityFull, "full"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := resultFor(tt.err); got != tt.want {
			t.Errorf("resultFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
