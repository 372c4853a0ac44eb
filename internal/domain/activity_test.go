package domain

import (
	"errors"
	"testing"
)

func TestIsFull(t *testing.T) {
	a := Activity{MaxParticipants: 2, Participants: []string{"a@mergington.edu"}}
	if a.IsFull() {
		t.Error("IsFull() = true with an open seat")
	}
	a.Participants = append(a.Participants, "b@mergington.edu")
	if !a.IsFull() {
		t.Error("IsFull() = false at capacity")
	}
}

func TestHasParticipant(t *testing.T) {
	a := Activity{Participants: []string{"a@mergington.edu"}}
	if !a.HasParticipant("a@mergington.edu") {
		t.Error("HasParticipant() = false for enrolled student")
	}
	if a.HasParticipant("A@mergington.edu") {
		t.Error("HasParticipant() matched a different case; emails are opaque strings")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Activity{Name: "Chess Club", Participants: []string{"a@mergington.edu"}}
	c := a.Clone()
	c.Participants[0] = "mutated@mergington.edu"

	if a.Participants[0] != "a@mergington.edu" {
		t.Error("Clone() shares the participants slice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		wantErr  error
	}{
		{"valid", Activity{Name: "Chess Club", MaxParticipants: 12}, nil},
		{"valid at capacity", Activity{Name: "Tiny", MaxParticipants: 1, Participants: []string{"a@mergington.edu"}}, nil},
		{"empty name", Activity{MaxParticipants: 5}, ErrEmptyName},
		{"zero capacity", Activity{Name: "Zero"}, ErrInvalidCapacity},
		{"negative capacity", Activity{Name: "Neg", MaxParticipants: -1}, ErrInvalidCapacity},
		{"roster overflow", Activity{Name: "Over", MaxParticipants: 1, Participants: []string{"a@mergington.edu", "b@mergington.edu"}}, ErrRosterOverflow},
		{"duplicate student", Activity{Name: "Dup", MaxParticipants: 5, Participants: []string{"a@mergington.edu", "a@mergington.edu"}}, ErrDuplicateStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.activity.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
