package domain

import (
	"errors"
	"slices"
)

// Activity represents an extracurricular offering with a fixed-capacity roster.
// The name is the registry key; it is opaque, case- and whitespace-sensitive.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Enrollment errors
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadyEnrolled  = errors.New("student already signed up for this activity")
	ErrNotEnrolled      = errors.New("student not signed up for this activity")
	ErrActivityFull     = errors.New("activity is full")
)

// Seed errors
var (
	ErrDuplicateActivity = errors.New("duplicate activity name in catalog")
	ErrInvalidCapacity   = errors.New("activity capacity must be positive")
	ErrRosterOverflow    = errors.New("seeded roster exceeds activity capacity")
	ErrDuplicateStudent  = errors.New("duplicate student in seeded roster")
	ErrEmptyName         = errors.New("activity name must not be empty")
)

// IsFull reports whether the roster has reached capacity.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether the student is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy so callers can never mutate registry state
// through a returned record.
func (a *Activity) Clone() Activity {
	copied := *a
	copied.Participants = make([]string, len(a.Participants))
	copy(copied.Participants, a.Participants)
	return copied
}

// Validate checks the invariants a seeded activity must satisfy.
func (a *Activity) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if a.MaxParticipants <= 0 {
		return ErrInvalidCapacity
	}
	if len(a.Participants) > a.MaxParticipants {
		return ErrRosterOverflow
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, p := range a.Participants {
		if _, dup := seen[p]; dup {
			return ErrDuplicateStudent
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Confirmation is returned by successful enroll/withdraw operations so the
// boundary layer can compose its response message.
type Confirmation struct {
	Activity string
	Student  string
}
