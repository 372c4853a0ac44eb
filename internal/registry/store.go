// Package registry holds the authoritative in-memory state of all
// activities and enforces enrollment invariants atomically per call.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mergington-high/activities-api/internal/domain"
)

// Store is the roster registry. All access goes through the mutex so each
// enroll/withdraw is a single check-then-mutate critical section and list
// calls observe a consistent snapshot.
type Store struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	names      []string // catalog insertion order
}

// NewStore seeds a store from the fixed catalog. The catalog is validated
// up front; a store is never constructed in a state violating the roster
// invariants.
func NewStore(catalog []domain.Activity) (*Store, error) {
	s := &Store{
		activities: make(map[string]*domain.Activity, len(catalog)),
		names:      make([]string, 0, len(catalog)),
	}

	for i := range catalog {
		a := catalog[i]
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", a.Name, err)
		}
		if _, exists := s.activities[a.Name]; exists {
			return nil, fmt.Errorf("catalog entry %q: %w", a.Name, domain.ErrDuplicateActivity)
		}
		copied := a.Clone()
		s.activities[a.Name] = &copied
		s.names = append(s.names, a.Name)
	}

	return s, nil
}

// Snapshot returns a deep copy of every activity keyed by name.
func (s *Store) Snapshot() map[string]domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out
}

// Names returns activity names in catalog insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns a copy of a single activity.
func (s *Store) Get(name string) (domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Len returns the number of activities in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Enroll adds a student to an activity roster. Preconditions are checked
// in order: the activity exists, the student is not already enrolled, and
// the roster is below capacity. The mutation is all-or-nothing.
func (s *Store) Enroll(activity, student string) (domain.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return domain.Confirmation{}, domain.ErrActivityNotFound
	}
	if a.HasParticipant(student) {
		return domain.Confirmation{}, domain.ErrAlreadyEnrolled
	}
	if a.IsFull() {
		return domain.Confirmation{}, domain.ErrActivityFull
	}

	a.Participants = append(a.Participants, student)
	return domain.Confirmation{Activity: activity, Student: student}, nil
}

// Withdraw removes a student from an activity roster. Preconditions are
// checked in order: the activity exists and the student is enrolled.
// Removal preserves the order of the remaining roster.
func (s *Store) Withdraw(activity, student string) (domain.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return domain.Confirmation{}, domain.ErrActivityNotFound
	}
	idx := slices.Index(a.Participants, student)
	if idx < 0 {
		return domain.Confirmation{}, domain.ErrNotEnrolled
	}

	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return domain.Confirmation{Activity: activity, Student: student}, nil
}
