// Package dto defines the wire shapes of the activities API.
package dto

import (
	"github.com/mergington-high/activities-api/internal/domain"
)

// ActivityView is the representation of one activity in the
// GET /activities response.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// NewActivityView converts a domain activity to its wire shape.
func NewActivityView(a domain.Activity) ActivityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// NewActivityMap converts a registry snapshot to the response object
// keyed by activity name.
func NewActivityMap(snapshot map[string]domain.Activity) map[string]ActivityView {
	out := make(map[string]ActivityView, len(snapshot))
	for name, a := range snapshot {
		out[name] = NewActivityView(a)
	}
	return out
}
