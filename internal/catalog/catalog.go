// Package catalog provides the fixed set of activities the registry is
// seeded with at process start.
package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mergington-high/activities-api/internal/domain"
)

// entry is the YAML shape of a catalog activity.
type entry struct {
	Name            string   `mapstructure:"name"`
	Description     string   `mapstructure:"description"`
	Schedule        string   `mapstructure:"schedule"`
	MaxParticipants int      `mapstructure:"max_participants"`
	Participants    []string `mapstructure:"participants"`
}

// Load returns the catalog from the given YAML file, or the built-in
// default catalog when path is empty.
func Load(path string) ([]domain.Activity, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a catalog from a YAML file of the form:
//
//	activities:
//	  - name: Chess Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [a@mergington.edu]
func LoadFile(path string) ([]domain.Activity, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []entry
	if err := v.UnmarshalKey("activities", &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no activities", path)
	}

	activities := make([]domain.Activity, 0, len(entries))
	for _, e := range entries {
		a := domain.Activity{
			Name:            e.Name,
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    e.Participants,
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", a.Name, err)
		}
		activities = append(activities, a)
	}

	return activities, nil
}

// Default returns the built-in Mergington High School catalog.
func Default() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and participate in math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}
