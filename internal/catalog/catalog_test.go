package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mergington-high/activities-api/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	activities := Default()

	if len(activities) != 9 {
		t.Fatalf("Default() returned %d activities, want 9", len(activities))
	}

	for _, a := range activities {
		if err := a.Validate(); err != nil {
			t.Errorf("default catalog entry %q invalid: %v", a.Name, err)
		}
	}

	var chess domain.Activity
	var found bool
	for _, a := range activities {
		if a.Name == "Chess Club" {
			chess, found = a, true
			break
		}
	}
	if !found {
		t.Fatal("default catalog missing Chess Club")
	}
	if chess.MaxParticipants != 12 {
		t.Errorf("Chess Club capacity = %d, want 12", chess.MaxParticipants)
	}
	if len(chess.Participants) != 2 || chess.Participants[0] != "michael@mergington.edu" {
		t.Errorf("Chess Club roster = %v, want seeded students", chess.Participants)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	activities, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(activities) != len(Default()) {
		t.Errorf("Load(\"\") returned %d activities, want %d", len(activities), len(Default()))
	}
}

func TestLoadFile(t *testing.T) {
	path := writeCatalog(t, `
activities:
  - name: Robotics Club
    description: Build and program robots
    schedule: Mondays, 3:30 PM - 5:00 PM
    max_participants: 8
    participants:
      - lucas@mergington.edu
  - name: Choir
    description: Sing in the school choir
    schedule: Wednesdays, 3:30 PM - 4:30 PM
    max_participants: 25
`)

	activities, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("LoadFile() returned %d activities, want 2", len(activities))
	}

	robotics := activities[0]
	if robotics.Name != "Robotics Club" || robotics.MaxParticipants != 8 {
		t.Errorf("first entry = %+v", robotics)
	}
	if len(robotics.Participants) != 1 || robotics.Participants[0] != "lucas@mergington.edu" {
		t.Errorf("Robotics Club roster = %v", robotics.Participants)
	}
	if len(activities[1].Participants) != 0 {
		t.Errorf("Choir roster = %v, want empty", activities[1].Participants)
	}
}

func TestLoadFileInvalidEntry(t *testing.T) {
	path := writeCatalog(t, `
activities:
  - name: Broken Club
    max_participants: 0
`)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with zero capacity, want error")
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeCatalog(t, "other_key: true\n")

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with no activities key, want error")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() on missing file, want error")
	}
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	return path
}
