package profilestore

import (
	"testing"

	"github.com/gamepadhid/core/pkg/models"
)

func TestMemoryStoreSeedsDefault(t *testing.T) {
	s := NewMemoryStore()

	profiles, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != models.DefaultProfileName {
		t.Fatalf("expected seeded Default profile, got %+v", profiles)
	}
}

func TestMemoryStoreSetActiveRejectsUnknown(t *testing.T) {
	s := NewMemoryStore()

	if err := s.SetActiveName("Ghost"); err == nil {
		t.Fatalf("expected error activating unknown profile")
	}
}

func TestMemoryStoreDeleteFallsBackToDefault(t *testing.T) {
	s := NewMemoryStore()

	p := models.DefaultProfile()
	p.Name = "Racing"
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.SetActiveName("Racing"); err != nil {
		t.Fatalf("SetActiveName: %v", err)
	}
	if err := s.Delete("Racing"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	active, err := s.ActiveName()
	if err != nil {
		t.Fatalf("ActiveName: %v", err)
	}
	if active != models.DefaultProfileName {
		t.Fatalf("expected fallback to Default, got %q", active)
	}
}
