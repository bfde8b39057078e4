package profilestore

import (
	"os"
	"testing"

	"github.com/gamepadhid/core/pkg/models"
)

func TestJSONFileStoreSeedsDefault(t *testing.T) {
	dir, err := os.MkdirTemp("", "profilestore-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewJSONFileStore(dir)
	if err != nil {
		t.Fatalf("NewJSONFileStore: %v", err)
	}

	profiles, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != models.DefaultProfileName {
		t.Fatalf("expected seeded Default profile, got %+v", profiles)
	}

	active, err := store.ActiveName()
	if err != nil {
		t.Fatalf("ActiveName: %v", err)
	}
	if active != models.DefaultProfileName {
		t.Fatalf("expected Default active, got %q", active)
	}
}

func TestJSONFileStoreSaveGetRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "profilestore-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewJSONFileStore(dir)
	if err != nil {
		t.Fatalf("NewJSONFileStore: %v", err)
	}

	p := models.DefaultProfile()
	p.Name = "Racing"
	p.Sensitivity = 2.5
	p.DeadZone = 10 // out of range, should clamp
	p.HotkeyBindings = []models.Binding{
		models.NewBinding(models.SingleButtonPattern(models.ButtonSouth, models.TimingTap), models.NoOpAction, models.ModeHotkey),
	}

	if err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Get("Racing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected profile to be found")
	}
	if got.Sensitivity != 2.5 {
		t.Fatalf("expected sensitivity 2.5, got %v", got.Sensitivity)
	}
	if got.DeadZone != 0.3 {
		t.Fatalf("expected deadZone clamped to 0.3, got %v", got.DeadZone)
	}
	if len(got.HotkeyBindings) != 1 {
		t.Fatalf("expected 1 hotkey binding round-tripped, got %d", len(got.HotkeyBindings))
	}
}

func TestJSONFileStoreDeleteProtectsDefault(t *testing.T) {
	dir, err := os.MkdirTemp("", "profilestore-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewJSONFileStore(dir)
	if err != nil {
		t.Fatalf("NewJSONFileStore: %v", err)
	}

	if err := store.Delete(models.DefaultProfileName); err == nil {
		t.Fatalf("expected error deleting Default profile")
	}
}
