package manager

import (
	"testing"

	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/profilestore"
	"github.com/gamepadhid/core/pkg/models"
)

func newTestManager(t *testing.T) (*Manager, *hardware.FakeSource, *emitter.FakeEmitter) {
	t.Helper()
	source := hardware.NewFakeSource()
	emit := emitter.NewFakeEmitter()
	store := profilestore.NewMemoryStore()
	mgr, err := New(source, emit, store, config.DefaultTunables(), &logger.MockLogger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return mgr, source, emit
}

func TestStartThenStartAgainFailsAlreadyRunning(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	if err := mgr.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer mgr.Stop()

	err := mgr.Start()
	if err == nil {
		t.Fatalf("expected second Start to fail")
	}
	gerr, ok := err.(*gamepadhiderr.Error)
	if !ok || gerr.Kind != gamepadhiderr.KindAlreadyRunning {
		t.Fatalf("expected KindAlreadyRunning, got %v", err)
	}
}

func TestStopBeforeStartIsNoOp(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	if err := mgr.Stop(); err != nil {
		t.Fatalf("expected Stop before Start to be a no-op, got %v", err)
	}
}

func TestStopReleasesRunningFlag(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	if err := mgr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := mgr.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if mgr.IsRunning() {
		t.Fatalf("expected IsRunning false after Stop")
	}
	if err := mgr.Start(); err != nil {
		t.Fatalf("expected Start to succeed again after Stop, got %v", err)
	}
	mgr.Stop()
}

func TestGetProfilesIncludesSeededDefault(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	profiles := mgr.GetProfiles()
	if len(profiles) != 1 || profiles[0].Name != models.DefaultProfileName {
		t.Fatalf("expected only the Default profile, got %+v", profiles)
	}
}

func TestSaveProfileAddsToCache(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	p := models.Profile{Name: "custom", Sensitivity: 1.5, Acceleration: 1.0, Scroll: models.ScrollSettings{Speed: 1}}
	if err := mgr.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	profiles := mgr.GetProfiles()
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles after save, got %d", len(profiles))
	}
}

func TestDeleteDefaultProfileIsProtected(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	err := mgr.DeleteProfile(models.DefaultProfileName)
	if err == nil {
		t.Fatalf("expected deleting Default profile to fail")
	}
	gerr, ok := err.(*gamepadhiderr.Error)
	if !ok || gerr.Kind != gamepadhiderr.KindProtectedProfile {
		t.Fatalf("expected KindProtectedProfile, got %v", err)
	}
}

func TestDeleteActiveProfileFallsBackToDefault(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	p := models.Profile{Name: "custom", Sensitivity: 1.0, Acceleration: 1.0, Scroll: models.ScrollSettings{Speed: 1}}
	if err := mgr.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if err := mgr.SetActiveProfile("custom"); err != nil {
		t.Fatalf("SetActiveProfile: %v", err)
	}
	if err := mgr.DeleteProfile("custom"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if mgr.GetActiveProfileName() != models.DefaultProfileName {
		t.Fatalf("expected fallback to Default, got %s", mgr.GetActiveProfileName())
	}
}

func TestSetActiveProfileUnknownNameFails(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	err := mgr.SetActiveProfile("nonexistent")
	if err == nil {
		t.Fatalf("expected error for unknown profile")
	}
	gerr, ok := err.(*gamepadhiderr.Error)
	if !ok || gerr.Kind != gamepadhiderr.KindProfileNotFound {
		t.Fatalf("expected KindProfileNotFound, got %v", err)
	}
}

func TestGetKeybindingsReturnsDefaultBindingsForNormal(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	kbs := mgr.GetKeybindings(models.ModeNormal)
	if len(kbs) == 0 {
		t.Fatalf("expected default Normal bindings to be non-empty")
	}
}

func TestSaveKeybindingsReplacesHotkeyModeAndPersists(t *testing.T) {
	mgr, _, _ := newTestManager(t)

	newBindings := []models.Binding{
		models.NewBinding(
			models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
			models.Action{Kind: models.ActionAppLauncher},
			models.ModeHotkey,
		),
	}
	if err := mgr.SaveKeybindings(models.ModeHotkey, newBindings); err != nil {
		t.Fatalf("SaveKeybindings: %v", err)
	}

	kbs := mgr.GetKeybindings(models.ModeHotkey)
	if len(kbs) != 1 {
		t.Fatalf("expected exactly 1 Hotkey binding after replace, got %d: %+v", len(kbs), kbs)
	}

	profiles := mgr.GetProfiles()
	var found bool
	for _, p := range profiles {
		if p.Name == models.DefaultProfileName {
			found = len(p.HotkeyBindings) == 1
		}
	}
	if !found {
		t.Fatalf("expected Hotkey bindings persisted onto the active profile")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	s := Settings{
		Sensitivity:      2.0,
		DeadZone:         0.2,
		Acceleration:     1.5,
		ScrollSpeed:      3.0,
		ScrollReverseV:   true,
		VibrationEnabled: false,
	}
	if err := mgr.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got := mgr.GetSettings()
	if got.Sensitivity != 2.0 || got.DeadZone != 0.2 || got.ScrollSpeed != 3.0 || !got.ScrollReverseV || got.VibrationEnabled {
		t.Fatalf("expected settings to round-trip, got %+v", got)
	}
}

func TestEnableRecentEventsBufferThenGetRecentEvents(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	mgr.EnableRecentEventsBuffer(16)

	rec, err := mgr.GetRecentEvents()
	if err != nil {
		t.Fatalf("GetRecentEvents: %v", err)
	}
	defer rec.Release()
}

func TestGetRecentEventsFailsWithoutEnabling(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	_, err := mgr.GetRecentEvents()
	if err == nil {
		t.Fatalf("expected error when recent events buffer was never enabled")
	}
}
