package modemgr

import (
	"testing"

	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

func TestNewStartsInNormalMode(t *testing.T) {
	m := New(50, &logger.MockLogger{})
	if m.Current() != models.ModeNormal {
		t.Fatalf("expected initial mode Normal, got %v", m.Current())
	}
}

func TestSwitchChangesCurrentAndPrevious(t *testing.T) {
	m := New(50, &logger.MockLogger{})
	if !m.Switch(models.ModeMotion, 1000) {
		t.Fatalf("expected switch to succeed")
	}
	if m.Current() != models.ModeMotion {
		t.Fatalf("expected current mode Motion, got %v", m.Current())
	}
	if m.Previous() != models.ModeNormal {
		t.Fatalf("expected previous mode Normal, got %v", m.Previous())
	}
}

func TestSwitchToSameModeIsRejected(t *testing.T) {
	m := New(50, &logger.MockLogger{})
	if m.Switch(models.ModeNormal, 1000) {
		t.Fatalf("expected switching to the current mode to be rejected")
	}
}

// Scenario 5: a switch arriving inside the debounce window of the last
// accepted switch is rejected.
func TestSwitchWithinDebounceWindowIsRejected(t *testing.T) {
	m := New(50, &logger.MockLogger{})

	if !m.Switch(models.ModeMotion, 1000) {
		t.Fatalf("expected first switch to succeed")
	}
	if m.Switch(models.ModeHotkey, 1020) {
		t.Fatalf("expected switch inside debounce window to be rejected")
	}
	if m.Current() != models.ModeMotion {
		t.Fatalf("expected mode to remain Motion after rejected switch, got %v", m.Current())
	}

	if !m.Switch(models.ModeHotkey, 1060) {
		t.Fatalf("expected switch past the debounce window to succeed")
	}
	if m.Current() != models.ModeHotkey {
		t.Fatalf("expected mode Hotkey, got %v", m.Current())
	}
}

func TestTransitioningClearedOnlyByClearTransitioning(t *testing.T) {
	m := New(50, &logger.MockLogger{})
	m.Switch(models.ModeMotion, 1000)
	if !m.IsTransitioning() {
		t.Fatalf("expected Transitioning true immediately after a switch")
	}
	m.ClearTransitioning()
	if m.IsTransitioning() {
		t.Fatalf("expected Transitioning false after ClearTransitioning")
	}
}

func TestRevertSwitchesBackToPreviousMode(t *testing.T) {
	m := New(0, &logger.MockLogger{})
	m.Switch(models.ModeMotion, 1000)
	if !m.Revert(2000) {
		t.Fatalf("expected Revert to succeed")
	}
	if m.Current() != models.ModeNormal {
		t.Fatalf("expected Revert to return to Normal, got %v", m.Current())
	}
}

func TestResetToNormalForcesNormal(t *testing.T) {
	m := New(0, &logger.MockLogger{})
	m.Switch(models.ModeHotkey, 1000)
	m.ResetToNormal(2000)
	if m.Current() != models.ModeNormal {
		t.Fatalf("expected ResetToNormal to force Normal mode, got %v", m.Current())
	}
}

func TestTimeInModeMs(t *testing.T) {
	m := New(0, &logger.MockLogger{})
	m.Switch(models.ModeMotion, 1000)
	if got := m.TimeInModeMs(1500); got != 500 {
		t.Fatalf("expected 500ms in mode, got %d", got)
	}
}
