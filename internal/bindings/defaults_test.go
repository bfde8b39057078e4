package bindings

import (
	"testing"

	"github.com/gamepadhid/core/pkg/models"
)

func TestBuildDefaultRegistriesNonEmpty(t *testing.T) {
	regs := BuildDefaultRegistries()
	for _, mode := range []models.Mode{models.ModeNormal, models.ModeMotion, models.ModeHotkey} {
		reg, ok := regs[mode]
		if !ok {
			t.Fatalf("missing registry for mode %v", mode)
		}
		if reg.IsEmpty() {
			t.Fatalf("expected default bindings for mode %v, got none", mode)
		}
	}
}

func TestNormalDefaultSouthTapIsLeftClick(t *testing.T) {
	regs := BuildDefaultRegistries()
	b, ok := regs[models.ModeNormal].Get(models.SingleButtonPattern(models.ButtonSouth, models.TimingTap))
	if !ok {
		t.Fatalf("expected South Tap binding in Normal mode")
	}
	if b.Action.Kind != models.ActionMouseClick {
		t.Fatalf("expected MouseClick, got %v", b.Action.Kind)
	}
}

func TestMotionChordReturnsToNormal(t *testing.T) {
	regs := BuildDefaultRegistries()
	b, ok := regs[models.ModeMotion].Get(models.ChordPattern(models.ButtonRB, models.ButtonNorth))
	if !ok {
		t.Fatalf("expected RB+North chord binding in Motion mode")
	}
	if b.Action.Kind != models.ActionSwitchMode || b.Action.Mode != models.ModeNormal {
		t.Fatalf("expected SwitchMode(Normal), got %+v", b.Action)
	}
}

func TestHotkeyChordReturnsToNormal(t *testing.T) {
	regs := BuildDefaultRegistries()
	b, ok := regs[models.ModeHotkey].Get(models.ChordPattern(models.ButtonLB, models.ButtonNorth))
	if !ok {
		t.Fatalf("expected LB+North chord binding in Hotkey mode")
	}
	if b.Action.Kind != models.ActionSwitchMode || b.Action.Mode != models.ModeNormal {
		t.Fatalf("expected SwitchMode(Normal), got %+v", b.Action)
	}
}

func TestApplyProfileOverlayAddsHotkeyBindings(t *testing.T) {
	regs := BuildDefaultRegistries()
	before := regs[models.ModeHotkey].Len()

	profile := models.Profile{
		Name: "custom",
		HotkeyBindings: []models.Binding{
			models.NewBinding(
				models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
				models.Action{Kind: models.ActionAppLauncher},
				models.ModeNormal, // overwritten by ApplyProfileOverlay
			),
		},
	}
	ApplyProfileOverlay(regs[models.ModeHotkey], profile)

	if got := regs[models.ModeHotkey].Len(); got != before+1 {
		t.Fatalf("expected %d bindings after overlay, got %d", before+1, got)
	}
	b, ok := regs[models.ModeHotkey].Get(models.SingleButtonPattern(models.ButtonSouth, models.TimingTap))
	if !ok {
		t.Fatalf("expected overlay binding to be present")
	}
	if b.Mode != models.ModeHotkey {
		t.Fatalf("expected overlay binding mode to be forced to Hotkey, got %v", b.Mode)
	}
}
