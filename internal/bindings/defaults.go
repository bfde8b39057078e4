// Package bindings seeds the three per-mode Binding Registries with the
// built-in default bindings every fresh install starts with, before any
// profile-defined overlay is applied.
package bindings

import (
	"github.com/gamepadhid/core/internal/registry"
	"github.com/gamepadhid/core/pkg/models"
)

// BuildDefaultRegistries returns one populated Registry per Mode, per the
// fixed default-binding table: Normal's everyday mouse/keyboard/media
// layer, Motion's precision pointer layer, and Hotkey's escape hatch. No
// profile overlay is included; ApplyProfileOverlay adds that separately.
func BuildDefaultRegistries() map[models.Mode]*registry.Registry {
	return map[models.Mode]*registry.Registry{
		models.ModeNormal: buildNormal(),
		models.ModeMotion: buildMotion(),
		models.ModeHotkey: buildHotkey(),
	}
}

func buildNormal() *registry.Registry {
	r := registry.New()

	add := func(pattern models.InputPattern, action models.Action, desc string) {
		r.Add(models.NewBinding(pattern, action, models.ModeNormal).WithDescription(desc))
	}

	add(models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, "Left click")
	add(models.SingleButtonPattern(models.ButtonEast, models.TimingTap),
		models.Action{Kind: models.ActionKeyPress, Key: "escape"}, "Escape")
	add(models.SingleButtonPattern(models.ButtonWest, models.TimingTap),
		models.Action{Kind: models.ActionMouseRightClick}, "Right click")
	add(models.SingleButtonPattern(models.ButtonNorth, models.TimingTap),
		models.Action{Kind: models.ActionAppLauncher}, "App launcher")
	add(models.SingleButtonPattern(models.ButtonNorth, models.TimingHold),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeHotkey}, "Enter Hotkey mode")
	add(models.SingleButtonPattern(models.ButtonDPadUp, models.TimingTap),
		models.Action{Kind: models.ActionVolumeUp, Amount: 10}, "Volume up")
	add(models.SingleButtonPattern(models.ButtonDPadDown, models.TimingTap),
		models.Action{Kind: models.ActionVolumeDown, Amount: 10}, "Volume down")
	add(models.ModifiedButtonPattern(models.ButtonDPadLeft, models.ModifierAlt, models.TimingTap),
		models.Action{Kind: models.ActionAppPrevious}, "Previous app")
	add(models.ModifiedButtonPattern(models.ButtonDPadRight, models.ModifierAlt, models.TimingTap),
		models.Action{Kind: models.ActionAppNext}, "Next app")
	add(models.SingleButtonPattern(models.ButtonLB, models.TimingHold),
		models.Action{Kind: models.ActionAppSwitcher}, "App switcher")
	add(models.ChordPattern(models.ButtonRB, models.ButtonNorth),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeMotion}, "Enter Motion mode")
	add(models.SingleButtonPattern(models.ButtonLT, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, "Left click (trigger)")
	add(models.SingleButtonPattern(models.ButtonRT, models.TimingTap),
		models.Action{Kind: models.ActionMouseRightClick}, "Right click (trigger)")
	add(models.SingleButtonPattern(models.ButtonGuide, models.TimingLongHold),
		models.Action{Kind: models.ActionAppLauncher}, "App launcher (guide)")
	add(models.SingleButtonPattern(models.ButtonLeftStick, models.TimingTap),
		models.Action{Kind: models.ActionScreenshot}, "Screenshot")

	return r
}

func buildMotion() *registry.Registry {
	r := registry.New()

	add := func(pattern models.InputPattern, action models.Action, desc string) {
		r.Add(models.NewBinding(pattern, action, models.ModeMotion).WithDescription(desc))
	}

	add(models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick}, "Left click")
	add(models.SingleButtonPattern(models.ButtonEast, models.TimingTap),
		models.Action{Kind: models.ActionKeyPress, Key: "escape"}, "Escape")
	add(models.SingleButtonPattern(models.ButtonWest, models.TimingTap),
		models.Action{Kind: models.ActionMouseRightClick}, "Right click")
	add(models.SingleButtonPattern(models.ButtonNorth, models.TimingTap),
		models.Action{Kind: models.ActionMouseDoubleClick}, "Double click")

	add(models.SingleButtonPattern(models.ButtonDPadUp, models.TimingTap),
		models.Action{Kind: models.ActionMouseScroll, Vertical: 5}, "Scroll up (precision)")
	add(models.SingleButtonPattern(models.ButtonDPadDown, models.TimingTap),
		models.Action{Kind: models.ActionMouseScroll, Vertical: -5}, "Scroll down (precision)")
	add(models.SingleButtonPattern(models.ButtonDPadLeft, models.TimingTap),
		models.Action{Kind: models.ActionMouseScroll, Horizontal: -5}, "Scroll left (precision)")
	add(models.SingleButtonPattern(models.ButtonDPadRight, models.TimingTap),
		models.Action{Kind: models.ActionMouseScroll, Horizontal: 5}, "Scroll right (precision)")

	// LT Hold engages a drag modifier: approximated within the closed
	// action set as a left click, since the emitter contract has no
	// separate press/release pointer primitive to hold a drag open.
	add(models.SingleButtonPattern(models.ButtonLT, models.TimingHold),
		models.Action{Kind: models.ActionMouseClick}, "Drag (hold)")

	// RT Hold engages slow mode; translateAxes halves sensitivity while
	// RT is held rather than dispatching an Action, since "halve the
	// continuous pointer gain" has no Executor-side representation.
	add(models.SingleButtonPattern(models.ButtonRT, models.TimingHold),
		models.Action{Kind: models.ActionNoOp}, "Slow mode (hold)")

	add(models.ChordPattern(models.ButtonRB, models.ButtonNorth),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeNormal}, "Return to Normal mode")

	return r
}

func buildHotkey() *registry.Registry {
	r := registry.New()

	r.Add(models.NewBinding(
		models.ChordPattern(models.ButtonLB, models.ButtonNorth),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeNormal},
		models.ModeHotkey,
	).WithDescription("Return to Normal mode").WithPriority(75))

	r.Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonEast, models.TimingTap),
		models.Action{Kind: models.ActionKeyPress, Key: "escape"},
		models.ModeHotkey,
	).WithDescription("Escape"))

	// Everything else in Hotkey mode is profile-defined: ApplyProfileOverlay
	// layers the active profile's HotkeyBindings on top of this registry.
	return r
}

// ApplyProfileOverlay adds every binding in profile.HotkeyBindings to the
// Hotkey registry, letting a profile extend (or, by re-using a pattern,
// override) the built-in Hotkey mode bindings. Safe to call repeatedly;
// Registry.Add replaces rather than duplicates.
func ApplyProfileOverlay(hotkey *registry.Registry, profile models.Profile) {
	for _, b := range profile.HotkeyBindings {
		b.Mode = models.ModeHotkey
		hotkey.Add(b)
	}
}
