package models

import (
	"fmt"
	"strings"
)

// ActionKind enumerates the closed action taxonomy the Executor dispatches.
// Action is a tagged struct rather than an interface: the set is fixed at
// compile time, so adding a variant is a single exhaustive-switch update
// in the Executor instead of a new type satisfying a dispatch interface.
type ActionKind int

const (
	ActionVolumeUp ActionKind = iota
	ActionVolumeDown
	ActionBrightnessUp
	ActionBrightnessDown
	ActionScreenshot
	ActionScreenRecording

	ActionAppLauncher
	ActionAppPrevious
	ActionAppNext
	ActionAppSwitcher

	ActionWindowSnap
	ActionWindowCycle

	ActionMouseMove
	ActionMousePosition
	ActionMouseClick
	ActionMouseRightClick
	ActionMouseMiddleClick
	ActionMouseDoubleClick
	ActionMouseScroll

	ActionKeyPress
	ActionKeyCombo
	ActionTextInput

	ActionMediaPlayPause
	ActionMediaNext
	ActionMediaPrevious
	ActionMediaStop

	ActionBrowserBack
	ActionBrowserForward
	ActionBrowserReload
	ActionBrowserNewTab
	ActionBrowserCloseTab
	ActionBrowserNextTab
	ActionBrowserPrevTab
	ActionBrowserFind

	ActionSwitchMode
	ActionNoOp
)

// WindowPosition enumerates the WindowSnap target positions.
type WindowPosition int

const (
	WindowTop WindowPosition = iota
	WindowBottom
	WindowLeft
	WindowRight
	WindowTopLeft
	WindowTopRight
	WindowBottomLeft
	WindowBottomRight
	WindowCenter
	WindowMaximize
)

func (w WindowPosition) String() string {
	names := [...]string{"Top", "Bottom", "Left", "Right", "TopLeft", "TopRight",
		"BottomLeft", "BottomRight", "Center", "Maximize"}
	if int(w) < len(names) {
		return names[w]
	}
	return "Unknown"
}

// Action is the single value type carrying every variant's payload; only
// the fields relevant to Kind are meaningful. This is the ABI the Binding
// Registry produces and the Executor (or, for SwitchMode, the Mode
// Manager) consumes.
type Action struct {
	Kind ActionKind

	Amount   int            // Volume/Brightness up/down
	Start    bool           // ScreenRecording
	Position WindowPosition // WindowSnap
	Dx, Dy   int            // MouseMove
	X, Y     int            // MousePosition
	Vertical   int          // MouseScroll
	Horizontal int          // MouseScroll
	Key      string         // KeyPress
	Keys     []string       // KeyCombo
	Text     string         // TextInput
	Mode     Mode           // SwitchMode
}

// NoOpAction is the canonical no-op action returned for disabled or empty
// bindings; it always succeeds without touching the OS.
var NoOpAction = Action{Kind: ActionNoOp}

// IsContinuous reports whether the action carries continuous intent
// (MouseMove, MouseScroll) and must early-return as a no-op when both of
// its components are zero.
func (a Action) IsContinuous() bool {
	return a.Kind == ActionMouseMove || a.Kind == ActionMouseScroll
}

// IsModeSwitch reports whether the action must be routed to the Mode
// Manager instead of the Executor.
func (a Action) IsModeSwitch() bool {
	return a.Kind == ActionSwitchMode
}

// String renders a short human label, used by get_keybindings and logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionVolumeUp:
		return fmt.Sprintf("Volume Up (%d)", a.Amount)
	case ActionVolumeDown:
		return fmt.Sprintf("Volume Down (%d)", a.Amount)
	case ActionBrightnessUp:
		return fmt.Sprintf("Brightness Up (%d)", a.Amount)
	case ActionBrightnessDown:
		return fmt.Sprintf("Brightness Down (%d)", a.Amount)
	case ActionScreenshot:
		return "Screenshot"
	case ActionScreenRecording:
		if a.Start {
			return "Screen Recording Start"
		}
		return "Screen Recording Stop"
	case ActionAppLauncher:
		return "App Launcher"
	case ActionAppPrevious:
		return "Previous App"
	case ActionAppNext:
		return "Next App"
	case ActionAppSwitcher:
		return "App Switcher"
	case ActionWindowSnap:
		return "Snap Window " + a.Position.String()
	case ActionWindowCycle:
		return "Cycle Windows"
	case ActionMouseMove:
		return fmt.Sprintf("Move Mouse (%d, %d)", a.Dx, a.Dy)
	case ActionMousePosition:
		return fmt.Sprintf("Set Cursor (%d, %d)", a.X, a.Y)
	case ActionMouseClick:
		return "Left Click"
	case ActionMouseRightClick:
		return "Right Click"
	case ActionMouseMiddleClick:
		return "Middle Click"
	case ActionMouseDoubleClick:
		return "Double Click"
	case ActionMouseScroll:
		return fmt.Sprintf("Scroll (V:%d, H:%d)", a.Vertical, a.Horizontal)
	case ActionKeyPress:
		return "Key: " + a.Key
	case ActionKeyCombo:
		return "Keys: " + strings.ToUpper(strings.Join(a.Keys, "+"))
	case ActionTextInput:
		return "Type: " + a.Text
	case ActionMediaPlayPause:
		return "Play/Pause"
	case ActionMediaNext:
		return "Next Track"
	case ActionMediaPrevious:
		return "Previous Track"
	case ActionMediaStop:
		return "Stop"
	case ActionBrowserBack:
		return "Browser Back"
	case ActionBrowserForward:
		return "Browser Forward"
	case ActionBrowserReload:
		return "Reload Page"
	case ActionBrowserNewTab:
		return "New Tab"
	case ActionBrowserCloseTab:
		return "Close Tab"
	case ActionBrowserNextTab:
		return "Next Tab"
	case ActionBrowserPrevTab:
		return "Previous Tab"
	case ActionBrowserFind:
		return "Find"
	case ActionSwitchMode:
		return "Switch to " + a.Mode.String() + " Mode"
	case ActionNoOp:
		return "[No Action]"
	default:
		return "Unknown"
	}
}
