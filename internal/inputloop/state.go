// Package inputloop owns the dedicated tick loop: draining hardware
// events, translating continuous stick motion, classifying discrete
// button edges into taps/holds/chords/sequences, resolving them against
// the active mode's binding registry, and dispatching the result.
package inputloop

import "github.com/gamepadhid/core/pkg/models"

// buttonState is the Input Loop's per-(gamepad, button) edge-detection
// state. pressStartedAt doubles as the "recent-pressed queue" entry a
// chord match scans, rather than maintaining a second parallel structure.
type buttonState struct {
	pressed           bool
	pressStartedAt    int64
	holdDispatched    bool
	suppressedByChord bool
	pending           *pendingTap
}

// pendingTap is a Tap dispatch deferred because a DoubleTap binding
// exists for the same button; it fires on the next tick whose time has
// passed deadlineMs, unless a second tap arrives first and upgrades it.
type pendingTap struct {
	deadlineMs int64
	mode       models.Mode
	gamepadIdx int
	button     models.Button
	action     models.Action
}

// lastTap records the most recently classified Tap on a gamepad, used to
// detect both DoubleTap upgrades and Sequence completions.
type lastTap struct {
	button  models.Button
	atMs    int64
	pending *pendingTap // non-nil if this tap's own dispatch is still deferred
}

// gamepadState is the Input Loop's working state for one connected pad,
// distinct from the GamepadSnapshot the command surface reads.
type gamepadState struct {
	buttons map[models.Button]*buttonState
	last    *lastTap
}

func newGamepadState() *gamepadState {
	return &gamepadState{buttons: make(map[models.Button]*buttonState)}
}

func (g *gamepadState) button(b models.Button) *buttonState {
	st, ok := g.buttons[b]
	if !ok {
		st = &buttonState{}
		g.buttons[b] = st
	}
	return st
}

// heldWithin returns every button currently held whose press began at or
// after sinceMs, the candidate set a chord match is drawn from.
func (g *gamepadState) heldWithin(sinceMs int64) []models.Button {
	var held []models.Button
	for b, st := range g.buttons {
		if st.pressed && st.pressStartedAt >= sinceMs {
			held = append(held, b)
		}
	}
	return held
}

func containsAll(held []models.Button, want []models.Button) bool {
	set := make(map[models.Button]bool, len(held))
	for _, b := range held {
		set[b] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
