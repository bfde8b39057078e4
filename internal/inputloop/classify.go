package inputloop

import "github.com/gamepadhid/core/pkg/models"

// classifyEdge performs edge detection and timing classification for a
// single button transition, run from the loop's own
// goroutine with no gamepadsMu held so a resulting Dispatch can reach the
// emitter without blocking a concurrent Snapshot() reader.
func (l *Loop) classifyEdge(gamepadIdx int, button models.Button, pressed bool, nowMs int64) {
	state, ok := l.stateFor(gamepadIdx)
	if !ok {
		return
	}
	bs := state.button(button)

	if pressed {
		l.risingEdge(gamepadIdx, state, bs, button, nowMs)
		return
	}
	l.fallingEdge(gamepadIdx, state, bs, button, nowMs)
}

func (l *Loop) risingEdge(gamepadIdx int, state *gamepadState, bs *buttonState, button models.Button, nowMs int64) {
	bs.pressed = true
	bs.pressStartedAt = nowMs
	bs.holdDispatched = false
	bs.suppressedByChord = false

	l.tryChord(gamepadIdx, state, button, nowMs)
}

// tryChord checks every Chord binding in the current mode against the set
// of buttons currently held whose press began within chord_window_ms of
// this one. A match dispatches once and marks
// every constituent button so its own release is not also resolved as a
// SingleButton/ModifiedButton binding.
func (l *Loop) tryChord(gamepadIdx int, state *gamepadState, button models.Button, nowMs int64) {
	mode := l.modes.Current()
	reg, ok := l.registries[mode]
	if !ok {
		return
	}

	windowStart := nowMs - l.tunables.ChordWindowMs
	held := state.heldWithin(windowStart)

	for _, b := range reg.ForButton(button) {
		if b.Pattern.Kind != models.PatternChord {
			continue
		}
		if !containsAll(held, b.Pattern.Buttons) {
			continue
		}
		for _, constituent := range b.Pattern.Buttons {
			state.button(constituent).suppressedByChord = true
		}
		l.dispatchResolved(mode, b.Action, nowMs)
		return
	}
}

func (l *Loop) fallingEdge(gamepadIdx int, state *gamepadState, bs *buttonState, button models.Button, nowMs int64) {
	wasPressed := bs.pressed
	duration := nowMs - bs.pressStartedAt
	bs.pressed = false

	if bs.suppressedByChord {
		bs.suppressedByChord = false
		return
	}
	if !wasPressed {
		return
	}

	switch {
	case duration <= l.tunables.TapMaxMs:
		l.classifyTap(gamepadIdx, state, button, nowMs)
	case duration < l.tunables.LongHoldMinMs:
		if !bs.holdDispatched {
			l.classifyRelease(gamepadIdx, button, models.TimingHold, nowMs)
		}
	default:
		l.classifyRelease(gamepadIdx, button, models.TimingLongHold, nowMs)
	}
}

// sweepHolds fires a mid-press Hold dispatch for any button that has been
// held continuously past tap_threshold: once hold_threshold is reached
// and a Hold binding exists, the Hold action dispatches once, edge-like.
func (l *Loop) sweepHolds(nowMs int64) {
	for gamepadIdx, state := range l.states {
		for button, bs := range state.buttons {
			if !bs.pressed || bs.holdDispatched || bs.suppressedByChord {
				continue
			}
			if nowMs-bs.pressStartedAt < l.tunables.TapMaxMs {
				continue
			}
			bs.holdDispatched = true
			l.classifyRelease(gamepadIdx, button, models.TimingHold, nowMs)
		}
	}
}

// classifyRelease resolves a Hold/LongHold classified event against the
// current mode and dispatches it if a binding matches.
func (l *Loop) classifyRelease(gamepadIdx int, button models.Button, timing models.Timing, nowMs int64) {
	state, ok := l.stateFor(gamepadIdx)
	if !ok {
		return
	}
	mode := l.modes.Current()
	pattern := l.buildPattern(state, button, timing)
	action, ok := l.resolve(mode, pattern)
	if !ok {
		return
	}
	l.dispatchResolved(mode, action, nowMs)
}

// classifyTap implements the Tap/DoubleTap/Sequence branch: sequence
// completion takes priority over a plain tap, then a DoubleTap upgrade,
// then an immediate or deferred Tap dispatch.
func (l *Loop) classifyTap(gamepadIdx int, state *gamepadState, button models.Button, nowMs int64) {
	mode := l.modes.Current()

	if state.last != nil && nowMs-state.last.atMs <= l.tunables.SequenceTimeoutMs {
		seq := models.SequencePattern(state.last.button, button, int(l.tunables.SequenceTimeoutMs))
		if action, ok := l.resolve(mode, seq); ok {
			if state.last.pending != nil {
				state.last.pending.deadlineMs = -1 // cancelled: sweepPendingTaps skips it
			}
			state.last = nil
			l.dispatchResolved(mode, action, nowMs)
			return
		}
	}

	pattern := l.buildPattern(state, button, models.TimingTap)

	if state.last != nil && state.last.button == button && nowMs-state.last.atMs <= l.tunables.DoubleTapWindowMs {
		if state.last.pending != nil {
			state.last.pending.deadlineMs = -1
		}
		dtPattern := pattern
		dtPattern.Timing = models.TimingDoubleTap
		if action, ok := l.resolve(mode, dtPattern); ok {
			l.dispatchResolved(mode, action, nowMs)
		}
		state.last = &lastTap{button: button, atMs: nowMs}
		return
	}

	action, ok := l.resolve(mode, pattern)
	if !ok {
		state.last = &lastTap{button: button, atMs: nowMs}
		return
	}

	if l.doubleTapBindingExists(mode, pattern) {
		pending := &pendingTap{
			deadlineMs: nowMs + l.tunables.DoubleTapWindowMs,
			mode:       mode,
			gamepadIdx: gamepadIdx,
			button:     button,
			action:     action,
		}
		state.button(button).pending = pending
		state.last = &lastTap{button: button, atMs: nowMs, pending: pending}
		return
	}

	l.dispatchResolved(mode, action, nowMs)
	state.last = &lastTap{button: button, atMs: nowMs}
}

// sweepPendingTaps fires any deferred Tap whose DoubleTap upgrade window
// has elapsed without a second tap arriving.
func (l *Loop) sweepPendingTaps(nowMs int64) {
	for _, state := range l.states {
		for _, bs := range state.buttons {
			p := bs.pending
			if p == nil {
				continue
			}
			if p.deadlineMs < 0 {
				bs.pending = nil // cancelled by an upgrade or a sequence completion
				continue
			}
			if nowMs < p.deadlineMs {
				continue
			}
			bs.pending = nil
			l.dispatchResolved(p.mode, p.action, nowMs)
		}
	}
}
