package inputloop

import (
	"math"
	"sync"
	"time"

	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/diag"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/executor"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/modemgr"
	"github.com/gamepadhid/core/internal/registry"
	"github.com/gamepadhid/core/pkg/models"
)

const simpleDeadZone = 0.05

// Loop is the single dedicated tick loop: it owns the hardware source,
// the per-button classification state, and drives both the Mode Manager
// and the Executor. Exactly one Loop runs per Manager instance.
type Loop struct {
	source     hardware.Source
	registries map[models.Mode]*registry.Registry
	modes      *modemgr.Manager
	exec       *executor.Executor
	emit       emitter.Emitter
	log        logger.Interface
	tunables   config.Tunables

	diagMu  sync.Mutex
	diagLog diag.EventLogger

	profileMu sync.RWMutex
	profile   models.Profile

	gamepadsMu sync.RWMutex
	gamepads   map[int]*models.GamepadSnapshot
	states     map[int]*gamepadState

	stop chan struct{}
	done chan struct{}
}

// New builds a Loop. registries must hold one Registry per models.Mode.
func New(
	source hardware.Source,
	registries map[models.Mode]*registry.Registry,
	modes *modemgr.Manager,
	exec *executor.Executor,
	emit emitter.Emitter,
	tunables config.Tunables,
	log logger.Interface,
) *Loop {
	return &Loop{
		source:     source,
		registries: registries,
		modes:      modes,
		exec:       exec,
		emit:       emit,
		tunables:   tunables,
		log:        log,
		profile:    models.DefaultProfile(),
		gamepads:   make(map[int]*models.GamepadSnapshot),
		states:     make(map[int]*gamepadState),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// SetEventLogger installs (or replaces) the diagnostics sink. Passing nil
// disables diagnostics logging; safe to call while the loop is running.
func (l *Loop) SetEventLogger(d diag.EventLogger) {
	l.diagMu.Lock()
	defer l.diagMu.Unlock()
	l.diagLog = d
}

// SetProfile swaps the tunables the continuous axis translation reads.
// The LB/RB modifier mapping is fixed and does not read them. Safe to call from the command surface while the
// loop is running.
func (l *Loop) SetProfile(p models.Profile) {
	p.ClampTunables()
	l.profileMu.Lock()
	defer l.profileMu.Unlock()
	l.profile = p
}

func (l *Loop) currentProfile() models.Profile {
	l.profileMu.RLock()
	defer l.profileMu.RUnlock()
	return l.profile
}

// Snapshot returns a copy of every connected gamepad's current state, for
// the command surface's get_gamepads/get_gamepad.
func (l *Loop) Snapshot() []models.GamepadSnapshot {
	l.gamepadsMu.RLock()
	defer l.gamepadsMu.RUnlock()

	out := make([]models.GamepadSnapshot, 0, len(l.gamepads))
	for _, g := range l.gamepads {
		out = append(out, *g)
	}
	return out
}

// Run drives the tick loop until Stop is called. It is meant to be
// launched in its own goroutine; Run blocks until termination and then
// releases the hardware source.
func (l *Loop) Run() {
	defer close(l.done)

	period := time.Duration(l.tunables.PollPeriodMs) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			l.tick(models.NowMs()) // one final drain before exiting
			if err := l.source.Close(); err != nil && l.log != nil {
				l.log.Warn("inputloop: closing hardware source: " + err.Error())
			}
			return
		case <-ticker.C:
			l.safeTick()
		}
	}
}

// Stop requests termination and blocks until Run has exited.
func (l *Loop) Stop() {
	close(l.stop)
	<-l.done
}

// safeTick wraps tick in a recover so a bug anywhere in classification or
// dispatch cannot take down the loop goroutine — the fixed-tick schedule
// must survive a single bad tick.
func (l *Loop) safeTick() {
	defer func() {
		if r := recover(); r != nil && l.log != nil {
			l.log.Error("inputloop: recovered panic mid-tick, continuing")
		}
	}()
	l.tick(models.NowMs())
}

func (l *Loop) tick(nowMs int64) {
	l.drain(nowMs)
	l.translateAxes(nowMs)
	l.sweepHolds(nowMs)
	l.sweepPendingTaps(nowMs)
	l.modes.ClearTransitioning()
}

// drain pulls every currently queued RawEvent off the hardware source
// without blocking.
func (l *Loop) drain(nowMs int64) {
	for {
		select {
		case ev, ok := <-l.source.Events():
			if !ok {
				return
			}
			l.applyRawEvent(ev, nowMs)
		default:
			return
		}
	}
}

// applyRawEvent updates the shared gamepads map under gamepadsMu, then —
// for button edges — classifies outside the lock, since classification
// can reach all the way into Dispatch and an OS emitter call, and that
// must never happen while a command-surface reader is blocked on
// Snapshot(). l.states is owned exclusively by this loop's own goroutine
// (the only writer and reader), so it needs no lock of its own.
func (l *Loop) applyRawEvent(ev models.RawEvent, nowMs int64) {
	switch ev.Kind {
	case models.RawEventConnected:
		l.gamepadsMu.Lock()
		l.gamepads[ev.GamepadIdx] = &models.GamepadSnapshot{
			Index:       ev.GamepadIdx,
			Name:        ev.Name,
			Connected:   true,
			TimestampMs: nowMs,
		}
		l.gamepadsMu.Unlock()
		l.states[ev.GamepadIdx] = newGamepadState()

	case models.RawEventDisconnected:
		l.gamepadsMu.Lock()
		delete(l.gamepads, ev.GamepadIdx)
		l.gamepadsMu.Unlock()
		delete(l.states, ev.GamepadIdx)

	case models.RawEventButtonPressed, models.RawEventButtonReleased:
		if ev.Button < 0 || int(ev.Button) >= models.ButtonSlotCount {
			return
		}
		pressed := ev.Kind == models.RawEventButtonPressed

		l.gamepadsMu.Lock()
		snap, ok := l.gamepads[ev.GamepadIdx]
		if ok {
			snap.Buttons[ev.Button].Pressed = pressed
			snap.Buttons[ev.Button].Value = ev.Value
			snap.TimestampMs = nowMs
		}
		l.gamepadsMu.Unlock()
		if !ok {
			return
		}
		l.classifyEdge(ev.GamepadIdx, ev.Button, pressed, nowMs)

	case models.RawEventAxisChanged:
		if !ev.AxisValid || int(ev.Axis) >= models.AxisCount {
			return
		}
		l.gamepadsMu.Lock()
		if snap, ok := l.gamepads[ev.GamepadIdx]; ok {
			snap.Axes[ev.Axis] = models.ClampAxis(ev.Value)
			snap.TimestampMs = nowMs
		}
		l.gamepadsMu.Unlock()
	}
}

func (l *Loop) stateFor(gamepadIdx int) (*gamepadState, bool) {
	st, ok := l.states[gamepadIdx]
	return st, ok
}

// primaryLocked returns the lowest-indexed connected gamepad, the "first
// connected" pad that drives pointer/scroll. Caller must hold gamepadsMu
// (read or write).
func (l *Loop) primaryLocked() (*models.GamepadSnapshot, *gamepadState, bool) {
	bestIdx := -1
	for idx, g := range l.gamepads {
		if !g.Connected {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
		}
	}
	if bestIdx == -1 {
		return nil, nil, false
	}
	return l.gamepads[bestIdx], l.states[bestIdx], true
}

func (l *Loop) translateAxes(nowMs int64) {
	l.gamepadsMu.RLock()
	snap, state, ok := l.primaryLocked()
	var axes [models.AxisCount]float64
	if ok {
		axes = snap.Axes
	}
	l.gamepadsMu.RUnlock()
	if !ok {
		return
	}

	profile := l.currentProfile()
	deadZone := simpleDeadZone
	if profile.DeadZone > 0 {
		deadZone = profile.DeadZone
	}

	gain := profile.Sensitivity * profile.Acceleration
	if l.modes.Current() == models.ModeMotion && state != nil && state.button(models.ButtonRT).pressed {
		gain *= 0.5 // RT Hold slow mode
	}

	dx := axisDelta(axes[models.AxisLeftStickX], deadZone, gain)
	dy := axisDelta(axes[models.AxisLeftStickY], deadZone, gain)
	dy = -dy // physical up -> screen up
	if dx != 0 || dy != 0 {
		if err := l.emit.MoveCursor(dx, dy); err != nil && l.log != nil {
			l.log.Warn("inputloop: move cursor: " + err.Error())
		}
	}

	vert := axisDelta(axes[models.AxisRightStickY], deadZone, profile.Scroll.Speed)
	horiz := axisDelta(axes[models.AxisRightStickX], deadZone, profile.Scroll.Speed)
	if profile.Scroll.ReverseVertical {
		vert = -vert
	}
	if profile.Scroll.ReverseHorizontal {
		horiz = -horiz
	}
	if vert != 0 || horiz != 0 {
		if err := l.emit.Scroll(vert, horiz); err != nil && l.log != nil {
			l.log.Warn("inputloop: scroll: " + err.Error())
		}
	}
}

// axisDelta applies the dead-zone floor then the v*10*scale formula,
// truncating to whole pixels/units.
func axisDelta(v, deadZone, scale float64) int {
	if math.Abs(v) <= deadZone {
		return 0
	}
	return int(v * 10 * scale)
}

// dispatchResolved routes a resolved Action to the Mode Manager or the
// Executor and logs the outcome through diagnostics.
func (l *Loop) dispatchResolved(mode models.Mode, action models.Action, nowMs int64) {
	if action.IsModeSwitch() {
		l.modes.Switch(action.Mode, nowMs)
		l.logDiag(diag.NewEvent(diag.EventModeSwitch, mode, action.Mode.String()))
		return
	}

	if err := l.exec.Dispatch(action); err != nil {
		if l.log != nil {
			l.log.Error("inputloop: dispatch failed: " + err.Error())
		}
		ev := diag.NewEvent(diag.EventActionFailed, mode, action.String())
		l.logDiag(ev)
		return
	}
	l.logDiag(diag.NewEvent(diag.EventActionDispatched, mode, action.String()))
}

func (l *Loop) logDiag(ev diag.Event) {
	l.diagMu.Lock()
	sink := l.diagLog
	l.diagMu.Unlock()
	if sink == nil {
		return
	}
	if err := sink.LogEvent(ev); err != nil && l.log != nil {
		l.log.Warn("inputloop: diagnostics log: " + err.Error())
	}
}

// resolve looks up the highest-precedence enabled binding matching
// pattern in mode's registry.
func (l *Loop) resolve(mode models.Mode, pattern models.InputPattern) (models.Action, bool) {
	reg, ok := l.registries[mode]
	if !ok {
		return models.Action{}, false
	}
	b, ok := reg.Get(pattern)
	if !ok || !b.Enabled {
		return models.Action{}, false
	}
	return b.Action, true
}

// doubleTapBindingExists reports whether mode's registry carries a
// DoubleTap binding for button, used to decide whether a Tap must be
// deferred until the double-tap window elapses.
func (l *Loop) doubleTapBindingExists(mode models.Mode, pattern models.InputPattern) bool {
	dt := pattern
	dt.Timing = models.TimingDoubleTap
	_, ok := l.resolve(mode, dt)
	return ok
}

func (l *Loop) currentModifier(state *gamepadState) models.Modifier {
	lb := state.button(models.ButtonLB).pressed
	rb := state.button(models.ButtonRB).pressed
	switch {
	case lb && rb:
		return models.ModifierShift
	case lb:
		return models.ModifierAlt
	case rb:
		return models.ModifierCtrl
	default:
		return models.ModifierNone
	}
}

func (l *Loop) buildPattern(state *gamepadState, button models.Button, timing models.Timing) models.InputPattern {
	mod := l.currentModifier(state)
	if mod == models.ModifierNone {
		return models.SingleButtonPattern(button, timing)
	}
	return models.ModifiedButtonPattern(button, mod, timing)
}
