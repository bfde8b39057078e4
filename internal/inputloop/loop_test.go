package inputloop

import (
	"testing"

	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/executor"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/modemgr"
	"github.com/gamepadhid/core/internal/registry"
	"github.com/gamepadhid/core/pkg/models"
)

type testRig struct {
	loop   *Loop
	source *hardware.FakeSource
	emit   *emitter.FakeEmitter
	modes  *modemgr.Manager
}

func newTestRig(registries map[models.Mode]*registry.Registry) *testRig {
	log := &logger.MockLogger{}
	source := hardware.NewFakeSource()
	emit := emitter.NewFakeEmitter()
	modes := modemgr.New(config.DefaultTunables().ModeSwitchDebounceMs, log)
	exec := executor.New(emit, log)
	loop := New(source, registries, modes, exec, emit, config.DefaultTunables(), log)
	return &testRig{loop: loop, source: source, emit: emit, modes: modes}
}

func emptyRegistries() map[models.Mode]*registry.Registry {
	return map[models.Mode]*registry.Registry{
		models.ModeNormal: registry.New(),
		models.ModeMotion: registry.New(),
		models.ModeHotkey: registry.New(),
	}
}

func connect(source *hardware.FakeSource, idx int) {
	source.Push(models.RawEvent{Kind: models.RawEventConnected, GamepadIdx: idx, Name: "pad"})
}

func press(source *hardware.FakeSource, idx int, b models.Button) {
	source.Push(models.RawEvent{Kind: models.RawEventButtonPressed, GamepadIdx: idx, Button: b})
}

func release(source *hardware.FakeSource, idx int, b models.Button) {
	source.Push(models.RawEvent{Kind: models.RawEventButtonReleased, GamepadIdx: idx, Button: b})
}

func axis(source *hardware.FakeSource, idx int, a models.AxisIndex, v float64) {
	source.Push(models.RawEvent{Kind: models.RawEventAxisChanged, GamepadIdx: idx, AxisValid: true, Axis: a, Value: v})
}

// Scenario 1: cursor drift from stick.
func TestCursorDriftFromStick(t *testing.T) {
	rig := newTestRig(emptyRegistries())
	rig.loop.SetProfile(models.Profile{Name: "t", Sensitivity: 1.0, Acceleration: 1.0, DeadZone: 0.1})

	connect(rig.source, 0)
	axis(rig.source, 0, models.AxisLeftStickX, 0.5)
	axis(rig.source, 0, models.AxisLeftStickY, -0.5)

	rig.loop.tick(0)
	rig.loop.tick(16)
	rig.loop.tick(32)

	calls := rig.emit.Snapshot()
	if len(calls) != 3 {
		t.Fatalf("expected 3 emitter calls, got %d: %+v", len(calls), calls)
	}
	for _, c := range calls {
		if c.Method != "MoveCursor" || c.Dx != 5 || c.Dy != 5 {
			t.Fatalf("expected MoveCursor(5,5), got %+v", c)
		}
	}
}

// Quantified invariant: values within the dead zone translate to exactly 0.
func TestAxisWithinDeadZoneProducesNoMove(t *testing.T) {
	rig := newTestRig(emptyRegistries())
	rig.loop.SetProfile(models.Profile{Name: "t", Sensitivity: 1.0, Acceleration: 1.0, DeadZone: 0.1})

	connect(rig.source, 0)
	axis(rig.source, 0, models.AxisLeftStickX, 0.05)
	axis(rig.source, 0, models.AxisLeftStickY, -0.08)

	rig.loop.tick(0)

	if len(rig.emit.Snapshot()) != 0 {
		t.Fatalf("expected no emitter calls inside dead zone, got %+v", rig.emit.Snapshot())
	}
}

// Scenario 2: a short tap with no DoubleTap binding dispatches immediately.
func TestTapDispatchesMouseClick(t *testing.T) {
	regs := emptyRegistries()
	regs[models.ModeNormal].Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonSouth, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick},
		models.ModeNormal,
	))
	rig := newTestRig(regs)

	connect(rig.source, 0)
	rig.loop.tick(0)

	press(rig.source, 0, models.ButtonSouth)
	rig.loop.tick(0)

	release(rig.source, 0, models.ButtonSouth)
	rig.loop.tick(100)

	calls := rig.emit.Snapshot()
	if len(calls) != 1 || calls[0].Method != "Click" || calls[0].Button != emitter.MouseLeft {
		t.Fatalf("expected exactly one left Click, got %+v", calls)
	}
}

// Scenario 3: holding a button past tap_threshold fires its Hold binding
// mid-press, switching mode, without waiting for release.
func TestHoldSwitchesToHotkey(t *testing.T) {
	regs := emptyRegistries()
	regs[models.ModeNormal].Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonNorth, models.TimingHold),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeHotkey},
		models.ModeNormal,
	))
	rig := newTestRig(regs)

	connect(rig.source, 0)
	rig.loop.tick(0)

	press(rig.source, 0, models.ButtonNorth)
	rig.loop.tick(0)

	rig.loop.tick(200) // past the 150ms tap threshold, still held

	if rig.modes.Current() != models.ModeHotkey {
		t.Fatalf("expected mode Hotkey, got %v", rig.modes.Current())
	}

	release(rig.source, 0, models.ButtonNorth)
	rig.loop.tick(400)

	// the Hold already dispatched mid-press; release must not re-dispatch.
	if rig.modes.Current() != models.ModeHotkey {
		t.Fatalf("expected mode to remain Hotkey after release, got %v", rig.modes.Current())
	}
}

// Scenario 4: a chord match suppresses the constituent single-button
// bindings for that press cycle.
func TestChordBeatsSingles(t *testing.T) {
	regs := emptyRegistries()
	regs[models.ModeNormal].Add(models.NewBinding(
		models.ChordPattern(models.ButtonRB, models.ButtonNorth),
		models.Action{Kind: models.ActionSwitchMode, Mode: models.ModeMotion},
		models.ModeNormal,
	))
	regs[models.ModeNormal].Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonRB, models.TimingTap),
		models.Action{Kind: models.ActionMouseClick},
		models.ModeNormal,
	))
	regs[models.ModeNormal].Add(models.NewBinding(
		models.SingleButtonPattern(models.ButtonNorth, models.TimingTap),
		models.Action{Kind: models.ActionMouseRightClick},
		models.ModeNormal,
	))
	rig := newTestRig(regs)

	connect(rig.source, 0)
	rig.loop.tick(0)

	press(rig.source, 0, models.ButtonRB)
	rig.loop.tick(0)

	press(rig.source, 0, models.ButtonNorth)
	rig.loop.tick(40)

	if rig.modes.Current() != models.ModeMotion {
		t.Fatalf("expected chord to switch to Motion, got %v", rig.modes.Current())
	}

	release(rig.source, 0, models.ButtonRB)
	release(rig.source, 0, models.ButtonNorth)
	rig.loop.tick(60)

	if len(rig.emit.Snapshot()) != 0 {
		t.Fatalf("expected chord to suppress constituent single-button actions, got %+v", rig.emit.Snapshot())
	}
}

// Quantified invariant: Stop exits within one tick and releases the source.
func TestStopReleasesHardwareSource(t *testing.T) {
	rig := newTestRig(emptyRegistries())
	go rig.loop.Run()
	rig.loop.Stop()

	select {
	case <-rig.loop.done:
	default:
		t.Fatalf("expected loop to have exited after Stop")
	}
	if _, ok := <-rig.source.Events(); ok {
		t.Fatalf("expected the hardware source to be closed after Stop")
	}
}
