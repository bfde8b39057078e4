package executor

import (
	"testing"

	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

// panicEmitter panics on MoveCursor, used to exercise Dispatch's
// recover boundary.
type panicEmitter struct{ emitter.FakeEmitter }

func (p *panicEmitter) MoveCursor(dx, dy int) error {
	panic("boom")
}

func TestDispatchMouseMoveCallsEmitter(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	if err := e.Dispatch(models.Action{Kind: models.ActionMouseMove, Dx: 5, Dy: -3}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	calls := fake.Snapshot()
	if len(calls) != 1 || calls[0].Method != "MoveCursor" || calls[0].Dx != 5 || calls[0].Dy != -3 {
		t.Fatalf("expected one MoveCursor(5, -3) call, got %+v", calls)
	}
}

func TestDispatchMediaAndBrowserActionsMapToPlayPauseOrCombo(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	if err := e.Dispatch(models.Action{Kind: models.ActionMediaPlayPause}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.Dispatch(models.Action{Kind: models.ActionBrowserBack}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	calls := fake.Snapshot()
	if len(calls) != 2 || calls[0].Method != "PlayPauseMedia" {
		t.Fatalf("expected PlayPauseMedia call, got %+v", calls)
	}
	if calls[1].Method != "KeyCombo" || len(calls[1].Keys) != 2 || calls[1].Keys[0] != "alt" || calls[1].Keys[1] != "left" {
		t.Fatalf("expected alt+left KeyCombo, got %+v", calls[1])
	}
}

func TestDispatchSystemOperationsUseDedicatedEmitterMethods(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	if err := e.Dispatch(models.Action{Kind: models.ActionVolumeUp, Amount: 10}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.Dispatch(models.Action{Kind: models.ActionVolumeDown, Amount: 15}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.Dispatch(models.Action{Kind: models.ActionBrightnessUp, Amount: 20}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.Dispatch(models.Action{Kind: models.ActionBrightnessDown, Amount: 5}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := e.Dispatch(models.Action{Kind: models.ActionScreenshot}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	calls := fake.Snapshot()
	if len(calls) != 5 {
		t.Fatalf("expected 5 calls, got %+v", calls)
	}
	if calls[0].Method != "SetVolume" || calls[0].Amount != 10 {
		t.Fatalf("expected SetVolume(10), got %+v", calls[0])
	}
	if calls[1].Method != "SetVolume" || calls[1].Amount != -15 {
		t.Fatalf("expected SetVolume(-15), got %+v", calls[1])
	}
	if calls[2].Method != "SetBrightness" || calls[2].Amount != 20 {
		t.Fatalf("expected SetBrightness(20), got %+v", calls[2])
	}
	if calls[3].Method != "SetBrightness" || calls[3].Amount != -5 {
		t.Fatalf("expected SetBrightness(-5), got %+v", calls[3])
	}
	if calls[4].Method != "TakeScreenshot" {
		t.Fatalf("expected TakeScreenshot, got %+v", calls[4])
	}
}

func TestDispatchNoOpTouchesNothing(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	if err := e.Dispatch(models.Action{Kind: models.ActionNoOp}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(fake.Snapshot()) != 0 {
		t.Fatalf("expected NoOp to make no emitter calls, got %+v", fake.Snapshot())
	}
}

func TestDispatchUnhandledActionKindFails(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	err := e.Dispatch(models.Action{Kind: models.ActionKind(9999)})
	if err == nil {
		t.Fatalf("expected error for an unhandled action kind")
	}
	gerr, ok := err.(*gamepadhiderr.Error)
	if !ok || gerr.Kind != gamepadhiderr.KindActionFailed {
		t.Fatalf("expected KindActionFailed, got %v", err)
	}
}

func TestDispatchRecoversEmitterPanic(t *testing.T) {
	e := New(&panicEmitter{}, &logger.MockLogger{})

	err := e.Dispatch(models.Action{Kind: models.ActionMouseMove, Dx: 1, Dy: 1})
	if err == nil {
		t.Fatalf("expected panic to surface as an error")
	}
	gerr, ok := err.(*gamepadhiderr.Error)
	if !ok || gerr.Kind != gamepadhiderr.KindActionFailed {
		t.Fatalf("expected KindActionFailed from recovered panic, got %v", err)
	}
}

func TestDispatchWindowSnapPositions(t *testing.T) {
	fake := emitter.NewFakeEmitter()
	e := New(fake, &logger.MockLogger{})

	if err := e.Dispatch(models.Action{Kind: models.ActionWindowSnap, Position: models.WindowLeft}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	calls := fake.Snapshot()
	if len(calls) != 1 || calls[0].Method != "KeyCombo" || calls[0].Keys[1] != "left" {
		t.Fatalf("expected cmd+left KeyCombo, got %+v", calls)
	}
}
