// Package executor dispatches classified Actions to an Emitter behind a
// panic-recovery boundary.
package executor

import (
	"fmt"

	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

// Executor routes a dispatched Action to the platform Emitter. SwitchMode
// actions never reach Executor.Dispatch — the Input Loop routes those to
// the Mode Manager directly.
type Executor struct {
	emit emitter.Emitter
	log  logger.Interface
}

// New returns an Executor backed by emit.
func New(emit emitter.Emitter, log logger.Interface) *Executor {
	return &Executor{emit: emit, log: log}
}

// Dispatch executes action, recovering any panic raised by the emitter
// call and converting it to a KindActionFailed error so the Input Loop
// never needs its own recover for this path.
func (e *Executor) Dispatch(action models.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gamepadhiderr.ActionFailed(fmt.Errorf("panic: %v", r))
			if e.log != nil {
				e.log.Error(fmt.Sprintf("executor: recovered panic dispatching %s: %v", action.Kind, r))
			}
		}
	}()

	switch action.Kind {
	case models.ActionMouseMove:
		if action.Dx == 0 && action.Dy == 0 {
			return nil
		}
		return e.emit.MoveCursor(action.Dx, action.Dy)
	case models.ActionMousePosition:
		return e.emit.SetCursorPosition(action.X, action.Y)
	case models.ActionMouseClick:
		return e.emit.Click(emitter.MouseLeft)
	case models.ActionMouseRightClick:
		return e.emit.Click(emitter.MouseRight)
	case models.ActionMouseMiddleClick:
		return e.emit.Click(emitter.MouseMiddle)
	case models.ActionMouseDoubleClick:
		return e.emit.DoubleClick(emitter.MouseLeft)
	case models.ActionMouseScroll:
		if action.Vertical == 0 && action.Horizontal == 0 {
			return nil
		}
		return e.emit.Scroll(action.Vertical, action.Horizontal)
	case models.ActionKeyPress:
		return e.emit.KeyPress(action.Key)
	case models.ActionKeyCombo:
		return e.emit.KeyCombo(action.Keys)
	case models.ActionTextInput:
		return e.emit.TypeText(action.Text)
	case models.ActionMediaPlayPause:
		return e.emit.PlayPauseMedia()
	case models.ActionMediaNext:
		return e.emit.KeyPress("medianext")
	case models.ActionMediaPrevious:
		return e.emit.KeyPress("mediaprev")
	case models.ActionMediaStop:
		return e.emit.KeyPress("mediastop")
	case models.ActionBrowserBack:
		return e.emit.KeyCombo([]string{"alt", "left"})
	case models.ActionBrowserForward:
		return e.emit.KeyCombo([]string{"alt", "right"})
	case models.ActionBrowserReload:
		return e.emit.KeyPress("f5")
	case models.ActionBrowserNewTab:
		return e.emit.KeyCombo([]string{"ctrl", "t"})
	case models.ActionBrowserCloseTab:
		return e.emit.KeyCombo([]string{"ctrl", "w"})
	case models.ActionBrowserNextTab:
		return e.emit.KeyCombo([]string{"ctrl", "tab"})
	case models.ActionBrowserPrevTab:
		return e.emit.KeyCombo([]string{"ctrl", "shift", "tab"})
	case models.ActionBrowserFind:
		return e.emit.KeyCombo([]string{"ctrl", "f"})
	case models.ActionVolumeUp:
		return e.emit.SetVolume(action.Amount)
	case models.ActionVolumeDown:
		return e.emit.SetVolume(-action.Amount)
	case models.ActionBrightnessUp:
		return e.emit.SetBrightness(action.Amount)
	case models.ActionBrightnessDown:
		return e.emit.SetBrightness(-action.Amount)
	case models.ActionScreenshot:
		return e.emit.TakeScreenshot()
	case models.ActionScreenRecording:
		return e.emit.KeyCombo([]string{"cmd", "shift", "5"})
	case models.ActionAppLauncher:
		return e.emit.KeyCombo([]string{"cmd", "space"})
	case models.ActionAppPrevious, models.ActionAppNext, models.ActionAppSwitcher:
		return e.emit.KeyCombo([]string{"alt", "tab"})
	case models.ActionWindowSnap:
		return e.dispatchWindowSnap(action)
	case models.ActionWindowCycle:
		return e.emit.KeyCombo([]string{"alt", "tab"})
	case models.ActionNoOp:
		return nil
	default:
		return gamepadhiderr.New(gamepadhiderr.KindActionFailed, fmt.Sprintf("unhandled action kind: %v", action.Kind))
	}
}

func (e *Executor) dispatchWindowSnap(action models.Action) error {
	switch action.Position {
	case models.WindowLeft:
		return e.emit.KeyCombo([]string{"cmd", "left"})
	case models.WindowRight:
		return e.emit.KeyCombo([]string{"cmd", "right"})
	case models.WindowMaximize:
		return e.emit.KeyCombo([]string{"cmd", "up"})
	default:
		return e.emit.KeyCombo([]string{"cmd", "up"})
	}
}
