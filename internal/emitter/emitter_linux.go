//go:build linux

package emitter

/*
#cgo pkg-config: x11 xtst
#include <X11/Xlib.h>
#include <X11/keysym.h>
#include <X11/extensions/XTest.h>
#include <stdlib.h>

static Display* gamepadhid_display = NULL;

static int gamepadhid_init() {
	gamepadhid_display = XOpenDisplay(NULL);
	if (!gamepadhid_display) return -1;
	return 0;
}

static void gamepadhid_move_rel(int dx, int dy) {
	if (!gamepadhid_display) return;
	XWarpPointer(gamepadhid_display, None, None, 0, 0, 0, 0, dx, dy);
	XFlush(gamepadhid_display);
}

static void gamepadhid_move_abs(int x, int y) {
	if (!gamepadhid_display) return;
	XTestFakeMotionEvent(gamepadhid_display, DefaultScreen(gamepadhid_display), x, y, 0);
	XFlush(gamepadhid_display);
}

static void gamepadhid_button(int button, int press) {
	if (!gamepadhid_display) return;
	XTestFakeButtonEvent(gamepadhid_display, button, press, 0);
	XFlush(gamepadhid_display);
}

static void gamepadhid_scroll(int button, int notches) {
	if (!gamepadhid_display) return;
	for (int i = 0; i < notches; i++) {
		XTestFakeButtonEvent(gamepadhid_display, button, True, 0);
		XTestFakeButtonEvent(gamepadhid_display, button, False, 0);
	}
	XFlush(gamepadhid_display);
}

static void gamepadhid_key(unsigned int keysym, int press) {
	if (!gamepadhid_display) return;
	KeyCode kc = XKeysymToKeycode(gamepadhid_display, keysym);
	if (kc == 0) return;
	XTestFakeKeyEvent(gamepadhid_display, kc, press, 0);
	XFlush(gamepadhid_display);
}

static void gamepadhid_destroy() {
	if (gamepadhid_display) {
		XCloseDisplay(gamepadhid_display);
		gamepadhid_display = NULL;
	}
}
*/
import "C"

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gamepadhid/core/internal/gamepadhiderr"
)

// linuxEmitter synthesizes events through XTest against the default X
// display, grounded on the cgo XTestFake* idiom used for remote-input
// injection.
type linuxEmitter struct {
	mu              sync.Mutex
	volumeLevel     int
	brightnessLevel int
}

// NewPlatformEmitter opens the default X display and returns the
// XTest-backed Emitter.
func NewPlatformEmitter() (Emitter, error) {
	if C.gamepadhid_init() != 0 {
		return nil, gamepadhiderr.New(gamepadhiderr.KindEmitterUnavailable, "failed to open X display")
	}
	return &linuxEmitter{volumeLevel: 50, brightnessLevel: 50}, nil
}

const (
	xButtonLeft     = 1
	xButtonMiddle   = 2
	xButtonRight    = 3
	xButtonScrollUp = 4
	xButtonScrollDn = 5
	xButtonScrollLt = 6
	xButtonScrollRt = 7
)

func (e *linuxEmitter) MoveCursor(dx, dy int) error {
	C.gamepadhid_move_rel(C.int(dx), C.int(dy))
	return nil
}

func (e *linuxEmitter) SetCursorPosition(x, y int) error {
	C.gamepadhid_move_abs(C.int(x), C.int(y))
	return nil
}

func (e *linuxEmitter) Click(button MouseButton) error {
	xb := linuxButtonCode(button)
	C.gamepadhid_button(C.int(xb), 1)
	C.gamepadhid_button(C.int(xb), 0)
	return nil
}

func (e *linuxEmitter) DoubleClick(button MouseButton) error {
	xb := linuxButtonCode(button)
	return PerformDoubleClick(
		func() error { C.gamepadhid_button(C.int(xb), 1); return nil },
		func() error { C.gamepadhid_button(C.int(xb), 0); return nil },
	)
}

func (e *linuxEmitter) Scroll(vertical, horizontal int) error {
	if err := PostScrollNotches(vertical, func(delta int) error {
		button := xButtonScrollUp
		if delta < 0 {
			button = xButtonScrollDn
		}
		C.gamepadhid_scroll(C.int(button), 1)
		return nil
	}); err != nil {
		return err
	}
	return PostScrollNotches(horizontal, func(delta int) error {
		button := xButtonScrollRt
		if delta < 0 {
			button = xButtonScrollLt
		}
		C.gamepadhid_scroll(C.int(button), 1)
		return nil
	})
}

// SetVolume presses the XF86Audio volume-up/down key enough times to
// move the tracked level by delta, clamped to 0..100.
func (e *linuxEmitter) SetVolume(delta int) error {
	return e.adjustLevel(&e.volumeLevel, delta, "volumeup", "volumedown")
}

// SetBrightness presses the XF86MonBrightness up/down key enough times
// to move the tracked level by delta, clamped to 0..100.
func (e *linuxEmitter) SetBrightness(delta int) error {
	return e.adjustLevel(&e.brightnessLevel, delta, "brightnessup", "brightnessdown")
}

func (e *linuxEmitter) adjustLevel(level *int, delta int, upKey, downKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := ClampLevel(*level + delta)
	steps := target - *level
	key := upKey
	if steps < 0 {
		key = downKey
		steps = -steps
	}
	ks, ok := linuxKeyTable[key]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, "unknown key: "+key)
	}
	for i := 0; i < steps; i++ {
		if i > 0 {
			emitterSleep(5 * time.Millisecond)
		}
		C.gamepadhid_key(C.uint(ks), 1)
		C.gamepadhid_key(C.uint(ks), 0)
	}
	*level = target
	return nil
}

// TakeScreenshot shells out to scrot, the common X11 screen-capture
// utility, since X11 has no built-in PrintScreen handler of its own.
func (e *linuxEmitter) TakeScreenshot() error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("gamepadhid-screenshot-%d.png", time.Now().UnixNano()))
	if err := exec.Command("scrot", path).Run(); err != nil {
		return gamepadhiderr.New(gamepadhiderr.KindEmitterRejected, "scrot: "+err.Error())
	}
	return nil
}

// PlayPauseMedia presses the canonical media play/pause key already
// mapped in linuxKeyTable.
func (e *linuxEmitter) PlayPauseMedia() error {
	return e.KeyPress("mediaplaypause")
}

func (e *linuxEmitter) KeyPress(key string) error {
	ks, ok := linuxKeyTable[strings.ToLower(key)]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", key))
	}
	C.gamepadhid_key(C.uint(ks), 1)
	C.gamepadhid_key(C.uint(ks), 0)
	return nil
}

func (e *linuxEmitter) KeyCombo(keys []string) error {
	keysyms := make([]uint, 0, len(keys))
	for _, k := range keys {
		ks, ok := linuxKeyTable[strings.ToLower(k)]
		if !ok {
			return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", k))
		}
		keysyms = append(keysyms, ks)
	}
	for _, ks := range keysyms {
		C.gamepadhid_key(C.uint(ks), 1)
	}
	for i := len(keysyms) - 1; i >= 0; i-- {
		C.gamepadhid_key(C.uint(keysyms[i]), 0)
	}
	return nil
}

func (e *linuxEmitter) TypeText(text string) error {
	for _, r := range text {
		if err := e.KeyPress(string(r)); err != nil {
			continue
		}
	}
	return nil
}

func (e *linuxEmitter) Close() error {
	C.gamepadhid_destroy()
	return nil
}

func linuxButtonCode(button MouseButton) int {
	switch button {
	case MouseRight:
		return xButtonRight
	case MouseMiddle:
		return xButtonMiddle
	default:
		return xButtonLeft
	}
}

var _ Emitter = (*linuxEmitter)(nil)
