//go:build darwin

package emitter

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static int gamepadhid_buttons_down = 0;

static void gamepadhid_move_abs(int x, int y) {
	CGEventType evtype;
	CGMouseButton button;
	if (gamepadhid_buttons_down & 1) {
		evtype = kCGEventLeftMouseDragged;
		button = kCGMouseButtonLeft;
	} else {
		evtype = kCGEventMouseMoved;
		button = kCGMouseButtonLeft;
	}
	CGEventRef ev = CGEventCreateMouseEvent(NULL, evtype, CGPointMake(x, y), button);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
}

static void gamepadhid_move_rel(int dx, int dy) {
	CGEventRef pos = CGEventCreate(NULL);
	CGPoint cur = CGEventGetLocation(pos);
	CFRelease(pos);
	gamepadhid_move_abs((int)(cur.x + dx), (int)(cur.y + dy));
}

static void gamepadhid_set_pos(int x, int y) {
	gamepadhid_move_abs(x, y);
}

static void gamepadhid_mouse_button(int button, int press) {
	CGEventRef pos = CGEventCreate(NULL);
	CGPoint cur = CGEventGetLocation(pos);
	CFRelease(pos);

	CGEventType evtype;
	CGMouseButton cgbutton;
	int mask;
	if (button == 0) {
		cgbutton = kCGMouseButtonLeft;
		evtype = press ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
		mask = 1;
	} else if (button == 1) {
		cgbutton = kCGMouseButtonRight;
		evtype = press ? kCGEventRightMouseDown : kCGEventRightMouseUp;
		mask = 4;
	} else {
		cgbutton = kCGMouseButtonCenter;
		evtype = press ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
		mask = 2;
	}
	if (press) {
		gamepadhid_buttons_down |= mask;
	} else {
		gamepadhid_buttons_down &= ~mask;
	}
	CGEventRef ev = CGEventCreateMouseEvent(NULL, evtype, cur, cgbutton);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
}

static void gamepadhid_scroll(int vertical, int horizontal) {
	CGEventRef ev = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel, 2, vertical, horizontal);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
}

static void gamepadhid_key(int keycode, int press) {
	CGEventRef ev = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)keycode, press);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
}
*/
import "C"

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gamepadhid/core/internal/gamepadhiderr"
)

// darwinEmitter synthesizes events by posting CGEvents into the HID
// event tap, mirroring the cgo CoreGraphics idiom used for remote-input
// injection. volumeLevel/brightnessLevel track the last level this
// emitter drove the media keys to, since CGEvent has no way to read the
// OS's actual current level back.
type darwinEmitter struct {
	mu              sync.Mutex
	volumeLevel     int
	brightnessLevel int
}

// NewPlatformEmitter returns the Darwin CoreGraphics-backed Emitter.
func NewPlatformEmitter() (Emitter, error) {
	return &darwinEmitter{volumeLevel: 50, brightnessLevel: 50}, nil
}

func (d *darwinEmitter) MoveCursor(dx, dy int) error {
	C.gamepadhid_move_rel(C.int(dx), C.int(dy))
	return nil
}

func (d *darwinEmitter) SetCursorPosition(x, y int) error {
	C.gamepadhid_set_pos(C.int(x), C.int(y))
	return nil
}

func (d *darwinEmitter) Click(button MouseButton) error {
	cgButton := darwinButtonCode(button)
	C.gamepadhid_mouse_button(C.int(cgButton), 1)
	C.gamepadhid_mouse_button(C.int(cgButton), 0)
	return nil
}

func (d *darwinEmitter) DoubleClick(button MouseButton) error {
	cgButton := darwinButtonCode(button)
	return PerformDoubleClick(
		func() error { C.gamepadhid_mouse_button(C.int(cgButton), 1); return nil },
		func() error { C.gamepadhid_mouse_button(C.int(cgButton), 0); return nil },
	)
}

func (d *darwinEmitter) Scroll(vertical, horizontal int) error {
	if err := PostScrollNotches(vertical, func(delta int) error {
		C.gamepadhid_scroll(C.int(delta), 0)
		return nil
	}); err != nil {
		return err
	}
	return PostScrollNotches(horizontal, func(delta int) error {
		C.gamepadhid_scroll(0, C.int(delta))
		return nil
	})
}

// SetVolume presses the media volume-up/down key enough times to move
// the tracked level by delta, clamped to 0..100.
func (d *darwinEmitter) SetVolume(delta int) error {
	return d.adjustLevel(&d.volumeLevel, delta, "volumeup", "volumedown")
}

// SetBrightness presses the media brightness-up/down key enough times
// to move the tracked level by delta, clamped to 0..100.
func (d *darwinEmitter) SetBrightness(delta int) error {
	return d.adjustLevel(&d.brightnessLevel, delta, "brightnessup", "brightnessdown")
}

func (d *darwinEmitter) adjustLevel(level *int, delta int, upKey, downKey string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := ClampLevel(*level + delta)
	steps := target - *level
	key := upKey
	if steps < 0 {
		key = downKey
		steps = -steps
	}
	kc, ok := darwinKeyTable[key]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, "unknown key: "+key)
	}
	for i := 0; i < steps; i++ {
		if i > 0 {
			emitterSleep(5 * time.Millisecond)
		}
		C.gamepadhid_key(C.int(kc), 1)
		C.gamepadhid_key(C.int(kc), 0)
	}
	*level = target
	return nil
}

// TakeScreenshot sends the native macOS screenshot shortcut
// (Cmd+Shift+3), capturing the full screen to disk.
func (d *darwinEmitter) TakeScreenshot() error {
	return d.KeyCombo([]string{"cmd", "shift", "3"})
}

// PlayPauseMedia presses the canonical media play/pause key already
// mapped in darwinKeyTable.
func (d *darwinEmitter) PlayPauseMedia() error {
	return d.KeyPress("mediaplaypause")
}

func (d *darwinEmitter) KeyPress(key string) error {
	kc, ok := darwinKeyTable[strings.ToLower(key)]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", key))
	}
	C.gamepadhid_key(C.int(kc), 1)
	C.gamepadhid_key(C.int(kc), 0)
	return nil
}

func (d *darwinEmitter) KeyCombo(keys []string) error {
	codes := make([]uint16, 0, len(keys))
	for _, k := range keys {
		kc, ok := darwinKeyTable[strings.ToLower(k)]
		if !ok {
			return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", k))
		}
		codes = append(codes, kc)
	}
	for _, kc := range codes {
		C.gamepadhid_key(C.int(kc), 1)
	}
	for i := len(codes) - 1; i >= 0; i-- {
		C.gamepadhid_key(C.int(codes[i]), 0)
	}
	return nil
}

func (e *darwinEmitter) TypeText(text string) error {
	for _, r := range text {
		if err := e.KeyPress(string(r)); err != nil {
			continue
		}
	}
	return nil
}

func (d *darwinEmitter) Close() error { return nil }

func darwinButtonCode(button MouseButton) int {
	switch button {
	case MouseRight:
		return 1
	case MouseMiddle:
		return 2
	default:
		return 0
	}
}

var _ Emitter = (*darwinEmitter)(nil)
