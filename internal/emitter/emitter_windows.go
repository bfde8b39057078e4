//go:build windows

package emitter

import (
	"fmt"
	"strings"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/gamepadhid/core/internal/gamepadhiderr"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procGetSysMetric = user32.NewProc("GetSystemMetrics")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventfMove      = 0x0001
	mouseEventfLeftDown  = 0x0002
	mouseEventfLeftUp    = 0x0004
	mouseEventfRightDown = 0x0008
	mouseEventfRightUp   = 0x0010
	mouseEventfMidDown   = 0x0020
	mouseEventfMidUp     = 0x0040
	mouseEventfWheel     = 0x0800
	mouseEventfHWheel    = 0x1000

	keyEventfKeyUp       = 0x0002
	keyEventfExtendedKey = 0x0001

	smCXScreen = 0
	smCYScreen = 1
)

type mouseInput struct {
	dx, dy      int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type rawInput struct {
	inputType uint32
	padding   [4]byte
	mi        mouseInput
}

// windowsEmitter synthesizes events via user32.dll SendInput, the same
// raw-LazyDLL-procedure idiom the hardware layer uses for XInputGetState.
// volumeLevel/brightnessLevel track the last level this emitter drove
// the hardware keys to, since SendInput has no way to query the OS's
// actual current level back.
type windowsEmitter struct {
	mu              sync.Mutex
	volumeLevel     int
	brightnessLevel int
}

// NewPlatformEmitter returns the Windows SendInput-backed Emitter.
func NewPlatformEmitter() (Emitter, error) {
	return &windowsEmitter{volumeLevel: 50, brightnessLevel: 50}, nil
}

func (e *windowsEmitter) MoveCursor(dx, dy int) error {
	inp := rawInput{inputType: inputMouse}
	inp.mi.dx = int32(dx)
	inp.mi.dy = int32(dy)
	inp.mi.dwFlags = mouseEventfMove
	return sendRaw(inp, "move cursor")
}

func (e *windowsEmitter) SetCursorPosition(x, y int) error {
	ret, _, _ := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ret == 0 {
		return gamepadhiderr.New(gamepadhiderr.KindEmitterRejected, "SetCursorPos failed")
	}
	return nil
}

func (e *windowsEmitter) Click(button MouseButton) error {
	down, up := mouseButtonFlags(button)
	if err := sendMouseFlag(down); err != nil {
		return err
	}
	return sendMouseFlag(up)
}

func (e *windowsEmitter) DoubleClick(button MouseButton) error {
	down, up := mouseButtonFlags(button)
	return PerformDoubleClick(
		func() error { return sendMouseFlag(down) },
		func() error { return sendMouseFlag(up) },
	)
}

func (e *windowsEmitter) Scroll(vertical, horizontal int) error {
	if err := PostScrollNotches(vertical, func(delta int) error {
		inp := rawInput{inputType: inputMouse}
		inp.mi.dwFlags = mouseEventfWheel
		inp.mi.mouseData = uint32(int32(delta))
		return sendRaw(inp, "vertical scroll")
	}); err != nil {
		return err
	}
	return PostScrollNotches(horizontal, func(delta int) error {
		inp := rawInput{inputType: inputMouse}
		inp.mi.dwFlags = mouseEventfHWheel
		inp.mi.mouseData = uint32(int32(delta))
		return sendRaw(inp, "horizontal scroll")
	})
}

// SetVolume presses the hardware volume-up/down key enough times to
// move the tracked level by delta, clamped to 0..100.
func (e *windowsEmitter) SetVolume(delta int) error {
	return e.adjustLevel(&e.volumeLevel, delta, "volumeup", "volumedown")
}

// SetBrightness presses the hardware brightness-up/down key enough
// times to move the tracked level by delta, clamped to 0..100.
func (e *windowsEmitter) SetBrightness(delta int) error {
	return e.adjustLevel(&e.brightnessLevel, delta, "brightnessup", "brightnessdown")
}

func (e *windowsEmitter) adjustLevel(level *int, delta int, upKey, downKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := ClampLevel(*level + delta)
	steps := target - *level
	key := upKey
	if steps < 0 {
		key = downKey
		steps = -steps
	}
	vk, ok := windowsKeyTable[key]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, "unknown key: "+key)
	}
	for i := 0; i < steps; i++ {
		if i > 0 {
			emitterSleep(5 * time.Millisecond)
		}
		if err := sendKey(vk, false); err != nil {
			return err
		}
		if err := sendKey(vk, true); err != nil {
			return err
		}
	}
	*level = target
	return nil
}

const vkSnapshot = 0x2C

// TakeScreenshot presses PrintScreen, which the OS captures to the
// clipboard without any window-handle plumbing from here.
func (e *windowsEmitter) TakeScreenshot() error {
	if err := sendKey(vkSnapshot, false); err != nil {
		return err
	}
	return sendKey(vkSnapshot, true)
}

// PlayPauseMedia presses the canonical media play/pause key already
// mapped in windowsKeyTable.
func (e *windowsEmitter) PlayPauseMedia() error {
	return e.KeyPress("mediaplaypause")
}

func (e *windowsEmitter) KeyPress(key string) error {
	vk, ok := windowsKeyTable[strings.ToLower(key)]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", key))
	}
	if err := sendKey(vk, false); err != nil {
		return err
	}
	return sendKey(vk, true)
}

func (e *windowsEmitter) KeyCombo(keys []string) error {
	vks := make([]uint16, 0, len(keys))
	for _, k := range keys {
		vk, ok := windowsKeyTable[strings.ToLower(k)]
		if !ok {
			return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, fmt.Sprintf("unknown key: %s", k))
		}
		vks = append(vks, vk)
	}
	for _, vk := range vks {
		if err := sendKey(vk, false); err != nil {
			return err
		}
	}
	for i := len(vks) - 1; i >= 0; i-- {
		if err := sendKey(vks[i], true); err != nil {
			return err
		}
	}
	return nil
}

func (e *windowsEmitter) TypeText(text string) error {
	for _, r := range text {
		vk, ok := windowsKeyTable[strings.ToLower(string(r))]
		if !ok {
			continue
		}
		if err := sendKey(vk, false); err != nil {
			return err
		}
		if err := sendKey(vk, true); err != nil {
			return err
		}
	}
	return nil
}

func (e *windowsEmitter) Close() error { return nil }

func sendRaw(inp rawInput, label string) error {
	ret, _, _ := procSendInput.Call(1, uintptr(unsafe.Pointer(&inp)), unsafe.Sizeof(inp))
	if ret == 0 {
		return gamepadhiderr.New(gamepadhiderr.KindEmitterRejected, "SendInput failed: "+label)
	}
	return nil
}

func sendMouseFlag(flag uint32) error {
	inp := rawInput{inputType: inputMouse}
	inp.mi.dwFlags = flag
	return sendRaw(inp, "mouse button")
}

func mouseButtonFlags(button MouseButton) (down, up uint32) {
	switch button {
	case MouseRight:
		return mouseEventfRightDown, mouseEventfRightUp
	case MouseMiddle:
		return mouseEventfMidDown, mouseEventfMidUp
	default:
		return mouseEventfLeftDown, mouseEventfLeftUp
	}
}

func sendKey(vk uint16, up bool) error {
	inp := rawInput{inputType: inputKeyboard}
	ki := (*keybdInput)(unsafe.Pointer(&inp.mi))
	ki.wVk = vk
	if up {
		ki.dwFlags = keyEventfKeyUp
	}
	ret, _, _ := procSendInput.Call(1, uintptr(unsafe.Pointer(&inp)), unsafe.Sizeof(inp))
	if ret == 0 {
		return gamepadhiderr.New(gamepadhiderr.KindEmitterRejected, fmt.Sprintf("SendInput failed for vk=0x%X", vk))
	}
	return nil
}

var _ Emitter = (*windowsEmitter)(nil)
