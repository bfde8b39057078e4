// Package emitter synthesizes OS-level pointer, scroll, key, and click
// events from dispatched Actions, behind one interface with a build-tag
// selected backend per target OS.
package emitter

import "time"

// Emitter is the platform-abstract output contract the Executor drives.
// Every method returns a *gamepadhiderr.Error (EmitterUnavailable,
// EmitterRejected, or InvalidKey for a key name the backend cannot map)
// on failure — never a bare error — so the Executor can
// classify without type assertions.
type Emitter interface {
	MoveCursor(dx, dy int) error
	SetCursorPosition(x, y int) error
	Click(button MouseButton) error
	DoubleClick(button MouseButton) error
	Scroll(vertical, horizontal int) error
	KeyPress(key string) error
	KeyCombo(keys []string) error
	TypeText(text string) error

	// SetVolume adjusts system volume by delta (signed), clamping the
	// resulting level to 0..100 before emission.
	SetVolume(delta int) error
	// SetBrightness adjusts display brightness by delta (signed),
	// clamping the resulting level to 0..100 before emission.
	SetBrightness(delta int) error
	// TakeScreenshot triggers the platform's native screenshot capture.
	TakeScreenshot() error
	// PlayPauseMedia toggles the system media player's play/pause state.
	PlayPauseMedia() error

	Close() error
}

// MouseButton discriminates which button Click/DoubleClick synthesize.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// CanonicalKeys lists every key name the emitter alphabet accepts,
// independent of which platform backend is compiled in. Each backend's
// keyTable is validated against this set in its init.
var CanonicalKeys = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"escape", "tab", "space", "enter", "backspace", "delete",
	"up", "down", "left", "right", "home", "end", "pageup", "pagedown",
	"shift", "ctrl", "alt", "cmd", "meta",
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
	"mediaplaypause", "medianext", "mediaprev", "mediastop",
}

// notchUnits is the largest delta a single scroll post carries; larger
// magnitudes are split into several notch-sized posts.
const notchUnits = 120

// notchInterval is the pacing delay between successive scroll-notch
// posts when a magnitude decomposes into more than one notch.
const notchInterval = 3 * time.Millisecond

// NotchUnits returns the per-notch scroll delta unit. The Input Loop's
// axis translation does not use it.
func NotchUnits() int { return notchUnits }

// emitterSleep is time.Sleep, overridable in tests so pacing logic can
// be asserted without actually waiting.
var emitterSleep = time.Sleep

// ClampLevel bounds a volume/brightness level to the 0..100 range every
// backend must emit within.
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// DecomposeScrollNotches splits a signed scroll magnitude into a series
// of same-signed steps, each at most notchUnits, so a single large
// scroll gesture reaches the OS as repeated notch-sized posts instead of
// one oversized event.
func DecomposeScrollNotches(magnitude int) []int {
	if magnitude == 0 {
		return nil
	}
	sign := 1
	if magnitude < 0 {
		sign = -1
		magnitude = -magnitude
	}
	notches := make([]int, 0, magnitude/notchUnits+1)
	for magnitude > 0 {
		step := notchUnits
		if magnitude < step {
			step = magnitude
		}
		notches = append(notches, sign*step)
		magnitude -= step
	}
	return notches
}

// PostScrollNotches decomposes magnitude via DecomposeScrollNotches and
// invokes post once per notch, pacing successive posts notchInterval
// apart so the OS sees smooth scrolling rather than one large jump.
func PostScrollNotches(magnitude int, post func(delta int) error) error {
	notches := DecomposeScrollNotches(magnitude)
	for i, n := range notches {
		if i > 0 {
			emitterSleep(notchInterval)
		}
		if err := post(n); err != nil {
			return err
		}
	}
	return nil
}

// doubleClickHold is how long each of the two clicks in a DoubleClick is
// held down before release; doubleClickGap is the pause between the
// first release and the second press.
const (
	doubleClickHold = 10 * time.Millisecond
	doubleClickGap  = 20 * time.Millisecond
)

// PerformDoubleClick presses, holds, and releases twice with the
// canonical double-click timing (10 ms hold, 20 ms gap), shared by every
// backend so the timing is identical regardless of platform.
func PerformDoubleClick(press, release func() error) error {
	if err := press(); err != nil {
		return err
	}
	emitterSleep(doubleClickHold)
	if err := release(); err != nil {
		return err
	}
	emitterSleep(doubleClickGap)
	if err := press(); err != nil {
		return err
	}
	emitterSleep(doubleClickHold)
	return release()
}
