//go:build !windows && !darwin && !linux

package emitter

import "github.com/gamepadhid/core/internal/gamepadhiderr"

// stubEmitter backs platforms with no compiled synthesis backend; every
// call reports EmitterUnavailable so the package still satisfies the
// Emitter interface and callers get a typed error rather than a panic.
type stubEmitter struct{}

// NewPlatformEmitter returns the Emitter backend for the running GOOS.
// On unsupported platforms it returns a nil Emitter and an
// EmitterUnavailable error.
func NewPlatformEmitter() (Emitter, error) {
	return nil, unavailable()
}

func unavailable() error {
	return gamepadhiderr.New(gamepadhiderr.KindEmitterUnavailable, "no emitter backend compiled for this platform")
}

func (stubEmitter) MoveCursor(dx, dy int) error          { return unavailable() }
func (stubEmitter) SetCursorPosition(x, y int) error     { return unavailable() }
func (stubEmitter) Click(button MouseButton) error       { return unavailable() }
func (stubEmitter) DoubleClick(button MouseButton) error { return unavailable() }
func (stubEmitter) Scroll(vertical, horizontal int) error { return unavailable() }
func (stubEmitter) KeyPress(key string) error             { return unavailable() }
func (stubEmitter) KeyCombo(keys []string) error          { return unavailable() }
func (stubEmitter) TypeText(text string) error            { return unavailable() }
func (stubEmitter) SetVolume(delta int) error             { return unavailable() }
func (stubEmitter) SetBrightness(delta int) error         { return unavailable() }
func (stubEmitter) TakeScreenshot() error                 { return unavailable() }
func (stubEmitter) PlayPauseMedia() error                 { return unavailable() }
func (stubEmitter) Close() error                          { return nil }

var _ Emitter = stubEmitter{}
