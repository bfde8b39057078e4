//go:build windows

package hardware

import "github.com/gamepadhid/core/internal/logger"

// NewPlatformSource returns the XInput backend, lower latency on Windows
// than GLFW's joystick polling for Xbox-pattern controllers.
func NewPlatformSource(log logger.Interface) (Source, error) {
	return NewXInputSource(log), nil
}
