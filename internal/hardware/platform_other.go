//go:build !windows

package hardware

import "github.com/gamepadhid/core/internal/logger"

// NewPlatformSource returns the GLFW backend, the only one compiled on
// non-Windows targets.
func NewPlatformSource(log logger.Interface) (Source, error) {
	return NewGLFWSource(log)
}
