// Package modemgr tracks which of Normal, Motion, or Hotkey mode is
// active and debounces rapid switches between them.
package modemgr

import (
	"sync"

	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

// Manager owns the current ModeState and enforces the minimum interval
// between switches.
type Manager struct {
	mu           sync.Mutex
	state        models.ModeState
	lastSwitchMs int64
	switched     bool
	debounceMs   int64
	log          logger.Interface
}

// New returns a Manager starting in Normal mode, debouncing switches that
// land within debounceMs of the previous one.
func New(debounceMs int64, log logger.Interface) *Manager {
	return &Manager{
		state:      models.ModeState{Current: models.ModeNormal, Previous: models.ModeNormal},
		debounceMs: debounceMs,
		log:        log,
	}
}

// Current returns the active mode.
func (m *Manager) Current() models.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Current
}

// Previous returns the mode active before the last switch.
func (m *Manager) Previous() models.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Previous
}

// IsTransitioning reports whether a switch has been accepted since the
// last ClearTransitioning call; the Input Loop calls ClearTransitioning at
// the end of every tick.
func (m *Manager) IsTransitioning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Transitioning
}

// ClearTransitioning marks the pending switch as having been observed.
func (m *Manager) ClearTransitioning() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Transitioning = false
}

// State returns a copy of the full ModeState, for the command surface.
func (m *Manager) State() models.ModeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Switch moves to newMode, reporting whether the switch actually
// happened. A switch is rejected when it targets the current mode or
// when it arrives inside the debounce window of the last accepted
// switch.
func (m *Manager) Switch(newMode models.Mode, nowMs int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.switchLocked(newMode, nowMs)
}

func (m *Manager) switchLocked(newMode models.Mode, nowMs int64) bool {
	if m.switched && nowMs-m.lastSwitchMs < m.debounceMs {
		return false
	}
	if newMode == m.state.Current {
		return false
	}

	if m.log != nil {
		m.log.Info("mode switch: " + m.state.Current.String() + " -> " + newMode.String())
	}

	m.state.Previous = m.state.Current
	m.state.Current = newMode
	m.state.ActivatedAtMs = nowMs
	m.state.Transitioning = true
	m.lastSwitchMs = nowMs
	m.switched = true
	return true
}

// Revert switches back to the previous mode, if it differs from the
// current one.
func (m *Manager) Revert(nowMs int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Previous == m.state.Current {
		return false
	}
	return m.switchLocked(m.state.Previous, nowMs)
}

// ResetToNormal forces a hard reset to Normal mode, ignoring the debounce
// window.
func (m *Manager) ResetToNormal(nowMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Current == models.ModeNormal {
		return
	}
	m.switched = false
	m.switchLocked(models.ModeNormal, nowMs)
}

// TimeInModeMs returns how long, in milliseconds, the current mode has
// been active as of nowMs.
func (m *Manager) TimeInModeMs(nowMs int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return nowMs - m.state.ActivatedAtMs
}
