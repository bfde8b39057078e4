// Package manager wires the mode registries, mode manager, executor,
// emitter, profile store, and input loop into the single command surface
// a host process drives.
package manager

import (
	"sort"
	"sync"

	"github.com/apache/arrow/go/arrow/array"

	"github.com/gamepadhid/core/internal/bindings"
	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/diag"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/executor"
	"github.com/gamepadhid/core/internal/gamepadhiderr"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/inputloop"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/modemgr"
	"github.com/gamepadhid/core/internal/profilestore"
	"github.com/gamepadhid/core/internal/registry"
	"github.com/gamepadhid/core/pkg/models"
)

// Manager is the process-lifetime object a host embeds: one per running
// instance, owning the Input Loop and fronting every command-surface
// operation. Its mu protects only the `running` flag; the profile cache
// has its own profilesMu, and the gamepads map and mode state each carry
// their own fine-grained lock one level down.
type Manager struct {
	mu      sync.Mutex
	running bool

	store profilestore.Store
	log   logger.Interface

	profilesMu sync.RWMutex
	profiles   map[string]models.Profile
	activeName string

	registries map[models.Mode]*registry.Registry
	modes      *modemgr.Manager
	loop       *inputloop.Loop

	ringMu   sync.Mutex
	ring     *diag.ArrowRingBuffer
	external diag.EventLogger
}

// New builds a Manager backed by source (hardware), emit (the platform OS
// emitter), and store (profile persistence). It loads the cached profile
// set and active profile before returning so the command surface is
// immediately queryable even before Start.
func New(source hardware.Source, emit emitter.Emitter, store profilestore.Store, tunables config.Tunables, log logger.Interface) (*Manager, error) {
	profiles, err := store.List()
	if err != nil {
		return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "list profiles", err)
	}
	cache := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		cache[p.Name] = p
	}
	if _, ok := cache[models.DefaultProfileName]; !ok {
		def := models.DefaultProfile()
		cache[def.Name] = def
		if err := store.Save(def); err != nil {
			return nil, gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "seed default profile", err)
		}
	}

	active, err := store.ActiveName()
	if err != nil || active == "" {
		active = models.DefaultProfileName
	}
	if _, ok := cache[active]; !ok {
		active = models.DefaultProfileName
	}

	registries := bindings.BuildDefaultRegistries()
	bindings.ApplyProfileOverlay(registries[models.ModeHotkey], cache[active])

	modes := modemgr.New(tunables.ModeSwitchDebounceMs, log)
	exec := executor.New(emit, log)
	loop := inputloop.New(source, registries, modes, exec, emit, tunables, log)
	loop.SetProfile(cache[active])

	return &Manager{
		store:      store,
		log:        log,
		profiles:   cache,
		activeName: active,
		registries: registries,
		modes:      modes,
		loop:       loop,
	}, nil
}

// Start begins the Input Loop in its own goroutine. Fails with
// AlreadyRunning if already started.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return gamepadhiderr.New(gamepadhiderr.KindAlreadyRunning, "input loop already running")
	}
	m.running = true
	go m.loop.Run()
	return nil
}

// Stop requests termination of the Input Loop and blocks until it has
// exited. Idempotent: calling Stop when not running is a no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false
	m.loop.Stop()
	return nil
}

// IsRunning reports whether the Input Loop is currently active.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// GetGamepads returns every connected gamepad's snapshot, sorted by index.
func (m *Manager) GetGamepads() []models.GamepadSnapshot {
	snaps := m.loop.Snapshot()
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Index < snaps[j].Index })
	return snaps
}

// GetGamepad returns the snapshot for one index, if connected.
func (m *Manager) GetGamepad(index int) (models.GamepadSnapshot, bool) {
	for _, s := range m.loop.Snapshot() {
		if s.Index == index {
			return s, true
		}
	}
	return models.GamepadSnapshot{}, false
}

// GetMode returns the currently active mode.
func (m *Manager) GetMode() models.Mode {
	return m.modes.Current()
}

// SetMode forces a mode switch outside the normal Chord-driven path, for
// a host control surface (a console, a UI button) rather than a gamepad
// binding. Subject to the same debounce window as a binding-driven
// switch.
func (m *Manager) SetMode(mode models.Mode) error {
	if !m.modes.Switch(mode, models.NowMs()) {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, "mode switch rejected: same mode or inside debounce window")
	}
	return nil
}

// GetProfiles returns the cached profile set, sorted by name, with
// "Default" always first.
func (m *Manager) GetProfiles() []models.Profile {
	m.profilesMu.RLock()
	defer m.profilesMu.RUnlock()

	out := make([]models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == models.DefaultProfileName {
			return true
		}
		if out[j].Name == models.DefaultProfileName {
			return false
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// GetActiveProfileName returns the name of the currently active profile.
func (m *Manager) GetActiveProfileName() string {
	m.profilesMu.RLock()
	defer m.profilesMu.RUnlock()
	return m.activeName
}

// SaveProfile clamps p's tunables, persists it, updates the cache, and —
// if p is the active profile — pushes the new tunables into the Input
// Loop and rebuilds the Hotkey registry's profile overlay.
func (m *Manager) SaveProfile(p models.Profile) error {
	p.ClampTunables()
	if err := m.store.Save(p); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "save profile", err)
	}

	m.profilesMu.Lock()
	m.profiles[p.Name] = p
	isActive := p.Name == m.activeName
	m.profilesMu.Unlock()

	if isActive {
		m.loop.SetProfile(p)
		m.registries[models.ModeHotkey].Clear()
		bindings.ApplyProfileOverlay(m.registries[models.ModeHotkey], p)
	}
	return nil
}

// DeleteProfile removes a non-Default profile. Deleting the active
// profile falls back to Default.
func (m *Manager) DeleteProfile(name string) error {
	if name == models.DefaultProfileName {
		return gamepadhiderr.New(gamepadhiderr.KindProtectedProfile, "cannot delete the Default profile")
	}
	if err := m.store.Delete(name); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "delete profile", err)
	}

	m.profilesMu.Lock()
	delete(m.profiles, name)
	fellBack := m.activeName == name
	if fellBack {
		m.activeName = models.DefaultProfileName
	}
	active := m.profiles[m.activeName]
	m.profilesMu.Unlock()

	if fellBack {
		if err := m.store.SetActiveName(models.DefaultProfileName); err != nil {
			return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "reset active profile", err)
		}
		m.loop.SetProfile(active)
		m.registries[models.ModeHotkey].Clear()
		bindings.ApplyProfileOverlay(m.registries[models.ModeHotkey], active)
	}
	return nil
}

// SetActiveProfile switches the active profile by name, pushing its
// tunables into the Input Loop and rebuilding the Hotkey overlay.
func (m *Manager) SetActiveProfile(name string) error {
	m.profilesMu.Lock()
	p, ok := m.profiles[name]
	if !ok {
		m.profilesMu.Unlock()
		return gamepadhiderr.New(gamepadhiderr.KindProfileNotFound, "profile not found: "+name)
	}
	m.activeName = name
	m.profilesMu.Unlock()

	if err := m.store.SetActiveName(name); err != nil {
		return gamepadhiderr.Wrap(gamepadhiderr.KindStoreFailure, "set active profile", err)
	}
	m.loop.SetProfile(p)
	m.registries[models.ModeHotkey].Clear()
	bindings.ApplyProfileOverlay(m.registries[models.ModeHotkey], p)
	return nil
}

// KeybindingView is the command-surface-facing shape of a binding: a
// human-readable pattern label and the action it fires, for
// get_keybindings.
type KeybindingView struct {
	Pattern     string `json:"pattern"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Enabled     bool   `json:"enabled"`
}

// GetKeybindings returns every binding active in mode, in resolution
// precedence order.
func (m *Manager) GetKeybindings(mode models.Mode) []KeybindingView {
	reg, ok := m.registries[mode]
	if !ok {
		return nil
	}
	all := reg.All()
	out := make([]KeybindingView, len(all))
	for i, b := range all {
		out[i] = KeybindingView{
			Pattern:     b.Pattern.String(),
			Action:      b.Action.String(),
			Description: b.Description,
			Priority:    int(b.Priority),
			Enabled:     b.Enabled,
		}
	}
	return out
}

// SaveKeybindings replaces mode's registry contents with list. When mode
// is Hotkey, the new bindings are also persisted onto the active
// profile's HotkeyBindings so they survive a restart.
func (m *Manager) SaveKeybindings(mode models.Mode, list []models.Binding) error {
	reg, ok := m.registries[mode]
	if !ok {
		return gamepadhiderr.New(gamepadhiderr.KindInvalidKey, "unknown mode")
	}

	reg.Clear()
	for _, b := range list {
		b.Mode = mode
		reg.Add(b)
	}

	if mode != models.ModeHotkey {
		return nil
	}

	m.profilesMu.Lock()
	p := m.profiles[m.activeName]
	p.HotkeyBindings = list
	m.profiles[m.activeName] = p
	m.profilesMu.Unlock()

	return m.SaveProfile(p)
}

// Settings is the tunable subset of a Profile the command surface's
// get_settings/save_settings round-trip.
type Settings struct {
	Sensitivity      float64 `json:"sensitivity"`
	DeadZone         float64 `json:"deadZone"`
	Acceleration     float64 `json:"acceleration"`
	ScrollSpeed      float64 `json:"scrollSpeed"`
	ScrollReverseV   bool    `json:"scrollReverseVertical"`
	ScrollReverseH   bool    `json:"scrollReverseHorizontal"`
	VibrationEnabled bool    `json:"vibrationEnabled"`
}

// GetSettings returns the active profile's tunable fields.
func (m *Manager) GetSettings() Settings {
	m.profilesMu.RLock()
	p := m.profiles[m.activeName]
	m.profilesMu.RUnlock()
	return settingsFromProfile(p)
}

// SaveSettings applies s onto the active profile and persists it.
func (m *Manager) SaveSettings(s Settings) error {
	m.profilesMu.RLock()
	p := m.profiles[m.activeName]
	m.profilesMu.RUnlock()

	p.Sensitivity = s.Sensitivity
	p.DeadZone = s.DeadZone
	p.Acceleration = s.Acceleration
	p.Scroll.Speed = s.ScrollSpeed
	p.Scroll.ReverseVertical = s.ScrollReverseV
	p.Scroll.ReverseHorizontal = s.ScrollReverseH
	p.Features.VibrationEnabled = s.VibrationEnabled

	return m.SaveProfile(p)
}

func settingsFromProfile(p models.Profile) Settings {
	return Settings{
		Sensitivity:      p.Sensitivity,
		DeadZone:         p.DeadZone,
		Acceleration:     p.Acceleration,
		ScrollSpeed:      p.Scroll.Speed,
		ScrollReverseV:   p.Scroll.ReverseVertical,
		ScrollReverseH:   p.Scroll.ReverseHorizontal,
		VibrationEnabled: p.Features.VibrationEnabled,
	}
}

// SetEventLogger installs the diagnostics sink the Input Loop logs
// dispatch outcomes and mode switches through. If an events ring
// buffer is already enabled, d is fanned out alongside it rather than
// replacing it.
func (m *Manager) SetEventLogger(d diag.EventLogger) {
	m.ringMu.Lock()
	m.external = d
	ring := m.ring
	m.ringMu.Unlock()
	m.installEventLogger(ring, d)
}

// EnableRecentEventsBuffer installs an in-memory ring buffer of the last
// capacity diagnostics events, backing the supplemental get_recent_events
// command. Safe to call again to resize. Any sink installed via
// SetEventLogger keeps receiving events alongside the ring buffer.
func (m *Manager) EnableRecentEventsBuffer(capacity int) {
	ring := diag.NewArrowRingBuffer(capacity)
	m.ringMu.Lock()
	m.ring = ring
	external := m.external
	m.ringMu.Unlock()
	m.installEventLogger(ring, external)
}

// installEventLogger pushes whichever of ring/external are non-nil into
// the Input Loop, fanning out through a MultiLogger when both are set.
func (m *Manager) installEventLogger(ring *diag.ArrowRingBuffer, external diag.EventLogger) {
	switch {
	case ring != nil && external != nil:
		m.loop.SetEventLogger(diag.NewMultiLogger(ring, external))
	case ring != nil:
		m.loop.SetEventLogger(ring)
	case external != nil:
		m.loop.SetEventLogger(external)
	}
}

// GetRecentEvents returns the buffered diagnostics events as an Arrow
// record batch. Callers must Release the returned record. Fails with
// NotRunning if EnableRecentEventsBuffer was never called.
func (m *Manager) GetRecentEvents() (array.Record, error) {
	m.ringMu.Lock()
	ring := m.ring
	m.ringMu.Unlock()
	if ring == nil {
		return nil, gamepadhiderr.New(gamepadhiderr.KindNotRunning, "recent-events buffer not enabled")
	}
	return ring.Snapshot()
}
