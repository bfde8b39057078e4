package models

import "github.com/google/uuid"

// DefaultProfileName is the seeded profile name the core always carries
// and that delete_profile refuses to remove.
const DefaultProfileName = "Default"

// FeatureFlags are boolean toggles a Profile carries. VibrationEnabled is
// the only haptic control in scope.
type FeatureFlags struct {
	VibrationEnabled bool `json:"vibrationEnabled"`
}

// ScrollSettings tunes the RightStick-to-scroll translation.
type ScrollSettings struct {
	Speed             float64 `json:"speed"`
	ReverseVertical   bool    `json:"reverseVertical"`
	ReverseHorizontal bool    `json:"reverseHorizontal"`
}

// Profile is a named, persisted set of tunables and remaps. One profile
// is always active; "Default" is seeded and cannot be deleted.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`

	Sensitivity  float64 `json:"sensitivity"`  // [0.5, 3.0]
	DeadZone     float64 `json:"deadZone"`     // [0.0, 0.3]
	Acceleration float64 `json:"acceleration"` // [0.8, 2.0]

	// ButtonMap/AxisMap/DPadMapping hold host-editable label remaps
	// (canonical button/axis name -> display or alternate name); the core
	// treats them as opaque pass-through data for the command surface.
	ButtonMap   map[string]string `json:"buttonMap"`
	AxisMap     map[string]string `json:"axisMap"`
	DPadMapping map[string]string `json:"dpadMapping"`

	Features FeatureFlags   `json:"features"`
	Scroll   ScrollSettings `json:"scroll"`

	// HotkeyBindings is the profile-defined overlay for Hotkey mode:
	// every binding not covered by the built-in defaults.
	HotkeyBindings []Binding `json:"hotkeyBindings"`
}

// DefaultProfile builds the seeded "Default" profile with sensitivity and
// acceleration at 1.0 and a 0.1 dead zone.
func DefaultProfile() Profile {
	return Profile{
		ID:           uuid.New(),
		Name:         DefaultProfileName,
		Description:  "Built-in default profile",
		Sensitivity:  1.0,
		DeadZone:     0.1,
		Acceleration: 1.0,
		ButtonMap:    map[string]string{},
		AxisMap:      map[string]string{},
		DPadMapping:  map[string]string{},
		Features:     FeatureFlags{VibrationEnabled: true},
		Scroll:       ScrollSettings{Speed: 1.0},
	}
}

// ClampTunables clamps Sensitivity/DeadZone/Acceleration into their
// allowed ranges, in place.
func (p *Profile) ClampTunables() {
	p.Sensitivity = clamp(p.Sensitivity, 0.5, 3.0)
	p.DeadZone = clamp(p.DeadZone, 0.0, 0.3)
	p.Acceleration = clamp(p.Acceleration, 0.8, 2.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
