// Package hardware supplies RawEvent streams from physical gamepads to
// the Input Loop, behind one interface so the loop never touches a
// polling library directly.
package hardware

import "github.com/gamepadhid/core/pkg/models"

// Source is the hardware event boundary the Input Loop drains each tick.
// Implementations never block a caller's Events() read — events queue on
// an internal channel fed by the source's own polling goroutine.
type Source interface {
	Events() <-chan models.RawEvent
	Close() error
}

// canonicalButton maps a GLFW raw joystick button index to the fixed
// canonical Button enumeration, following the same index layout the
// teacher's ButtonNames table used for its raw (non-gamepad-mapping)
// joystick button array.
func canonicalButton(nativeIdx int) (models.Button, bool) {
	switch nativeIdx {
	case 0:
		return models.ButtonSouth, true
	case 1:
		return models.ButtonEast, true
	case 2:
		return models.ButtonWest, true
	case 3:
		return models.ButtonNorth, true
	case 4:
		return models.ButtonLB, true
	case 5:
		return models.ButtonRB, true
	case 6:
		return models.ButtonSelect, true
	case 7:
		return models.ButtonStart, true
	case 8:
		return models.ButtonLeftStick, true
	case 9:
		return models.ButtonRightStick, true
	case 10:
		return models.ButtonDPadUp, true
	case 11:
		return models.ButtonDPadRight, true
	case 12:
		return models.ButtonDPadDown, true
	case 13:
		return models.ButtonDPadLeft, true
	case 14:
		return models.ButtonGuide, true
	}
	if nativeIdx >= 15 && nativeIdx < int(models.ButtonSlotCount) {
		return models.Button(nativeIdx + 2), true // vendor-extra slots, reserved range
	}
	return 0, false
}

// triggerPressThreshold is the normalized-trigger value above which LT/RT
// are considered digitally pressed, for backends that report them as an
// analog axis rather than a discrete button bit.
const triggerPressThreshold = 0.5

// triggerButton maps the native axis index conventionally carrying a
// trigger's analog reading (4=LT, 5=RT on the common SDL/gamepad-style
// axis layout) to the canonical Button it should synthesize press/release
// edges for.
func triggerButton(nativeAxisIdx int) (models.Button, bool) {
	switch nativeAxisIdx {
	case 4:
		return models.ButtonLT, true
	case 5:
		return models.ButtonRT, true
	default:
		return 0, false
	}
}

// canonicalAxis maps a native axis index to the fixed canonical
// AxisIndex enumeration.
func canonicalAxis(nativeIdx int) (models.AxisIndex, bool) {
	switch nativeIdx {
	case 0:
		return models.AxisLeftStickX, true
	case 1:
		return models.AxisLeftStickY, true
	case 2:
		return models.AxisRightStickX, true
	case 3:
		return models.AxisRightStickY, true
	default:
		return 0, false
	}
}
