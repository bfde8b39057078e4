//go:build darwin

package emitter

// darwinKeyTable maps the canonical key alphabet to macOS virtual
// keycodes from HIToolbox/Events.h.
var darwinKeyTable = map[string]uint16{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05,
	"z": 0x06, "x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C,
	"w": 0x0D, "e": 0x0E, "r": 0x0F, "y": 0x10, "t": 0x11,
	"1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"9": 0x19, "7": 0x1A, "8": 0x1C, "0": 0x1D,
	"o": 0x1F, "u": 0x20, "i": 0x22, "p": 0x23,
	"l": 0x25, "j": 0x26, "k": 0x28, "n": 0x2D, "m": 0x2E,

	"enter":     0x24,
	"tab":       0x30,
	"space":     0x31,
	"backspace": 0x33,
	"escape":    0x35,
	"delete":    0x75,
	"home":      0x73,
	"end":       0x77,
	"pageup":    0x74,
	"pagedown":  0x79,
	"left":      0x7B,
	"right":     0x7C,
	"down":      0x7D,
	"up":        0x7E,

	"shift": 0x38,
	"ctrl":  0x3B,
	"alt":   0x3A,
	"cmd":   0x37,
	"meta":  0x37,

	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76,
	"f5": 0x60, "f6": 0x61, "f7": 0x62, "f8": 0x64,
	"f9": 0x65, "f10": 0x6D, "f11": 0x67, "f12": 0x6F,

	"mediaplaypause": 0x30, // NX_KEYTYPE_PLAY mapped via media-key event path upstream
	"medianext":      0x4C,
	"mediaprev":      0x4D,
	"mediastop":      0x4E,
	"volumeup":       0x48,
	"volumedown":     0x49,
	"volumemute":     0x4A,
	"brightnessup":   0x90,
	"brightnessdown": 0x91,
}

func init() {
	for _, name := range CanonicalKeys {
		if _, ok := darwinKeyTable[name]; !ok {
			panic("emitter: darwin key table missing canonical key " + name)
		}
	}
}
