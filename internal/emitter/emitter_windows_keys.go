//go:build windows

package emitter

// windowsKeyTable maps the canonical key alphabet to Windows virtual-key
// codes, following the VK table convention for mapping portable key
// keyboard capture in mnk_listner.go, inverted for synthesis.
var windowsKeyTable = map[string]uint16{
	"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45, "f": 0x46,
	"g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A, "k": 0x4B, "l": 0x4C,
	"m": 0x4D, "n": 0x4E, "o": 0x4F, "p": 0x50, "q": 0x51, "r": 0x52,
	"s": 0x53, "t": 0x54, "u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58,
	"y": 0x59, "z": 0x5A,

	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,

	"escape":    0x1B,
	"tab":       0x09,
	"space":     0x20,
	"enter":     0x0D,
	"backspace": 0x08,
	"delete":    0x2E,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pagedown":  0x22,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,

	"shift": 0x10,
	"ctrl":  0x11,
	"alt":   0x12,
	"cmd":   0x5B,
	"meta":  0x5B,

	"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
	"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
	"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,

	"mediaplaypause": 0xB3,
	"medianext":      0xB0,
	"mediaprev":      0xB1,
	"mediastop":      0xB2,
	"volumeup":       0xAF,
	"volumedown":     0xAE,
	"volumemute":     0xAD,
	"brightnessup":   0xD0, // no standard VK; vendor-specific in practice
	"brightnessdown": 0xD1,
}

func init() {
	for _, name := range CanonicalKeys {
		if _, ok := windowsKeyTable[name]; !ok {
			panic("emitter: windows key table missing canonical key " + name)
		}
	}
}
