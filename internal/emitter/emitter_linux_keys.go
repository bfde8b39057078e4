//go:build linux

package emitter

// linuxKeyTable maps the canonical key alphabet to X11 keysyms.
var linuxKeyTable = map[string]uint{
	"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
	"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
	"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
	"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',

	"0": '0', "1": '1', "2": '2', "3": '3', "4": '4',
	"5": '5', "6": '6', "7": '7', "8": '8', "9": '9',

	"escape":    0xFF1B,
	"tab":       0xFF09,
	"space":     0x0020,
	"enter":     0xFF0D,
	"backspace": 0xFF08,
	"delete":    0xFFFF,
	"home":      0xFF50,
	"end":       0xFF57,
	"pageup":    0xFF55,
	"pagedown":  0xFF56,
	"up":        0xFF52,
	"down":      0xFF54,
	"left":      0xFF51,
	"right":     0xFF53,

	"shift": 0xFFE1,
	"ctrl":  0xFFE3,
	"alt":   0xFFE9,
	"cmd":   0xFFEB,
	"meta":  0xFFEB,

	"f1": 0xFFBE, "f2": 0xFFBF, "f3": 0xFFC0, "f4": 0xFFC1,
	"f5": 0xFFC2, "f6": 0xFFC3, "f7": 0xFFC4, "f8": 0xFFC5,
	"f9": 0xFFC6, "f10": 0xFFC7, "f11": 0xFFC8, "f12": 0xFFC9,

	"mediaplaypause": 0x1008FF14,
	"medianext":      0x1008FF17,
	"mediaprev":      0x1008FF16,
	"mediastop":      0x1008FF15,
	"volumeup":       0x1008FF13,
	"volumedown":     0x1008FF11,
	"volumemute":     0x1008FF12,
	"brightnessup":   0x1008FF02,
	"brightnessdown": 0x1008FF03,
}

func init() {
	for _, name := range CanonicalKeys {
		if _, ok := linuxKeyTable[name]; !ok {
			panic("emitter: linux key table missing canonical key " + name)
		}
	}
}
