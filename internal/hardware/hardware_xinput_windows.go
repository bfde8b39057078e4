//go:build windows

package hardware

import (
	"syscall"
	"time"
	"unsafe"

	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

var (
	xinput             = syscall.NewLazyDLL("xinput1_4.dll")
	procXInputGetState = xinput.NewProc("XInputGetState")
)

type xinputState struct {
	PacketNumber uint32
	Gamepad      xinputGamepad
}

type xinputGamepad struct {
	Buttons      uint16
	LeftTrigger  byte
	RightTrigger byte
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

func xinputGetState(index uint32) (*xinputState, error) {
	var state xinputState
	r, _, _ := procXInputGetState.Call(uintptr(index), uintptr(unsafe.Pointer(&state)))
	if r != 0 {
		return nil, syscall.Errno(r)
	}
	return &state, nil
}

// xinputButtonBits orders the XInput button bitmask to canonical
// buttons; bit order follows the XINPUT_GAMEPAD button flag layout.
var xinputButtonBits = []struct {
	bit    uint16
	button models.Button
}{
	{0x0001, models.ButtonDPadUp},
	{0x0002, models.ButtonDPadDown},
	{0x0004, models.ButtonDPadLeft},
	{0x0008, models.ButtonDPadRight},
	{0x0010, models.ButtonStart},
	{0x0020, models.ButtonSelect},
	{0x0040, models.ButtonLeftStick},
	{0x0080, models.ButtonRightStick},
	{0x0100, models.ButtonLB},
	{0x0200, models.ButtonRB},
	{0x1000, models.ButtonSouth},
	{0x2000, models.ButtonEast},
	{0x4000, models.ButtonWest},
	{0x8000, models.ButtonNorth},
}

const xinputPollIntervalMs = 8
const xinputMaxPads = 4

// xinputTriggerThreshold mirrors XINPUT_GAMEPAD_TRIGGER_THRESHOLD (30 of
// 255), the point XInput itself treats a trigger as engaged.
const xinputTriggerThreshold = 30

// XInputSource polls XInputGetState directly per pad index, diffing the
// packet number so it emits edges only on change, giving lower latency
// than the GLFW joystick API on Windows for Xbox-pattern controllers.
type XInputSource struct {
	log    logger.Interface
	events chan models.RawEvent
	stop   chan struct{}
	done   chan struct{}
}

// NewXInputSource starts the polling goroutine and returns immediately.
func NewXInputSource(log logger.Interface) *XInputSource {
	s := &XInputSource{
		log:    log,
		events: make(chan models.RawEvent, 256),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *XInputSource) Events() <-chan models.RawEvent { return s.events }

func (s *XInputSource) Close() error {
	close(s.stop)
	<-s.done
	return nil
}

func (s *XInputSource) run() {
	defer close(s.done)

	lastPacket := make(map[uint32]uint32)
	lastButtons := make(map[uint32]uint16)
	lastTriggers := make(map[uint32][2]bool)
	connected := make(map[uint32]bool)

	ticker := time.NewTicker(xinputPollIntervalMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			for idx := uint32(0); idx < xinputMaxPads; idx++ {
				state, err := xinputGetState(idx)
				if err != nil {
					if connected[idx] {
						connected[idx] = false
						s.emit(models.RawEvent{Kind: models.RawEventDisconnected, GamepadIdx: int(idx), TimestampMs: models.NowMs()})
					}
					continue
				}
				if !connected[idx] {
					connected[idx] = true
					s.emit(models.RawEvent{Kind: models.RawEventConnected, GamepadIdx: int(idx), Name: "XInput", TimestampMs: models.NowMs()})
				}
				if state.PacketNumber == lastPacket[idx] {
					continue
				}
				lastPacket[idx] = state.PacketNumber
				s.diffButtons(idx, state.Gamepad.Buttons, lastButtons)
				s.diffTriggers(idx, state.Gamepad, lastTriggers)
				s.emitAxes(idx, state.Gamepad)
			}
		}
	}
}

func (s *XInputSource) diffButtons(idx uint32, buttons uint16, lastButtons map[uint32]uint16) {
	prev := lastButtons[idx]
	if prev == buttons {
		return
	}
	for _, b := range xinputButtonBits {
		wasDown := prev&b.bit != 0
		isDown := buttons&b.bit != 0
		if wasDown == isDown {
			continue
		}
		kind := models.RawEventButtonReleased
		if isDown {
			kind = models.RawEventButtonPressed
		}
		s.emit(models.RawEvent{
			Kind:        kind,
			GamepadIdx:  int(idx),
			Button:      b.button,
			TimestampMs: models.NowMs(),
		})
	}
	lastButtons[idx] = buttons
}

// diffTriggers synthesizes LT/RT press/release edges from the analog
// trigger bytes XInput reports, at XINPUT_GAMEPAD_TRIGGER_THRESHOLD.
func (s *XInputSource) diffTriggers(idx uint32, gp xinputGamepad, lastTriggers map[uint32][2]bool) {
	prev := lastTriggers[idx]
	lt := gp.LeftTrigger > xinputTriggerThreshold
	rt := gp.RightTrigger > xinputTriggerThreshold
	now := models.NowMs()

	if lt != prev[0] {
		kind := models.RawEventButtonReleased
		if lt {
			kind = models.RawEventButtonPressed
		}
		s.emit(models.RawEvent{Kind: kind, GamepadIdx: int(idx), Button: models.ButtonLT, Value: float64(gp.LeftTrigger) / 255, TimestampMs: now})
	}
	if rt != prev[1] {
		kind := models.RawEventButtonReleased
		if rt {
			kind = models.RawEventButtonPressed
		}
		s.emit(models.RawEvent{Kind: kind, GamepadIdx: int(idx), Button: models.ButtonRT, Value: float64(gp.RightTrigger) / 255, TimestampMs: now})
	}
	lastTriggers[idx] = [2]bool{lt, rt}
}

func (s *XInputSource) emitAxes(idx uint32, gp xinputGamepad) {
	now := models.NowMs()
	s.emit(models.RawEvent{Kind: models.RawEventAxisChanged, GamepadIdx: int(idx), AxisValid: true, Axis: models.AxisLeftStickX, Value: normThumb(gp.ThumbLX), TimestampMs: now})
	s.emit(models.RawEvent{Kind: models.RawEventAxisChanged, GamepadIdx: int(idx), AxisValid: true, Axis: models.AxisLeftStickY, Value: normThumb(gp.ThumbLY), TimestampMs: now})
	s.emit(models.RawEvent{Kind: models.RawEventAxisChanged, GamepadIdx: int(idx), AxisValid: true, Axis: models.AxisRightStickX, Value: normThumb(gp.ThumbRX), TimestampMs: now})
	s.emit(models.RawEvent{Kind: models.RawEventAxisChanged, GamepadIdx: int(idx), AxisValid: true, Axis: models.AxisRightStickY, Value: normThumb(gp.ThumbRY), TimestampMs: now})
}

func normThumb(v int16) float64 {
	return models.ClampAxis(float64(v) / 32767.0)
}

func (s *XInputSource) emit(e models.RawEvent) {
	select {
	case s.events <- e:
	default:
		if s.log != nil {
			s.log.Warn("hardware: xinput event dropped, channel full")
		}
	}
}

var _ Source = (*XInputSource)(nil)
