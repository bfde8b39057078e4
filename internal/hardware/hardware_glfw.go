package hardware

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/pkg/models"
)

const glfwPollIntervalMs = 16

// GLFWSource polls joysticks through go-gl/glfw on its own ticker. It
// locks the OS thread, initializes GLFW, keeps a hidden window alive for
// the lifetime of the polling loop, and forwards only deduplicated
// button/axis changes rather than every raw sample.
type GLFWSource struct {
	log      logger.Interface
	events      chan models.RawEvent
	stop        chan struct{}
	done        chan struct{}
	lastAxes    map[int][AxisCountMax]float64
	triggerDown map[int]map[models.Button]bool
}

const axisAnalogThreshold = 0.02

// AxisCountMax bounds the per-joystick axis array GLFW reports; real
// pads report 4-6, this just sizes the dedup cache generously.
const AxisCountMax = 8

// NewGLFWSource starts the polling goroutine and returns immediately;
// the caller reads Events() as they arrive.
func NewGLFWSource(log logger.Interface) (*GLFWSource, error) {
	s := &GLFWSource{
		log:      log,
		events:   make(chan models.RawEvent, 256),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		lastAxes:    make(map[int][AxisCountMax]float64),
		triggerDown: make(map[int]map[models.Button]bool),
	}
	ready := make(chan error, 1)
	go s.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GLFWSource) Events() <-chan models.RawEvent { return s.events }

func (s *GLFWSource) Close() error {
	close(s.stop)
	<-s.done
	return nil
}

func (s *GLFWSource) run(ready chan<- error) {
	defer close(s.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		ready <- fmt.Errorf("glfw init: %w", err)
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	window, err := glfw.CreateWindow(1, 1, "gamepadhid", nil, nil)
	if err != nil {
		ready <- fmt.Errorf("glfw window: %w", err)
		return
	}
	defer window.Destroy()
	ready <- nil

	connected := make(map[glfw.Joystick]bool)
	lastButtons := make(map[glfw.Joystick][ButtonRawMax]glfw.Action)

	ticker := time.NewTicker(glfwPollIntervalMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			glfw.PollEvents()
			for jid := glfw.Joystick1; jid <= glfw.Joystick16; jid++ {
				idx := int(jid)
				present := jid.Present()
				if present && !connected[jid] {
					connected[jid] = true
					s.emit(models.RawEvent{
						Kind:        models.RawEventConnected,
						GamepadIdx:  idx,
						Name:        jid.GetName(),
						TimestampMs: models.NowMs(),
					})
				}
				if !present {
					if connected[jid] {
						connected[jid] = false
						delete(lastButtons, jid)
						delete(s.triggerDown, idx)
						s.emit(models.RawEvent{Kind: models.RawEventDisconnected, GamepadIdx: idx, TimestampMs: models.NowMs()})
					}
					continue
				}
				s.pollButtons(jid, lastButtons)
				s.pollAxes(jid)
				s.pollTriggers(jid)
			}
		}
	}
}

// ButtonRawMax bounds the raw button array GLFW reports per joystick.
const ButtonRawMax = 32

func (s *GLFWSource) pollButtons(jid glfw.Joystick, lastButtons map[glfw.Joystick][ButtonRawMax]glfw.Action) {
	buttons := jid.GetButtons()
	prev := lastButtons[jid]
	var next [ButtonRawMax]glfw.Action
	for i, action := range buttons {
		if i >= ButtonRawMax {
			break
		}
		next[i] = action
		if action == prev[i] {
			continue
		}
		button, ok := canonicalButton(i)
		kind := models.RawEventButtonReleased
		if action == glfw.Press {
			kind = models.RawEventButtonPressed
		}
		s.emit(models.RawEvent{
			Kind:        kind,
			GamepadIdx:  int(jid),
			Button:      button,
			ButtonRaw:   i,
			TimestampMs: models.NowMs(),
		})
		_ = ok
	}
	lastButtons[jid] = next
}

func (s *GLFWSource) pollAxes(jid glfw.Joystick) {
	axes := jid.GetAxes()
	last := s.lastAxes[int(jid)]
	var next [AxisCountMax]float64
	for i, raw := range axes {
		if i >= AxisCountMax {
			break
		}
		v := models.ClampAxis(float64(raw))
		next[i] = v
		if absDiff(v, last[i]) < axisAnalogThreshold {
			continue
		}
		axis, ok := canonicalAxis(i)
		s.emit(models.RawEvent{
			Kind:        models.RawEventAxisChanged,
			GamepadIdx:  int(jid),
			AxisValid:   ok,
			Axis:        axis,
			AxisRaw:     i,
			Value:       v,
			TimestampMs: models.NowMs(),
		})
	}
	s.lastAxes[int(jid)] = next
}

// pollTriggers synthesizes LT/RT button press/release edges from the raw
// axes GLFW reports them on, since the raw joystick button array queried
// by pollButtons never carries analog triggers.
func (s *GLFWSource) pollTriggers(jid glfw.Joystick) {
	idx := int(jid)
	axes := jid.GetAxes()
	down := s.triggerDown[idx]
	if down == nil {
		down = make(map[models.Button]bool)
		s.triggerDown[idx] = down
	}
	for i, raw := range axes {
		button, ok := triggerButton(i)
		if !ok {
			continue
		}
		analog := models.NormalizeTrigger(float64(raw))
		pressed := analog > triggerPressThreshold
		if pressed == down[button] {
			continue
		}
		down[button] = pressed
		kind := models.RawEventButtonReleased
		if pressed {
			kind = models.RawEventButtonPressed
		}
		s.emit(models.RawEvent{
			Kind:        kind,
			GamepadIdx:  idx,
			Button:      button,
			ButtonRaw:   i,
			Value:       analog,
			TimestampMs: models.NowMs(),
		})
	}
}

func (s *GLFWSource) emit(e models.RawEvent) {
	select {
	case s.events <- e:
	default:
		if s.log != nil {
			s.log.Warn("hardware: glfw event dropped, channel full")
		}
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

var _ Source = (*GLFWSource)(nil)
