package hardware

import "github.com/gamepadhid/core/pkg/models"

// FakeSource lets tests inject a scripted RawEvent sequence with
// controlled timestamps, standing in for real hardware. It lives in a
// regular (non-test) file, not hardware_fake_test.go, so packages other
// than hardware itself — inputloop, the root manager — can drive their
// own tests against it too.
type FakeSource struct {
	events chan models.RawEvent
	closed bool
}

// NewFakeSource returns an empty FakeSource; call Push to enqueue events.
func NewFakeSource() *FakeSource {
	return &FakeSource{events: make(chan models.RawEvent, 1024)}
}

// Push enqueues a scripted event for the Input Loop to drain.
func (f *FakeSource) Push(e models.RawEvent) {
	f.events <- e
}

func (f *FakeSource) Events() <-chan models.RawEvent { return f.events }

func (f *FakeSource) Close() error {
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

var _ Source = (*FakeSource)(nil)
