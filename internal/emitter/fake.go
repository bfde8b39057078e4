package emitter

import "sync"

// Call records one method invocation against a FakeEmitter, in the order
// it was made.
type Call struct {
	Method     string
	Dx, Dy     int
	X, Y       int
	Button     MouseButton
	Vertical   int
	Horizontal int
	Key        string
	Keys       []string
	Text       string
	Amount     int
}

// FakeEmitter is a recording Emitter used by tests across packages
// (executor, inputloop) that need to assert what would have reached the
// OS without actually reaching it. Lives in a regular file, not a
// _test.go one, so it is importable from other packages' test files.
type FakeEmitter struct {
	mu    sync.Mutex
	Calls []Call
}

// NewFakeEmitter returns an empty FakeEmitter.
func NewFakeEmitter() *FakeEmitter {
	return &FakeEmitter{}
}

func (f *FakeEmitter) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}

// Snapshot returns a copy of every call recorded so far.
func (f *FakeEmitter) Snapshot() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.Calls))
	copy(out, f.Calls)
	return out
}

func (f *FakeEmitter) MoveCursor(dx, dy int) error {
	f.record(Call{Method: "MoveCursor", Dx: dx, Dy: dy})
	return nil
}

func (f *FakeEmitter) SetCursorPosition(x, y int) error {
	f.record(Call{Method: "SetCursorPosition", X: x, Y: y})
	return nil
}

func (f *FakeEmitter) Click(button MouseButton) error {
	f.record(Call{Method: "Click", Button: button})
	return nil
}

func (f *FakeEmitter) DoubleClick(button MouseButton) error {
	f.record(Call{Method: "DoubleClick", Button: button})
	return nil
}

func (f *FakeEmitter) Scroll(vertical, horizontal int) error {
	f.record(Call{Method: "Scroll", Vertical: vertical, Horizontal: horizontal})
	return nil
}

func (f *FakeEmitter) KeyPress(key string) error {
	f.record(Call{Method: "KeyPress", Key: key})
	return nil
}

func (f *FakeEmitter) KeyCombo(keys []string) error {
	f.record(Call{Method: "KeyCombo", Keys: keys})
	return nil
}

func (f *FakeEmitter) TypeText(text string) error {
	f.record(Call{Method: "TypeText", Text: text})
	return nil
}

func (f *FakeEmitter) SetVolume(delta int) error {
	f.record(Call{Method: "SetVolume", Amount: delta})
	return nil
}

func (f *FakeEmitter) SetBrightness(delta int) error {
	f.record(Call{Method: "SetBrightness", Amount: delta})
	return nil
}

func (f *FakeEmitter) TakeScreenshot() error {
	f.record(Call{Method: "TakeScreenshot"})
	return nil
}

func (f *FakeEmitter) PlayPauseMedia() error {
	f.record(Call{Method: "PlayPauseMedia"})
	return nil
}

func (f *FakeEmitter) Close() error { return nil }

var _ Emitter = (*FakeEmitter)(nil)
