package diag

import "fmt"

// MockLogger prints events to stdout, for observing diagnostics without
// touching disk.
type MockLogger struct{}

func (l *MockLogger) LogEvent(e Event) error {
	fmt.Printf("[EVENT] %+v\n", e)
	return nil
}

func (l *MockLogger) Close() error {
	fmt.Println("[EVENT] logger closed")
	return nil
}

var _ EventLogger = (*MockLogger)(nil)
