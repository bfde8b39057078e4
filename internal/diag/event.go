// Package diag provides structured diagnostics logging for the input
// interpretation core: one record per dispatched action, failed dispatch or
// mode switch, plus a host capability probe. None of this is on the hot path —
// the Input Loop must log and continue, never block on diagnostics I/O.
package diag

import "github.com/gamepadhid/core/pkg/models"

// EventKind discriminates what a diagnostics Event records.
type EventKind int

const (
	EventClassifiedInput EventKind = iota
	EventActionDispatched
	EventActionFailed
	EventModeSwitch
)

func (k EventKind) String() string {
	switch k {
	case EventClassifiedInput:
		return "CLASSIFIED_INPUT"
	case EventActionDispatched:
		return "ACTION_DISPATCHED"
	case EventActionFailed:
		return "ACTION_FAILED"
	case EventModeSwitch:
		return "MODE_SWITCH"
	default:
		return "UNKNOWN"
	}
}

// Event is a single diagnostics record.
type Event struct {
	TimestampMs int64   `json:"timestampMs"`
	Kind        string  `json:"kind"`
	Mode        string  `json:"mode"`
	GamepadIdx  int     `json:"gamepadIndex"`
	Button      string  `json:"button,omitempty"`
	Timing      string  `json:"timing,omitempty"`
	Content     string  `json:"content"`
	Value       float64 `json:"value"`
}

// NewEvent stamps an Event with the current wall clock time.
func NewEvent(kind EventKind, mode models.Mode, content string) Event {
	return Event{
		TimestampMs: models.NowMs(),
		Kind:        kind.String(),
		Mode:        mode.String(),
		Content:     content,
	}
}

// EventLogger is the diagnostics sink seam; implementations never block
// the caller for long and never propagate failures back into the Input
// Loop's dispatch path — a failed LogEvent is logged through logger.Logger
// and dropped by the caller.
type EventLogger interface {
	LogEvent(e Event) error
	Close() error
}

// MultiLogger fans a single event out to several sinks, e.g. a durable
// NDJSON file alongside an in-memory ring buffer for get_recent_events.
// LogEvent reports the first error encountered but still calls every sink.
type MultiLogger struct {
	sinks []EventLogger
}

// NewMultiLogger returns a MultiLogger writing to all of sinks in order.
func NewMultiLogger(sinks ...EventLogger) *MultiLogger {
	return &MultiLogger{sinks: sinks}
}

func (m *MultiLogger) LogEvent(e Event) error {
	var first error
	for _, s := range m.sinks {
		if err := s.LogEvent(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiLogger) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
