package diag

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// NDJSONLogger is a thread-safe newline-delimited-JSON event sink: one
// JSON object per line, flushed after every write for crash safety.
type NDJSONLogger struct {
	file   *os.File
	writer *bufio.Writer
	mu     sync.Mutex
}

// NewNDJSONLogger opens (or creates) path in append mode.
func NewNDJSONLogger(path string) (*NDJSONLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ndjson logger open: %w", err)
	}
	return &NDJSONLogger{file: file, writer: bufio.NewWriter(file)}, nil
}

func (l *NDJSONLogger) LogEvent(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("ndjson logger marshal: %w", err)
	}
	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("ndjson logger write: %w", err)
	}
	return l.writer.Flush()
}

func (l *NDJSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("ndjson logger flush: %w", err)
	}
	return l.file.Close()
}

var _ EventLogger = (*NDJSONLogger)(nil)
