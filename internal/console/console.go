// Package console reads whitespace-separated commands from stdin and
// dispatches them against a running Manager, giving a headless host a
// minimal typed control surface without a GUI.
//
// Recognized commands:
//
//	mode <normal|motion|hotkey>
//	profile <name>
//	stop
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/manager"
	"github.com/gamepadhid/core/pkg/models"
)

// Listener reads commands from an input stream and applies them to mgr.
type Listener struct {
	Manager *manager.Manager
	Log     logger.Interface
}

// Run blocks reading lines from r until EOF, a read error, or ctx is
// canceled. Unrecognized or malformed commands are logged and skipped.
func (l *Listener) Run(ctx context.Context, r io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := l.dispatch(strings.TrimSpace(line)); err != nil {
				l.warn(err.Error())
			}
		}
	}
}

func (l *Listener) dispatch(line string) error {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "mode":
		if len(fields) != 2 {
			return fmt.Errorf("usage: mode <normal|motion|hotkey>")
		}
		mode, ok := models.ParseMode(fields[1])
		if !ok {
			return fmt.Errorf("unknown mode %q", fields[1])
		}
		return l.Manager.SetMode(mode)
	case "profile":
		if len(fields) != 2 {
			return fmt.Errorf("usage: profile <name>")
		}
		return l.Manager.SetActiveProfile(fields[1])
	case "stop":
		return l.Manager.Stop()
	default:
		return fmt.Errorf("unrecognized command %q", fields[0])
	}
}

func (l *Listener) warn(msg string) {
	if l.Log != nil {
		l.Log.Warn("console: " + msg)
	}
}
