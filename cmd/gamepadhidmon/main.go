// Package main provides gamepadhidmon, a terminal dashboard that drives a
// Manager in-process: it renders connected gamepads, the active mode,
// and the current keybinding table, refreshing on a fixed tick.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/diag"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/manager"
	"github.com/gamepadhid/core/internal/profilestore"
	"github.com/gamepadhid/core/utils"
)

const refreshInterval = 100 * time.Millisecond

func main() {
	dataDir := flag.String("data-dir", defaultDataDir(), "directory for profiles and logs")
	flag.Parse()

	log := &logger.MockLogger{}

	tunablesPath := filepath.Join(*dataDir, "tunables.json")
	tunables, err := config.Load(tunablesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load tunables: %v\n", err)
		os.Exit(1)
	}

	source, err := hardware.NewPlatformSource(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hardware source: %v\n", err)
		os.Exit(1)
	}
	emit, err := emitter.NewPlatformEmitter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "platform emitter: %v\n", err)
		os.Exit(1)
	}
	store, err := profilestore.NewJSONFileStore(filepath.Join(*dataDir, "profiles"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile store: %v\n", err)
		os.Exit(1)
	}

	mgr, err := manager.New(source, emit, store, tunables, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "manager init: %v\n", err)
		os.Exit(1)
	}
	mgr.EnableRecentEventsBuffer(256)

	eventsPath := filepath.Join(*dataDir, "events.ndjson")
	if ndjson, err := diag.NewNDJSONLogger(eventsPath); err == nil {
		defer ndjson.Close()
		mgr.SetEventLogger(ndjson)
	}

	host := diag.ProbeHost(log)

	if err := mgr.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcell screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "tcell init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, nil)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			render(screen, mgr, host, eventsPath)
		}
	}
}

func render(screen tcell.Screen, mgr *manager.Manager, host diag.HostInfo, eventsPath string) {
	screen.Clear()
	style := tcell.StyleDefault

	row := 0
	drawLine(screen, row, style.Bold(true), "gamepadhid monitor — q to quit")
	row += 2

	drawLine(screen, row, style, fmt.Sprintf("host: %s/%s  gpu: %s %s", host.OS, host.Arch, host.GPUBrand, host.GPUModel))
	row++
	drawLine(screen, row, style, fmt.Sprintf("mode: %s   profile: %s   running: %v", mgr.GetMode(), mgr.GetActiveProfileName(), mgr.IsRunning()))
	row++
	if sizeMB, err := utils.FileSizeMB(eventsPath); err == nil {
		drawLine(screen, row, style, fmt.Sprintf("events log: %.2f MB", sizeMB))
	} else {
		drawLine(screen, row, style, "events log: n/a")
	}
	row += 2

	drawLine(screen, row, style.Bold(true), "gamepads:")
	row++
	for _, g := range mgr.GetGamepads() {
		drawLine(screen, row, style, fmt.Sprintf("  [%d] %s connected=%v", g.Index, g.Name, g.Connected))
		row++
	}
	row++

	drawLine(screen, row, style.Bold(true), fmt.Sprintf("keybindings (%s):", mgr.GetMode()))
	row++
	for _, kb := range mgr.GetKeybindings(mgr.GetMode()) {
		drawLine(screen, row, style, fmt.Sprintf("  %-28s -> %s", kb.Pattern, kb.Action))
		row++
	}

	screen.Show()
}

func drawLine(screen tcell.Screen, row int, style tcell.Style, text string) {
	for col, r := range text {
		screen.SetContent(col, row, r, nil, style)
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "gamepadhid")
}
