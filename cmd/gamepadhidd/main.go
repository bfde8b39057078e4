// Package main provides the gamepadhidd daemon entrypoint: it coordinates
// the lifecycle: parse flags -> init services -> build the Manager ->
// start the Input Loop -> wait for a termination signal -> orderly
// shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gamepadhid/core/internal/config"
	"github.com/gamepadhid/core/internal/console"
	"github.com/gamepadhid/core/internal/diag"
	"github.com/gamepadhid/core/internal/emitter"
	"github.com/gamepadhid/core/internal/hardware"
	"github.com/gamepadhid/core/internal/logger"
	"github.com/gamepadhid/core/internal/manager"
	"github.com/gamepadhid/core/internal/profilestore"
)

// cliConfig captures all user-provided settings from flags.
type cliConfig struct {
	DataDir      string
	EventsPath   string
	LogPath      string
	RingCapacity int
	Console      bool
}

func main() {
	cfg := parseFlags()

	if err := ensureDir(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	tunablesPath := filepath.Join(cfg.DataDir, "tunables.json")
	tunables, err := config.Load(tunablesPath)
	if err != nil {
		log.Error("load tunables: " + err.Error())
		os.Exit(1)
	}

	source, err := hardware.NewPlatformSource(log)
	if err != nil {
		log.Error("hardware source: " + err.Error())
		os.Exit(1)
	}

	emit, err := emitter.NewPlatformEmitter()
	if err != nil {
		log.Error("platform emitter: " + err.Error())
		os.Exit(1)
	}

	store, err := profilestore.NewJSONFileStore(filepath.Join(cfg.DataDir, "profiles"))
	if err != nil {
		log.Error("profile store: " + err.Error())
		os.Exit(1)
	}

	mgr, err := manager.New(source, emit, store, tunables, log)
	if err != nil {
		log.Error("manager init: " + err.Error())
		os.Exit(1)
	}

	eventLogger, err := diag.NewParquetLogger(cfg.EventsPath)
	if err != nil {
		log.Warn("parquet event logger unavailable, diagnostics disabled: " + err.Error())
	} else {
		defer eventLogger.Close()
		mgr.SetEventLogger(eventLogger)
	}
	if cfg.RingCapacity > 0 {
		mgr.EnableRecentEventsBuffer(cfg.RingCapacity)
	}

	if err := mgr.Start(); err != nil {
		log.Error("start: " + err.Error())
		os.Exit(1)
	}
	log.Info("gamepadhidd started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Console {
		listener := &console.Listener{Manager: mgr, Log: log}
		go listener.Run(ctx, os.Stdin)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := mgr.Stop(); err != nil {
		log.Error("stop: " + err.Error())
		os.Exit(1)
	}
}

func parseFlags() cliConfig {
	dataDir := flag.String("data-dir", defaultDataDir(), "directory for profiles, logs, and diagnostics")
	ringCapacity := flag.Int("recent-events-capacity", 1024, "in-memory ring buffer size for get_recent_events, 0 disables it")
	consoleEnabled := flag.Bool("console", false, "read mode/profile/stop commands from stdin")
	flag.Parse()

	return cliConfig{
		DataDir:      *dataDir,
		EventsPath:   filepath.Join(*dataDir, "events.parquet"),
		LogPath:      filepath.Join(*dataDir, "gamepadhidd.log"),
		RingCapacity: *ringCapacity,
		Console:      *consoleEnabled,
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "gamepadhid")
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
