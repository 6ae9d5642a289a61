// FILE: logship/src/cmd/logship/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"logship/src/cmd/logship/commands"
	"logship/src/internal/config"
	"logship/src/internal/lifecycle"
	"logship/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

const shutdownTimeout = 10 * time.Second

func main() {
	// Subcommands first, the agent flags do not apply to them
	router := commands.NewCommandRouter()
	handled, err := router.Route(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if handled {
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	flagCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		return 0
	}

	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGSHIP_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(flagCfg.ConfigArgs)
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			Error("Config file not found: %s\n", flagCfg.ConfigFile)
			return 2
		}
		Error("Failed to load config: %v\n", err)
		return 1
	}

	if err := initializeLogger(cfg); err != nil {
		Error("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer shutdownLogger()

	logger.Info("msg", "logship starting",
		"version", version.String(),
		"config_file", config.GetConfigPath(),
		"log_output", cfg.Logging.Output)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := lifecycle.NewHub(logger)
	watcher := lifecycle.NewSignalWatcher(hub, logger)
	defer watcher.Stop()

	svc, src, err := bootstrapService(ctx, cfg, hub)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap service", "error", err)
		return 1
	}

	if enableStatusReporter(cfg) {
		go statusReporter(ctx, svc, time.Duration(cfg.StatusIntervalSeconds)*time.Second)
	}

	sigCh := make(chan os.Signal, 1)
	go func() {
		sigCh <- watcher.Watch(ctx)
	}()

	// A nil source never finishes; the agent then runs until signalled
	var inputDone <-chan struct{}
	if src != nil {
		inputDone = src.Done()
	}

	select {
	case sig := <-sigCh:
		logger.Info("msg", "Shutdown signal received, starting graceful shutdown...",
			"signal", sig)
	case <-inputDone:
		logger.Info("msg", "Input exhausted, starting graceful shutdown...",
			"entries", src.GetStats().TotalEntries)
	}

	cancel()
	if src != nil {
		src.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Error("msg", "Shutdown completed with undelivered entries", "error", err)
		return 1
	}

	logger.Info("msg", "Shutdown complete")
	return 0
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

func enableStatusReporter(cfg *config.Config) bool {
	if cfg.DisableStatusReporter || cfg.StatusIntervalSeconds <= 0 {
		return false
	}
	// Status reporter can be disabled via environment variable
	return os.Getenv("LOGSHIP_DISABLE_STATUS_REPORTER") != "1"
}
