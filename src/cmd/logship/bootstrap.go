// FILE: logship/src/cmd/logship/bootstrap.go
package main

import (
	"context"
	"fmt"
	"os"

	"logship/src/internal/config"
	"logship/src/internal/lifecycle"
	"logship/src/internal/service"
	"logship/src/internal/source"
	"logship/src/internal/version"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// bootstrapService builds the destinations and the configured input source
func bootstrapService(ctx context.Context, cfg *config.Config, notifier lifecycle.Notifier) (*service.Service, source.Source, error) {
	svc, err := service.New(cfg, notifier, logger)
	if err != nil {
		return nil, nil, err
	}

	for _, destCfg := range cfg.Destinations {
		displayDestination(destCfg)
	}

	src, err := newInputSource(cfg.Input, svc)
	if err != nil {
		_ = svc.Shutdown(context.Background())
		return nil, nil, err
	}

	if src != nil {
		if err := src.Start(ctx); err != nil {
			_ = svc.Shutdown(context.Background())
			return nil, nil, fmt.Errorf("failed to start %s input: %w", cfg.Input.Type, err)
		}
	}

	logger.Info("msg", "logship started",
		"version", version.Short(),
		"destinations", len(svc.ListDestinations()),
		"input", cfg.Input.Type)

	return svc, src, nil
}

// newInputSource returns nil for input type "none"
func newInputSource(cfg *config.InputConfig, sink source.Sink) (source.Source, error) {
	switch cfg.Type {
	case "stdin":
		return source.NewStdinSource(os.Stdin, cfg.Source, sink, logger), nil
	case "file":
		src, err := source.NewFileSource(cfg.Path, cfg.Source, cfg.FromEnd, sink, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown input type: %s", cfg.Type)
	}
}

// displayDestination logs where a destination ships to
func displayDestination(cfg config.DestinationConfig) {
	fields := []any{
		"msg", "Destination configured",
		"component", "main",
		"destination", cfg.Name,
		"type", cfg.Type,
		"max_entries", cfg.MaxEntries,
		"min_flush_level", cfg.MinFlushLevel,
	}

	switch cfg.Type {
	case "http":
		fields = append(fields, "url", cfg.HTTP.URL, "method", cfg.HTTP.Method)
		if cfg.HTTP.Auth != nil && cfg.HTTP.Auth.Type != "none" {
			fields = append(fields, "auth", cfg.HTTP.Auth.Type)
		}
	case "tcp":
		fields = append(fields, "address", cfg.TCP.Address)
	case "redis":
		fields = append(fields, "address", cfg.Redis.Address, "key", cfg.Redis.Key)
	case "amqp":
		fields = append(fields, "exchange", cfg.AMQP.Exchange, "routing_key", cfg.AMQP.RoutingKey)
	}

	if cfg.Format != nil {
		fields = append(fields, "format", cfg.Format.Type)
	}
	if len(cfg.Filters) > 0 {
		fields = append(fields, "filters", len(cfg.Filters))
	}

	logger.Info(fields...)
}

// initializeLogger sets up the agent's own logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()
	logCfg := log.DefaultConfig()

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		logCfg.EnableConsole = false
		logCfg.EnableFile = false
		logCfg.Level = 255
		if err := logger.ApplyConfig(logCfg); err != nil {
			return err
		}
		return logger.Start()
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logCfg.Level = levelValue

	switch cfg.Logging.Output {
	case "none":
		logCfg.EnableConsole = false
		logCfg.EnableFile = false

	case "stdout", "stderr":
		logCfg.EnableFile = false
		logCfg.EnableConsole = true
		logCfg.ConsoleTarget = cfg.Logging.Output

	case "file":
		logCfg.EnableConsole = false
		configureFileLogging(logCfg, cfg.Logging.File)

	case "both":
		logCfg.EnableConsole = true
		configureFileLogging(logCfg, cfg.Logging.File)
		logCfg.ConsoleTarget = consoleTarget(cfg.Logging.Console)

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	logCfg.Format = consoleFormat(cfg.Logging.Console, term.IsTerminal(int(os.Stderr.Fd())))

	if err := logger.ApplyConfig(logCfg); err != nil {
		return fmt.Errorf("failed to apply logger config: %w", err)
	}
	return logger.Start()
}

func configureFileLogging(logCfg *log.Config, fileCfg *config.LogFileConfig) {
	logCfg.EnableFile = true
	if fileCfg == nil {
		return
	}
	logCfg.Directory = fileCfg.Directory
	logCfg.Name = fileCfg.Name
	logCfg.MaxSizeKB = fileCfg.MaxSizeMB * 1000
	logCfg.MaxTotalSizeKB = fileCfg.MaxTotalSizeMB * 1000
	if fileCfg.RetentionHours > 0 {
		logCfg.RetentionPeriodHrs = fileCfg.RetentionHours
	}
}

func consoleTarget(consoleCfg *config.LogConsoleConfig) string {
	if consoleCfg != nil && consoleCfg.Target != "" {
		return consoleCfg.Target
	}
	return "stderr"
}

// consoleFormat keeps human readable output on a terminal and JSON for collectors
func consoleFormat(consoleCfg *config.LogConsoleConfig, isTerminal bool) string {
	if consoleCfg != nil && consoleCfg.Format != "" {
		return consoleCfg.Format
	}
	if isTerminal {
		return "txt"
	}
	return "json"
}
