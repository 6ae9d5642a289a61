// FILE: logship/src/internal/destination/factory.go
package destination

import (
	"fmt"
	"time"

	"logship/src/internal/config"
	"logship/src/internal/core"
	"logship/src/internal/filter"
	"logship/src/internal/format"
	"logship/src/internal/lifecycle"
	"logship/src/internal/transport"

	"github.com/lixenwraith/log"
)

// OptionsFromConfig resolves the runtime options of a validated destination config.
func OptionsFromConfig(cfg config.DestinationConfig) (Options, error) {
	minLevel, err := core.ParseLevel(cfg.MinFlushLevel)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Name:              cfg.Name,
		Source:            cfg.Source,
		MaxEntries:        int(cfg.MaxEntries),
		MinFlushLevel:     minLevel,
		FlushInterval:     time.Duration(cfg.FlushIntervalMS) * time.Millisecond,
		SendTimeout:       time.Duration(cfg.SendTimeoutMS) * time.Millisecond,
		MaxSendsPerSecond: cfg.MaxSendsPerSecond,
		SendBurst:         int(cfg.SendBurst),
	}, nil
}

// NewFromConfig wires the encoder, sender and filter chain of one destination.
func NewFromConfig(cfg config.DestinationConfig, notifier lifecycle.Notifier, logger *log.Logger) (*Destination, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("destination '%s': %w", cfg.Name, err)
	}

	formatType := ""
	if cfg.Format != nil {
		formatType = cfg.Format.Type
	}
	encoder, err := format.New(formatType, cfg.Format, logger)
	if err != nil {
		return nil, fmt.Errorf("destination '%s': failed to create encoder: %w", cfg.Name, err)
	}

	var chain *filter.Chain
	if len(cfg.Filters) > 0 {
		chain, err = filter.NewChain(cfg.Filters, logger)
		if err != nil {
			return nil, fmt.Errorf("destination '%s': failed to create filter chain: %w", cfg.Name, err)
		}
	}

	sender, err := transport.New(cfg, encoder.ContentType(), logger)
	if err != nil {
		return nil, fmt.Errorf("destination '%s': failed to create sender: %w", cfg.Name, err)
	}

	d, err := New(opts, encoder, sender, chain, notifier, logger)
	if err != nil {
		sender.Close()
		return nil, err
	}
	return d, nil
}
