// FILE: logship/src/internal/service/service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"logship/src/internal/config"
	"logship/src/internal/core"
	"logship/src/internal/destination"
	"logship/src/internal/lifecycle"

	"github.com/lixenwraith/log"
)

// Service fans log entries out to a set of destinations.
type Service struct {
	destinations map[string]*destination.Destination
	mu           sync.RWMutex
	logger       *log.Logger
}

// NewService creates a new, empty service.
func NewService(logger *log.Logger) *Service {
	return &Service{
		destinations: make(map[string]*destination.Destination),
		logger:       logger,
	}
}

// New builds every configured destination. A destination that fails to
// build is logged and skipped; having none at all is an error.
func New(cfg *config.Config, notifier lifecycle.Notifier, logger *log.Logger) (*Service, error) {
	s := NewService(logger)

	for _, destCfg := range cfg.Destinations {
		d, err := destination.NewFromConfig(destCfg, notifier, logger)
		if err != nil {
			logger.Error("msg", "Failed to create destination",
				"component", "service",
				"destination", destCfg.Name,
				"error", err)
			continue
		}
		if err := s.AddDestination(d); err != nil {
			_ = d.Close(context.Background())
			logger.Error("msg", "Failed to register destination",
				"component", "service",
				"destination", destCfg.Name,
				"error", err)
		}
	}

	if len(s.ListDestinations()) == 0 {
		return nil, fmt.Errorf("no destinations could be created")
	}
	return s, nil
}

// AddDestination registers a destination under its name.
func (s *Service) AddDestination(d *destination.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.destinations[d.Name()]; exists {
		return fmt.Errorf("destination '%s' already exists", d.Name())
	}
	s.destinations[d.Name()] = d

	s.logger.Info("msg", "Destination registered",
		"component", "service",
		"destination", d.Name())
	return nil
}

// GetDestination returns a destination by its name.
func (s *Service) GetDestination(name string) (*destination.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.destinations[name]
	if !exists {
		return nil, fmt.Errorf("destination '%s' not found", name)
	}
	return d, nil
}

// ListDestinations returns the sorted names of all destinations.
func (s *Service) ListDestinations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.destinations))
	for name := range s.destinations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) snapshot() []*destination.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dests := make([]*destination.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		dests = append(dests, d)
	}
	return dests
}

// Write records a log statement on every destination.
func (s *Service) Write(message string, level core.Level, ts time.Time, fields json.RawMessage) {
	s.WriteEntry(core.NewEntry(message, level, ts, fields))
}

// WriteEntry hands the entry to every destination.
func (s *Service) WriteEntry(entry core.LogEntry) {
	for _, d := range s.snapshot() {
		d.WriteEntry(entry)
	}
}

// Flush triggers a flush on every destination.
func (s *Service) Flush() {
	for _, d := range s.snapshot() {
		d.Flush()
	}
}

// Shutdown closes all destinations concurrently and joins their errors.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Info("msg", "Service shutdown initiated", "component", "service")

	s.mu.Lock()
	dests := make([]*destination.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		dests = append(dests, d)
	}
	s.destinations = make(map[string]*destination.Destination)
	s.mu.Unlock()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, d := range dests {
		wg.Add(1)
		go func(d *destination.Destination) {
			defer wg.Done()
			if err := d.Close(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(d)
	}
	wg.Wait()

	s.logger.Info("msg", "Service shutdown complete", "component", "service")
	return errors.Join(errs...)
}

// GetGlobalStats returns statistics for all destinations.
func (s *Service) GetGlobalStats() map[string]any {
	dests := s.snapshot()

	perDest := make(map[string]any, len(dests))
	var pending int
	var delivered, failed uint64
	for _, d := range dests {
		st := d.Stats()
		pending += st.Pending
		delivered += st.Delivered
		failed += st.FailedBatches
		perDest[st.Name] = map[string]any{
			"encoder":        st.Encoder,
			"sender":         st.Sender,
			"written":        st.Written,
			"filtered":       st.Filtered,
			"flushes":        st.Flushes,
			"coalesced":      st.Coalesced,
			"paced":          st.Paced,
			"delivered":      st.Delivered,
			"failed_batches": st.FailedBatches,
			"requeued":       st.Requeued,
			"pending":        st.Pending,
			"sending":        st.Sending,
			"last_flush":     st.LastFlush,
			"last_error":     st.LastError,
		}
	}

	return map[string]any{
		"destinations":       perDest,
		"total_destinations": len(dests),
		"total_pending":      pending,
		"total_delivered":    delivered,
		"total_failed":       failed,
	}
}
