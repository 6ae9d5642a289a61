// FILE: logship/src/internal/source/stdin.go
package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"logship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Reads log lines from standard input (or any reader)
type StdinSource struct {
	reader    io.Reader
	tag       string
	sink      Sink
	logger    *log.Logger
	done      chan struct{}
	doneOnce  sync.Once
	startTime time.Time

	totalEntries  atomic.Uint64
	lastEntryTime atomic.Value // time.Time
}

// NewStdinSource reads from os.Stdin when reader is nil.
func NewStdinSource(reader io.Reader, tag string, sink Sink, logger *log.Logger) *StdinSource {
	if reader == nil {
		reader = os.Stdin
	}
	if tag == "" {
		tag = "stdin"
	}

	s := &StdinSource{
		reader: reader,
		tag:    tag,
		sink:   sink,
		logger: logger,
		done:   make(chan struct{}),
	}
	s.lastEntryTime.Store(time.Time{})
	return s
}

func (s *StdinSource) Start(ctx context.Context) error {
	s.startTime = time.Now()
	go s.readLoop(ctx)
	s.logger.Info("msg", "Stdin source started", "component", "stdin_source")
	return nil
}

func (s *StdinSource) Done() <-chan struct{} {
	return s.done
}

// Stop marks the source done. A read blocked on the terminal is abandoned.
func (s *StdinSource) Stop() {
	s.finish()
	s.logger.Info("msg", "Stdin source stopped", "component", "stdin_source")
}

func (s *StdinSource) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *StdinSource) GetStats() SourceStats {
	lastEntry, _ := s.lastEntryTime.Load().(time.Time)

	return SourceStats{
		Type:          "stdin",
		TotalEntries:  s.totalEntries.Load(),
		StartTime:     s.startTime,
		LastEntryTime: lastEntry,
		Details:       map[string]any{},
	}
}

func (s *StdinSource) readLoop(ctx context.Context) {
	defer s.finish()

	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), core.MaxLineLength)

	for scanner.Scan() {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		entry := lineEntry(line, s.tag)
		s.totalEntries.Add(1)
		s.lastEntryTime.Store(entry.Time)
		s.sink.WriteEntry(entry)
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error("msg", "Scanner error reading stdin",
			"component", "stdin_source",
			"error", err)
		return
	}

	s.logger.Info("msg", "Stdin closed",
		"component", "stdin_source",
		"entries", s.totalEntries.Load())
}
