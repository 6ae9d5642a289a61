// FILE: logship/src/internal/destination/mock_test.go
package destination

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"logship/src/internal/core"
	"logship/src/internal/format"
)

var errSendFailed = errors.New("remote unavailable")

// lineEncoder joins messages with newlines so tests can read batches back.
type lineEncoder struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (e *lineEncoder) Encode(entries []core.LogEntry) ([]byte, error) {
	e.calls.Add(1)
	if len(entries) == 0 {
		return nil, format.ErrEmptyBatch
	}
	if e.fail.Load() {
		return nil, errors.New("cannot encode")
	}
	msgs := make([]string, len(entries))
	for i, entry := range entries {
		msgs[i] = entry.Message
	}
	return []byte(strings.Join(msgs, "\n")), nil
}

func (e *lineEncoder) Name() string        { return "line" }
func (e *lineEncoder) ContentType() string { return "text/plain" }

// recordingSender captures bodies. It can fail on demand or block until released.
type recordingSender struct {
	mu     sync.Mutex
	bodies []string

	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	fail        atomic.Bool
	closed      atomic.Bool

	// When non-nil every Send waits for a value (or close) before returning
	gate chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, body []byte) error {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		old := s.maxInFlight.Load()
		if n <= old || s.maxInFlight.CompareAndSwap(old, n) {
			break
		}
	}

	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if s.fail.Load() {
		return errSendFailed
	}

	s.mu.Lock()
	s.bodies = append(s.bodies, string(body))
	s.mu.Unlock()
	return nil
}

func (s *recordingSender) Name() string { return "recording" }

func (s *recordingSender) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *recordingSender) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}

// receivedMessages flattens every delivered body into messages.
func (s *recordingSender) receivedMessages() []string {
	var msgs []string
	for _, body := range s.received() {
		msgs = append(msgs, strings.Split(body, "\n")...)
	}
	return msgs
}
