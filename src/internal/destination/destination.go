// FILE: logship/src/internal/destination/destination.go
package destination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"logship/src/internal/buffer"
	"logship/src/internal/core"
	"logship/src/internal/filter"
	"logship/src/internal/format"
	"logship/src/internal/lifecycle"
	"logship/src/internal/transport"

	"github.com/lixenwraith/log"
)

// Options are the resolved runtime settings of a destination.
type Options struct {
	Name string

	// Tag applied to entries written without a source
	Source string

	// Flush when the buffer holds more than MaxEntries entries
	MaxEntries int

	// Flush as soon as an entry at or above this level is buffered; LevelNone disables
	MinFlushLevel core.Level

	// Periodic flush, zero disables
	FlushInterval time.Duration

	// Upper bound for one send
	SendTimeout time.Duration

	// Send pacing, zero disables
	MaxSendsPerSecond float64
	SendBurst         int
}

// Stats is a point-in-time snapshot of destination counters.
type Stats struct {
	Name          string
	Encoder       string
	Sender        string
	Written       uint64
	Filtered      uint64
	Flushes       uint64
	Coalesced     uint64
	Paced         uint64
	Delivered     uint64
	FailedBatches uint64
	Requeued      uint64
	Pending       int
	Sending       bool
	LastFlush     time.Time
	LastError     string
}

// Destination buffers entries and ships them in batches to one remote backend.
// Write never blocks on the network; at most one send is in flight at a time.
type Destination struct {
	opts    Options
	buffer  *buffer.Buffer
	encoder format.Encoder
	sender  transport.Sender
	filters *filter.Chain
	pacer   *pacer
	logger  *log.Logger

	// Idle (false) / Sending (true)
	sending atomic.Bool

	// Guards closed against concurrent trigger registration
	closeMu  sync.RWMutex
	closed   bool
	inFlight sync.WaitGroup

	subscription lifecycle.Subscription
	done         chan struct{}
	tickerWg     sync.WaitGroup

	// Statistics
	written       atomic.Uint64
	filtered      atomic.Uint64
	flushes       atomic.Uint64
	coalesced     atomic.Uint64
	delivered     atomic.Uint64
	failedBatches atomic.Uint64
	requeued      atomic.Uint64
	lastFlush     atomic.Value // time.Time
	lastError     atomic.Value // string
}

// New creates a destination. notifier and filters may be nil.
func New(opts Options, encoder format.Encoder, sender transport.Sender, filters *filter.Chain,
	notifier lifecycle.Notifier, logger *log.Logger) (*Destination, error) {
	if encoder == nil {
		return nil, fmt.Errorf("destination '%s': encoder is required", opts.Name)
	}
	if sender == nil {
		return nil, fmt.Errorf("destination '%s': sender is required", opts.Name)
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = core.DefaultMaxEntries
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = time.Duration(core.DefaultSendTimeoutMS) * time.Millisecond
	}
	if opts.Source == "" {
		opts.Source = core.DefaultSource
	}

	d := &Destination{
		opts:    opts,
		buffer:  buffer.New(opts.MaxEntries + 1),
		encoder: encoder,
		sender:  sender,
		filters: filters,
		pacer:   newPacer(opts.MaxSendsPerSecond, opts.SendBurst),
		logger:  logger,
		done:    make(chan struct{}),
	}
	d.lastFlush.Store(time.Time{})
	d.lastError.Store("")

	if notifier != nil {
		d.subscription = notifier.Subscribe(d.onLifecycle)
	}

	if opts.FlushInterval > 0 {
		d.tickerWg.Add(1)
		go d.flushTimer()
	}

	logger.Info("msg", "Destination created",
		"component", "destination",
		"name", opts.Name,
		"encoder", encoder.Name(),
		"sender", sender.Name(),
		"max_entries", opts.MaxEntries,
		"min_flush_level", opts.MinFlushLevel.String(),
		"flush_interval", opts.FlushInterval)

	return d, nil
}

// Name returns the destination identifier.
func (d *Destination) Name() string {
	return d.opts.Name
}

// Write records a log statement. A zero ts is stamped with the current time.
func (d *Destination) Write(message string, level core.Level, ts time.Time, fields json.RawMessage) {
	d.WriteEntry(core.NewEntry(message, level, ts, fields))
}

// WriteEntry buffers an entry and evaluates the flush trigger.
func (d *Destination) WriteEntry(entry core.LogEntry) {
	if d.isClosed() {
		return
	}

	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	if entry.Source == "" {
		entry.Source = d.opts.Source
	}

	if d.filters != nil && !d.filters.Apply(entry) {
		d.filtered.Add(1)
		return
	}

	length := d.buffer.Append(entry)
	d.written.Add(1)

	maxLevel, hasLevel := d.buffer.MaxLevel()
	if reason, ok := ShouldFlush(length, d.opts.MaxEntries, maxLevel, hasLevel, d.opts.MinFlushLevel); ok {
		d.trigger(reason)
	}
}

// Flush requests an asynchronous send of everything buffered.
func (d *Destination) Flush() {
	d.trigger(ReasonManual)
}

func (d *Destination) onLifecycle(ev lifecycle.Event) {
	d.logger.Debug("msg", "Lifecycle flush",
		"component", "destination",
		"name", d.opts.Name,
		"event", ev.String())
	d.trigger(ReasonLifecycle)
}

// trigger starts a send of the drained buffer unless one is already in flight.
func (d *Destination) trigger(reason Reason) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()
	if d.closed {
		return
	}

	// Empty flush is a no-op
	if d.buffer.Len() == 0 {
		return
	}

	if !d.sending.CompareAndSwap(false, true) {
		d.coalesced.Add(1)
		return
	}

	if !d.pacer.allow() {
		d.sending.Store(false)
		d.coalesced.Add(1)
		return
	}

	batch := d.buffer.Drain()
	if len(batch) == 0 {
		d.sending.Store(false)
		return
	}

	d.flushes.Add(1)
	d.inFlight.Add(1)
	go d.sendBatch(batch, reason)
}

// sendBatch runs off the caller's goroutine. The batch is restored before
// the sending flag is released so a later drain always sees it first.
func (d *Destination) sendBatch(batch []core.LogEntry, reason Reason) {
	defer d.inFlight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.opts.SendTimeout)
	defer cancel()

	if err := d.deliver(ctx, batch); err != nil {
		d.buffer.Restore(batch)
		d.failedBatches.Add(1)
		d.requeued.Add(uint64(len(batch)))
		d.lastError.Store(err.Error())

		d.logger.Warn("msg", "Batch delivery failed, entries requeued",
			"component", "destination",
			"name", d.opts.Name,
			"reason", string(reason),
			"batch_size", len(batch),
			"error", err)
	} else {
		d.logger.Debug("msg", "Batch delivered",
			"component", "destination",
			"name", d.opts.Name,
			"reason", string(reason),
			"batch_size", len(batch))
	}

	d.sending.Store(false)
}

// deliver encodes and sends one batch.
func (d *Destination) deliver(ctx context.Context, batch []core.LogEntry) error {
	body, err := d.encoder.Encode(batch)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	if err := d.sender.Send(ctx, body); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	d.delivered.Add(uint64(len(batch)))
	d.lastFlush.Store(time.Now())
	return nil
}

// flushTimer flushes a non-empty buffer on every tick.
func (d *Destination) flushTimer() {
	defer d.tickerWg.Done()

	ticker := time.NewTicker(d.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.trigger(ReasonInterval)
		case <-d.done:
			return
		}
	}
}

func (d *Destination) isClosed() bool {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()
	return d.closed
}

// Close stops triggers, waits for the in-flight send and makes one final
// synchronous attempt with whatever is still buffered. Entries that cannot
// be delivered are reported as lost. The sender is closed afterwards.
func (d *Destination) Close(ctx context.Context) error {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return nil
	}
	d.closed = true
	d.closeMu.Unlock()

	if d.subscription != nil {
		d.subscription.Unsubscribe()
	}
	close(d.done)
	d.tickerWg.Wait()

	waitDone := make(chan struct{})
	go func() {
		d.inFlight.Wait()
		close(waitDone)
	}()

	var closeErr error
	select {
	case <-waitDone:
		closeErr = d.finalFlush(ctx)
	case <-ctx.Done():
		closeErr = fmt.Errorf("destination '%s': in-flight send did not finish: %w", d.opts.Name, ctx.Err())
	}

	if err := d.sender.Close(); err != nil {
		closeErr = errors.Join(closeErr, fmt.Errorf("destination '%s': closing sender: %w", d.opts.Name, err))
	}

	d.logger.Info("msg", "Destination closed",
		"component", "destination",
		"name", d.opts.Name,
		"delivered", d.delivered.Load(),
		"failed_batches", d.failedBatches.Load())

	return closeErr
}

func (d *Destination) finalFlush(ctx context.Context) error {
	batch := d.buffer.Drain()
	if len(batch) == 0 {
		return nil
	}

	d.flushes.Add(1)
	sendCtx, cancel := context.WithTimeout(ctx, d.opts.SendTimeout)
	defer cancel()

	if err := d.deliver(sendCtx, batch); err != nil {
		d.buffer.Restore(batch)
		d.failedBatches.Add(1)
		d.lastError.Store(err.Error())

		d.logger.Error("msg", "Final flush failed, entries lost",
			"component", "destination",
			"name", d.opts.Name,
			"lost", len(batch),
			"error", err)
		return fmt.Errorf("destination '%s': %d entries lost: %w", d.opts.Name, len(batch), err)
	}
	return nil
}

// Stats returns a snapshot of the destination counters.
func (d *Destination) Stats() Stats {
	return Stats{
		Name:          d.opts.Name,
		Encoder:       d.encoder.Name(),
		Sender:        d.sender.Name(),
		Written:       d.written.Load(),
		Filtered:      d.filtered.Load(),
		Flushes:       d.flushes.Load(),
		Coalesced:     d.coalesced.Load(),
		Paced:         d.pacer.deniedCount(),
		Delivered:     d.delivered.Load(),
		FailedBatches: d.failedBatches.Load(),
		Requeued:      d.requeued.Load(),
		Pending:       d.buffer.Len(),
		Sending:       d.sending.Load(),
		LastFlush:     d.lastFlush.Load().(time.Time),
		LastError:     d.lastError.Load().(string),
	}
}
