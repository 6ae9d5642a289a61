// FILE: logship/src/internal/collector/collector.go
package collector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/panjf2000/gnet/v2"
)

// LineHandler receives one newline-delimited line without its terminator.
// It is called from gnet event loops and must be safe for concurrent use.
type LineHandler func(remoteAddr string, line []byte)

// Collector is a TCP line receiver used to observe tcp destinations locally.
type Collector struct {
	host    string
	port    int64
	handler LineHandler
	logger  *log.Logger

	server   *collectorServer
	engine   *gnet.Engine
	engineMu sync.Mutex
	wg       sync.WaitGroup
	stopOnce sync.Once

	// Statistics
	totalLines     atomic.Uint64
	totalBytes     atomic.Uint64
	oversizedLines atomic.Uint64
	activeConns    atomic.Int64
	startTime      time.Time
}

// Stats is a snapshot of collector counters.
type Stats struct {
	TotalLines        uint64
	TotalBytes        uint64
	OversizedLines    uint64
	ActiveConnections int64
	StartTime         time.Time
}

// New creates a collector listening on host:port.
func New(host string, port int64, handler LineHandler, logger *log.Logger) (*Collector, error) {
	if handler == nil {
		return nil, fmt.Errorf("collector requires a line handler")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if host == "" {
		host = "0.0.0.0"
	}

	return &Collector{
		host:    host,
		port:    port,
		handler: handler,
		logger:  logger,
	}, nil
}

// Start runs the gnet engine in the background.
func (c *Collector) Start() error {
	c.server = newCollectorServer(c)
	c.startTime = time.Now()

	addr := fmt.Sprintf("tcp://%s:%d", c.host, c.port)

	// Create a gnet adapter using the existing logger instance
	gnetLogger := compat.NewGnetAdapter(c.logger)

	errChan := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.Info("msg", "Collector starting",
			"component", "collector",
			"address", addr)

		err := gnet.Run(c.server, addr,
			gnet.WithLogger(gnetLogger),
			gnet.WithMulticore(true),
			gnet.WithReusePort(true),
		)
		if err != nil {
			c.logger.Error("msg", "Collector failed",
				"component", "collector",
				"port", c.port,
				"error", err)
		}
		errChan <- err
	}()

	// Wait briefly for the engine to boot or fail
	select {
	case err := <-errChan:
		c.wg.Wait()
		if err == nil {
			err = fmt.Errorf("collector exited during startup")
		}
		return err
	case <-c.server.booted():
		return nil
	case <-time.After(2 * time.Second):
		return fmt.Errorf("collector did not boot on %s", addr)
	}
}

// Stop shuts the engine down and waits for it to exit.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		c.engineMu.Lock()
		engine := c.engine
		c.engineMu.Unlock()

		if engine != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := engine.Stop(ctx); err != nil {
				c.logger.Warn("msg", "Collector engine stop failed",
					"component", "collector",
					"error", err)
			}
		}

		c.wg.Wait()
		c.logger.Info("msg", "Collector stopped",
			"component", "collector",
			"lines", c.totalLines.Load())
	})
}

// Stats returns a snapshot of collector counters.
func (c *Collector) Stats() Stats {
	return Stats{
		TotalLines:        c.totalLines.Load(),
		TotalBytes:        c.totalBytes.Load(),
		OversizedLines:    c.oversizedLines.Load(),
		ActiveConnections: c.activeConns.Load(),
		StartTime:         c.startTime,
	}
}
