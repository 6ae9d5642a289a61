// FILE: logship/src/internal/collector/server.go
package collector

import (
	"bytes"
	"sync"

	"logship/src/internal/core"

	"github.com/panjf2000/gnet/v2"
)

// Handles gnet events
type collectorServer struct {
	gnet.BuiltinEventEngine
	collector *Collector
	clients   map[gnet.Conn]*bytes.Buffer
	mu        sync.Mutex
	bootCh    chan struct{}
}

func newCollectorServer(c *Collector) *collectorServer {
	return &collectorServer{
		collector: c,
		clients:   make(map[gnet.Conn]*bytes.Buffer),
		bootCh:    make(chan struct{}),
	}
}

func (s *collectorServer) booted() <-chan struct{} {
	return s.bootCh
}

func (s *collectorServer) OnBoot(eng gnet.Engine) gnet.Action {
	// Store engine reference for shutdown
	s.collector.engineMu.Lock()
	s.collector.engine = &eng
	s.collector.engineMu.Unlock()

	s.collector.logger.Debug("msg", "Collector booted",
		"component", "collector",
		"port", s.collector.port)
	close(s.bootCh)
	return gnet.None
}

func (s *collectorServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	s.mu.Lock()
	s.clients[c] = &bytes.Buffer{}
	s.mu.Unlock()

	newCount := s.collector.activeConns.Add(1)
	s.collector.logger.Debug("msg", "Collector connection opened",
		"component", "collector",
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount)
	return nil, gnet.None
}

func (s *collectorServer) OnClose(c gnet.Conn, err error) gnet.Action {
	s.mu.Lock()
	buf := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()

	// Deliver a trailing line without terminator
	if buf != nil && buf.Len() > 0 {
		s.deliver(c.RemoteAddr().String(), buf.Bytes())
	}

	newCount := s.collector.activeConns.Add(-1)
	s.collector.logger.Debug("msg", "Collector connection closed",
		"component", "collector",
		"remote_addr", c.RemoteAddr().String(),
		"active_connections", newCount,
		"error", err)
	return gnet.None
}

func (s *collectorServer) OnTraffic(c gnet.Conn) gnet.Action {
	s.mu.Lock()
	buf, exists := s.clients[c]
	s.mu.Unlock()
	if !exists {
		return gnet.Close
	}

	// Read all available data
	data, err := c.Next(-1)
	if err != nil {
		s.collector.logger.Error("msg", "Error reading from connection",
			"component", "collector",
			"error", err)
		return gnet.Close
	}

	buf.Write(data)
	remote := c.RemoteAddr().String()

	// Process complete lines, keeping any partial tail buffered
	for {
		pending := buf.Bytes()
		idx := bytes.IndexByte(pending, '\n')
		if idx < 0 {
			break
		}
		line := bytes.TrimRight(pending[:idx], "\r")
		if len(line) > 0 {
			s.deliver(remote, line)
		}
		buf.Next(idx + 1)
	}

	if buf.Len() > core.MaxLineLength {
		s.collector.oversizedLines.Add(1)
		s.collector.logger.Warn("msg", "Line exceeds maximum length, closing connection",
			"component", "collector",
			"remote_addr", remote,
			"buffer_size", buf.Len())
		buf.Reset()
		return gnet.Close
	}

	return gnet.None
}

func (s *collectorServer) deliver(remote string, line []byte) {
	s.collector.totalLines.Add(1)
	s.collector.totalBytes.Add(uint64(len(line)))

	// Handler may retain the line
	s.collector.handler(remote, append([]byte(nil), line...))
}
