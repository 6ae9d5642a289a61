// FILE: logship/src/internal/transport/tcp.go
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"logship/src/internal/config"
	ltls "logship/src/internal/tls"

	"github.com/lixenwraith/log"
)

// TCPSender writes each payload to a persistent TCP connection.
// The connection is dialed lazily and dropped on any error.
type TCPSender struct {
	config    *config.TCPOptions
	tlsConfig *tls.Config
	logger    *log.Logger

	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

// NewTCPSender creates a new TCP sender. No connection is made until the first send.
func NewTCPSender(opts *config.TCPOptions, logger *log.Logger) (*TCPSender, error) {
	if opts == nil {
		return nil, fmt.Errorf("TCP sender options cannot be nil")
	}
	if _, _, err := net.SplitHostPort(opts.Address); err != nil {
		return nil, fmt.Errorf("invalid address format (expected host:port): %w", err)
	}

	tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
	}

	return &TCPSender{
		config:    opts,
		tlsConfig: tlsManager.GetConfig(),
		logger:    logger,
	}, nil
}

// Send writes the whole payload before the context deadline.
func (t *TCPSender) Send(ctx context.Context, body []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrNotConnected
	}

	if t.conn == nil {
		conn, err := t.connect(ctx)
		if err != nil {
			return err
		}
		t.conn = conn
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Duration(t.config.DialTimeoutMS) * time.Millisecond)
	}
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		t.dropLocked()
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := t.conn.Write(body); err != nil {
		t.logger.Warn("msg", "TCP write failed, connection dropped",
			"component", "tcp_sender",
			"address", t.config.Address,
			"error", err)
		t.dropLocked()
		return fmt.Errorf("write failed: %w", err)
	}

	return nil
}

func (t *TCPSender) connect(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   time.Duration(t.config.DialTimeoutMS) * time.Millisecond,
		KeepAlive: time.Duration(t.config.KeepAliveSeconds) * time.Second,
	}

	var conn net.Conn
	var err error
	if t.tlsConfig != nil {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: t.tlsConfig}
		conn, err = tlsDialer.DialContext(ctx, "tcp", t.config.Address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", t.config.Address)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", t.config.Address, err)
	}

	// Set TCP keep-alive
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(time.Duration(t.config.KeepAliveSeconds) * time.Second)
	}

	t.logger.Info("msg", "Connected to TCP server",
		"component", "tcp_sender",
		"address", t.config.Address,
		"local_addr", conn.LocalAddr(),
		"tls", t.tlsConfig != nil)

	return conn, nil
}

func (t *TCPSender) dropLocked() {
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
}

func (t *TCPSender) Name() string {
	return "tcp"
}

// Close closes the connection. Later sends fail with ErrNotConnected.
func (t *TCPSender) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.dropLocked()
	return nil
}
