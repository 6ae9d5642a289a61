// FILE: logship/src/internal/transport/transport.go
package transport

import (
	"context"
	"errors"
	"fmt"

	"logship/src/internal/config"

	"github.com/lixenwraith/log"
)

var (
	// ErrStatus is returned when the remote answered with a non-accepted status.
	ErrStatus = errors.New("unexpected response status")

	// ErrNotConnected is returned by senders used after Close.
	ErrNotConnected = errors.New("sender not connected")
)

// Sender delivers one encoded payload to a remote backend.
// A nil error means the remote accepted the payload. Senders never retry.
type Sender interface {
	Send(ctx context.Context, body []byte) error
	Name() string
	Close() error
}

// New builds the sender for a validated destination. contentType is the
// encoder's MIME type, used where the transport carries one.
func New(cfg config.DestinationConfig, contentType string, logger *log.Logger) (Sender, error) {
	switch cfg.Type {
	case "http":
		return NewHTTPSender(cfg.HTTP, contentType, logger)
	case "tcp":
		return NewTCPSender(cfg.TCP, logger)
	case "redis":
		return NewRedisSender(cfg.Redis, logger)
	case "amqp":
		return NewAMQPSender(cfg.AMQP, contentType, logger)
	default:
		return nil, fmt.Errorf("unknown sender type: %s", cfg.Type)
	}
}
