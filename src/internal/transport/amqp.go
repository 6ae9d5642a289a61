// FILE: logship/src/internal/transport/amqp.go
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"logship/src/internal/config"
	ltls "logship/src/internal/tls"

	"github.com/lixenwraith/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSender publishes each payload as one message.
type AMQPSender struct {
	config      *config.AMQPOptions
	contentType string
	tlsConfig   *tls.Config
	logger      *log.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// NewAMQPSender creates the sender. The broker is dialed on the first send.
func NewAMQPSender(opts *config.AMQPOptions, contentType string, logger *log.Logger) (*AMQPSender, error) {
	if opts == nil {
		return nil, fmt.Errorf("AMQP sender options cannot be nil")
	}
	if _, err := url.Parse(opts.URL); err != nil {
		return nil, fmt.Errorf("invalid AMQP URL: %w", err)
	}

	tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
	}

	return &AMQPSender{
		config:      opts,
		contentType: contentType,
		tlsConfig:   tlsManager.GetConfig(),
		logger:      logger,
	}, nil
}

// Send publishes the payload to the configured exchange and routing key.
func (a *AMQPSender) Send(ctx context.Context, body []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrNotConnected
	}

	if a.channel == nil || a.channel.IsClosed() || a.conn == nil || a.conn.IsClosed() {
		a.resetLocked()
		if err := a.connectLocked(); err != nil {
			return err
		}
	}

	publishing := amqp.Publishing{
		ContentType:  a.contentType,
		Body:         body,
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now(),
	}
	if a.config.Persistent {
		publishing.DeliveryMode = amqp.Persistent
	}

	err := a.channel.PublishWithContext(
		ctx,
		a.config.Exchange,
		a.config.RoutingKey,
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		a.logger.Warn("msg", "AMQP publish failed, connection reset",
			"component", "amqp_sender",
			"exchange", a.config.Exchange,
			"routing_key", a.config.RoutingKey,
			"error", err)
		a.resetLocked()
		return fmt.Errorf("failed to publish: %w", err)
	}

	return nil
}

func (a *AMQPSender) connectLocked() error {
	var conn *amqp.Connection
	var err error
	if a.tlsConfig != nil {
		conn, err = amqp.DialTLS(a.config.URL, a.tlsConfig)
	} else {
		conn, err = amqp.Dial(a.config.URL)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}

	if a.config.Queue != "" {
		_, err = channel.QueueDeclare(
			a.config.Queue,
			a.config.Durable,
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			channel.Close()
			conn.Close()
			return fmt.Errorf("failed to declare queue %s: %w", a.config.Queue, err)
		}
	}

	a.conn = conn
	a.channel = channel

	a.logger.Info("msg", "AMQP connected",
		"component", "amqp_sender",
		"exchange", a.config.Exchange,
		"queue", a.config.Queue)
	return nil
}

func (a *AMQPSender) resetLocked() {
	if a.channel != nil {
		_ = a.channel.Close()
		a.channel = nil
	}
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
}

func (a *AMQPSender) Name() string {
	return "amqp"
}

func (a *AMQPSender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.resetLocked()
	return nil
}
