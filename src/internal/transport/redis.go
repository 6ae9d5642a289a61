// FILE: logship/src/internal/transport/redis.go
package transport

import (
	"context"
	"fmt"
	"sync/atomic"

	"logship/src/internal/config"
	ltls "logship/src/internal/tls"

	"github.com/lixenwraith/log"
	"github.com/redis/go-redis/v9"
)

// RedisSender appends each payload to a Redis list.
type RedisSender struct {
	config *config.RedisOptions
	rdb    *redis.Client
	logger *log.Logger
	closed atomic.Bool
}

// NewRedisSender creates the client. The connection pool dials on first use.
func NewRedisSender(opts *config.RedisOptions, logger *log.Logger) (*RedisSender, error) {
	if opts == nil {
		return nil, fmt.Errorf("redis sender options cannot be nil")
	}
	if opts.Key == "" {
		return nil, fmt.Errorf("redis sender requires a list key")
	}

	tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:      opts.Address,
		Password:  opts.Password,
		DB:        int(opts.DB),
		TLSConfig: tlsManager.GetConfig(),
	})

	return &RedisSender{
		config: opts,
		rdb:    rdb,
		logger: logger,
	}, nil
}

// Send pushes the payload and trims the list in a single pipeline.
func (r *RedisSender) Send(ctx context.Context, body []byte) error {
	if r.closed.Load() {
		return ErrNotConnected
	}

	pipe := r.rdb.Pipeline()
	pipe.RPush(ctx, r.config.Key, body)
	if r.config.MaxLen > 0 {
		pipe.LTrim(ctx, r.config.Key, -r.config.MaxLen, -1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push to %s failed: %w", r.config.Key, err)
	}

	r.logger.Debug("msg", "Batch pushed",
		"component", "redis_sender",
		"key", r.config.Key,
		"bytes", len(body))
	return nil
}

// Ping checks connectivity without sending anything.
func (r *RedisSender) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisSender) Name() string {
	return "redis"
}

func (r *RedisSender) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.rdb.Close()
}
