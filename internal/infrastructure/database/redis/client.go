// Package redis provides the Redis client and the analysis result cache.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lexatlas/precedent-intelligence/internal/config"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

// Client wraps the go-redis client with connection verification.
type Client struct {
	rdb    *goredis.Client
	logger logging.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg config.RedisConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis connection failed")
	}

	logger.Info("connected to redis", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: logger}, nil
}

// Raw returns the underlying go-redis client.
func (c *Client) Raw() *goredis.Client {
	return c.rdb
}

// HealthCheck verifies the connection.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis health check failed")
	}
	return nil
}

// Close shuts the client down.
func (c *Client) Close() error {
	return c.rdb.Close()
}
