package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// AnalysisCache caches assembled analysis results in Redis.  Concurrent reads
// of the same key share one round trip through singleflight; TTLs carry a
// +/-10% jitter so a burst of identical analyses does not expire at once.
type AnalysisCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// AnalysisCacheOption customizes an AnalysisCache.
type AnalysisCacheOption func(*AnalysisCache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) AnalysisCacheOption {
	return func(c *AnalysisCache) { c.prefix = prefix }
}

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) AnalysisCacheOption {
	return func(c *AnalysisCache) { c.ttl = ttl }
}

// NewAnalysisCache wires a result cache around the client.
func NewAnalysisCache(client *Client, logger logging.Logger, opts ...AnalysisCacheOption) *AnalysisCache {
	if logger == nil {
		logger = logging.Default()
	}
	c := &AnalysisCache{
		client: client,
		logger: logger.Named("analysis-cache"),
		prefix: "lexatlas:analysis:",
		ttl:    10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fullKey hashes the logical key so arbitrary issue text never leaks into key
// space or exceeds key length limits.
func (c *AnalysisCache) fullKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *AnalysisCache) jitterTTL() time.Duration {
	jitter := float64(c.ttl) * 0.1 * (rand.Float64()*2 - 1)
	return c.ttl + time.Duration(jitter)
}

// Get returns the cached result for key, reporting a miss as (nil, false, nil).
func (c *AnalysisCache) Get(ctx context.Context, key string) (*ptypes.AnalysisResult, bool, error) {
	fullKey := c.fullKey(key)
	v, err, _ := c.group.Do(fullKey, func() (interface{}, error) {
		data, err := c.client.Raw().Get(ctx, fullKey).Bytes()
		if err == goredis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "reading analysis cache")
		}
		var result ptypes.AnalysisResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "decoding cached analysis")
		}
		return &result, nil
	})
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return v.(*ptypes.AnalysisResult), true, nil
}

// Set stores the result under key.
func (c *AnalysisCache) Set(ctx context.Context, key string, result *ptypes.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "encoding analysis result")
	}
	if err := c.client.Raw().Set(ctx, c.fullKey(key), data, c.jitterTTL()).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "writing analysis cache")
	}
	return nil
}

// Invalidate drops every cached analysis.  Called after corpus re-ingestion
// so stale rankings never outlive the data they were computed from.
func (c *AnalysisCache) Invalidate(ctx context.Context) error {
	iter := c.client.Raw().Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "scanning analysis cache keys")
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Raw().Del(ctx, keys...).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "dropping analysis cache keys")
	}
	c.logger.Info("analysis cache invalidated", logging.Int("keys", len(keys)))
	return nil
}
