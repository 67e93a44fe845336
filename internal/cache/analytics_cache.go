package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/config"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

const (
	dailySummaryKeyPrefix  = "analytics:daily"
	analyticsScanBatchSize = 100
)

// AnalyticsCache fronts the sales aggregation queries. A miss returns
// found=false with a nil error, never a failure.
type AnalyticsCache interface {
	GetDailySummaries(ctx context.Context, days int) ([]domain.DailySummary, bool, error)
	SetDailySummaries(ctx context.Context, days int, summaries []domain.DailySummary) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

// NewAnalyticsCache returns the redis-backed cache when caching is
// enabled, the noop cache otherwise.
func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{client: client, ttl: ttl}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) GetDailySummaries(ctx context.Context, days int) ([]domain.DailySummary, bool, error) {
	key := dailySummaryKey(days)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summaries []domain.DailySummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		return nil, false, fmt.Errorf("decode daily summary cache: %w", err)
	}

	return summaries, true, nil
}

func (c *redisAnalyticsCache) SetDailySummaries(ctx context.Context, days int, summaries []domain.DailySummary) error {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("encode daily summary cache: %w", err)
	}

	if err := c.client.Set(ctx, dailySummaryKey(days), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dailySummaryKeyPrefix, analyticsScanBatchSize)
}

func (n *noopAnalyticsCache) GetDailySummaries(ctx context.Context, days int) ([]domain.DailySummary, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetDailySummaries(ctx context.Context, days int, summaries []domain.DailySummary) error {
	return nil
}

func (n *noopAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func dailySummaryKey(days int) string {
	return fmt.Sprintf("%s:%d", dailySummaryKeyPrefix, days)
}
