package reportcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache keeps rendered report and widget payloads in redis. A miss or a redis
// failure both mean "recompute": the core never assumes freshness.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

func New(rdb *redis.Client, log *zap.Logger, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, log: log, ttl: ttl}
}

// ReportKey identifies a cached report by kind, date range and parameters.
func ReportKey(kind string, start, end time.Time, params string) string {
	return fmt.Sprintf("report:%s:%s:%s:%s",
		kind,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		params,
	)
}

func WidgetKey(kind string, days int) string {
	return fmt.Sprintf("widget:%s:%d", kind, days)
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("report cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("report cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
