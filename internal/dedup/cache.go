package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
)

const defaultSeenTTL = 7 * 24 * time.Hour

// SeenCache is a best-effort redis front for the gate. It is never
// authoritative: a cache error or a cold cache degrades to a store lookup,
// and a hit only short-circuits the read path. A nil *SeenCache is valid and
// always misses.
type SeenCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSeenCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SeenCache {
	if ttl <= 0 {
		ttl = defaultSeenTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SeenCache{client: client, ttl: ttl, logger: log}
}

func seenKey(userID, link string) string {
	return fmt.Sprintf("seen:%s:%s", userID, strings.TrimSpace(link))
}

// Seen reports whether the link was marked recently. Errors count as misses.
func (c *SeenCache) Seen(ctx context.Context, userID, link string) bool {
	if c == nil || c.client == nil || strings.TrimSpace(link) == "" {
		return false
	}

	n, err := c.client.Exists(ctx, seenKey(userID, link)).Result()
	if err != nil {
		c.logger.Debug("seen-cache lookup failed, treating as miss",
			zap.String(logger.FieldUser, userID),
			zap.Error(err),
		)
		return false
	}
	return n > 0
}

// Mark records the link. Failures are logged and dropped; the store stays
// correct without the cache.
func (c *SeenCache) Mark(ctx context.Context, userID, link string) {
	if c == nil || c.client == nil || strings.TrimSpace(link) == "" {
		return
	}

	if err := c.client.Set(ctx, seenKey(userID, link), "1", c.ttl).Err(); err != nil {
		c.logger.Debug("seen-cache mark failed",
			zap.String(logger.FieldUser, userID),
			zap.Error(err),
		)
	}
}
