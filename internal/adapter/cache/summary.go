package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"focustime/internal/core/domain"
)

const summaryTTL = time.Hour

// SummaryCache keeps the per-user project summary rollup in Redis. Cache
// failures are logged and treated as misses; the database remains the source
// of truth.
type SummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

func summaryKey(userID string) string {
	return fmt.Sprintf("focustime:summary:%s", userID)
}

func (c *SummaryCache) Get(ctx context.Context, userID string) ([]domain.ProjectFocusSummary, bool) {
	payload, err := c.client.Get(ctx, summaryKey(userID)).Bytes()

	if err == redis.Nil {
		return nil, false
	}

	if err != nil {
		slog.Error("error reading summary cache", "user_id", userID, "error", err)
		return nil, false
	}

	var summaries []domain.ProjectFocusSummary

	if err := json.Unmarshal(payload, &summaries); err != nil {
		slog.Error("error decoding summary cache", "user_id", userID, "error", err)
		return nil, false
	}

	return summaries, true
}

func (c *SummaryCache) Set(ctx context.Context, userID string, summaries []domain.ProjectFocusSummary) {
	payload, err := json.Marshal(summaries)

	if err != nil {
		slog.Error("error encoding summary cache", "user_id", userID, "error", err)
		return
	}

	if err := c.client.Set(ctx, summaryKey(userID), payload, summaryTTL).Err(); err != nil {
		slog.Error("error writing summary cache", "user_id", userID, "error", err)
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, summaryKey(userID)).Err(); err != nil {
		slog.Error("error invalidating summary cache", "user_id", userID, "error", err)
	}
}
