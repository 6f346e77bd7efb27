package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyagen/sportsvault/internal/models"
)

// Redis keys used by the pipeline.
const (
	DefaultQueue     = "sportsvault:runs"
	LatestSummaryKey = "sportsvault:runs:latest"
	RunLockKey       = "sportsvault:lock:run"
)

// PublishSummary pushes s onto the left side of queue for downstream
// consumers and keeps it under LatestSummaryKey until ttl elapses.
func PublishSummary(ctx context.Context, r *Redis, queue string, s models.RunSummary, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("queue marshal: %w", err)
	}
	if err := r.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("queue push: %w", err)
	}
	return Set(ctx, r, LatestSummaryKey, s, ttl)
}

// LatestSummary returns the most recently published summary, or nil when
// none has been published or it has expired.
func LatestSummary(ctx context.Context, r *Redis) (*models.RunSummary, error) {
	s, err := Get[models.RunSummary](ctx, r, LatestSummaryKey)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest summary: %w", err)
	}
	return &s, nil
}
