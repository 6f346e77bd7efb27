package cache

import (
	"context"
	"time"

	"github.com/voyagen/sportsvault/internal/models"
)

// summaryTTLRuns is how many lock periods the latest summary outlives its run.
const summaryTTLRuns = 12

// Coordinator guards pipeline runs with a Redis lock and announces finished
// runs on a Redis list.
type Coordinator struct {
	redis   *Redis
	queue   string
	lockTTL time.Duration
}

// NewCoordinator returns a Coordinator using DefaultQueue. lockTTL should
// exceed the longest expected run.
func NewCoordinator(r *Redis, lockTTL time.Duration) *Coordinator {
	return &Coordinator{redis: r, queue: DefaultQueue, lockTTL: lockTTL}
}

// Acquire takes the run lock, returning ErrLocked if another run holds it.
func (c *Coordinator) Acquire(ctx context.Context) (func(), error) {
	return TryLock(ctx, c.redis, RunLockKey, c.lockTTL)
}

// Previous returns the summary of the last published run, if still retained.
func (c *Coordinator) Previous(ctx context.Context) (*models.RunSummary, error) {
	return LatestSummary(ctx, c.redis)
}

// Publish announces a finished run.
func (c *Coordinator) Publish(ctx context.Context, s models.RunSummary) error {
	return PublishSummary(ctx, c.redis, c.queue, s, c.lockTTL*summaryTTLRuns)
}
