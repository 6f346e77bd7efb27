package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLocked means another holder owns the key.
var ErrLocked = errors.New("lock is already held")

// releaseScript drops the key only while it still carries our token, so a
// lock that expired and was re-taken by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// TryLock sets key to a fresh token if it is absent, expiring after ttl.
// The returned release func must be called once the guarded work is done.
func TryLock(ctx context.Context, r *Redis, key string, ttl time.Duration) (release func(), err error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("cache lock %s: %w", key, err)
	}

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("cache lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// The run context may already be cancelled at this point.
		_ = releaseScript.Run(context.Background(), r.client, []string{key}, token).Err()
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
