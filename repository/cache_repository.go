package repository

import (
	"context"
	"time"
)

// CacheRepository caches serialized simulation reports keyed by an input
// digest. A miss is never an error; the engine is cheap enough to re-run.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
