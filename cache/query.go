package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QueryCache is a redis-backed read-through cache for upstream queries.
// Entries expire after the configured stale time; mutations invalidate by
// key prefix. Concurrent lookups for the same key are collapsed into one
// upstream call. Cache failures are logged and treated as misses so the
// cache can never become a failure source of its own.
type QueryCache struct {
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

// New creates a QueryCache with the given stale time
func New(rdb *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{rdb: rdb, ttl: ttl}
}

// Resolve returns the cached value for key into out, or runs load, stores the
// result, and decodes it into out. The loaded value must be JSON-encodable.
func (q *QueryCache) Resolve(ctx context.Context, key string, out any, load func() (any, error)) error {
	raw, err := q.rdb.Get(ctx, key).Bytes()
	if err == nil {
		if uerr := json.Unmarshal(raw, out); uerr == nil {
			return nil
		}
		// Corrupt entry, fall through to the loader
		log.Printf("[CACHE] dropping undecodable entry for %s", key)
		q.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] read failed for %s: %v", key, err)
	}

	encoded, err, _ := q.group.Do(key, func() (any, error) {
		value, lerr := load()
		if lerr != nil {
			return nil, lerr
		}
		data, merr := json.Marshal(value)
		if merr != nil {
			return nil, merr
		}
		if serr := q.rdb.Set(ctx, key, data, q.ttl).Err(); serr != nil {
			log.Printf("[CACHE] write failed for %s: %v", key, serr)
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded.([]byte), out)
}

// Has reports whether key currently holds a cached entry
func (q *QueryCache) Has(ctx context.Context, key string) bool {
	n, err := q.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Invalidate removes specific keys
func (q *QueryCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return q.rdb.Del(ctx, keys...).Err()
}

// InvalidatePrefix removes every key under the given prefix
func (q *QueryCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := q.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return q.rdb.Del(ctx, keys...).Err()
}
