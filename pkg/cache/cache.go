// Package cache stores fetched catalog bodies between runs.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (the default, caching disabled)
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for teams that publish several
//     dashboards from CI and want one warm cache
//
// Keys are built with [Key] so callers never put raw URLs on disk or in
// Redis. [Scoped] prefixes every key, which keeps two dashboards that share
// a backend apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Get reports a miss with ok=false and a nil error; an error is reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type scoped struct {
	Cache
	prefix string
}

// Scoped returns a view of c that prepends prefix to every key.
func Scoped(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	return &scoped{Cache: c, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.Cache.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.Cache.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.Cache.Delete(ctx, s.prefix+key)
}
