package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wronai/repodash/pkg/buildinfo"
	"github.com/wronai/repodash/pkg/cache"
	"github.com/wronai/repodash/pkg/errors"
	"github.com/wronai/repodash/pkg/httputil"
)

// Source fetches the raw body stored at a location.
type Source interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// forgetter is implemented by sources that keep copies of bodies. The loader
// calls Forget when a body turned out not to be a catalog.
type forgetter interface {
	Forget(ctx context.Context, location string)
}

// cacheNamespace prefixes cache keys for catalog bodies.
const cacheNamespace = "catalog"

// HTTPSource fetches catalogs over HTTP(S). Successful bodies can be kept in
// a [cache.Cache] so repeated runs do not hit the network.
type HTTPSource struct {
	client  *httputil.Client
	cache   cache.Cache
	ttl     time.Duration
	retries int
	delay   time.Duration
}

// HTTPOption configures an [HTTPSource].
type HTTPOption func(*HTTPSource)

// WithCache keeps fetched bodies in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.cache = c
			s.ttl = ttl
		}
	}
}

// WithRetries retries transient failures (network errors, 5xx) up to n
// extra times, starting with delay and doubling.
func WithRetries(n int, delay time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.retries = max(n, 0)
		s.delay = delay
	}
}

// WithClient replaces the HTTP client, mostly for tests.
func WithClient(c *httputil.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// NewHTTPSource creates an HTTPSource. Without options it makes one request
// per fetch and caches nothing.
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		client: httputil.NewClient(map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		cache: cache.NewNullCache(),
		delay: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the body at location, from cache when a fresh copy exists.
func (s *HTTPSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	key := cache.Key(cacheNamespace, location)
	if data, ok, _ := s.cache.Get(ctx, key); ok {
		return data, nil
	}

	var body []byte
	err := httputil.Retry(ctx, s.retries+1, s.delay, func() error {
		var err error
		body, err = s.client.Get(ctx, location)
		return err
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, body, s.ttl)
	return body, nil
}

// Forget drops the cached copy of location.
func (s *HTTPSource) Forget(ctx context.Context, location string) {
	_ = s.cache.Delete(ctx, cache.Key(cacheNamespace, location))
}

// FileSource reads catalogs from disk. Relative locations are resolved
// against Root and may not escape it; absolute locations are read as given.
type FileSource struct {
	Root string
}

// NewFileSource creates a FileSource rooted at root ("." when empty).
func NewFileSource(root string) *FileSource {
	if root == "" {
		root = "."
	}
	return &FileSource{Root: root}
}

// Fetch reads the file at location.
func (s *FileSource) Fetch(_ context.Context, location string) ([]byte, error) {
	path := location
	if !filepath.IsAbs(location) {
		if err := errors.ValidatePath(location); err != nil {
			return nil, err
		}
		path = filepath.Join(s.Root, filepath.FromSlash(location))
	}

	//nolint:gosec // catalog locations come from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
