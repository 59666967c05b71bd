// Package loader fetches the icon catalog and raw icon sources at runtime.
//
// Failures never reach the caller as errors: a catalog that cannot be read
// comes back empty and an icon that cannot be read comes back absent, both
// with a log entry.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/eringen/iconshelf/catalog"
)

// DefaultCatalogName is the well-known catalog address.
const DefaultCatalogName = "/icons-metadata.json"

const (
	defaultTTL      = time.Hour
	maxCatalogBytes = 32 << 20
	maxIconBytes    = 1 << 20
)

// Loader reads through a single Source. The catalog is cached for a TTL;
// icon sources are never cached.
type Loader struct {
	src         Source
	catalogName string
	ttl         time.Duration
	logger      *log.Logger

	mu      sync.RWMutex
	cat     catalog.Catalog
	loaded  bool
	fetched time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithCatalogName overrides DefaultCatalogName.
func WithCatalogName(name string) Option {
	return func(l *Loader) {
		l.catalogName = name
	}
}

// WithTTL sets how long a fetched catalog is reused. Zero disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		l.ttl = ttl
	}
}

// WithLogger sets the logger used for failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader reading from src.
func New(src Source, opts ...Option) *Loader {
	l := &Loader{
		src:         src,
		catalogName: DefaultCatalogName,
		ttl:         defaultTTL,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) valid() bool {
	return l.loaded && l.ttl > 0 && time.Since(l.fetched) < l.ttl
}

// Invalidate clears the cache so the next FetchCatalog reads the source.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cat = catalog.Catalog{}
	l.loaded = false
	l.mu.Unlock()
}

// FetchCatalog returns the catalog, or an empty catalog when it cannot be
// read or decoded. Each call returns its own copy of the cached document.
func (l *Loader) FetchCatalog(ctx context.Context) catalog.Catalog {
	l.mu.RLock()
	if l.valid() {
		cat := l.cat.Clone()
		l.mu.RUnlock()
		return cat
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.valid() {
		return l.cat.Clone()
	}
	cat, err := l.readCatalog(ctx)
	if err != nil {
		l.logger.Printf("loader: catalog unavailable: %v", err)
		return catalog.Empty()
	}
	l.cat = cat
	l.loaded = true
	l.fetched = time.Now()
	return cat.Clone()
}

func (l *Loader) readCatalog(ctx context.Context) (catalog.Catalog, error) {
	rc, err := l.src.Open(ctx, l.catalogName)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer rc.Close()

	var cat catalog.Catalog
	if err := json.NewDecoder(io.LimitReader(rc, maxCatalogBytes)).Decode(&cat); err != nil {
		return catalog.Catalog{}, fmt.Errorf("decode %s: %w", l.catalogName, err)
	}
	if cat.Categories == nil {
		cat = catalog.Empty()
	}
	return cat, nil
}

// FetchIconSource returns the raw text stored at path. The boolean is false
// when the content cannot be read.
func (l *Loader) FetchIconSource(ctx context.Context, path string) (string, bool) {
	if path == "" {
		l.logger.Printf("loader: icon source unavailable: empty path")
		return "", false
	}
	rc, err := l.src.Open(ctx, path)
	if err != nil {
		l.logger.Printf("loader: icon source unavailable: %s: %v", path, err)
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxIconBytes))
	if err != nil {
		l.logger.Printf("loader: icon source unavailable: %s: %v", path, err)
		return "", false
	}
	return string(data), true
}
