package iconshelf

import (
	"log"
	"time"

	"github.com/eringen/iconshelf/loader"
)

// SiteConfig holds all configuration for an iconshelf server. The env tags
// are read by the CLI; zero values are filled in by setDefaults.
type SiteConfig struct {
	Name        string `env:"ICONSHELF_NAME"`        // Site name (default "Icon Shelf")
	URL         string `env:"ICONSHELF_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"ICONSHELF_DESCRIPTION"` // Shown under the title and in meta tags

	Addr      string `env:"ICONSHELF_ADDR"`       // Listen address (default ":3000")
	PublicDir string `env:"ICONSHELF_PUBLIC_DIR"` // Holds icons-metadata.json and icons/ (default "public")

	// CatalogURL switches the loader to HTTP when set, reading the catalog
	// and icons from another server instead of PublicDir.
	CatalogURL   string        `env:"ICONSHELF_CATALOG_URL"`
	FetchTimeout time.Duration `env:"ICONSHELF_FETCH_TIMEOUT"` // HTTP loader timeout (default 10s)
	CatalogTTL   time.Duration `env:"ICONSHELF_CATALOG_TTL"`   // Catalog cache TTL (default 1h)

	PNGLimit int `env:"ICONSHELF_PNG_LIMIT"` // PNG renders per IP per minute (default 30)

	// SessionSecret signs the viewer session cookie. When empty a random key
	// is generated, so sessions do not survive a restart.
	SessionSecret string `env:"ICONSHELF_SESSION_SECRET"`
	CookieSecure  bool   `env:"ICONSHELF_COOKIE_SECURE"` // Set true for HTTPS
	MaxSessions   int    `env:"ICONSHELF_MAX_SESSIONS"`  // Live viewer sessions kept in memory (default 10000)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Icon Shelf"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Browse, search and download SVG icons"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.CatalogTTL == 0 {
		c.CatalogTTL = time.Hour
	}
	if c.PNGLimit == 0 {
		c.PNGLimit = 30
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = 10000
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithSource overrides the loader source derived from the config.
func WithSource(src loader.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithLogger sets the logger passed to the loader and the controller.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}
