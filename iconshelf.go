// Package iconshelf serves an SVG icon catalog and a browsing UI for it,
// built with Go, Echo, and templ.
//
// The catalog document and the icon files are served as static content;
// the browse page reads them back through the loader and keeps the UI state
// of each viewer in its own browser.Controller, keyed by a session cookie.
package iconshelf

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/eringen/iconshelf/browser"
	"github.com/eringen/iconshelf/loader"
	"github.com/eringen/iconshelf/views"
)

// App is the central iconshelf application. It wires together the loader,
// the per-session browser controllers, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Loader   *loader.Loader
	Sessions *Sessions

	source       loader.Source
	sessionKey   []byte
	logger       *log.Logger
	pngLimiter   *RenderLimiter
	customRoutes []func(*App)
}

// New creates an App with the given configuration. Routes and middleware
// are registered immediately so the App can be exercised through
// a.Echo.ServeHTTP without starting a listener.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.source == nil {
		if a.Config.CatalogURL != "" {
			a.source = loader.NewHTTPSource(a.Config.CatalogURL, a.Config.FetchTimeout)
		} else {
			a.source = loader.DirSource{FS: os.DirFS(a.Config.PublicDir)}
		}
	}
	a.sessionKey = []byte(a.Config.SessionSecret)
	if len(a.sessionKey) == 0 {
		a.logger.Printf("iconshelf: ICONSHELF_SESSION_SECRET not set, sessions reset on restart")
		a.sessionKey = securecookie.GenerateRandomKey(32)
	}

	a.Loader = loader.New(a.source, loader.WithTTL(a.Config.CatalogTTL), loader.WithLogger(a.logger))
	a.Sessions = NewSessions(a.Config.MaxSessions, sessionMaxAge, func() *browser.Controller {
		// the copy itself happens in the viewer's browser
		return browser.New(a.Loader, nil, browser.WithLogger(a.logger))
	})
	a.pngLimiter = NewRenderLimiter(a.Config.PNGLimit, time.Minute)

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start warms the catalog cache and starts the server.
func (a *App) Start() error {
	cat := a.Loader.FetchCatalog(context.Background())
	a.Echo.Logger.Infof("iconshelf: %d icons in %d categories", cat.Len(), len(cat.Categories))

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded UI assets
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/app.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// Catalog contract
	e.GET(loader.DefaultCatalogName, a.handleCatalog)
	e.GET("/icons/*", a.handleIcon)

	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", handleRobots)

	// Browse UI, one controller per session
	e.GET("/", a.handleBrowse, a.sessionMiddleware)
	e.POST("/select", a.handleSelect, a.sessionMiddleware)
	e.POST("/deselect", a.handleDeselect, a.sessionMiddleware)
	e.POST("/copy", a.handleCopy, a.sessionMiddleware)
	e.GET("/download", a.handleDownload, a.sessionMiddleware)
	e.GET("/download.png", a.handleDownloadPNG, a.pngLimiter.Middleware, a.sessionMiddleware)
	e.GET("/notice", a.handleNotice, a.sessionMiddleware)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Sessions != nil {
		a.Sessions.Stop()
	}
	if a.pngLimiter != nil {
		a.pngLimiter.Stop()
	}
	return a.Echo.Close()
}
