package main

import (
	"context"
	"flag"
	"io"
	"log"
	"time"

	"github.com/eringen/iconshelf"
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	var cfg iconshelf.SiteConfig
	if err := parseEnv(&cfg); err != nil {
		return err
	}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (default :3000)")
	fs.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "directory holding icons-metadata.json and icons/ (default public)")
	fs.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "read the catalog and icons from this base URL instead")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "mark the session cookie Secure (serve behind HTTPS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app := iconshelf.New(cfg, iconshelf.WithLogger(log.New(stderr, "", log.LstdFlags)))
	defer app.Close()

	errc := make(chan error, 1)
	go func() {
		errc <- app.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	}
}
