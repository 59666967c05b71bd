package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eringen/iconshelf/browser"
	"github.com/eringen/iconshelf/clipboard"
	"github.com/eringen/iconshelf/filter"
	"github.com/eringen/iconshelf/loader"
)

// systemClipboard is the clipboard used by search -copy.
var systemClipboard = clipboard.System

type searchConfig struct {
	PublicDir  string `env:"ICONSHELF_PUBLIC_DIR" envDefault:"public"`
	CatalogURL string `env:"ICONSHELF_CATALOG_URL"`
}

func runSearch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg searchConfig
	if err := parseEnv(&cfg); err != nil {
		return err
	}
	state := filter.DefaultState()
	var tags stringsFlag
	var copyField string

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "directory holding icons-metadata.json")
	fs.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "read the catalog from this base URL instead")
	fs.IntVar(&state.Size, "size", state.Size, "icon size (16 or 24)")
	fs.StringVar(&state.Category, "category", "", "restrict to one category")
	fs.Var(&tags, "tag", "require a tag (repeatable)")
	fs.StringVar(&copyField, "copy", "", `copy the first match's "name" or "path" to the clipboard`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if copyField != "" && copyField != "name" && copyField != "path" {
		return fmt.Errorf("-copy must be name or path, got %q", copyField)
	}
	state.Search = strings.Join(fs.Args(), " ")
	for _, t := range tags {
		state.Tags = append(state.Tags, strings.ToLower(t))
	}

	var src loader.Source = loader.DirSource{FS: os.DirFS(cfg.PublicDir)}
	if cfg.CatalogURL != "" {
		src = loader.NewHTTPSource(cfg.CatalogURL, 10*time.Second)
	}
	logger := log.New(stderr, "", log.LstdFlags)
	l := loader.New(src, loader.WithLogger(logger))

	ctrl := browser.New(l, systemClipboard(), browser.WithLogger(logger))
	defer ctrl.Close()
	ctrl.Load(ctx)
	snap := ctrl.Query(state)
	if len(snap.Visible) == 0 {
		fmt.Fprintln(stdout, "No icons found.")
		if len(snap.Suggestions) > 0 {
			fmt.Fprintf(stdout, "Did you mean: %s?\n", strings.Join(snap.Suggestions, ", "))
		}
		return nil
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCATEGORY\tPATH")
	for _, icon := range snap.Visible {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", icon.Name, icon.Size, icon.Category, icon.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if copyField == "" {
		return nil
	}
	value := snap.Visible[0].Name
	if copyField == "path" {
		value = snap.Visible[0].Path
	}
	ok := ctrl.Copy(value)
	fmt.Fprintln(stderr, ctrl.Notice())
	if !ok {
		return errors.New("copy failed")
	}
	return nil
}
