package views

import (
	"github.com/eringen/iconshelf/catalog"
	"github.com/eringen/iconshelf/filter"
)

// SiteConfig holds site-wide settings shown in every page.
type SiteConfig struct {
	Name        string // ICONSHELF_NAME (default "Icon Shelf")
	URL         string // ICONSHELF_URL  (default "http://localhost:3000")
	Description string // ICONSHELF_DESCRIPTION
}

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical
}

// BrowsePage is everything the browse page and its grid partial render.
type BrowsePage struct {
	Site        SiteConfig
	Meta        PageMeta
	Loaded      bool
	Total       int
	Filter      filter.State
	Categories  []string
	Tags        []string
	Icons       []catalog.Icon
	Suggestions []string
	Selected    *catalog.Icon
	Notice      string
	CSRF        string
}
