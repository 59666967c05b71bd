// Package browser holds the presentation state of the icon browser: the
// active query, the selected icon, and the transient copy notice. Per-icon
// actions call back into the loader for raw SVG text.
//
// A Controller holds the state of one viewer. Servers keep one per
// session.
package browser

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eringen/iconshelf/catalog"
	"github.com/eringen/iconshelf/clipboard"
	"github.com/eringen/iconshelf/filter"
	"github.com/eringen/iconshelf/raster"
)

// NoticeDuration is how long a notice stays visible.
const NoticeDuration = 2 * time.Second

const (
	svgContentType = "image/svg+xml"
	pngContentType = "image/png"
	maxSuggestions = 5
)

// State is the selection state of the detail panel.
type State int

const (
	Idle State = iota
	IconSelected
)

func (s State) String() string {
	if s == IconSelected {
		return "icon-selected"
	}
	return "idle"
}

// IconLoader is the subset of loader.Loader the controller needs.
type IconLoader interface {
	FetchCatalog(ctx context.Context) catalog.Catalog
	FetchIconSource(ctx context.Context, path string) (string, bool)
}

// File is a downloadable payload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Controller owns the UI state. It is safe for concurrent use.
type Controller struct {
	loader    IconLoader
	clip      clipboard.Writer
	logger    *log.Logger
	noticeTTL time.Duration

	mu         sync.Mutex
	cat        catalog.Catalog
	icons      []catalog.Icon
	tags       []string
	loaded     bool
	loadSeq    uint64
	appliedSeq uint64

	query    filter.State
	selected *catalog.Icon

	notice      string
	noticeSeq   uint64
	noticeTimer *time.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for action failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithNoticeDuration overrides NoticeDuration.
func WithNoticeDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.noticeTTL = d
	}
}

// New creates a Controller in the Idle state with the default query.
func New(l IconLoader, clip clipboard.Writer, opts ...Option) *Controller {
	c := &Controller{
		loader:    l,
		clip:      clip,
		logger:    log.Default(),
		noticeTTL: NoticeDuration,
		cat:       catalog.Empty(),
		query:     filter.DefaultState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the catalog, makes it current and returns a copy of it. When
// loads overlap, a result older than the one already applied is dropped.
func (c *Controller) Load(ctx context.Context) catalog.Catalog {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	cat := c.loader.FetchCatalog(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.appliedSeq {
		return c.cat.Clone()
	}
	c.appliedSeq = seq
	c.cat = cat
	c.icons = cat.Icons()
	c.tags = filter.AllTags(c.icons)
	c.loaded = true
	if c.selected != nil {
		if _, ok := cat.Find(c.selected.Path); !ok {
			c.selected = nil
		}
	}
	return cat.Clone()
}

// Loaded reports whether a catalog load has completed.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Catalog returns a copy of the current catalog.
func (c *Controller) Catalog() catalog.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cat.Clone()
}

// Len returns the number of icons in the current catalog.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cat.Len()
}

// Find looks up an icon of the current catalog by path.
func (c *Controller) Find(path string) (catalog.Icon, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cat.Find(path)
}

// Filter returns the active query.
func (c *Controller) Filter() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetFilter replaces the active query.
func (c *Controller) SetFilter(s filter.State) {
	if s.Size == 0 {
		s.Size = catalog.DefaultSize
	}
	c.mu.Lock()
	c.query = s
	c.mu.Unlock()
}

// Visible returns the icons matching the active query.
func (c *Controller) Visible() []catalog.Icon {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.ComputeVisible(c.icons, c.query)
}

// Tags returns every tag present in the catalog.
func (c *Controller) Tags() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tags...)
}

// Categories returns the catalog's category names in catalog order.
func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cat.CategoryNames()
}

// Suggestions returns "did you mean" names when a search matches nothing.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestionsLocked(filter.ComputeVisible(c.icons, c.query))
}

func (c *Controller) suggestionsLocked(visible []catalog.Icon) []string {
	if c.query.Search == "" || len(visible) > 0 {
		return nil
	}
	return filter.Suggest(c.icons, c.query.Search, maxSuggestions)
}

// Snapshot is everything a page needs, read under one lock.
type Snapshot struct {
	Loaded      bool
	Total       int
	Filter      filter.State
	Categories  []string
	Tags        []string
	Visible     []catalog.Icon
	Suggestions []string
	Selected    *catalog.Icon
	Notice      string
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Query replaces the active query and returns the state it produces, so a
// concurrent SetFilter cannot land between the two.
func (c *Controller) Query(s filter.State) Snapshot {
	if s.Size == 0 {
		s.Size = catalog.DefaultSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = s
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	visible := filter.ComputeVisible(c.icons, c.query)
	snap := Snapshot{
		Loaded:      c.loaded,
		Total:       c.cat.Len(),
		Filter:      c.query,
		Categories:  c.cat.CategoryNames(),
		Tags:        append([]string(nil), c.tags...),
		Visible:     visible,
		Suggestions: c.suggestionsLocked(visible),
		Notice:      c.notice,
	}
	if c.selected != nil {
		icon := c.selected.Clone()
		snap.Selected = &icon
	}
	return snap
}

// State reports whether the detail panel is open.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected != nil {
		return IconSelected
	}
	return Idle
}

// Select opens the detail panel for icon, replacing any prior selection.
func (c *Controller) Select(icon catalog.Icon) {
	c.mu.Lock()
	c.selected = &icon
	c.mu.Unlock()
}

// SelectPath selects the catalog icon stored at path.
func (c *Controller) SelectPath(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	icon, ok := c.cat.Find(path)
	if !ok {
		return false
	}
	c.selected = &icon
	return true
}

// Deselect closes the detail panel.
func (c *Controller) Deselect() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
}

// Selected returns the selected icon, if any.
func (c *Controller) Selected() (catalog.Icon, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return catalog.Icon{}, false
	}
	return *c.selected, true
}

// Notice returns the current transient message, or "".
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

func (c *Controller) setNotice(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noticeSeq++
	seq := c.noticeSeq
	c.notice = msg
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
	}
	c.noticeTimer = time.AfterFunc(c.noticeTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.noticeSeq == seq {
			c.notice = ""
		}
	})
}

// Copy writes value to the controller's clipboard and posts a notice either
// way. A controller built without a clipboard always fails.
func (c *Controller) Copy(value string) bool {
	if c.clip == nil {
		return c.Copied(value, clipboard.ErrUnavailable)
	}
	return c.Copied(value, c.clip.WriteText(value))
}

// Copied posts the notice for a copy performed elsewhere, such as in the
// viewer's own browser. err is the outcome of that copy.
func (c *Controller) Copied(value string, err error) bool {
	if err != nil {
		c.logger.Printf("browser: copy failed: %v", err)
		c.setNotice("Failed to copy to clipboard")
		return false
	}
	c.setNotice(fmt.Sprintf("Copied %q to clipboard", value))
	return true
}

// DownloadName is the file name offered for an icon's SVG.
func DownloadName(icon catalog.Icon) string {
	return fmt.Sprintf("%s-%d.svg", icon.Name, icon.Size)
}

// Download packages the icon's SVG text as a file.
func (c *Controller) Download(ctx context.Context, icon catalog.Icon) (File, bool) {
	svg, ok := c.loader.FetchIconSource(ctx, icon.Path)
	if !ok {
		c.logger.Printf("browser: download failed: %s", icon.Path)
		c.setNotice(fmt.Sprintf("Could not download %s", icon.Name))
		return File{}, false
	}
	return File{
		Name:        DownloadName(icon),
		ContentType: svgContentType,
		Data:        []byte(svg),
	}, true
}

// DownloadPNG renders the icon at px pixels and packages it as a file.
func (c *Controller) DownloadPNG(ctx context.Context, icon catalog.Icon, px int) (File, bool) {
	svg, ok := c.loader.FetchIconSource(ctx, icon.Path)
	if !ok {
		c.logger.Printf("browser: png download failed: %s", icon.Path)
		c.setNotice(fmt.Sprintf("Could not download %s", icon.Name))
		return File{}, false
	}
	px = raster.ClampSize(px)
	data, err := raster.PNG(svg, raster.Options{Size: px})
	if err != nil {
		c.logger.Printf("browser: png render failed: %s: %v", icon.Path, err)
		c.setNotice(fmt.Sprintf("Could not render %s", icon.Name))
		return File{}, false
	}
	return File{
		Name:        fmt.Sprintf("%s-%d.png", icon.Name, px),
		ContentType: pngContentType,
		Data:        data,
	}, true
}

// Close stops the pending notice timer and drops the notice with it.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
		c.noticeTimer = nil
	}
	c.noticeSeq++
	c.notice = ""
}
