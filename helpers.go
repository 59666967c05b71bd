package iconshelf

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/iconshelf/browser"
	"github.com/eringen/iconshelf/views"
)

// asyncHeader marks requests sent by app.js that expect a fragment instead
// of a redirect.
const asyncHeader = "X-Iconshelf-Async"

func isAsync(c echo.Context) bool {
	return c.Request().Header.Get(asyncHeader) == "true"
}

// returnTo reads the "return" form value, accepting only local paths.
func returnTo(c echo.Context, fallback string) string {
	target := strings.TrimSpace(c.FormValue("return"))
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}

// browsePage turns a controller snapshot into the page model.
func (a *App) browsePage(c echo.Context, snap browser.Snapshot) views.BrowsePage {
	p := views.BrowsePage{
		Site:        a.site(),
		Loaded:      snap.Loaded,
		Total:       snap.Total,
		Filter:      snap.Filter,
		Categories:  snap.Categories,
		Tags:        snap.Tags,
		Icons:       snap.Visible,
		Suggestions: snap.Suggestions,
		Selected:    snap.Selected,
		Notice:      snap.Notice,
		CSRF:        CsrfToken(c),
	}
	p.Meta = views.PageMeta{Title: p.Site.Name, URL: p.Site.URL}
	if p.Selected != nil {
		p.Meta.Title = p.Selected.Name + " | " + p.Site.Name
	}
	return p
}
