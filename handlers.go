package iconshelf

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/iconshelf/browser"
	"github.com/eringen/iconshelf/catalog"
	"github.com/eringen/iconshelf/clipboard"
	"github.com/eringen/iconshelf/loader"
	"github.com/eringen/iconshelf/views"
)

const defaultPNGSize = 128

func (a *App) handleCatalog(c echo.Context) error {
	return a.stream(c, loader.DefaultCatalogName, echo.MIMEApplicationJSONCharsetUTF8)
}

func (a *App) handleIcon(c echo.Context) error {
	name := c.Param("*")
	if !strings.HasSuffix(strings.ToLower(name), ".svg") {
		return echo.ErrNotFound
	}
	return a.stream(c, "/icons/"+name, "image/svg+xml")
}

// stream copies a source document to the response unchanged.
func (a *App) stream(c echo.Context, name, contentType string) error {
	rc, err := a.source.Open(c.Request().Context(), name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			c.Logger().Warnf("open %s: %v", name, err)
		}
		return echo.ErrNotFound
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentType, rc)
}

// ensureLoaded bootstraps the viewer's controller. An empty catalog is
// retried so a catalog generated after startup is picked up.
func ensureLoaded(c echo.Context, ctrl *browser.Controller) {
	if !ctrl.Loaded() || ctrl.Len() == 0 {
		ctrl.Load(c.Request().Context())
	}
}

func (a *App) handleBrowse(c echo.Context) error {
	ctrl := controller(c)
	ensureLoaded(c, ctrl)
	if path := c.QueryParam(views.ParamIcon); path != "" {
		if !ctrl.SelectPath(path) {
			c.Logger().Debugf("browse: unknown icon %s", path)
		}
	}

	p := a.browsePage(c, ctrl.Query(views.ParseFilter(c.QueryParams())))
	if c.QueryParam("partial") == "grid" {
		return Render(c, views.Grid(p))
	}
	return Render(c, views.Browse(p))
}

func (a *App) handleSelect(c echo.Context) error {
	ctrl := controller(c)
	ensureLoaded(c, ctrl)
	path := c.FormValue("path")
	if !ctrl.SelectPath(path) {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusSeeOther, returnTo(c, views.SelectURL(ctrl.Filter(), path)))
}

func (a *App) handleDeselect(c echo.Context) error {
	ctrl := controller(c)
	ctrl.Deselect()
	return c.Redirect(http.StatusSeeOther, returnTo(c, views.FilterURL(ctrl.Filter())))
}

// handleCopy records a copy the viewer's browser performed with the
// Clipboard API. The "result" field carries its outcome.
func (a *App) handleCopy(c echo.Context) error {
	ctrl := controller(c)
	value := c.FormValue("value")
	if value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to copy")
	}
	ctrl.Copied(value, clipboard.Result(c.FormValue("result")))
	if isAsync(c) {
		return Render(c, views.Notice(ctrl.Notice()))
	}
	return c.Redirect(http.StatusSeeOther, returnTo(c, views.FilterURL(ctrl.Filter())))
}

// requestedIcon resolves the "icon" query parameter against the catalog.
func requestedIcon(c echo.Context, ctrl *browser.Controller) (catalog.Icon, error) {
	ensureLoaded(c, ctrl)
	icon, ok := ctrl.Find(c.QueryParam(views.ParamIcon))
	if !ok {
		return catalog.Icon{}, echo.ErrNotFound
	}
	return icon, nil
}

func (a *App) handleDownload(c echo.Context) error {
	ctrl := controller(c)
	icon, err := requestedIcon(c, ctrl)
	if err != nil {
		return err
	}
	f, ok := ctrl.Download(c.Request().Context(), icon)
	if !ok {
		return c.Redirect(http.StatusSeeOther, views.SelectURL(ctrl.Filter(), icon.Path))
	}
	return SendFile(c, f)
}

func (a *App) handleDownloadPNG(c echo.Context) error {
	ctrl := controller(c)
	icon, err := requestedIcon(c, ctrl)
	if err != nil {
		return err
	}
	px := defaultPNGSize
	if v := c.QueryParam("px"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "px must be a number")
		}
		px = n
	}
	f, ok := ctrl.DownloadPNG(c.Request().Context(), icon, px)
	if !ok {
		return c.Redirect(http.StatusSeeOther, views.SelectURL(ctrl.Filter(), icon.Path))
	}
	return SendFile(c, f)
}

func (a *App) handleNotice(c echo.Context) error {
	return Render(c, views.Notice(controller(c).Notice()))
}

func (a *App) handleFavicon(c echo.Context) error {
	f, err := EmbeddedAssets.Open("embedded/favicon.svg")
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Stream(http.StatusOK, "image/svg+xml", f)
}

func handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
