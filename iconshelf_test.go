package iconshelf

import (
	"bytes"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/eringen/iconshelf/loader"
)

const testCatalog = `{
  "categories": [
    {
      "name": "Arrows",
      "description": "Directional and navigation arrows",
      "icons": [
        {"name": "Arrow Up", "size": 24, "category": "Arrows", "path": "/icons/Arrows/arrow-up.svg", "tags": ["arrows", "direction", "regular"]},
        {"name": "Arrow Up", "size": 16, "category": "Arrows", "path": "/icons/Arrows/arrow-up-small.svg", "tags": ["arrows", "direction", "small"]}
      ]
    },
    {
      "name": "Objects",
      "description": "Objects related icons",
      "icons": [
        {"name": "Box", "size": 24, "category": "Objects", "path": "/icons/Objects/box.svg", "tags": ["objects", "regular"]}
      ]
    }
  ]
}`

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M12 4L20 12H4Z" fill="#000000"/></svg>`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"icons-metadata.json":             {Data: []byte(testCatalog)},
		"icons/Arrows/arrow-up.svg":       {Data: []byte(testSVG)},
		"icons/Arrows/arrow-up-small.svg": {Data: []byte(testSVG)},
		"icons/Objects/box.svg":           {Data: []byte(testSVG)},
	}
}

func newTestApp(t *testing.T, fsys fstest.MapFS) *App {
	t.Helper()
	return newTestAppConfig(t, SiteConfig{Name: "Test Icons"}, fsys)
}

func newTestAppConfig(t *testing.T, cfg SiteConfig, fsys fstest.MapFS) *App {
	t.Helper()
	a := New(cfg,
		WithSource(loader.DirSource{FS: fsys}),
		WithLogger(log.New(io.Discard, "", 0)),
	)
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return serve(a, httptest.NewRequest(http.MethodGet, target, nil))
}

// viewer is a browser talking to the app: it keeps the cookies it is
// given and sends them back.
type viewer struct {
	t       *testing.T
	a       *App
	cookies map[string]*http.Cookie
}

func newViewer(t *testing.T, a *App) *viewer {
	return &viewer{t: t, a: a, cookies: map[string]*http.Cookie{}}
}

func (v *viewer) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range v.cookies {
		req.AddCookie(ck)
	}
	rec := serve(v.a, req)
	for _, ck := range rec.Result().Cookies() {
		v.cookies[ck.Name] = ck
	}
	return rec
}

func (v *viewer) get(target string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// post submits a form with the viewer's CSRF token, fetching the page
// first when no token has been issued yet.
func (v *viewer) post(target string, form url.Values, async bool) *httptest.ResponseRecorder {
	v.t.Helper()
	if _, ok := v.cookies["_csrf"]; !ok {
		v.get("/")
	}
	ck, ok := v.cookies["_csrf"]
	if !ok {
		v.t.Fatal("expected a _csrf cookie")
	}
	form.Set("_csrf", ck.Value)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if async {
		req.Header.Set(asyncHeader, "true")
	}
	return v.do(req)
}

func TestCatalogEndpoint(t *testing.T) {
	a := newTestApp(t, testFS())

	req := httptest.NewRequest(http.MethodGet, "/icons-metadata.json", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := serve(a, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Fatalf("unexpected Cache-Control %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("unexpected Content-Type %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != testCatalog {
		t.Fatal("expected the catalog document unchanged")
	}
}

func TestCatalogEndpointMissing(t *testing.T) {
	a := newTestApp(t, fstest.MapFS{})
	if rec := get(a, "/icons-metadata.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestIconEndpoint(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/icons/Arrows/arrow-up.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=31536000, immutable" {
		t.Fatalf("unexpected Cache-Control %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Fatalf("unexpected Content-Type %q", got)
	}
	if rec.Body.String() != testSVG {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	if rec := get(a, "/icons/Arrows/missing.svg"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing icon, got %d", rec.Code)
	}
	if rec := get(a, "/icons/Arrows/arrow-up.txt"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-svg path, got %d", rec.Code)
	}
}

func TestBrowseFiltersBySearchAndSize(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/?q=arrow")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/icons/Arrows/arrow-up.svg") {
		t.Fatal("expected the 24px arrow in the grid")
	}
	if strings.Contains(body, "/icons/Arrows/arrow-up-small.svg") || strings.Contains(body, "/icons/Objects/box.svg") {
		t.Fatal("expected only the 24px arrow in the grid")
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("unexpected Cache-Control %q", got)
	}

	rec = get(a, "/?size=16&partial=grid")
	body = rec.Body.String()
	if !strings.Contains(body, "/icons/Arrows/arrow-up-small.svg") || strings.Contains(body, "<html") {
		t.Fatalf("expected the small arrow in a grid fragment, got %q", body)
	}
}

func TestBrowseSuggestsOnMiss(t *testing.T) {
	a := newTestApp(t, testFS())

	body := get(a, "/?q=arow").Body.String()
	if !strings.Contains(body, "No icons found") || !strings.Contains(body, "Did you mean") {
		t.Fatalf("expected suggestions, got %q", body)
	}
}

func TestBrowseEmptyCatalog(t *testing.T) {
	a := newTestApp(t, fstest.MapFS{})

	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an empty catalog, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No icons found") {
		t.Fatal("expected the empty state")
	}
}

func TestBrowsePicksUpLateCatalog(t *testing.T) {
	fsys := fstest.MapFS{}
	a := newTestApp(t, fsys)
	v := newViewer(t, a)

	v.get("/")
	for name, f := range testFS() {
		fsys[name] = f
	}
	if body := v.get("/").Body.String(); !strings.Contains(body, "/icons/Objects/box.svg") {
		t.Fatal("expected the catalog generated after startup to load")
	}
}

func TestSelectAndDeselect(t *testing.T) {
	a := newTestApp(t, testFS())
	v := newViewer(t, a)

	body := v.get("/?icon=%2Ficons%2FObjects%2Fbox.svg").Body.String()
	if !strings.Contains(body, "<h2>Box</h2>") || !strings.Contains(body, "<title>Box | Test Icons</title>") {
		t.Fatal("expected the detail panel for Box")
	}

	rec := v.post("/deselect", url.Values{"return": {"/?q=box"}}, false)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/?q=box" {
		t.Fatalf("expected redirect to /?q=box, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if body := v.get("/").Body.String(); strings.Contains(body, "<h2>") {
		t.Fatal("expected selection to be cleared")
	}

	rec = v.post("/select", url.Values{"path": {"/icons/Arrows/arrow-up.svg"}}, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if body := v.get("/").Body.String(); !strings.Contains(body, "<h2>Arrow Up</h2>") {
		t.Fatal("expected Arrow Up to be selected")
	}

	if rec := v.post("/select", url.Values{"path": {"/icons/nope.svg"}}, false); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown icon, got %d", rec.Code)
	}
}

func TestPostRequiresCSRFToken(t *testing.T) {
	a := newTestApp(t, testFS())
	req := httptest.NewRequest(http.MethodPost, "/deselect", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if rec := serve(a, req); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", rec.Code)
	}
}

func TestReturnRejectsOffsiteTargets(t *testing.T) {
	a := newTestApp(t, testFS())
	v := newViewer(t, a)

	for _, target := range []string{"https://evil.example/", "//evil.example/", `/\evil.example`} {
		rec := v.post("/deselect", url.Values{"return": {target}}, false)
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Fatalf("return %q: expected redirect to /, got %q", target, loc)
		}
	}
}

func TestCopyRecordsBrowserResult(t *testing.T) {
	a := newTestApp(t, testFS())
	v := newViewer(t, a)

	rec := v.post("/copy", url.Values{"value": {"Arrow Up"}, "result": {"ok"}}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Copied &#34;Arrow Up&#34; to clipboard") {
		t.Fatalf("expected notice fragment, got %q", rec.Body.String())
	}
	if body := v.get("/notice").Body.String(); !strings.Contains(body, "Arrow Up") {
		t.Fatalf("expected polled notice to contain Arrow Up, got %q", body)
	}

	rec = v.post("/copy", url.Values{"value": {"Box"}, "result": {"ok"}, "return": {"/?q=box"}}, false)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/?q=box" {
		t.Fatalf("expected redirect back, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	if rec := v.post("/copy", url.Values{"result": {"ok"}}, true); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty value, got %d", rec.Code)
	}
}

func TestCopyDeniedByBrowser(t *testing.T) {
	a := newTestApp(t, testFS())
	v := newViewer(t, a)

	for _, form := range []url.Values{
		{"value": {"Arrow Up"}, "result": {"denied"}},
		{"value": {"Arrow Up"}},
	} {
		rec := v.post("/copy", form, true)
		if !strings.Contains(rec.Body.String(), "Failed to copy to clipboard") {
			t.Fatalf("form %v: expected failure notice, got %q", form, rec.Body.String())
		}
	}
}

func TestViewersDoNotShareState(t *testing.T) {
	a := newTestApp(t, testFS())
	alice := newViewer(t, a)
	bob := newViewer(t, a)

	alice.post("/select", url.Values{"path": {"/icons/Objects/box.svg"}}, false)
	alice.post("/copy", url.Values{"value": {"Box"}, "result": {"ok"}}, true)
	bob.get("/?q=arrow")

	if body := bob.get("/").Body.String(); strings.Contains(body, "<h2>Box</h2>") {
		t.Fatal("selection leaked into another session")
	}
	if body := bob.get("/notice").Body.String(); strings.Contains(body, "Box") {
		t.Fatalf("notice leaked into another session: %q", body)
	}
	body := alice.get("/?icon=").Body.String()
	if !strings.Contains(body, "<h2>Box</h2>") || !strings.Contains(body, "/icons/Objects/box.svg") {
		t.Fatal("expected alice to keep her selection and an unfiltered grid")
	}
	if n := a.Sessions.Len(); n != 2 {
		t.Fatalf("expected 2 live sessions, got %d", n)
	}
}

func TestSessionCookie(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/")
	var sess *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionName {
			sess = ck
		}
	}
	if sess == nil {
		t.Fatal("expected a session cookie")
	}
	if !sess.HttpOnly || sess.SameSite != http.SameSiteLaxMode || sess.Path != "/" {
		t.Fatalf("unexpected session cookie %+v", sess)
	}

	if rec := get(a, "/icons-metadata.json"); len(rec.Result().Cookies()) != 0 {
		t.Fatal("catalog requests must not start sessions")
	}
}

func TestUnreadableSessionCookieStartsFresh(t *testing.T) {
	a := newTestApp(t, testFS())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: "not-a-signed-value"})
	rec := serve(a, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionName && ck.Value != "not-a-signed-value" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a replacement session cookie")
	}
}

func TestSessionSecretSurvivesRestart(t *testing.T) {
	cfg := SiteConfig{Name: "Test Icons", SessionSecret: "0123456789abcdef0123456789abcdef"}
	first := newTestAppConfig(t, cfg, testFS())
	v := newViewer(t, first)
	v.get("/")

	second := newTestAppConfig(t, cfg, testFS())
	v.a = second
	rec := v.get("/")
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionName {
			t.Fatal("expected the first app's session cookie to be accepted")
		}
	}
}

func TestDownloadSVG(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/download?icon=%2Ficons%2FArrows%2Farrow-up-small.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Arrow Up-16.svg"` {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if rec.Body.String() != testSVG {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	if rec := get(a, "/download?icon=%2Ficons%2Fnope.svg"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown icon, got %d", rec.Code)
	}
}

func TestDownloadSVGSourceMissing(t *testing.T) {
	fsys := testFS()
	delete(fsys, "icons/Objects/box.svg")
	a := newTestApp(t, fsys)
	v := newViewer(t, a)

	rec := v.get("/download?icon=%2Ficons%2FObjects%2Fbox.svg")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect back to the page, got %d", rec.Code)
	}
	if body := v.get("/notice").Body.String(); !strings.Contains(body, "Could not download Box") {
		t.Fatalf("unexpected notice %q", body)
	}
}

func TestDownloadPNG(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/download.png?icon=%2Ficons%2FObjects%2Fbox.svg&px=64")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected Content-Type %q", got)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("expected 64x64, got %v", b)
	}

	if rec := get(a, "/download.png?icon=%2Ficons%2FObjects%2Fbox.svg&px=big"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad px, got %d", rec.Code)
	}
}

func TestDownloadPNGIsRateLimited(t *testing.T) {
	a := newTestAppConfig(t, SiteConfig{Name: "Test Icons", PNGLimit: 1}, testFS())

	target := "/download.png?icon=%2Ficons%2FObjects%2Fbox.svg"
	if rec := get(a, target); rec.Code != http.StatusOK {
		t.Fatalf("expected first render to succeed, got %d", rec.Code)
	}
	if rec := get(a, target); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	a := newTestApp(t, testFS())

	rec := get(a, "/nowhere")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not found | Test Icons") {
		t.Fatal("expected the styled 404 page")
	}
}

func TestEmbeddedAssets(t *testing.T) {
	a := newTestApp(t, testFS())

	for _, path := range []string{"/public/app.js", "/public/style.css", "/favicon.svg"} {
		if rec := get(a, path); rec.Code != http.StatusOK || rec.Body.Len() == 0 {
			t.Fatalf("%s: expected content, got %d", path, rec.Code)
		}
	}
	if body := get(a, "/robots.txt").Body.String(); !strings.Contains(body, "User-agent: *") {
		t.Fatalf("unexpected robots.txt %q", body)
	}
}

func TestSiteConfigDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	if cfg.Addr != ":3000" || cfg.PublicDir != "public" || cfg.Name == "" || cfg.PNGLimit != 30 || cfg.CatalogTTL != time.Hour || cfg.MaxSessions != 10000 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
