package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/iconshelf/catalog"
)

// Browse renders the full browse page.
func Browse(p BrowsePage) templ.Component {
	return component(func(m *markup) {
		writeHead(m, p.Site, p.Meta)
		m.open("main", at("class", "shelf"))
		writeControls(m, p)
		m.open("section", at("id", "grid"), at("class", "grid-wrap"), at("aria-live", "polite"))
		writeGrid(m, p)
		m.end("section")
		m.open("aside", at("id", "detail"), at("class", "detail"))
		writeDetail(m, p)
		m.end("aside")
		m.end("main")
		writeNotice(m, p.Notice)
		writeFoot(m)
	})
}

// Grid renders only the icon grid, for partial refreshes.
func Grid(p BrowsePage) templ.Component {
	return component(func(m *markup) {
		writeGrid(m, p)
	})
}

// Notice renders the transient notice region.
func Notice(msg string) templ.Component {
	return component(func(m *markup) {
		writeNotice(m, msg)
	})
}

// NotFound renders the 404 page.
func NotFound(site SiteConfig) templ.Component {
	return component(func(m *markup) {
		writeHead(m, site, PageMeta{Title: "Not found | " + site.Name})
		m.raw(`<main class="message"><h2>Not found</h2><p>That page does not exist.</p><p><a href="/">Back to the icons</a></p></main>`)
		writeFoot(m)
	})
}

// ServerError renders the 500 page.
func ServerError(site SiteConfig) templ.Component {
	return component(func(m *markup) {
		writeHead(m, site, PageMeta{Title: "Error | " + site.Name})
		m.raw(`<main class="message"><h2>Something went wrong</h2><p>Try again in a moment.</p><p><a href="/">Back to the icons</a></p></main>`)
		writeFoot(m)
	})
}

func writeHead(m *markup, site SiteConfig, meta PageMeta) {
	title := meta.Title
	if title == "" {
		title = site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	canonical := meta.URL
	if canonical == "" {
		canonical = buildURL(site.URL)
	}
	m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	m.elem("title", title)
	if desc != "" {
		m.open("meta", at("name", "description"), at("content", desc))
	}
	m.open("link", at("rel", "canonical"), at("href", canonical))
	m.raw(`<link rel="stylesheet" href="/public/style.css">`)
	m.raw(`<script src="/public/app.js" defer></script></head><body>`)
	m.raw(`<header class="masthead"><h1>`)
	m.elem("a", site.Name, at("href", "/"))
	m.raw(`</h1>`)
	if site.Description != "" {
		m.elem("p", site.Description)
	}
	m.end("header")
}

func writeFoot(m *markup) {
	m.raw(`</body></html>`)
}

func writeControls(m *markup, p BrowsePage) {
	f := p.Filter
	m.open("form", at("class", "controls"), at("method", "get"), at("action", "/"), at("data-grid", GridURL(f)))
	m.open("input", at("type", "search"), at("name", ParamSearch), at("placeholder", "Search icons"), at("autocomplete", "off"), at("value", f.Search))

	m.raw(`<fieldset class="sizes"><legend>Size</legend>`)
	for _, size := range Sizes {
		m.open("label")
		m.open("input", at("type", "radio"), at("name", ParamSize), at("value", size), at("checked", f.Size == size))
		m.text(strconv.Itoa(size) + "px")
		m.end("label")
	}
	m.end("fieldset")

	m.open("select", at("name", ParamCategory))
	m.raw(`<option value="">All categories</option>`)
	for _, name := range p.Categories {
		m.elem("option", name, at("value", name), at("selected", f.Category == name))
	}
	m.end("select")

	for _, t := range f.Tags {
		m.open("input", at("type", "hidden"), at("name", ParamTag), at("value", t))
	}
	m.raw(`<button type="submit">Apply</button>`)
	m.end("form")

	if len(p.Tags) > 0 {
		m.open("nav", at("class", "tags"), at("aria-label", "Tags"))
		for _, t := range p.Tags {
			m.elem("a", t, at("class", TagClass(f.HasTag(t))), at("href", FilterURL(f.ToggleTag(t))))
		}
		m.end("nav")
	}
}

func writeGrid(m *markup, p BrowsePage) {
	if !p.Loaded {
		m.raw(`<p class="empty">Loading icons...</p>`)
		return
	}
	if len(p.Icons) == 0 {
		m.raw(`<p class="empty">No icons found.</p>`)
		if len(p.Suggestions) > 0 {
			m.raw(`<p class="suggest">Did you mean `)
			for i, name := range p.Suggestions {
				if i > 0 {
					m.raw(", ")
				}
				s := p.Filter
				s.Search = name
				m.elem("a", name, at("href", FilterURL(s)))
			}
			m.raw(`?</p>`)
		}
		return
	}
	m.elem("p", strconv.Itoa(len(p.Icons))+" of "+strconv.Itoa(p.Total)+" icons", at("class", "count"))
	m.open("ul", at("class", "grid"))
	for _, icon := range p.Icons {
		class := "tile"
		if p.Selected != nil && p.Selected.Path == icon.Path {
			class += " tile-active"
		}
		m.open("li")
		m.open("a", at("class", class), at("href", SelectURL(p.Filter, icon.Path)), at("title", icon.Name))
		writeImage(m, icon, icon.Size)
		m.elem("span", icon.Name)
		m.end("a")
		m.end("li")
	}
	m.end("ul")
}

func writeImage(m *markup, icon catalog.Icon, px int) {
	m.open("img", at("src", icon.Path), at("alt", icon.Name), at("width", px), at("height", px), at("loading", "lazy"))
}

func writeDetail(m *markup, p BrowsePage) {
	icon := p.Selected
	if icon == nil {
		m.raw(`<p class="hint">Select an icon to see its details.</p>`)
		return
	}
	back := FilterURL(p.Filter)
	self := SelectURL(p.Filter, icon.Path)

	m.elem("h2", icon.Name)
	m.open("div", at("class", "preview"))
	writeImage(m, *icon, 96)
	m.end("div")
	m.open("dl")
	m.elem("dt", "Size")
	m.elem("dd", strconv.Itoa(icon.Size)+"px")
	m.elem("dt", "Category")
	m.elem("dd", icon.Category)
	m.elem("dt", "Path")
	m.open("dd")
	m.elem("code", icon.Path)
	m.end("dd")
	m.elem("dt", "Tags")
	m.elem("dd", JoinTags(icon.Tags))
	m.end("dl")

	m.open("div", at("class", "actions"))
	m.elem("a", "Download SVG", at("class", "button"), at("href", DownloadURL(*icon, "svg")), at("download", true))
	m.elem("a", "Download PNG", at("class", "button"), at("href", DownloadURL(*icon, "png")), at("download", true))
	writeCopyForm(m, p.CSRF, "Copy Name", icon.Name, self)
	writeCopyForm(m, p.CSRF, "Copy Path", icon.Path, self)
	m.open("form", at("method", "post"), at("action", "/deselect"))
	writeCSRF(m, p.CSRF)
	writeHidden(m, "return", back)
	m.raw(`<button type="submit">Close</button>`)
	m.end("form")
	m.end("div")
}

func writeHidden(m *markup, name, value string) {
	m.open("input", at("type", "hidden"), at("name", name), at("value", value))
}

func writeCSRF(m *markup, token string) {
	if token != "" {
		writeHidden(m, "_csrf", token)
	}
}

// writeCopyForm renders a copy button. app.js copies value with the
// Clipboard API and fills in result before posting the form.
func writeCopyForm(m *markup, csrf, label, value, back string) {
	m.open("form", at("method", "post"), at("action", "/copy"), at("data-async", true), at("data-copy", value))
	writeCSRF(m, csrf)
	writeHidden(m, "value", value)
	writeHidden(m, "result", "")
	writeHidden(m, "return", back)
	m.elem("button", label, at("type", "submit"))
	m.end("form")
}

func writeNotice(m *markup, msg string) {
	m.elem("div", msg, at("id", "notice"), at("class", "notice"), at("role", "status"), at("hidden", msg == ""))
}
