package views

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/eringen/iconshelf/catalog"
	"github.com/eringen/iconshelf/filter"
)

// Query parameter names shared by the browse page and its handlers.
const (
	ParamSearch   = "q"
	ParamSize     = "size"
	ParamCategory = "category"
	ParamTag      = "tag"
	ParamIcon     = "icon"
)

// Sizes are the size toggles offered on the page.
var Sizes = []int{catalog.SizeRegular, catalog.SizeSmall}

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "pill pill-active"
	}
	return "pill"
}

// JoinTags formats tags as a comma-separated string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// FilterQuery encodes s as browse page query parameters. Default values are
// left out so the plain page URL is "/".
func FilterQuery(s filter.State) url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.Size != 0 && s.Size != catalog.DefaultSize {
		v.Set(ParamSize, strconv.Itoa(s.Size))
	}
	if s.Category != "" {
		v.Set(ParamCategory, s.Category)
	}
	for _, t := range s.Tags {
		v.Add(ParamTag, t)
	}
	return v
}

// ParseFilter decodes browse page query parameters. Unknown or malformed
// sizes fall back to the default.
func ParseFilter(v url.Values) filter.State {
	s := filter.DefaultState()
	s.Search = strings.TrimSpace(v.Get(ParamSearch))
	if n, err := strconv.Atoi(v.Get(ParamSize)); err == nil {
		for _, size := range Sizes {
			if n == size {
				s.Size = n
			}
		}
	}
	s.Category = v.Get(ParamCategory)
	seen := make(map[string]bool)
	for _, t := range v[ParamTag] {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		s.Tags = append(s.Tags, t)
	}
	return s
}

// FilterURL is the browse page URL for s.
func FilterURL(s filter.State) string {
	if q := FilterQuery(s).Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}

// SelectURL is the browse page URL for s with the icon at iconPath open.
func SelectURL(s filter.State, iconPath string) string {
	v := FilterQuery(s)
	v.Set(ParamIcon, iconPath)
	return "/?" + v.Encode()
}

// GridURL is the partial grid URL for s.
func GridURL(s filter.State) string {
	v := FilterQuery(s)
	v.Set("partial", "grid")
	return "/?" + v.Encode()
}

// DownloadURL is the download address for an icon. ext is "svg" or "png".
func DownloadURL(icon catalog.Icon, ext string) string {
	route := "/download"
	if ext == "png" {
		route = "/download.png"
	}
	return route + "?" + url.Values{ParamIcon: {icon.Path}}.Encode()
}
