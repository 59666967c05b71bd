// Package filter derives the visible subset of a catalog from the current
// query state. Every function here is pure and works by linear scan.
package filter

import (
	"sort"
	"strings"

	"github.com/eringen/iconshelf/catalog"
)

// State is the user-controlled query.
type State struct {
	Search   string
	Size     int
	Category string
	Tags     []string
}

// DefaultState is the query a fresh session starts with.
func DefaultState() State {
	return State{Size: catalog.DefaultSize}
}

// HasTag reports whether tag is selected.
func (s State) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ToggleTag returns a copy of s with tag added, or removed when already
// selected.
func (s State) ToggleTag(tag string) State {
	out := s
	out.Tags = make([]string, 0, len(s.Tags)+1)
	found := false
	for _, t := range s.Tags {
		if t == tag {
			found = true
			continue
		}
		out.Tags = append(out.Tags, t)
	}
	if !found {
		out.Tags = append(out.Tags, tag)
	}
	return out
}

// Matches reports whether icon satisfies every clause of s.
func Matches(icon catalog.Icon, s State) bool {
	return matches(icon, strings.ToLower(s.Search), s)
}

func matches(icon catalog.Icon, needle string, s State) bool {
	if needle != "" && !strings.Contains(strings.ToLower(icon.Name), needle) {
		return false
	}
	if icon.Size != s.Size {
		return false
	}
	if s.Category != "" && icon.Category != s.Category {
		return false
	}
	for _, tag := range s.Tags {
		if !icon.HasTag(tag) {
			return false
		}
	}
	return true
}

// ComputeVisible returns the icons matching s, in input order.
func ComputeVisible(icons []catalog.Icon, s State) []catalog.Icon {
	needle := strings.ToLower(s.Search)
	out := make([]catalog.Icon, 0, len(icons))
	for _, icon := range icons {
		if matches(icon, needle, s) {
			out = append(out, icon)
		}
	}
	return out
}

// AllTags returns the union of every icon's tags, sorted.
func AllTags(icons []catalog.Icon) []string {
	set := make(map[string]struct{})
	for _, icon := range icons {
		for _, t := range icon.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
