// Package catalog defines the icon catalog document shared by the generator,
// the loader, and the browsing UI.
//
// A catalog is produced once by an offline generator run and is treated as
// read-only afterwards. Filtering always derives new slices and never edits
// the loaded document.
package catalog

import "sort"

// Supported pixel sizes.
const (
	SizeSmall   = 16
	SizeRegular = 24

	// DefaultSize applies when a file name carries no size marker.
	DefaultSize = SizeRegular
)

// Size-class tags, distinct from the numeric size.
const (
	TagSmall   = "small"
	TagRegular = "regular"
)

// Icon is one discoverable icon.
type Icon struct {
	Name     string   `json:"name"`
	Size     int      `json:"size"`
	Category string   `json:"category"`
	Path     string   `json:"path"`
	Tags     []string `json:"tags"`
}

// HasTag reports whether the icon carries tag.
func (i Icon) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of i that shares no memory with it.
func (i Icon) Clone() Icon {
	if i.Tags != nil {
		i.Tags = append([]string(nil), i.Tags...)
	}
	return i
}

// Category is a named partition of the catalog.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icons       []Icon `json:"icons"`
}

// Catalog is the root document. A loaded catalog is shared read-only; use
// Clone before changing anything in it.
type Catalog struct {
	Categories []Category `json:"categories"`
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	if c.Categories == nil {
		return Catalog{}
	}
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		icons := cat.Icons
		if icons != nil {
			icons = make([]Icon, len(cat.Icons))
			for j, icon := range cat.Icons {
				icons[j] = icon.Clone()
			}
		}
		out.Categories[i] = Category{Name: cat.Name, Description: cat.Description, Icons: icons}
	}
	return out
}

// Empty returns a catalog with no categories that still encodes as
// {"categories":[]}.
func Empty() Catalog {
	return Catalog{Categories: []Category{}}
}

// Len returns the total number of icons.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Icons)
	}
	return n
}

// Icons flattens the catalog in category order. The result is a copy.
func (c Catalog) Icons() []Icon {
	icons := make([]Icon, 0, c.Len())
	for _, cat := range c.Categories {
		for _, icon := range cat.Icons {
			icons = append(icons, icon.Clone())
		}
	}
	return icons
}

// CategoryNames returns the category names in document order.
func (c Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// Find returns the icon stored at path.
func (c Catalog) Find(path string) (Icon, bool) {
	for _, cat := range c.Categories {
		for _, icon := range cat.Icons {
			if icon.Path == path {
				return icon.Clone(), true
			}
		}
	}
	return Icon{}, false
}

// Counts returns icon counts keyed by category name.
func (c Catalog) Counts() map[string]int {
	counts := make(map[string]int, len(c.Categories))
	for _, cat := range c.Categories {
		counts[cat.Name] += len(cat.Icons)
	}
	return counts
}

// SortCategories orders categories by name in place.
func (c Catalog) SortCategories() {
	sort.SliceStable(c.Categories, func(i, j int) bool {
		return c.Categories[i].Name < c.Categories[j].Name
	})
}
