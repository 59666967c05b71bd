package generator

import (
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/iconshelf/catalog"
)

// PathPrefix is the root of every icon path in the catalog.
const PathPrefix = "/icons"

const smallMarker = "-small"

var (
	sizeMarker = regexp.MustCompile(`(?i)_?(16|24)(?:px)?\.svg$`)
	// sizeSuffix is sizeMarker applied to a stem
	sizeSuffix = regexp.MustCompile(`(?i)_?(16|24)(?:px)?$`)
)

// IsIconFile reports whether name has a recognized icon extension.
func IsIconFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".svg")
}

func stem(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// DisplayName derives the human-readable name from a file name: the extension
// and a trailing -small marker are dropped, separators become spaces, and
// every word is title-cased. Numeric size markers stay part of the name.
func DisplayName(fileName string) string {
	s := stem(fileName)
	s = strings.TrimSuffix(s, smallMarker)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	// a Caser keeps state between calls, so one per call
	return cases.Title(language.Und).String(s)
}

// IsSmall reports whether the stem ends in the -small marker, optionally
// followed by a numeric size marker ("dot-small.svg", "dot-small_24.svg").
func IsSmall(fileName string) bool {
	s := sizeSuffix.ReplaceAllString(stem(fileName), "")
	return strings.HasSuffix(s, smallMarker)
}

// SizeOf returns the pixel size encoded in the file name. An explicit numeric
// marker wins over the -small convention; otherwise catalog.DefaultSize.
func SizeOf(fileName string) int {
	if m := sizeMarker.FindStringSubmatch(fileName); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if IsSmall(fileName) {
		return catalog.SizeSmall
	}
	return catalog.DefaultSize
}

// TagsFor returns the sorted tag set for a file in category.
func TagsFor(category, fileName string) []string {
	set := map[string]struct{}{
		strings.ToLower(category): {},
	}
	if IsSmall(fileName) {
		set[catalog.TagSmall] = struct{}{}
	} else {
		set[catalog.TagRegular] = struct{}{}
	}
	for _, syn := range catalog.Synonyms(category) {
		set[strings.ToLower(syn)] = struct{}{}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// IconPath returns the catalog path for a file in category.
func IconPath(category, fileName string) string {
	return path.Join(PathPrefix, category, fileName)
}

// NewIcon builds the record for a file found in category.
func NewIcon(category, fileName string) catalog.Icon {
	return catalog.Icon{
		Name:     DisplayName(fileName),
		Size:     SizeOf(fileName),
		Category: category,
		Path:     IconPath(category, fileName),
		Tags:     TagsFor(category, fileName),
	}
}
