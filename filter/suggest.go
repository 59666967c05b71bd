package filter

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/eringen/iconshelf/catalog"
)

// Suggest returns up to limit distinct icon names that fuzzily match query,
// closest first. It is meant for "did you mean" hints when ComputeVisible
// comes back empty and never changes what is visible.
func Suggest(icons []catalog.Icon, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(icons))
	names := make([]string, 0, len(icons))
	for _, icon := range icons {
		if _, ok := seen[icon.Name]; ok {
			continue
		}
		seen[icon.Name] = struct{}{}
		names = append(names, icon.Name)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]string, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
