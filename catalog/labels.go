package catalog

import "strings"

// Label describes a known category.
type Label struct {
	Name        string
	Description string
	Synonyms    []string
}

var labels = []Label{
	{Name: "Arrows", Description: "Directional and navigation arrows", Synonyms: []string{"direction"}},
	{Name: "Brand", Description: "Brand and logo related icons", Synonyms: []string{"social", "logo"}},
	{Name: "Communication", Description: "Communication and messaging related icons"},
	{Name: "Controls", Description: "UI control and interface elements", Synonyms: []string{"interface"}},
	{Name: "Data", Description: "Data visualization and analytics icons", Synonyms: []string{"analytics"}},
	{Name: "Files", Description: "File and document related icons", Synonyms: []string{"document"}},
	{Name: "Location", Description: "Location and map related icons"},
	{Name: "Media", Description: "Media playback and content icons"},
	{Name: "Message", Description: "Messaging and notification icons", Synonyms: []string{"communication"}},
	{Name: "Money", Description: "Finance and currency related icons", Synonyms: []string{"finance"}},
	{Name: "Nature", Description: "Nature and environment related icons"},
	{Name: "Objects", Description: "Common object and item icons"},
	{Name: "People", Description: "People and user related icons", Synonyms: []string{"user"}},
	{Name: "Shapes", Description: "Basic shapes and geometric icons"},
	{Name: "System", Description: "System and settings related icons", Synonyms: []string{"settings"}},
	{Name: "Text", Description: "Typography and text formatting icons"},
	{Name: "Time", Description: "Time and calendar related icons"},
	{Name: "View", Description: "View and visibility related icons"},
}

var labelIndex = func() map[string]Label {
	idx := make(map[string]Label, len(labels))
	for _, l := range labels {
		idx[strings.ToLower(l.Name)] = l
	}
	return idx
}()

// Labels returns a copy of the known category labels.
func Labels() []Label {
	result := make([]Label, len(labels))
	copy(result, labels)
	return result
}

// LookupLabel finds the label for a category name, ignoring case.
func LookupLabel(category string) (Label, bool) {
	l, ok := labelIndex[strings.ToLower(strings.TrimSpace(category))]
	return l, ok
}

// Describe returns the description for a category, falling back to
// "<Category> related icons" for unknown names.
func Describe(category string) string {
	if l, ok := LookupLabel(category); ok {
		return l.Description
	}
	return category + " related icons"
}

// Synonyms returns the extra tags attached to icons of a category.
func Synonyms(category string) []string {
	l, ok := LookupLabel(category)
	if !ok {
		return nil
	}
	out := make([]string, len(l.Synonyms))
	copy(out, l.Synonyms)
	return out
}
