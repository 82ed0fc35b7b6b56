package book

import (
	"strings"

	"inkwell/internal/epub"
)

// tocLabels flattens the navigation tree into a lookup from fragment-free
// path to label. The first occurrence at any depth wins.
func tocLabels(nav []epub.NavPoint) map[string]string {
	labels := make(map[string]string)
	var walk func(points []epub.NavPoint)
	walk = func(points []epub.NavPoint) {
		for _, p := range points {
			key := stripFragment(p.Href)
			if _, ok := labels[key]; !ok {
				labels[key] = p.Label
			}
			walk(p.Children)
		}
	}
	walk(nav)
	return labels
}

// tocEntries mirrors the navigation tree with every target normalized by
// stripping its fragment. Duplicate labels across siblings are kept; this is
// a display structure, not a lookup.
func tocEntries(nav []epub.NavPoint) []TocEntry {
	if len(nav) == 0 {
		return nil
	}
	entries := make([]TocEntry, 0, len(nav))
	for _, p := range nav {
		entries = append(entries, TocEntry{
			Label:    p.Label,
			Href:     stripFragment(p.Href),
			Children: tocEntries(p.Children),
		})
	}
	return entries
}

// stripFragment removes the #fragment suffix from a navigation target.
func stripFragment(href string) string {
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		return href[:idx]
	}
	return href
}
