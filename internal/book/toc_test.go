package book

import (
	"reflect"
	"testing"

	"inkwell/internal/epub"
)

func TestTocLabels_FirstOccurrenceWins(t *testing.T) {
	nav := []epub.NavPoint{
		{
			Label: "Chapter 1",
			Href:  "chapter1.xhtml#sec1",
			Children: []epub.NavPoint{
				{Label: "Deep duplicate", Href: "chapter1.xhtml#sec2"},
			},
		},
		{Label: "Chapter 2", Href: "chapter2.xhtml"},
		{Label: "Late duplicate", Href: "chapter2.xhtml#top"},
	}

	labels := tocLabels(nav)
	want := map[string]string{
		"chapter1.xhtml": "Chapter 1",
		"chapter2.xhtml": "Chapter 2",
	}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("tocLabels() = %v, want %v", labels, want)
	}
}

func TestTocEntries_StripsFragmentsKeepsStructure(t *testing.T) {
	nav := []epub.NavPoint{
		{
			Label: "Part I",
			Href:  "part1.xhtml",
			Children: []epub.NavPoint{
				{Label: "Section 1.1", Href: "part1.xhtml#s1"},
				{Label: "Section 1.2", Href: "part1.xhtml#s2"},
			},
		},
	}

	entries := tocEntries(nav)
	want := []TocEntry{
		{
			Label: "Part I",
			Href:  "part1.xhtml",
			Children: []TocEntry{
				{Label: "Section 1.1", Href: "part1.xhtml"},
				{Label: "Section 1.2", Href: "part1.xhtml"},
			},
		},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("tocEntries() = %+v, want %+v", entries, want)
	}
}

func TestTocEntries_Empty(t *testing.T) {
	if entries := tocEntries(nil); entries != nil {
		t.Errorf("tocEntries(nil) = %v, want nil", entries)
	}
}

func TestStripFragment(t *testing.T) {
	tests := []struct {
		href, want string
	}{
		{"chapter1.xhtml#sec2", "chapter1.xhtml"},
		{"chapter1.xhtml", "chapter1.xhtml"},
		{"#local", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripFragment(tt.href); got != tt.want {
			t.Errorf("stripFragment(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
