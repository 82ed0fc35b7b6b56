package book

import (
	"strings"

	"inkwell/internal/epub"
)

// metadataSource is the slice of the package reader the metadata normalizer
// needs: raw property/value pairs plus the package-level accessors used as
// fallbacks.
type metadataSource interface {
	RawMetadata() []epub.MetadataPair
	Title() (string, bool)
	ReleaseIdentifier() (string, bool)
}

// normalizeMetadata reduces raw, inconsistently prefixed property pairs to
// the fixed metadata record. Absence of any field is not an error.
func normalizeMetadata(src metadataSource) Metadata {
	pairs := src.RawMetadata()

	md := Metadata{
		Language:    metadataValue(pairs, "language"),
		Description: metadataValue(pairs, "description", "abstract"),
		Authors:     collectMetadataValues(pairs, "creator", "author"),
	}

	// Prefer the dedicated title accessor over the generic pair scan.
	if title, ok := src.Title(); ok {
		md.Title = title
	} else {
		md.Title = metadataValue(pairs, "title")
	}

	md.Identifier = metadataValue(pairs, "identifier")
	if md.Identifier == "" {
		if release, ok := src.ReleaseIdentifier(); ok {
			md.Identifier = release
		}
	}

	return md
}

// metadataValue returns the first pair whose property matches one of the
// base keys. A property matches a key when it equals the key or ends with
// ":<key>", case-insensitively.
func metadataValue(pairs []epub.MetadataPair, keys ...string) string {
	for _, pair := range pairs {
		if propertyMatches(pair.Property, keys) {
			return pair.Value
		}
	}
	return ""
}

// collectMetadataValues returns every matching value, trimmed, deduplicated
// case-insensitively, preserving first-seen order. Empty values are dropped.
func collectMetadataValues(pairs []epub.MetadataPair, keys ...string) []string {
	var values []string
	for _, pair := range pairs {
		if !propertyMatches(pair.Property, keys) {
			continue
		}
		value := strings.TrimSpace(pair.Value)
		if value == "" {
			continue
		}
		seen := false
		for _, existing := range values {
			if strings.EqualFold(existing, value) {
				seen = true
				break
			}
		}
		if !seen {
			values = append(values, value)
		}
	}
	return values
}

func propertyMatches(property string, keys []string) bool {
	property = strings.ToLower(property)
	for _, key := range keys {
		key = strings.ToLower(key)
		if property == key || strings.HasSuffix(property, ":"+key) {
			return true
		}
	}
	return false
}
