package epub

import (
	"path/filepath"
	"strings"
)

// CoverInfo identifies the detected cover image.
type CoverInfo struct {
	ID        string
	Href      string
	MediaType string
}

// DetectCover finds the cover image in the manifest. Detection methods are
// tried in priority order:
//  1. properties="cover-image" (EPUB 3)
//  2. meta name="cover" (EPUB 2)
//  3. filename pattern (basename contains "cover", SVG excluded)
//
// The second return value is false when no cover image is found.
func (r *Reader) DetectCover() (CoverInfo, bool) {
	for _, item := range r.pkg.Manifest {
		for _, prop := range item.Properties {
			if prop == "cover-image" {
				return CoverInfo{ID: item.ID, Href: item.Href, MediaType: item.MediaType}, true
			}
		}
	}

	if r.pkg.CoverID != "" {
		if item, ok := r.pkg.Manifest[r.pkg.CoverID]; ok {
			return CoverInfo{ID: item.ID, Href: item.Href, MediaType: item.MediaType}, true
		}
	}

	for _, item := range r.pkg.Manifest {
		mime := strings.ToLower(item.MediaType)
		if !strings.HasPrefix(mime, "image/") || strings.Contains(mime, "svg") {
			continue
		}
		base := strings.ToLower(filepath.Base(item.Href))
		if strings.Contains(base, "cover") {
			return CoverInfo{ID: item.ID, Href: item.Href, MediaType: item.MediaType}, true
		}
	}

	return CoverInfo{}, false
}
