package epub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// NavPoint is a single node of the navigation tree: a label, a target href
// (archive-relative, possibly carrying a #fragment) and nested children.
type NavPoint struct {
	Label    string
	Href     string
	Children []NavPoint
}

// ncxDoc mirrors the NCX XML structure.
type ncxDoc struct {
	XMLName xml.Name `xml:"ncx"`
	NavMap  struct {
		NavPoints []ncxNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

type ncxNavPoint struct {
	Label struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

// ParseNCX parses an NCX navigation document. ncxDir is the directory
// containing the NCX file; content src values are resolved against it,
// keeping any fragment identifier.
func ParseNCX(content []byte, ncxDir string) ([]NavPoint, error) {
	var doc ncxDoc
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX XML: %w", err)
	}
	return convertNavPoints(doc.NavMap.NavPoints, ncxDir), nil
}

func convertNavPoints(points []ncxNavPoint, dir string) []NavPoint {
	out := make([]NavPoint, 0, len(points))
	for _, p := range points {
		out = append(out, NavPoint{
			Label:    strings.TrimSpace(p.Label.Text),
			Href:     resolveHref(dir, p.Content.Src),
			Children: convertNavPoints(p.Children, dir),
		})
	}
	return out
}

// resolveHref joins a navigation target against the directory of its source
// document, preserving the fragment identifier.
func resolveHref(dir, src string) string {
	if src == "" {
		return ""
	}
	path, fragment := splitFragment(src)
	if path != "" {
		path = joinPath(dir, path)
	}
	if fragment != "" {
		return path + "#" + fragment
	}
	return path
}

// splitFragment splits a target into its path and fragment identifier.
func splitFragment(src string) (path, fragment string) {
	if src == "" {
		return "", ""
	}
	parts := strings.SplitN(src, "#", 2)
	path = parts[0]
	if len(parts) == 2 {
		fragment = parts[1]
	}
	return path, fragment
}
