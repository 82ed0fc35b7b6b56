package epub

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseNav parses an EPUB 3 navigation document (the manifest item carrying
// the "nav" property). navDir is the directory containing the document; link
// targets are resolved against it. The toc nav element is preferred; when no
// element is annotated, the first nav element is used.
func ParseNav(content []byte, navDir string) ([]NavPoint, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nav document: %w", err)
	}

	nav := doc.Find("nav").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("epub:type", "") == "toc"
	}).First()
	if nav.Length() == 0 {
		nav = doc.Find("nav").First()
	}
	if nav.Length() == 0 {
		return nil, nil
	}

	list := nav.ChildrenFiltered("ol").First()
	if list.Length() == 0 {
		list = nav.Find("ol").First()
	}
	if list.Length() == 0 {
		return nil, nil
	}

	return parseNavList(list, navDir), nil
}

// parseNavList converts one ol element into navigation points. Each li holds
// an anchor (or span, for unlinked headings) and optionally a nested ol.
func parseNavList(list *goquery.Selection, navDir string) []NavPoint {
	var points []NavPoint
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		point := NavPoint{}

		if a := li.ChildrenFiltered("a").First(); a.Length() > 0 {
			point.Label = strings.TrimSpace(a.Text())
			point.Href = resolveHref(navDir, a.AttrOr("href", ""))
		} else if span := li.ChildrenFiltered("span").First(); span.Length() > 0 {
			point.Label = strings.TrimSpace(span.Text())
		}

		if sub := li.ChildrenFiltered("ol").First(); sub.Length() > 0 {
			point.Children = parseNavList(sub, navDir)
		}

		if point.Label == "" && point.Href == "" && len(point.Children) == 0 {
			return
		}
		points = append(points, point)
	})
	return points
}
