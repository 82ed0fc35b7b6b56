package epub

import (
	"testing"
)

func TestParseNav_TocNav(t *testing.T) {
	navXHTML := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>Contents</title></head>
<body>
  <nav epub:type="landmarks">
    <ol><li><a href="cover.xhtml">Cover</a></li></ol>
  </nav>
  <nav epub:type="toc">
    <h2>Contents</h2>
    <ol>
      <li><a href="ch1.xhtml">Chapter One</a>
        <ol>
          <li><a href="ch1.xhtml#s1">Section 1.1</a></li>
        </ol>
      </li>
      <li><a href="ch2.xhtml">Chapter Two</a></li>
    </ol>
  </nav>
</body>
</html>`)

	points, err := ParseNav(navXHTML, "OEBPS")
	if err != nil {
		t.Fatalf("ParseNav() error = %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("got %d top-level entries, want 2", len(points))
	}
	if points[0].Label != "Chapter One" || points[0].Href != "OEBPS/ch1.xhtml" {
		t.Errorf("points[0] = %+v, want Chapter One -> OEBPS/ch1.xhtml", points[0])
	}
	if len(points[0].Children) != 1 {
		t.Fatalf("got %d children, want 1", len(points[0].Children))
	}
	if points[0].Children[0].Href != "OEBPS/ch1.xhtml#s1" {
		t.Errorf("child href = %q, want OEBPS/ch1.xhtml#s1", points[0].Children[0].Href)
	}
	if points[1].Label != "Chapter Two" {
		t.Errorf("points[1].Label = %q, want Chapter Two", points[1].Label)
	}
}

func TestParseNav_FirstNavWhenUnannotated(t *testing.T) {
	navXHTML := []byte(`<html><body>
  <nav>
    <ol><li><a href="intro.xhtml">Introduction</a></li></ol>
  </nav>
</body></html>`)

	points, err := ParseNav(navXHTML, "")
	if err != nil {
		t.Fatalf("ParseNav() error = %v", err)
	}
	if len(points) != 1 || points[0].Label != "Introduction" || points[0].Href != "intro.xhtml" {
		t.Errorf("points = %+v, want single Introduction entry", points)
	}
}

func TestParseNav_UnlinkedHeadingEntry(t *testing.T) {
	navXHTML := []byte(`<html><body>
  <nav epub:type="toc">
    <ol>
      <li><span>Part I</span>
        <ol><li><a href="ch1.xhtml">Chapter One</a></li></ol>
      </li>
    </ol>
  </nav>
</body></html>`)

	points, err := ParseNav(navXHTML, "")
	if err != nil {
		t.Fatalf("ParseNav() error = %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d entries, want 1", len(points))
	}
	if points[0].Label != "Part I" || points[0].Href != "" {
		t.Errorf("points[0] = %+v, want unlinked Part I", points[0])
	}
	if len(points[0].Children) != 1 || points[0].Children[0].Label != "Chapter One" {
		t.Errorf("children = %+v, want Chapter One", points[0].Children)
	}
}

func TestParseNav_NoNavElement(t *testing.T) {
	points, err := ParseNav([]byte(`<html><body><p>Nothing here.</p></body></html>`), "")
	if err != nil {
		t.Fatalf("ParseNav() error = %v", err)
	}
	if len(points) != 0 {
		t.Errorf("got %d entries, want 0", len(points))
	}
}
