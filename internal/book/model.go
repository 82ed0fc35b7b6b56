// Package book normalizes a packaged e-book archive into a single in-memory
// document model: canonical metadata, an ordered chapter list broken into
// typed content blocks, and a hierarchical table of contents.
package book

// Metadata is the reconciled document metadata. Every field is optional;
// the zero value means the archive did not declare it.
type Metadata struct {
	Identifier  string   `json:"identifier,omitempty"`
	Title       string   `json:"title,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ManifestItem is one archive resource: id, path within the archive and
// media type.
type ManifestItem struct {
	ID        string `json:"id"`
	Href      string `json:"href"`
	MediaType string `json:"media_type"`
}

// TocEntry is one node of the normalized table of contents. Hrefs are
// fragment-free; siblings preserve source order.
type TocEntry struct {
	Label    string     `json:"label"`
	Href     string     `json:"href"`
	Children []TocEntry `json:"children,omitempty"`
}

// TextSpan is a run of text carrying uniform style flags.
type TextSpan struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// BlockKind discriminates the closed set of content block variants.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// ChapterBlock is one structural unit of chapter content. Level is only
// meaningful for headings and stays within 1..6.
type ChapterBlock struct {
	Kind  BlockKind  `json:"kind"`
	Level int        `json:"level,omitempty"`
	Spans []TextSpan `json:"spans"`
}

// Chapter is one reading-order fragment after normalization. Title is empty
// when no title could be derived.
type Chapter struct {
	ID        string         `json:"id"`
	Title     string         `json:"title,omitempty"`
	Href      string         `json:"href"`
	Blocks    []ChapterBlock `json:"blocks"`
	PlainText string         `json:"plain_text"`
}

// Document is the fully normalized book. It owns all of its parts; nothing
// aliases the reader's buffers once construction returns.
type Document struct {
	ID           string                  `json:"id"`
	Metadata     Metadata                `json:"metadata"`
	Manifest     map[string]ManifestItem `json:"manifest"`
	ReadingOrder []string                `json:"reading_order"`
	TOC          []TocEntry              `json:"toc"`
	Chapters     []Chapter               `json:"chapters"`
	SourcePath   string                  `json:"source_path"`
}

// NewEmptyDocument returns a placeholder document for when no archive has
// been opened yet.
func NewEmptyDocument() *Document {
	return &Document{
		ID:       "unknown",
		Manifest: make(map[string]ManifestItem),
	}
}
