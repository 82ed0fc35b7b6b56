package book

import (
	"github.com/google/uuid"

	"inkwell/internal/epub"
)

// Source is the package-reader contract the assembler consumes. *epub.Reader
// satisfies it; tests substitute a fixture.
type Source interface {
	RawMetadata() []epub.MetadataPair
	Title() (string, bool)
	ReleaseIdentifier() (string, bool)
	Resources() map[string]epub.Resource
	ReadingOrder() []string
	NavigationTree() []epub.NavPoint
	FragmentText(id string) (string, bool)
}

// IDGenerator produces a fresh document identifier when the archive declares
// none. Injected so ingestion stays deterministic under test.
type IDGenerator func() string

// Service builds normalized documents from e-book archives.
type Service struct {
	NewID IDGenerator
}

// NewService returns a service using UUIDs for generated document ids.
func NewService() *Service {
	return &Service{NewID: uuid.NewString}
}

// Open ingests the archive at path into a Document. It fails only when the
// archive cannot be opened or its package structure cannot be parsed; every
// degradation past that point yields a sparser document, not an error.
func (s *Service) Open(path string) (*Document, error) {
	r, err := epub.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return s.Assemble(r, path), nil
}

// Assemble composes metadata, manifest, reading order, TOC and chapters into
// the final document and stamps its identity. Construction cannot fail; any
// failure originates in the source.
func (s *Service) Assemble(src Source, path string) *Document {
	metadata := normalizeMetadata(src)

	nav := src.NavigationTree()
	labels := tocLabels(nav)

	manifest := make(map[string]ManifestItem)
	for id, res := range src.Resources() {
		manifest[id] = ManifestItem{ID: res.ID, Href: res.Href, MediaType: res.MediaType}
	}

	readingOrder := make([]string, len(src.ReadingOrder()))
	copy(readingOrder, src.ReadingOrder())

	// Identifier preference: declared metadata identifier, then the release
	// identifier, then a freshly generated one.
	id := metadata.Identifier
	if id == "" {
		if release, ok := src.ReleaseIdentifier(); ok {
			id = release
		}
	}
	if id == "" {
		id = s.NewID()
	}

	return &Document{
		ID:           id,
		Metadata:     metadata,
		Manifest:     manifest,
		ReadingOrder: readingOrder,
		TOC:          tocEntries(nav),
		Chapters:     buildChapters(src, labels),
		SourcePath:   path,
	}
}
