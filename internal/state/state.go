// Package state tracks the reading position within an open document. The
// document itself stays immutable; only the cursor lives here.
package state

import "inkwell/internal/book"

// ReaderState is a linear cursor over a document's chapter list.
type ReaderState struct {
	doc     *book.Document
	current int
	active  bool
}

// SetBook makes doc the active document and resets the cursor to the first
// chapter, or to no chapter when the document has none.
func (s *ReaderState) SetBook(doc *book.Document) {
	s.doc = doc
	s.current = 0
	s.active = doc != nil && len(doc.Chapters) > 0
}

// Book returns the active document, or nil.
func (s *ReaderState) Book() *book.Document {
	return s.doc
}

// Count returns the number of chapters in the active document.
func (s *ReaderState) Count() int {
	if s.doc == nil {
		return 0
	}
	return len(s.doc.Chapters)
}

// Current returns the current chapter and its index.
func (s *ReaderState) Current() (*book.Chapter, int, bool) {
	if !s.active {
		return nil, 0, false
	}
	return &s.doc.Chapters[s.current], s.current, true
}

// CurrentHref returns the href of the current chapter.
func (s *ReaderState) CurrentHref() (string, bool) {
	ch, _, ok := s.Current()
	if !ok {
		return "", false
	}
	return ch.Href, true
}

// Next advances to the following chapter. At the last chapter it is a no-op
// and reports false.
func (s *ReaderState) Next() bool {
	if !s.active || s.current+1 >= s.Count() {
		return false
	}
	s.current++
	return true
}

// Prev moves back one chapter. At the first chapter it is a no-op and
// reports false.
func (s *ReaderState) Prev() bool {
	if !s.active || s.current == 0 {
		return false
	}
	s.current--
	return true
}

// JumpToHref moves the cursor to the first chapter with the given href.
func (s *ReaderState) JumpToHref(href string) bool {
	if s.doc == nil {
		return false
	}
	for i, ch := range s.doc.Chapters {
		if ch.Href == href {
			s.current = i
			s.active = true
			return true
		}
	}
	return false
}
