package book

import (
	"log"
	"strings"

	"inkwell/internal/epub"
)

// fragmentSource is the slice of the package reader the chapter builder
// needs: the manifest, the reading order and fragment bodies.
type fragmentSource interface {
	Resources() map[string]epub.Resource
	ReadingOrder() []string
	FragmentText(id string) (string, bool)
}

// buildChapters walks the reading order and assembles the chapter list.
// Dangling ids, non-text resources and unreadable fragments are skipped
// silently; a fragment that yields zero blocks still becomes a chapter.
func buildChapters(src fragmentSource, labels map[string]string) []Chapter {
	resources := src.Resources()
	var chapters []Chapter

	for _, id := range src.ReadingOrder() {
		res, ok := resources[id]
		if !ok {
			log.Printf("warning: reading-order item %q not found in manifest, skipping", id)
			continue
		}

		mime := strings.ToLower(res.MediaType)
		if !strings.Contains(mime, "html") && !strings.Contains(mime, "xhtml") {
			continue
		}

		markup, ok := src.FragmentText(id)
		if !ok {
			log.Printf("warning: could not read fragment %q, skipping", id)
			continue
		}

		blocks := parseBlocks(markup)
		var plainText string
		if len(blocks) > 0 {
			plainText = blocksToPlainText(blocks)
		} else {
			plainText = extractPlainText(markup)
		}

		chapters = append(chapters, Chapter{
			ID:        id,
			Title:     deriveTitle(labels, res.Href, blocks, plainText, id),
			Href:      res.Href,
			Blocks:    blocks,
			PlainText: plainText,
		})
	}

	return chapters
}

// deriveTitle picks a chapter title through an ordered fallback chain:
// exact TOC label, TOC label matched by path suffix, first non-empty block,
// first non-blank line of the plain text, the manifest id, and finally "".
func deriveTitle(labels map[string]string, href string, blocks []ChapterBlock, plainText, fallbackID string) string {
	if label, ok := labels[href]; ok {
		return label
	}

	if label, ok := matchLabelBySuffix(labels, href); ok {
		return label
	}

	for _, block := range blocks {
		if text := spansText(block.Spans); strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}

	for _, line := range strings.Split(plainText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return fallbackID
}

// matchLabelBySuffix finds a TOC label whose key is a path suffix of the
// manifest href. This bridges differing path roots between the manifest and
// the navigation declarations.
func matchLabelBySuffix(labels map[string]string, href string) (string, bool) {
	for candidate, label := range labels {
		if candidate == "" {
			continue
		}
		if href == candidate || strings.HasSuffix(href, "/"+candidate) {
			return label, true
		}
	}
	return "", false
}
