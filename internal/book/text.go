package book

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockBreakTags is the set of tags that produce a line break during
// whole-fragment text extraction.
var blockBreakTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Br:         true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Tr:         true,
	atom.Blockquote: true,
	atom.Hr:         true,
}

// skipContentTags is the set of tags whose content never contributes text.
var skipContentTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Head:   true,
}

// extractPlainText reduces a whole markup document to plain text, with block
// level elements producing line breaks. This is the fallback rendering for
// fragments that yield no structured blocks.
func extractPlainText(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	skipDepth := 0
	lastWasBreak := true

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			// Malformed markup is tolerated; EOF or not, return what was
			// collected so far.
			return strings.TrimSpace(b.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			a := atom.Lookup(tn)
			if tt == html.SelfClosingTagToken {
				// A self-closed script, style or title holds no raw text.
				tokenizer.NextIsNotRawText()
			}
			if skipContentTags[a] {
				if tt == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if blockBreakTags[a] && b.Len() > 0 && !lastWasBreak {
				b.WriteByte('\n')
				lastWasBreak = true
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			a := atom.Lookup(tn)
			if skipContentTags[a] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := collapseWhitespace(string(tokenizer.Text()))
			if text != "" {
				if !lastWasBreak && needsSpace(&b) {
					b.WriteByte(' ')
				}
				b.WriteString(text)
				lastWasBreak = false
			}
		}
	}
}

// needsSpace reports whether joining more text onto b requires a separator.
func needsSpace(b *strings.Builder) bool {
	s := b.String()
	return s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n")
}

// collapseWhitespace replaces runs of whitespace with single spaces and
// trims the result. Returns "" for all-whitespace input.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// spansText joins a block's span texts with single spaces, skipping spans
// that are empty after trimming.
func spansText(spans []TextSpan) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		if text := strings.TrimSpace(span.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// blocksToPlainText flattens blocks to text: spans joined with spaces within
// a block, blocks joined with a blank line, empty blocks skipped.
func blocksToPlainText(blocks []ChapterBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if text := spansText(block.Spans); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
