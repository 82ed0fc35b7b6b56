package book

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseBlocks converts one fragment's raw markup into an ordered block
// sequence approximating its document structure. It never fails: malformed
// or partial markup degrades to a flattened paragraph or an empty list.
//
// The scan walks the markup left to right looking for opening tags. For each
// recognized element (h1-h6, p, blockquote, li) the matching closing tag is
// located by literal search and the inner content is reduced to styled
// spans. Unrecognized elements are skipped together with their content;
// unmatched tags are abandoned so the scan always advances.
func parseBlocks(markup string) []ChapterBlock {
	var blocks []ChapterBlock
	index := 0

	for {
		openRel := strings.IndexByte(markup[index:], '<')
		if openRel < 0 {
			break
		}
		openIdx := index + openRel
		remaining := markup[openIdx+1:]
		closeRel := strings.IndexByte(remaining, '>')
		if closeRel < 0 {
			break
		}
		tagBody := strings.TrimSpace(remaining[:closeRel])
		tagEnd := openIdx + 1 + closeRel + 1

		// Comments, processing instructions and closing tags open nothing.
		if tagBody == "" || strings.HasPrefix(tagBody, "!") ||
			strings.HasPrefix(tagBody, "?") || strings.HasPrefix(tagBody, "/") {
			index = tagEnd
			continue
		}

		firstToken := strings.Fields(tagBody)[0]
		selfClosing := strings.HasSuffix(tagBody, "/")
		name := strings.ToLower(strings.TrimSuffix(firstToken, "/"))

		if selfClosing {
			// A self-closing tag never opens a content search. Only an
			// explicit br leaves a line-break marker.
			if name == "br" {
				blocks = append(blocks, ChapterBlock{
					Kind:  BlockParagraph,
					Spans: []TextSpan{{Text: ""}},
				})
			}
			index = tagEnd
			continue
		}

		closing := "</" + name + ">"
		closeIdx := strings.Index(markup[tagEnd:], closing)
		if closeIdx < 0 {
			// No matching close: abandon this tag and keep scanning past
			// the opening tag so unmatched markup cannot loop forever.
			index = tagEnd
			continue
		}

		inner := markup[tagEnd : tagEnd+closeIdx]
		index = tagEnd + closeIdx + len(closing)

		if block, ok := classifyBlock(name, inner); ok {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		if fallback := extractPlainText(markup); strings.TrimSpace(fallback) != "" {
			blocks = append(blocks, ChapterBlock{
				Kind:  BlockParagraph,
				Spans: []TextSpan{{Text: strings.TrimSpace(fallback)}},
			})
		}
	}

	return blocks
}

// classifyBlock maps a recognized tag name and its inner markup to a block.
// Blocks whose reduced text is empty are dropped; anything but headings,
// paragraphs, blockquotes and list items yields no block at all.
func classifyBlock(name, inner string) (ChapterBlock, bool) {
	spans := parseSpans(inner)
	if spansText(spans) == "" {
		return ChapterBlock{}, false
	}

	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return ChapterBlock{
			Kind:  BlockHeading,
			Level: headingLevel(name),
			Spans: spans,
		}, true
	case "p", "blockquote":
		return ChapterBlock{Kind: BlockParagraph, Spans: spans}, true
	case "li":
		spans[0].Text = "- " + spans[0].Text
		return ChapterBlock{Kind: BlockParagraph, Spans: spans}, true
	}

	return ChapterBlock{}, false
}

// headingLevel parses the numeral of a heading tag name, defaulting to 1 and
// clamping to the 1..6 range.
func headingLevel(name string) int {
	level, err := strconv.Atoi(strings.TrimPrefix(name, "h"))
	if err != nil || level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// parseSpans reduces the inner markup of a block to styled text spans.
// b/strong set the bold flag, i/em the italic flag, nesting honored.
// Adjacent spans with identical flags are merged; spans empty after
// whitespace collapsing are dropped.
func parseSpans(fragment string) []TextSpan {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var raw []TextSpan
	bold, italic, skipDepth := 0, 0, 0

	appendText := func(text string) {
		b, i := bold > 0, italic > 0
		if n := len(raw); n > 0 && raw[n-1].Bold == b && raw[n-1].Italic == i {
			raw[n-1].Text += text
			return
		}
		raw = append(raw, TextSpan{Text: text, Bold: b, Italic: i})
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return normalizeSpans(raw)

		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			switch a := atom.Lookup(tn); {
			case skipContentTags[a]:
				skipDepth++
			case a == atom.B || a == atom.Strong:
				bold++
			case a == atom.I || a == atom.Em:
				italic++
			case a == atom.Br:
				appendText(" ")
			}

		case html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			// A self-closed script, style or title holds no raw text.
			tokenizer.NextIsNotRawText()
			if atom.Lookup(tn) == atom.Br {
				appendText(" ")
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			switch a := atom.Lookup(tn); {
			case skipContentTags[a]:
				if skipDepth > 0 {
					skipDepth--
				}
			case a == atom.B || a == atom.Strong:
				if bold > 0 {
					bold--
				}
			case a == atom.I || a == atom.Em:
				if italic > 0 {
					italic--
				}
			}

		case html.TextToken:
			if skipDepth == 0 {
				appendText(string(tokenizer.Text()))
			}
		}
	}
}

// normalizeSpans collapses whitespace in each span, drops spans left empty,
// and re-merges neighbors whose style flags became identical after a drop.
func normalizeSpans(raw []TextSpan) []TextSpan {
	var spans []TextSpan
	for _, span := range raw {
		text := collapseWhitespace(span.Text)
		if text == "" {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].Bold == span.Bold && spans[n-1].Italic == span.Italic {
			spans[n-1].Text += " " + text
			continue
		}
		spans = append(spans, TextSpan{Text: text, Bold: span.Bold, Italic: span.Italic})
	}
	return spans
}
