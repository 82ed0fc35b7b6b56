package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/book"
	"inkwell/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "inkwell [book.epub]",
	Short: "Inspect EPUB books as normalized documents",
	Long: `inkwell ingests an EPUB archive and normalizes it into a single
document model: canonical metadata, an ordered chapter list broken into
headings and paragraphs, and a table of contents.

Without arguments it starts with an empty document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := book.NewEmptyDocument()
		if len(args) == 1 {
			var err error
			doc, err = book.NewService().Open(args[0])
			if err != nil {
				return err
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		if showTOC, _ := cmd.Flags().GetBool("toc"); showTOC {
			printTOC(doc.TOC, 0)
			return nil
		}

		st := &state.ReaderState{}
		st.SetBook(doc)

		if chapter, _ := cmd.Flags().GetInt("chapter"); chapter > 0 {
			for i := 1; i < chapter; i++ {
				if !st.Next() {
					return fmt.Errorf("chapter %d out of range: book has %d chapters", chapter, st.Count())
				}
			}
			ch, _, ok := st.Current()
			if !ok {
				return fmt.Errorf("chapter %d out of range: book has no chapters", chapter)
			}
			if showBlocks, _ := cmd.Flags().GetBool("blocks"); showBlocks {
				printBlocks(ch.Blocks)
			} else {
				fmt.Println(ch.PlainText)
			}
			return nil
		}

		printSummary(doc, st)
		return nil
	},
}

func init() {
	rootCmd.Flags().Bool("json", false, "Print the full document model as JSON")
	rootCmd.Flags().Bool("toc", false, "Print the table of contents")
	rootCmd.Flags().IntP("chapter", "c", 0, "Print the text of chapter N (1-based)")
	rootCmd.Flags().Bool("blocks", false, "With --chapter, print block structure instead of plain text")
	rootCmd.AddCommand(coverCmd)
}

func printSummary(doc *book.Document, st *state.ReaderState) {
	title := doc.Metadata.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("Title:    %s\n", title)
	if len(doc.Metadata.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", strings.Join(doc.Metadata.Authors, ", "))
	}
	if doc.Metadata.Language != "" {
		fmt.Printf("Language: %s\n", doc.Metadata.Language)
	}
	fmt.Printf("Chapters: %d\n", st.Count())

	if ch, idx, ok := st.Current(); ok {
		name := ch.Title
		if name == "" {
			name = ch.Href
		}
		fmt.Printf("Position: %d/%d %s\n", idx+1, st.Count(), name)
	}
}

func printTOC(entries []book.TocEntry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		fmt.Printf("%s%s (%s)\n", indent, entry.Label, entry.Href)
		printTOC(entry.Children, depth+1)
	}
}

func printBlocks(blocks []book.ChapterBlock) {
	for _, block := range blocks {
		text := blockText(block)
		if text == "" {
			continue
		}
		fmt.Println(text)
		fmt.Println()
	}
}

func blockText(block book.ChapterBlock) string {
	var parts []string
	for _, span := range block.Spans {
		if s := strings.TrimSpace(span.Text); s != "" {
			parts = append(parts, s)
		}
	}
	text := strings.Join(parts, " ")
	if text == "" {
		return ""
	}
	if block.Kind == book.BlockHeading {
		return strings.Repeat("#", block.Level) + " " + text
	}
	return text
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
