package main

import (
	"bytes"
	"fmt"
	"log"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"inkwell/internal/epub"
)

const defaultCoverWidth = 600

var coverCmd = &cobra.Command{
	Use:   "cover book.epub",
	Short: "Extract the cover image of an EPUB book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")
		maxWidth, _ := cmd.Flags().GetInt("width")
		if maxWidth <= 0 {
			maxWidth = defaultCoverWidth
		}

		r, err := epub.Open(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		info, ok := r.DetectCover()
		if !ok {
			return fmt.Errorf("no cover image found in %s", args[0])
		}

		data, err := r.ReadFile(info.Href)
		if err != nil {
			return fmt.Errorf("failed to read cover %s: %w", info.Href, err)
		}

		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode cover %s: %w", info.Href, err)
		}

		if img.Bounds().Dx() > maxWidth {
			img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
		}

		if err := imaging.Save(img, outputPath); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}

		log.Printf("cover written: %s (%s)", outputPath, info.Href)
		return nil
	},
}

func init() {
	coverCmd.Flags().StringP("output", "o", "cover.png", "Output image path (format from extension)")
	coverCmd.Flags().Int("width", defaultCoverWidth, "Downscale covers wider than this many pixels")
}
