package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/thumbnail"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		concept string
		overlay string
		colors  []string
		tone    string
		title   string
		output  string
		base    string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a thumbnail preview from a concept description",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Preview.Width
			}
			if height <= 0 {
				height = cfg.Preview.Height
			}

			var baseImg image.Image
			if base != "" {
				baseImg, err = loadImage(base)
				if err != nil {
					return err
				}
			}

			c := domain.ThumbnailConcept{
				Concept:     concept,
				TextOverlay: overlay,
				Colors:      colors,
				Tone:        tone,
			}
			if err := writePNG(thumbnail.NewRenderer(width, height), output, c, title, baseImg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&concept, "concept", "", "Concept description")
	cmd.Flags().StringVar(&overlay, "text", "", "Text overlay")
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "Comma-separated hex colors")
	cmd.Flags().StringVar(&tone, "tone", "", "Emotional tone")
	cmd.Flags().StringVar(&title, "title", "", "Video title drawn along the bottom edge")
	cmd.Flags().StringVarP(&output, "output", "o", "thumbnail.png", "Output PNG path")
	cmd.Flags().StringVar(&base, "base", "", "Background image (PNG or JPEG) instead of a gradient")
	cmd.Flags().IntVar(&width, "width", 0, "Output width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Output height (default from config)")
	return cmd
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open base image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode base image %s: %w", path, err)
	}
	if !strings.EqualFold(format, "png") && !strings.EqualFold(format, "jpeg") {
		return nil, fmt.Errorf("unsupported base image format %q", format)
	}
	return img, nil
}
