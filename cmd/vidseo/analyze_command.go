package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iconidentify/vidseo/internal/app"
	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/service"
	"github.com/iconidentify/vidseo/internal/thumbnail"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		lang      string
		strategy  string
		renderDir string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Run the three-stage pipeline for one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strategy != "" {
				cfg.Pipeline.Strategy = strategy
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			return ctx.withApp(cmd, func(a *app.App) error {
				bar := newStageBar(cmd.ErrOrStderr())
				run, err := a.Service.Analyze(cmd.Context(), service.SubmitRequest{
					URL:       args[0],
					Language:  lang,
					SessionID: "cli",
				}, bar.observe)
				bar.finish()
				if err != nil {
					return err
				}

				if renderDir != "" {
					paths, err := renderConcepts(a.Renderer, run, renderDir)
					if err != nil {
						return err
					}
					if !asJSON {
						for _, p := range paths {
							fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", p)
						}
					}
				}

				if asJSON {
					return writeJSON(cmd, run.Result)
				}
				printRun(cmd.OutOrStdout(), run)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&lang, "language", "l", "", "Output language name or code (default English)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Prompt strategy: direct or chained")
	cmd.Flags().StringVar(&renderDir, "render-dir", "", "Write a PNG preview per thumbnail concept into this directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pipeline result as JSON")
	return cmd
}

// stageBar shows pipeline progress on interactive terminals only.
type stageBar struct {
	bar *progressbar.ProgressBar
}

func newStageBar(w io.Writer) *stageBar {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &stageBar{}
	}
	return &stageBar{bar: progressbar.NewOptions(3,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("fetching metadata"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)}
}

func (s *stageBar) observe(stage domain.Stage) {
	if s.bar == nil {
		return
	}
	if stage != domain.StageAnalysis {
		_ = s.bar.Add(1)
	}
	s.bar.Describe(string(stage.RunStatus()))
}

func (s *stageBar) finish() {
	if s.bar == nil {
		return
	}
	_ = s.bar.Finish()
}

func printRun(w io.Writer, run *domain.Run) {
	res := run.Result
	meta := run.Metadata

	fmt.Fprintf(w, "%s (%s, %s)\n", meta.Title, meta.Platform, run.Language)
	if res.SEO.Degraded || res.Thumbnails.Degraded {
		fmt.Fprintln(w, "note: some sections use fallback content")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Tags (%d)\n", len(res.SEO.Tags))
	fmt.Fprintln(w, strings.Join(res.SEO.Tags, ", "))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Description")
	fmt.Fprintln(w, res.SEO.Description)
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(res.SEO.Timestamps))
	for _, ts := range res.SEO.Timestamps {
		rows = append(rows, []string{ts.Time, ts.Description})
	}
	fmt.Fprintln(w, renderTable([]string{"Time", "Chapter"}, rows, []columnAlignment{alignRight, alignLeft}))

	rows = rows[:0]
	for _, t := range res.SEO.Titles {
		rows = append(rows, []string{strconv.Itoa(t.Rank), t.Title, t.Reason})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Title", "Why"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))

	rows = rows[:0]
	for i, c := range res.Thumbnails.Concepts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Concept,
			c.TextOverlay,
			strings.Join(c.Colors, " "),
			c.Tone,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"#", "Concept", "Overlay", "Colors", "Tone"},
		rows,
		[]columnAlignment{alignRight},
	))
}

func renderConcepts(r *thumbnail.Renderer, run *domain.Run, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create render dir: %w", err)
	}
	paths := make([]string, 0, len(run.Result.Thumbnails.Concepts))
	for i, concept := range run.Result.Thumbnails.Concepts {
		path := filepath.Join(dir, fmt.Sprintf("%s-concept-%d.png", run.ID, i+1))
		if err := writePNG(r, path, concept, run.Metadata.Title, nil); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(r *thumbnail.Renderer, path string, concept domain.ThumbnailConcept, title string, base image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.RenderPNG(f, concept, title, base); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
