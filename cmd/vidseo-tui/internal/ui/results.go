package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/vidseo/internal/domain"
)

// createResultPanels creates the tags, timestamps, titles and thumbnails panels.
func (a *App) createResultPanels() {
	a.tagsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.tagsView.SetBorder(true).SetTitle(" Tags ")

	a.timestampsTable = newResultTable(" Timestamps ", []string{"TIME", "CHAPTER"})
	a.titlesTable = newResultTable(" Title suggestions ", []string{"#", "TITLE", "WHY"})

	a.thumbnailsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.thumbnailsView.SetBorder(true).SetTitle(" Thumbnail concepts - 'w' writes PNG previews to the working directory ")
	a.thumbnailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && (event.Rune() == 'w' || event.Rune() == 'W') {
			a.writePreviews(".")
			return nil
		}
		return event
	})

	for _, v := range []*tview.TextView{a.tagsView, a.thumbnailsView} {
		v.SetText("[gray]No analysis yet.")
	}
}

func newResultTable(title string, headers []string) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	table.SetBorder(true).SetTitle(title)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorDarkCyan))
	setHeader(table, headers)
	return table
}

func setHeader(table *tview.Table, headers []string) {
	for i, h := range headers {
		table.SetCell(0, i, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}
}

func clearRows(table *tview.Table) {
	for row := table.GetRowCount() - 1; row > 0; row-- {
		table.RemoveRow(row)
	}
}

// showRun renders run into every result panel.
func (a *App) showRun(run *domain.Run) {
	a.summaryView.SetText(summaryText(run))
	a.summaryView.ScrollToBeginning()
	if run.Result == nil {
		return
	}
	res := run.Result

	a.tagsView.SetText(formatTags(res.SEO.Tags, res.SEO.Degraded))
	fillTimestamps(a.timestampsTable, res.SEO.Timestamps)
	fillTitles(a.titlesTable, res.SEO.Titles)
	a.thumbnailsView.SetText(formatConcepts(res.Thumbnails.Concepts))
}

func formatTags(tags []string, degraded bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow::b]%d tags[white]", len(tags))
	if degraded {
		b.WriteString(" [gray](fallback)")
	}
	b.WriteString("[white]\n\n")
	for i, tag := range tags {
		fmt.Fprintf(&b, "[cyan]%2d[white] %s\n", i+1, tview.Escape(tag))
	}
	b.WriteString("\n[gray]Comma separated:[white]\n")
	b.WriteString(tview.Escape(strings.Join(tags, ", ")))
	return b.String()
}

func fillTimestamps(table *tview.Table, timestamps []domain.Timestamp) {
	clearRows(table)
	for i, ts := range timestamps {
		table.SetCell(i+1, 0, tview.NewTableCell(ts.Time).SetTextColor(tcell.ColorAqua))
		table.SetCell(i+1, 1, tview.NewTableCell(ts.Description).SetExpansion(1))
	}
}

func fillTitles(table *tview.Table, titles []domain.TitleSuggestion) {
	clearRows(table)
	for i, t := range titles {
		table.SetCell(i+1, 0, tview.NewTableCell(strconv.Itoa(t.Rank)).SetTextColor(tcell.ColorYellow))
		table.SetCell(i+1, 1, tview.NewTableCell(t.Title).SetExpansion(2).SetTextColor(tcell.ColorWhite))
		table.SetCell(i+1, 2, tview.NewTableCell(t.Reason).SetExpansion(2).SetTextColor(tcell.ColorGray))
	}
}

func formatConcepts(concepts []domain.ThumbnailConcept) string {
	var b strings.Builder
	for i, c := range concepts {
		fmt.Fprintf(&b, "[yellow::b]Concept %d[white]\n", i+1)
		fmt.Fprintf(&b, "  %s\n", tview.Escape(c.Concept))
		fmt.Fprintf(&b, "  [white::b]Overlay:[white] %s\n", tview.Escape(c.TextOverlay))
		b.WriteString("  [white::b]Colors:[white] ")
		for _, col := range c.Colors {
			fmt.Fprintf(&b, "%s %s  ", swatch(col), col)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  [white::b]Focal point:[white] %s\n", tview.Escape(c.FocalPoint))
		fmt.Fprintf(&b, "  [white::b]Tone:[white] %s   [white::b]Composition:[white] %s\n\n", tview.Escape(c.Tone), tview.Escape(c.Composition))
	}
	return b.String()
}

// swatch draws a colored block for a #RRGGBB value, or nothing if the
// value is not a color tcell understands.
func swatch(hex string) string {
	if tcell.GetColor(hex) == tcell.ColorDefault {
		return "  "
	}
	return fmt.Sprintf("[%s]██[white]", hex)
}

// writePreviews renders every concept of the current run into dir.
func (a *App) writePreviews(dir string) {
	run := a.currentRun()
	if run == nil || run.Result == nil {
		a.setStatus("[yellow]No analysis to render")
		return
	}
	paths, err := a.writeConceptPNGs(run, dir)
	if err != nil {
		a.setStatus(fmt.Sprintf("[red]Render failed: %v", err))
		return
	}
	a.setStatus(fmt.Sprintf("[green]Wrote %s", strings.Join(paths, ", ")))
}

func (a *App) writeConceptPNGs(run *domain.Run, dir string) ([]string, error) {
	var paths []string
	for i, concept := range run.Result.Thumbnails.Concepts {
		path := filepath.Join(dir, fmt.Sprintf("%s-concept-%d.png", run.ID, i+1))
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		if err := a.renderer.RenderPNG(f, concept, run.Metadata.Title, nil); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
