package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/service"
)

// createAnalyzePanel creates the URL form and the run summary below it.
func (a *App) createAnalyzePanel() {
	langs := a.svc.Languages()
	options := make([]string, len(langs))
	selected := 0
	for i, l := range langs {
		options[i] = l.Name
		if strings.EqualFold(l.Name, a.cfg.Language) || strings.EqualFold(l.Code, a.cfg.Language) {
			selected = i
		}
	}

	a.analyzeForm = tview.NewForm().
		AddInputField("Video URL", "", 72, nil, nil).
		AddDropDown("Language", options, selected, nil).
		AddButton("Analyze", a.submitForm).
		AddButton("Clear", func() {
			a.analyzeForm.GetFormItemByLabel("Video URL").(*tview.InputField).SetText("")
		})
	a.analyzeForm.SetBorder(true).SetTitle(" New analysis ")

	a.summaryView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.summaryView.SetBorder(true).SetTitle(" Summary ")
	a.summaryView.SetText("[gray]Enter a YouTube, TikTok, Instagram, Facebook, LinkedIn or X video URL.")

	a.analyzeView = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.analyzeForm, 9, 0, true).
		AddItem(a.summaryView, 0, 1, false)
}

func (a *App) submitForm() {
	url := strings.TrimSpace(a.analyzeForm.GetFormItemByLabel("Video URL").(*tview.InputField).GetText())
	_, lang := a.analyzeForm.GetFormItemByLabel("Language").(*tview.DropDown).GetCurrentOption()
	if url == "" {
		a.setStatus("[red]A video URL is required")
		return
	}
	if !a.beginRun() {
		a.setStatus("[yellow]An analysis is already running")
		return
	}
	a.setStatus("Fetching metadata...")
	a.summaryView.SetText(fmt.Sprintf("[yellow]Analyzing[white] %s (%s)...", url, lang))
	go a.analyze(url, lang)
}

func (a *App) beginRun() bool {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if a.running {
		return false
	}
	a.running = true
	return true
}

// analyze runs the pipeline in the background and publishes the result.
func (a *App) analyze(url, lang string) {
	run, err := a.svc.Analyze(a.ctx, service.SubmitRequest{
		URL:       url,
		Language:  lang,
		SessionID: domain.SessionID(a.cfg.Session),
	}, func(stage domain.Stage) {
		a.updateStatusBar(stageMessage(stage))
	})

	a.app.QueueUpdateDraw(func() {
		a.finishRun(run, err)
	})
}

// finishRun records the outcome of a run and refreshes every result panel.
func (a *App) finishRun(run *domain.Run, err error) {
	a.runMu.Lock()
	a.running = false
	if err == nil {
		a.current = run
	}
	a.runMu.Unlock()

	if err != nil {
		a.setStatus(fmt.Sprintf("[red]Analysis failed: %v", err))
		a.summaryView.SetText(fmt.Sprintf("[red]%v", err))
		return
	}

	a.showRun(run)
	note := ""
	if run.Result.SEO.Degraded || run.Result.Thumbnails.Degraded {
		note = " (some sections use fallback content)"
	}
	a.setStatus("[green]Analysis completed" + note)
}

func stageMessage(stage domain.Stage) string {
	switch stage {
	case domain.StageAnalysis:
		return "Stage 1/3: analyzing content..."
	case domain.StageSEO:
		return "Stage 2/3: generating SEO metadata..."
	case domain.StageThumbnails:
		return "Stage 3/3: designing thumbnails..."
	}
	return string(stage)
}

func summaryText(run *domain.Run) string {
	var b strings.Builder
	meta := run.Metadata
	fmt.Fprintf(&b, "[white::b]Run:[white] %s\n", run.ID)
	fmt.Fprintf(&b, "[white::b]Video:[white] %s\n", tview.Escape(meta.Title))
	fmt.Fprintf(&b, "[white::b]Platform:[white] %s   [white::b]Language:[white] %s\n", meta.Platform, run.Language)
	if meta.DurationSeconds > 0 {
		fmt.Fprintf(&b, "[white::b]Duration:[white] %.1f min   [white::b]Views:[white] %d\n", meta.DurationMinutes(), meta.Views)
	}
	if run.Result == nil {
		return b.String()
	}
	res := run.Result
	fmt.Fprintf(&b, "\n[white::b]Tags:[white] %d   [white::b]Chapters:[white] %d   [white::b]Titles:[white] %d   [white::b]Concepts:[white] %d\n",
		len(res.SEO.Tags), len(res.SEO.Timestamps), len(res.SEO.Titles), len(res.Thumbnails.Concepts))
	if len(res.SEO.Titles) > 0 {
		fmt.Fprintf(&b, "[white::b]Top title:[white] %s\n", tview.Escape(res.SEO.Titles[0].Title))
	}
	fmt.Fprintf(&b, "\n[white::b]Description[white]\n%s\n", tview.Escape(res.SEO.Description))
	if res.Analysis != "" {
		fmt.Fprintf(&b, "\n[white::b]Analysis[white]\n%s\n", tview.Escape(res.Analysis.String()))
	}
	return b.String()
}
