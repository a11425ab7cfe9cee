// Package ui provides the terminal user interface for vidseo.
package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/vidseo/cmd/vidseo-tui/internal/config"
	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
	"github.com/iconidentify/vidseo/internal/thumbnail"
)

// Service is the subset of the analysis service the TUI drives.
type Service interface {
	Analyze(ctx context.Context, req service.SubmitRequest, observers ...seo.StageObserver) (*domain.Run, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*domain.Run, int, error)
	Languages() []language.Language
	Configured() bool
}

// Panel represents a UI panel type.
type Panel int

const (
	PanelAnalyze Panel = iota
	PanelTags
	PanelTimestamps
	PanelTitles
	PanelThumbnails
	PanelHistory
	PanelHelp
)

var panelPages = map[Panel]string{
	PanelAnalyze:    "analyze",
	PanelTags:       "tags",
	PanelTimestamps: "timestamps",
	PanelTitles:     "titles",
	PanelThumbnails: "thumbnails",
	PanelHistory:    "history",
	PanelHelp:       "help",
}

var panelNames = map[Panel]string{
	PanelAnalyze:    "Analyze",
	PanelTags:       "Tags",
	PanelTimestamps: "Timestamps",
	PanelTitles:     "Titles",
	PanelThumbnails: "Thumbnails",
	PanelHistory:    "History",
	PanelHelp:       "Help",
}

// App is the main TUI application.
type App struct {
	app          *tview.Application
	pages        *tview.Pages
	cfg          *config.Config
	svc          Service
	renderer     *thumbnail.Renderer
	currentPanel Panel
	ctx          context.Context
	cancel       context.CancelFunc

	// UI components
	mainFlex        *tview.Flex
	header          *tview.TextView
	footer          *tview.TextView
	statusBar       *tview.TextView
	analyzeView     *tview.Flex
	analyzeForm     *tview.Form
	summaryView     *tview.TextView
	tagsView        *tview.TextView
	timestampsTable *tview.Table
	titlesTable     *tview.Table
	thumbnailsView  *tview.TextView
	historyTable    *tview.Table
	helpView        *tview.TextView

	// State
	runMu   sync.RWMutex
	current *domain.Run
	running bool
	history []*domain.Run
}

// NewApp creates a new TUI application.
func NewApp(cfg *config.Config, svc Service, renderer *thumbnail.Renderer) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		cfg:      cfg,
		svc:      svc,
		renderer: renderer,
		ctx:      ctx,
		cancel:   cancel,
	}

	a.setupUI()
	return a
}

// setupUI initializes all UI components.
func (a *App) setupUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)

	a.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]F1[white]:Analyze [yellow]F2[white]:Tags [yellow]F3[white]:Timestamps [yellow]F4[white]:Titles [yellow]F5[white]:Thumbnails [yellow]F6[white]:History [yellow]F10[white]:Help [yellow]Ctrl+Q[white]:Quit")
	a.footer.SetBackgroundColor(tcell.ColorDarkBlue)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(tcell.ColorDarkGreen)

	a.createAnalyzePanel()
	a.createResultPanels()
	a.createHistoryPanel()
	a.createHelpPanel()

	a.pages.AddPage("analyze", a.analyzeView, true, true)
	a.pages.AddPage("tags", a.tagsView, true, false)
	a.pages.AddPage("timestamps", a.timestampsTable, true, false)
	a.pages.AddPage("titles", a.titlesTable, true, false)
	a.pages.AddPage("thumbnails", a.thumbnailsView, true, false)
	a.pages.AddPage("history", a.historyTable, true, false)
	a.pages.AddPage("help", a.helpView, true, false)

	a.mainFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.app.SetRoot(a.mainFlex, true)

	a.updateHeader()
	if a.svc.Configured() {
		a.setStatus("Ready")
	} else {
		a.setStatus("[yellow]LLM API key is not configured; analyses will fail")
	}
}

// handleGlobalKeys handles global keyboard shortcuts. Function keys are used
// so that typing into the analyze form is never intercepted.
func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyF1:
		a.switchPanel(PanelAnalyze)
		return nil
	case tcell.KeyF2:
		a.switchPanel(PanelTags)
		return nil
	case tcell.KeyF3:
		a.switchPanel(PanelTimestamps)
		return nil
	case tcell.KeyF4:
		a.switchPanel(PanelTitles)
		return nil
	case tcell.KeyF5:
		a.switchPanel(PanelThumbnails)
		return nil
	case tcell.KeyF6:
		a.switchPanel(PanelHistory)
		go a.refreshHistory()
		return nil
	case tcell.KeyF10:
		a.switchPanel(PanelHelp)
		return nil
	case tcell.KeyCtrlQ:
		a.Stop()
		return nil
	case tcell.KeyEscape:
		if a.currentPanel != PanelAnalyze {
			a.switchPanel(PanelAnalyze)
			return nil
		}
	}
	return event
}

// switchPanel switches to the specified panel.
func (a *App) switchPanel(panel Panel) {
	a.currentPanel = panel
	a.pages.SwitchToPage(panelPages[panel])

	switch panel {
	case PanelAnalyze:
		a.app.SetFocus(a.analyzeForm)
	case PanelTimestamps:
		a.app.SetFocus(a.timestampsTable)
	case PanelTitles:
		a.app.SetFocus(a.titlesTable)
	case PanelHistory:
		a.app.SetFocus(a.historyTable)
	}

	a.updateHeader()
}

// updateHeader updates the header with current panel name.
func (a *App) updateHeader() {
	llm := "[green]configured"
	if !a.svc.Configured() {
		llm = "[red]not configured"
	}
	a.header.SetText(fmt.Sprintf("\n[white::b]vidseo[white] - [yellow]%s[white] | Session: [green]%s[white] | LLM: %s",
		panelNames[a.currentPanel], a.cfg.Session, llm))
}

func (a *App) setStatus(msg string) {
	a.statusBar.SetText(fmt.Sprintf(" %s | %s", msg, time.Now().Format("15:04:05")))
}

// updateStatusBar updates the status bar from a background goroutine.
func (a *App) updateStatusBar(msg string) {
	a.app.QueueUpdateDraw(func() {
		a.setStatus(msg)
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	go a.startBackgroundRefresh()
	return a.app.Run()
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// startBackgroundRefresh refreshes the history table while it is visible.
func (a *App) startBackgroundRefresh() {
	ticker := time.NewTicker(a.cfg.HistoryRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			if a.currentPanel == PanelHistory {
				a.refreshHistory()
			}
		}
	}
}

func (a *App) currentRun() *domain.Run {
	a.runMu.RLock()
	defer a.runMu.RUnlock()
	return a.current
}
