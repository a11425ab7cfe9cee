package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/repository"
)

// createHistoryPanel creates the table of past runs for this session.
func (a *App) createHistoryPanel() {
	a.historyTable = newResultTable(" History - Enter to open a completed run ", []string{"RUN", "STATUS", "LANGUAGE", "PLATFORM", "TITLE", "CREATED"})

	a.historyTable.SetSelectedFunc(func(row, _ int) {
		if row == 0 || row > len(a.history) {
			return
		}
		run := a.history[row-1]
		if run.Result == nil {
			a.setStatus(fmt.Sprintf("[yellow]Run %s has no result (%s)", run.ID, run.Status))
			return
		}
		a.runMu.Lock()
		a.current = run
		a.runMu.Unlock()
		a.showRun(run)
		a.switchPanel(PanelAnalyze)
		a.setStatus(fmt.Sprintf("Opened %s", run.ID))
	})
}

// refreshHistory loads this session's runs and redraws the table.
func (a *App) refreshHistory() {
	ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	defer cancel()

	runs, total, err := a.svc.List(ctx, repository.ListOptions{
		Session: domain.SessionID(a.cfg.Session),
		Limit:   a.cfg.HistoryLimit,
	})
	if err != nil {
		a.updateStatusBar(fmt.Sprintf("[red]Error loading history: %v", err))
		return
	}

	a.app.QueueUpdateDraw(func() {
		a.history = runs
		fillHistory(a.historyTable, runs)
		a.setStatus(fmt.Sprintf("%d run(s) in history", total))
	})
}

func fillHistory(table *tview.Table, runs []*domain.Run) {
	clearRows(table)
	for i, run := range runs {
		row := i + 1
		table.SetCell(row, 0, tview.NewTableCell(run.ID.String()).SetTextColor(tcell.ColorWhite))
		table.SetCell(row, 1, tview.NewTableCell(string(run.Status)).SetTextColor(statusColor(run.Status)))
		table.SetCell(row, 2, tview.NewTableCell(run.Language))
		table.SetCell(row, 3, tview.NewTableCell(string(run.Metadata.Platform)))
		table.SetCell(row, 4, tview.NewTableCell(run.Metadata.Title).SetExpansion(2).SetMaxWidth(48))
		table.SetCell(row, 5, tview.NewTableCell(run.CreatedAt.Format("01-02 15:04")).SetTextColor(tcell.ColorGray))
	}
}

func statusColor(status domain.RunStatus) tcell.Color {
	switch status {
	case domain.RunStatusCompleted:
		return tcell.ColorGreen
	case domain.RunStatusFailed:
		return tcell.ColorRed
	case domain.RunStatusQueued:
		return tcell.ColorGray
	default:
		return tcell.ColorYellow
	}
}
