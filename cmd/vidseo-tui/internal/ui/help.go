package ui

import (
	"github.com/rivo/tview"
)

// createHelpPanel creates the help panel.
func (a *App) createHelpPanel() {
	a.helpView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.helpView.SetBorder(true).SetTitle(" Help ")

	helpText := `[yellow::b]vidseo - Terminal User Interface[white]

Generates tags, a description, chapter timestamps, title suggestions and
thumbnail concepts for a video URL.

[yellow::b]GLOBAL NAVIGATION[white]
[cyan]F1[white]           Analyze        - Submit a URL and read the summary
[cyan]F2[white]           Tags           - The 35 generated tags
[cyan]F3[white]           Timestamps     - Chapter markers
[cyan]F4[white]           Titles         - Ranked title suggestions
[cyan]F5[white]           Thumbnails     - Concepts with color swatches
[cyan]F6[white]           History        - Runs started from this session
[cyan]F10[white]          Help           - This help screen
[cyan]Escape[white]       Analyze        - Return to the form
[cyan]Ctrl+Q[white]       Quit           - Exit the application

[yellow::b]ANALYZE PANEL[white]
[cyan]Tab[white]          Move between the URL, language and buttons
[cyan]Enter[white]        Activate the focused button

Only one analysis runs at a time. Progress is shown in the status bar.

[yellow::b]THUMBNAILS PANEL[white]
[cyan]w[white]            Write a PNG preview for each concept to the working directory

[yellow::b]HISTORY PANEL[white]
[cyan]Enter[white]        Open the selected completed run

[yellow::b]ENVIRONMENT[white]
[cyan]VIDSEO_CONFIG[white]            Service configuration file (YAML)
[cyan]VIDSEO_ENV_FILE[white]          Dotenv file with credentials (default .env)
[cyan]VIDSEO_LANGUAGE[white]          Preselected output language
[cyan]VIDSEO_SESSION[white]           Session ID for runs from this terminal
[cyan]VIDSEO_HISTORY_REFRESH[white]   History refresh interval (default 5s)
[cyan]GROQ_API_KEY[white]             LLM credential
`

	a.helpView.SetText(helpText)
}
