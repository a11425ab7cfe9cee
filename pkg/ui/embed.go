// Package ui embeds the browser front-end served by the API server.
package ui

import (
	_ "embed"
)

// IndexHTML is the single-page analysis UI. It talks to /api/v1 and keeps
// its session id in sessionStorage so one tab maps to one session.
//
//go:embed index.html
var IndexHTML []byte
