// vidseo-tui is a terminal front-end for running analyses and browsing
// their results without the HTTP server.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/iconidentify/vidseo/cmd/vidseo-tui/internal/config"
	"github.com/iconidentify/vidseo/cmd/vidseo-tui/internal/ui"
	"github.com/iconidentify/vidseo/internal/app"
	svcconfig "github.com/iconidentify/vidseo/internal/config"
)

func main() {
	cfg := config.Load()

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", cfg.EnvFile, err)
			os.Exit(1)
		}
	}

	svcCfg, err := svcconfig.Load(cfg.ServiceConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tview; pipeline logs are discarded.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	components, err := app.New(svcCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	tui := ui.NewApp(cfg, components.Service, components.Renderer)
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		components.Close()
		os.Exit(1)
	}
}
