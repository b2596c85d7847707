// Package main is the entry point for the bankboard terminal dashboard.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mks/bankboard/internal/api"
	"github.com/mks/bankboard/internal/config"
	"github.com/mks/bankboard/internal/session"
	"github.com/mks/bankboard/internal/ui"
	"github.com/mks/bankboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	apiURL := flag.String("api-url", cfg.APIURL, "Bank server URL")
	username := flag.String("username", cfg.Username, "Viewing player (empty = anonymous)")
	logFile := flag.String("log-file", cfg.LogFile, "Log destination (empty = discard)")
	flag.Parse()
	cfg.APIURL = *apiURL
	cfg.Username = *username
	cfg.LogFile = *logFile

	// The dashboard owns the terminal, so logs go to a file or nowhere.
	log := logger.New(logger.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	log.Info().Str("api_url", cfg.APIURL).Str("username", cfg.Username).Msg("bankboard starting")

	snap, err := session.Load(cfg.StateFile, cfg.Username)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable session snapshot")
	}

	client := api.NewClient(cfg.APIURL, log)
	m := ui.NewModel(cfg, client, snap, log)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if fm, ok := final.(ui.Model); ok {
		if err := session.Save(cfg.StateFile, fm.Snapshot()); err != nil {
			log.Warn().Err(err).Msg("failed to save session snapshot")
		}
	}
}
