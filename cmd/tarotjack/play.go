package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/embervale/tarotjack/cmd/tarotjack/shared"
	"github.com/embervale/tarotjack/internal/history"
	"github.com/embervale/tarotjack/internal/tui"
)

// PlayCmd runs a local table in the terminal.
type PlayCmd struct {
	Health     float64 `kong:"default='100',help='Starting health balance'"`
	MinBet     int     `kong:"default='1',help='Table minimum bet'"`
	MaxBet     int     `kong:"default='50',help='Table maximum bet'"`
	StandsOn   int     `kong:"default='17',help='Score the dealer stands on'"`
	Seed       *int64  `kong:"help='Deterministic shuffle seed (optional)'"`
	HistoryDir string  `kong:"help='Directory for round transcripts'"`
	NoColor    bool    `kong:"help='Disable colored output'"`
	LogFile    string  `kong:"default='tarotjack.log',help='Debug log file'"`
}

func (c *PlayCmd) Run() error {
	if c.NoColor {
		tui.DisableColors()
	}

	// The terminal belongs to the UI, so debug logs go to a file.
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	logger := shared.SetupServiceLogger(logFile, "debug")

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Starting local table", "seed", seed, "health", c.Health)

	model := tui.NewModel(tui.Options{
		Seed:           seed,
		StartingHealth: c.Health,
		MinBet:         c.MinBet,
		MaxBet:         c.MaxBet,
		DealerStandsOn: c.StandsOn,
		Logger:         logger,
	})

	if c.HistoryDir != "" {
		if err := os.MkdirAll(c.HistoryDir, 0o755); err != nil {
			return err
		}
		model.Round().Bus().Subscribe(history.NewRecorder(c.HistoryDir, logger))
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
