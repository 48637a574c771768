package main

import (
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/embervale/tarotjack/cmd/tarotjack/shared"
	"github.com/embervale/tarotjack/internal/server"
)

// ServeCmd runs the WebSocket table server.
type ServeCmd struct {
	Config     string `kong:"short='c',default='tarotjack.hcl',help='Path to HCL configuration file'"`
	Addr       string `kong:"short='a',help='Listen address (overrides config)'"`
	Port       int    `kong:"short='p',help='Listen port (overrides config)'"`
	HistoryDir string `kong:"help='Directory for round transcripts (overrides config)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	// Apply command line overrides
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.HistoryDir != "" {
		cfg.Server.HistoryDir = c.HistoryDir
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Server.HistoryDir != "" {
		if err := os.MkdirAll(cfg.Server.HistoryDir, 0o755); err != nil {
			return err
		}
	}

	serviceLogger := shared.SetupServiceLogger(os.Stderr, cfg.Server.LogLevel)
	srv := server.NewServer(cfg, serviceLogger)

	logger.Info().
		Str("address", cfg.ListenAddress()).
		Int("tables", len(cfg.Tables)).
		Str("idle_timeout", cfg.Server.IdleTimeout).
		Str("history_dir", cfg.Server.HistoryDir).
		Msg("Starting tarotjack server")

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down server...")
		return srv.Stop()
	})
	return g.Wait()
}
