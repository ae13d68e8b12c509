// Package app wires configuration, the hub, the filter chain, and the
// transport listeners together.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/telex-tui/telex-server/internal/config"
	"github.com/telex-tui/telex-server/internal/core"
	"github.com/telex-tui/telex-server/internal/moderation"
	"github.com/telex-tui/telex-server/internal/throttle"
	"github.com/telex-tui/telex-server/internal/transport/tcp"
	"github.com/telex-tui/telex-server/internal/transport/ws"
)

// App is the assembled server.
type App struct {
	cfg *config.Config
	log *zerolog.Logger
	hub *core.Hub
}

// New constructs the application with the provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	filters := core.NewFilterChain()

	// Running message counter, first in the chain so it sees everything.
	var count int64
	filters.Add(func(username, body string) core.FilterAction {
		count++
		logger.Debug().Int64("count", count).Str("from", username).Msg("message processed")
		return core.Allow()
	})

	if cfg.RateLimit.Burst > 0 {
		filters.Add(throttle.Filter(cfg.RateLimit.Burst, cfg.RateLimit.RefillInterval))
	}

	if len(cfg.BannedWords) > 0 {
		moderator, err := moderation.New(cfg.BannedWords, '*')
		if err != nil {
			return nil, fmt.Errorf("build moderator: %w", err)
		}
		filters.Add(moderator.Filter())
		logger.Info().Int("words", len(cfg.BannedWords)).Msg("moderation enabled")
	}

	hub := core.NewHub(logger, filters, core.HubOptions{
		EventBuffer: cfg.EventBuffer,
		MaxUsers:    cfg.MaxUsers,
	})

	return &App{cfg: cfg, log: logger, hub: hub}, nil
}

// Run starts the listeners and blocks until ctx is cancelled or one of
// them fails. A failure in either listener tears down the other.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	listeners := 1

	tcpServer := tcp.NewServer(a.cfg.Addr, a.hub, a.log, a.cfg.MOTD)
	go func() { errCh <- tcpServer.ListenAndServe(ctx) }()

	if a.cfg.WSAddr != "" {
		listeners++
		wsServer := ws.NewServer(a.cfg.WSAddr, a.hub, a.log, a.cfg.MOTD)
		go func() { errCh <- wsServer.ListenAndServe(ctx) }()
	}

	var firstErr error
	for i := 0; i < listeners; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}
