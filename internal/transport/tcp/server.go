// Package tcp provides the plain-TCP listener for the line protocol.
package tcp

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/telex-tui/telex-server/internal/core"
	"github.com/telex-tui/telex-server/internal/transport/session"
)

// Server accepts TCP connections and runs a session per connection.
type Server struct {
	addr string
	hub  *core.Hub
	log  *zerolog.Logger
	motd string
}

func NewServer(addr string, hub *core.Hub, logger *zerolog.Logger, motd string) *Server {
	return &Server{addr: addr, hub: hub, log: logger, motd: motd}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
// On cancellation it stops accepting and waits for active sessions to
// finish; sessions observe the same ctx and close their connections.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.Info().Str("addr", s.addr).Msg("tcp listener started")

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			session.New(conn, s.hub, s.log, s.motd).Run(ctx)
		}()
	}
}
