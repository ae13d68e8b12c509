// Package ws bridges WebSocket connections onto the same line protocol
// the TCP listener speaks. Each text message carries newline-terminated
// lines; the websocket connection is adapted to a net.Conn so the
// session code stays transport-agnostic.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/telex-tui/telex-server/internal/core"
	"github.com/telex-tui/telex-server/internal/transport/session"
)

// Server exposes the chat protocol at GET /ws.
type Server struct {
	hub  *core.Hub
	log  *zerolog.Logger
	motd string
	http *http.Server
	wg   sync.WaitGroup
}

func NewServer(addr string, hub *core.Hub, logger *zerolog.Logger, motd string) *Server {
	s := &Server{hub: hub, log: logger, motd: motd}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handle)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until ctx is cancelled or the server fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts upgrades on ln until ctx is cancelled, then waits for
// every session to finish. http.Server.Shutdown ignores hijacked
// connections, so request contexts are rooted in ctx: cancelling it
// reaches each session, which closes its connection, and the WaitGroup
// covers the gap Shutdown leaves.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("ws server shutdown")
		}
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("websocket listener started")

	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.wg.Wait()
	return nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.wg.Add(1)
	defer s.wg.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("ws accept failed")
		return
	}

	netConn := websocket.NetConn(r.Context(), conn, websocket.MessageText)
	session.New(netConn, s.hub, s.log, s.motd).Run(r.Context())
}
