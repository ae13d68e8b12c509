package ws

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/telex-tui/telex-server/internal/core"
)

// A session active at shutdown time must not outlive Serve: its
// connection is hijacked, which http.Server.Shutdown ignores.
func TestShutdownTearsDownActiveSessions(t *testing.T) {
	logger := zerolog.Nop()
	hub := core.NewHub(&logger, nil, core.HubOptions{})
	srv := NewServer("", hub, &logger, "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.Serve(ctx, ln) }()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer dialCancel()
	conn, _, err := websocket.Dial(dialCtx, "ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Complete the username exchange so the session is Active.
	netConn := websocket.NetConn(context.Background(), conn, websocket.MessageText)
	r := bufio.NewReader(netConn)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "Enter your username:\n", line)
	_, err = netConn.Write([]byte("alice\n"))
	require.NoError(t, err)
	line, err = r.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "Welcome, alice! You're in #lobby.\n", line)
	_, err = r.ReadString('\n') // hint line
	require.NoError(t, err)

	cancel()

	select {
	case err := <-serveDone:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server still running with an active session after cancel")
	}

	// The session's connection was closed from the server side.
	_, err = r.ReadString('\n')
	require.Error(t, err)
}
