// Package session runs the line-protocol dialogue for one client
// connection, bridging a net.Conn to the hub. The transport listeners
// (tcp, ws) only accept connections; everything the protocol says
// happens here.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/telex-tui/telex-server/internal/core"
)

// State tracks the connection lifecycle. The dispatch flow only calls
// chat and room operations once the session is Active, which is what
// keeps illegal-state calls unreachable.
type State int

const (
	StateConnecting State = iota
	StateAuthenticating
	StateActive
	StateClosed
)

// Session owns one client connection end to end: the authentication
// exchange, the read/dispatch loop, and the writer that drains the
// client's event queue. Reader and writer are independent, so a slow
// reader never blocks delivery and vice versa.
type Session struct {
	conn net.Conn
	hub  *core.Hub
	log  zerolog.Logger
	motd string

	client *core.Client
	room   core.RoomID
	name   string
	state  State
}

// New prepares a session in the Connecting state.
func New(conn net.Conn, hub *core.Hub, logger *zerolog.Logger, motd string) *Session {
	l := logger.With().Str("conn_id", uuid.NewString()).Logger()
	return &Session{
		conn:  conn,
		hub:   hub,
		log:   l,
		motd:  motd,
		room:  core.LobbyRoom,
		state: StateConnecting,
	}
}

// Run drives the connection through its lifecycle. It returns once the
// peer is gone or quit, after hub cleanup has run exactly once and the
// transport handle is released — on every exit path.
func (s *Session) Run(ctx context.Context) {
	if s.state != StateConnecting {
		return // Run is single-use
	}
	defer s.conn.Close()

	// Cancellation (server shutdown) unblocks the blocked read.
	stop := context.AfterFunc(ctx, func() { s.conn.Close() })
	defer stop()

	scanner := bufio.NewScanner(s.conn)

	s.state = StateAuthenticating
	if !s.authenticate(scanner) {
		s.state = StateClosed
		return
	}
	s.state = StateActive

	writerDone := make(chan struct{})
	go s.writeLoop(writerDone)

	s.readLoop(scanner)

	s.state = StateClosed
	s.hub.LeaveRoom(s.client.ID, s.room)
	s.hub.UnregisterClient(s.client.ID) // closes Events; the writer drains and exits
	<-writerDone

	s.log.Info().Stringer("user", s.client.ID).Str("name", s.name).Msg("disconnected")
}

// authenticate prompts for a username and registers the client.
// Returns false when the connection should close silently: EOF, an
// empty name, or a full server. Writes go straight to the connection
// here; the writer goroutine does not exist yet.
func (s *Session) authenticate(scanner *bufio.Scanner) bool {
	if !s.writeLine("Enter your username:") {
		return false
	}
	if !scanner.Scan() {
		return false
	}

	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		return false
	}

	client, err := s.hub.RegisterClient(name)
	if err != nil {
		s.writeLine("* Server is full, try again later.")
		s.log.Warn().Err(err).Str("name", name).Msg("registration refused")
		return false
	}
	s.client = client
	s.name = name

	// Join the lobby before the welcome lines go out, so a client that
	// has completed the exchange is already a member: announcements and
	// messages from other connections can no longer fall into the gap.
	if err := s.hub.JoinRoom(client.ID, core.LobbyRoom); err != nil {
		s.log.Error().Err(err).Msg("lobby join failed")
	}

	if s.motd != "" {
		s.writeLine(s.motd)
	}
	s.writeLine(fmt.Sprintf("Welcome, %s! You're in #lobby.", name))
	s.writeLine("Type a message or /help for commands.")

	s.log.Info().
		Stringer("user", client.ID).
		Str("name", name).
		Str("remote", s.conn.RemoteAddr().String()).
		Msg("connected")
	return true
}

func (s *Session) readLoop(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.dispatch(line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn().Err(err).Msg("read failed")
	}
}

// writeLoop is the single writer for an Active session. It drains the
// client's event queue onto the connection until the hub closes the
// queue at unregister time.
func (s *Session) writeLoop(done chan<- struct{}) {
	defer close(done)
	for ev := range s.client.Events {
		if _, err := fmt.Fprintf(s.conn, "%s\n", ev.Render()); err != nil {
			s.log.Warn().Err(err).Msg("write failed")
			// Keep draining so hub fan-out never backs up on us.
			for range s.client.Events {
			}
			return
		}
	}
}

// dispatch classifies one input line: slash command, protocol frame,
// or plain chat. Returns false when the session should close. A parse
// error is reported to the client and never closes the connection.
func (s *Session) dispatch(line string) bool {
	if strings.HasPrefix(line, "/") {
		return s.dispatchCommand(line)
	}
	if core.IsFrameLine(line) {
		return s.dispatchFrame(line)
	}
	s.sendChat(line)
	return true
}

func (s *Session) dispatchCommand(line string) bool {
	cmd, err := core.ParseCommand(line)
	if err != nil {
		s.reply(core.ErrorEvent(err.Error()))
		return true
	}

	switch res := cmd.Execute(s.room); res.Kind {
	case core.ResultJoinRoom:
		s.switchRoom(res.Room)
	case core.ResultChangeNick:
		s.changeNick(res.NewName)
	case core.ResultKickUser:
		switch err := s.hub.KickUser(s.client.ID, res.Target, res.RoomID); {
		case err == nil:
			s.reply(core.SystemEvent("* Kicked " + res.Target))
		case errors.Is(err, core.ErrUnknownUser):
			s.reply(core.SystemEvent("* No user named " + res.Target))
		default:
			s.reply(core.ErrorEvent(err.Error()))
		}
	case core.ResultQuit:
		s.reply(core.SystemEvent("* Goodbye!"))
		return false
	case core.ResultListRooms:
		s.reply(core.SystemEvent(s.hub.RoomSummary()))
	case core.ResultReply:
		s.reply(core.SystemEvent(res.Reply))
	}
	return true
}

func (s *Session) dispatchFrame(line string) bool {
	frame, err := core.ParseFrame(line)
	if err != nil {
		s.reply(core.ErrorEvent(err.Error()))
		return true
	}

	switch frame.Kind {
	case core.FrameMsg:
		// The authenticated name wins over the frame's username field.
		s.sendChat(frame.Body)
	case core.FrameJoin:
		s.switchRoom(frame.Room)
	case core.FrameNick:
		s.changeNick(frame.Name)
	case core.FrameQuit:
		s.reply(core.SystemEvent("* Goodbye!"))
		return false
	}
	return true
}

func (s *Session) switchRoom(name string) {
	rid := s.hub.FindOrCreateRoom(name)
	s.hub.LeaveRoom(s.client.ID, s.room)
	if err := s.hub.JoinRoom(s.client.ID, rid); err != nil {
		s.reply(core.ErrorEvent(err.Error()))
		return
	}
	s.room = rid
	s.reply(core.SystemEvent("* You joined #" + name))
}

func (s *Session) changeNick(newName string) {
	old := s.hub.RenameClient(s.client.ID, newName)
	if old == "" {
		old = s.name
	}
	s.name = newName
	s.reply(core.SystemEvent(fmt.Sprintf("* You are now %s (was %s)", newName, old)))
}

func (s *Session) sendChat(body string) {
	if err := s.hub.BroadcastMessage(s.room, s.client.ID, s.name, body); err != nil {
		s.reply(core.ErrorEvent(err.Error()))
	}
}

// reply enqueues an event for this client through the same queue the
// hub delivers on, keeping a single writer per connection.
func (s *Session) reply(ev core.Event) {
	s.client.Send(ev)
}

func (s *Session) writeLine(text string) bool {
	if _, err := fmt.Fprintf(s.conn, "%s\n", text); err != nil {
		s.log.Warn().Err(err).Msg("write failed")
		return false
	}
	return true
}
