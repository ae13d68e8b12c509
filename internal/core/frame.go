package core

import "strings"

// Wire protocol frames, one per line:
//
//	MSG:username:body  — a chat message
//	JOIN:room_name     — join a room
//	NICK:new_name      — change display name
//	QUIT:              — disconnect
//
// The username carried by MSG is parser-level only. The hub always
// attributes messages to the connection's authenticated name, so a
// client cannot speak as someone else.

// FrameKind identifies the frame type.
type FrameKind int

const (
	FrameMsg FrameKind = iota
	FrameJoin
	FrameNick
	FrameQuit
)

// Frame is a parsed protocol line. All fields are owned copies; a
// frame never outlives one dispatch step anyway.
type Frame struct {
	Kind     FrameKind
	Username string // FrameMsg
	Body     string // FrameMsg
	Room     string // FrameJoin
	Name     string // FrameNick
}

// IsFrameLine reports whether line starts with a known frame type
// followed by a colon. The session uses it to classify input before
// falling back to plain chat.
func IsFrameLine(line string) bool {
	kind, _, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	switch kind {
	case "MSG", "JOIN", "NICK", "QUIT":
		return true
	}
	return false
}

// ParseFrame parses a single TYPE:PAYLOAD line.
func ParseFrame(line string) (Frame, error) {
	trimmed := strings.TrimSpace(line)

	kind, payload, ok := strings.Cut(trimmed, ":")
	if !ok {
		return Frame{}, parseError("missing ':' delimiter")
	}

	switch kind {
	case "MSG":
		username, body, ok := strings.Cut(payload, ":")
		if !ok {
			return Frame{}, parseError("MSG requires username:body")
		}
		username = strings.TrimSpace(username)
		if username == "" {
			return Frame{}, parseError("empty username")
		}
		return Frame{Kind: FrameMsg, Username: username, Body: body}, nil
	case "JOIN":
		room := strings.TrimSpace(payload)
		if room == "" {
			return Frame{}, parseError("JOIN requires a room name")
		}
		return Frame{Kind: FrameJoin, Room: room}, nil
	case "NICK":
		name := strings.TrimSpace(payload)
		if name == "" {
			return Frame{}, parseError("NICK requires a name")
		}
		return Frame{Kind: FrameNick, Name: name}, nil
	case "QUIT":
		return Frame{Kind: FrameQuit}, nil
	default:
		return Frame{}, parseError("unknown frame type: %s", kind)
	}
}

// FrameScanner yields one frame per newline-terminated line in an
// accumulated read buffer. A trailing partial line is left unconsumed
// so the caller can keep it for the next read; Consumed reports how
// many bytes may be drained from the front of the buffer.
type FrameScanner struct {
	buf string
	pos int
}

func NewFrameScanner(buf string) *FrameScanner {
	return &FrameScanner{buf: buf}
}

// Next returns the next parsed frame. ok is false when no complete
// line remains. Blank lines are skipped; a malformed line still
// consumes its bytes and is reported with ok true and a non-nil error.
func (s *FrameScanner) Next() (frame Frame, ok bool, err error) {
	for {
		rest := s.buf[s.pos:]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return Frame{}, false, nil
		}

		line := rest[:nl]
		s.pos += nl + 1

		if strings.TrimSpace(line) == "" {
			continue
		}

		frame, err = ParseFrame(line)
		return frame, true, err
	}
}

// Consumed returns how many bytes of the buffer have been processed.
func (s *FrameScanner) Consumed() int {
	return s.pos
}
