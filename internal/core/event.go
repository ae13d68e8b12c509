package core

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventChat carries a chat message from a room member.
	EventChat EventKind = iota
	// EventSystem carries a presence or informational line.
	EventSystem
	// EventError reports rejected input back to the offending client.
	EventError
)

// Event is delivered to clients to describe what happened. Events are
// immutable; the same value is enqueued to every recipient.
type Event struct {
	Kind    EventKind
	Message Message // EventChat
	Text    string  // EventSystem, EventError
}

// ChatEvent builds a chat message event.
func ChatEvent(from, body string) Event {
	return Event{Kind: EventChat, Message: Message{From: from, Body: body}}
}

// SystemEvent builds a system/presence event.
func SystemEvent(text string) Event {
	return Event{Kind: EventSystem, Text: text}
}

// ErrorEvent builds an error reply event.
func ErrorEvent(text string) Event {
	return Event{Kind: EventError, Text: text}
}

// Render returns the wire line for the event, without the trailing
// newline.
func (e Event) Render() string {
	switch e.Kind {
	case EventChat:
		return e.Message.String()
	case EventError:
		return "ERROR: " + e.Text
	default:
		return e.Text
	}
}
