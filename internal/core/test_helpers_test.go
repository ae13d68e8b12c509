package core

import (
	"testing"

	"github.com/rs/zerolog"
)

func zerologNop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestHub(opts HubOptions) *Hub {
	return NewHub(zerologNop(), NewFilterChain(), opts)
}

func mustRegister(t *testing.T, h *Hub, name string) *Client {
	t.Helper()
	c, err := h.RegisterClient(name)
	if err != nil {
		t.Fatalf("RegisterClient(%q): %v", name, err)
	}
	return c
}

// drainEvents empties a client's queue. Hub operations deliver
// synchronously, so everything an operation produced is already
// buffered by the time it returns.
func drainEvents(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func mustNextEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	default:
		t.Fatal("expected a buffered event")
		return Event{}
	}
}
