package core

// Client is a connected user as seen by the hub. The hub owns the
// record once registered; the session keeps only the ID and the
// receive side of Events.
type Client struct {
	ID     UserID
	Name   string
	Events chan Event
}

// Send enqueues an event without blocking. When the client's buffer is
// full the event is dropped (drop-newest), so a frozen client can
// never stall a broadcast to the rest of the room.
func (c *Client) Send(ev Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
