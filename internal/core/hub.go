package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const defaultEventBuffer = 32

// HubOptions tune hub capacity limits.
type HubOptions struct {
	// EventBuffer is the per-client outgoing queue size. Zero means the
	// default.
	EventBuffer int
	// MaxUsers caps concurrent registrations. Zero means unlimited.
	MaxUsers int
}

// Hub owns every user and room and is the only cross-connection shared
// mutable state. Every exported operation holds the hub lock for its
// full duration and never blocks on I/O while holding it: delivery is
// a buffered channel send per recipient, so two operations on the same
// room are totally ordered and a slow client cannot stall anyone else.
type Hub struct {
	log     *zerolog.Logger
	filters *FilterChain
	opts    HubOptions

	mu        sync.Mutex
	users     []*Client // sparse; slots are nil after unregister
	rooms     []*Room
	roomNames map[string]RoomID
	nextUser  UserID
}

// NewHub creates a hub with the lobby pre-created as room 0.
func NewHub(logger *zerolog.Logger, filters *FilterChain, opts HubOptions) *Hub {
	if filters == nil {
		filters = NewFilterChain()
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}

	h := &Hub{
		log:       logger,
		filters:   filters,
		opts:      opts,
		roomNames: make(map[string]RoomID),
	}
	h.createRoomLocked("lobby")
	return h
}

// RegisterClient allocates the next user ID and stores the record. IDs
// are monotonic and never reused, so a stale reference can never point
// at a different identity.
func (h *Hub) RegisterClient(name string) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.MaxUsers > 0 && h.liveUsersLocked() >= h.opts.MaxUsers {
		return nil, serverFullError(h.opts.MaxUsers)
	}

	client := &Client{
		ID:     h.nextUser,
		Name:   name,
		Events: make(chan Event, h.opts.EventBuffer),
	}
	h.nextUser++
	h.users = append(h.users, client)

	h.log.Info().Stringer("user", client.ID).Str("name", name).Msg("client registered")
	return client, nil
}

// UnregisterClient removes the user from every room and clears the
// record. Safe to call twice; the second call is a no-op. Closing the
// event channel stops the client's writer path — no further sends can
// happen because lookups return nil once the slot is cleared.
func (h *Hub) UnregisterClient(uid UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := h.clientLocked(uid)
	if client == nil {
		return
	}

	for _, room := range h.rooms {
		room.RemoveMember(uid)
	}
	h.users[uid.Index()] = nil
	close(client.Events)

	h.log.Info().Stringer("user", uid).Str("name", client.Name).Msg("client unregistered")
}

// FindOrCreateRoom resolves a room by exact, case-sensitive name,
// creating it at the next index if absent.
func (h *Hub) FindOrCreateRoom(name string) RoomID {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id, ok := h.roomNames[name]; ok {
		return id
	}
	return h.createRoomLocked(name)
}

// JoinRoom adds membership and announces the arrival to the other
// members. The snapshot is taken after the add; the joiner is excluded
// from the announcement by identity, not by membership timing.
func (h *Hub) JoinRoom(uid UserID, rid RoomID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, err := h.roomLocked(rid)
	if err != nil {
		return err
	}

	room.AddMember(uid)
	name := h.nameLocked(uid)
	announce := SystemEvent(fmt.Sprintf("* %s joined #%s", name, room.Name))
	h.fanOutLocked(room.MemberIDs(), announce, uid)
	return nil
}

// LeaveRoom announces the departure and removes membership. The
// announcement goes out before the removal, so the departing user is
// still in the snapshot and is skipped by identity. Leaving an unknown
// or never-joined room is a no-op.
func (h *Hub) LeaveRoom(uid UserID, rid RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(uid, rid)
}

// BroadcastMessage runs the filter chain and fans the message out to
// every current member of the room, sender included. A blocked message
// is reported to the sender only.
func (h *Hub) BroadcastMessage(rid RoomID, senderID UserID, name, body string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, err := h.roomLocked(rid)
	if err != nil {
		return err
	}

	action := h.filters.Apply(name, body)
	if action.Verdict == FilterBlock {
		if sender := h.clientLocked(senderID); sender != nil {
			sender.Send(SystemEvent("* Message blocked: " + action.Reason))
		}
		return nil
	}

	final := body
	if action.Verdict == FilterModify {
		final = action.Body
	}

	h.log.Debug().Stringer("user", senderID).Stringer("room", rid).Str("body", final).Msg("chat message")
	h.fanOutLocked(room.MemberIDs(), ChatEvent(name, final), noUser)
	return nil
}

// RenameClient updates the stored display name and returns the
// previous one. Text already delivered keeps the old name.
func (h *Hub) RenameClient(uid UserID, newName string) (old string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := h.clientLocked(uid)
	if client == nil {
		return ""
	}
	old = client.Name
	client.Name = newName

	h.log.Info().Stringer("user", uid).Str("old", old).Str("new", newName).Msg("client renamed")
	return old
}

// KickUser removes the named user from the kicker's room, notifying the
// target first. When no user has that name it returns ErrUnknownUser
// without side effects.
func (h *Hub) KickUser(kicker UserID, target string, rid RoomID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	targetID, ok := h.findByNameLocked(target)
	if !ok {
		return unknownUserError(target)
	}

	kickedBy := h.nameLocked(kicker)
	if c := h.clientLocked(targetID); c != nil {
		c.Send(SystemEvent("* You were kicked from the room by " + kickedBy))
	}
	h.leaveRoomLocked(targetID, rid)

	h.log.Info().Stringer("user", targetID).Str("name", target).Str("by", kickedBy).Msg("client kicked")
	return nil
}

// RoomSummary renders the room listing for /list replies.
func (h *Hub) RoomSummary() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	parts := lo.Map(h.rooms, func(r *Room, _ int) string {
		return fmt.Sprintf("#%s (%d)", r.Name, r.Size())
	})
	return "Rooms: " + strings.Join(parts, ", ")
}

// Room returns the room for rid, or nil when out of range. Intended
// for inspection; mutations go through hub operations.
func (h *Hub) Room(rid RoomID) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, err := h.roomLocked(rid)
	if err != nil {
		return nil
	}
	return room
}

// noUser never matches an allocated ID; fanOutLocked uses it when no
// recipient should be skipped.
const noUser UserID = -1

func (h *Hub) leaveRoomLocked(uid UserID, rid RoomID) {
	room, err := h.roomLocked(rid)
	if err != nil || !room.Contains(uid) {
		return
	}

	name := h.nameLocked(uid)
	announce := SystemEvent(fmt.Sprintf("* %s left #%s", name, room.Name))
	h.fanOutLocked(room.MemberIDs(), announce, uid)
	room.RemoveMember(uid)
}

// fanOutLocked enqueues ev to every listed member except skip. Stale
// IDs are tolerated as no-op targets: membership lists are best-effort
// and must never crash the hub.
func (h *Hub) fanOutLocked(members []UserID, ev Event, skip UserID) {
	for _, id := range members {
		if id == skip {
			continue
		}
		if c := h.clientLocked(id); c != nil {
			c.Send(ev)
		}
	}
}

func (h *Hub) createRoomLocked(name string) RoomID {
	id := RoomID(len(h.rooms))
	h.rooms = append(h.rooms, NewRoom(id, name))
	h.roomNames[name] = id
	h.log.Info().Stringer("room", id).Str("name", name).Msg("room created")
	return id
}

func (h *Hub) roomLocked(rid RoomID) (*Room, error) {
	if rid < 0 || rid.Index() >= len(h.rooms) {
		return nil, unknownRoomError(rid)
	}
	return h.rooms[rid.Index()], nil
}

func (h *Hub) clientLocked(uid UserID) *Client {
	if uid < 0 || uid.Index() >= len(h.users) {
		return nil
	}
	return h.users[uid.Index()]
}

func (h *Hub) nameLocked(uid UserID) string {
	if c := h.clientLocked(uid); c != nil {
		return c.Name
	}
	return "unknown"
}

func (h *Hub) findByNameLocked(name string) (UserID, bool) {
	for _, c := range h.users {
		if c != nil && c.Name == name {
			return c.ID, true
		}
	}
	return 0, false
}

func (h *Hub) liveUsersLocked() int {
	return lo.CountBy(h.users, func(c *Client) bool { return c != nil })
}
