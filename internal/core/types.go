package core

import "fmt"

// UserID identifies a connected user. IDs are allocated densely from
// zero and are never reassigned to a different identity while the
// process runs.
type UserID int64

// Index returns the raw slice index for registry storage.
func (id UserID) Index() int { return int(id) }

func (id UserID) String() string { return fmt.Sprintf("user#%d", id) }

// RoomID identifies a chat room. Rooms are permanent once created.
type RoomID int64

// Index returns the raw slice index for registry storage.
func (id RoomID) Index() int { return int(id) }

func (id RoomID) String() string { return fmt.Sprintf("room#%d", id) }

// LobbyRoom is room 0. It is created when the hub starts and is never
// removed.
const LobbyRoom RoomID = 0
