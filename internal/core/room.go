package core

import (
	"sync"

	"github.com/samber/lo"
)

// Room is a named set of member user IDs. Membership operations are
// synchronized internally; under the hub's lock the room mutex is
// redundant but harmless, and it keeps the type safe to share.
type Room struct {
	ID   RoomID
	Name string

	mu      sync.Mutex
	members map[UserID]struct{}
}

// NewRoom constructs a room with no members.
func NewRoom(id RoomID, name string) *Room {
	return &Room{
		ID:      id,
		Name:    name,
		members: make(map[UserID]struct{}),
	}
}

// AddMember inserts a member. Adding an existing member is a no-op.
func (r *Room) AddMember(id UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[id] = struct{}{}
}

// RemoveMember deletes a member. Removing an absent member is a no-op.
func (r *Room) RemoveMember(id UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
}

// Contains reports whether id is currently a member.
func (r *Room) Contains(id UserID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[id]
	return ok
}

// MemberIDs returns a snapshot copy of the membership, never a live
// view. The caller may mutate the room while iterating the result.
func (r *Room) MemberIDs() []UserID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Keys(r.members)
}

// Size returns the current member count.
func (r *Room) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
