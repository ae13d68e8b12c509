package core

import "testing"

func TestRoomAddMemberIsIdempotent(t *testing.T) {
	room := NewRoom(1, "dev")
	room.AddMember(7)
	room.AddMember(7)
	if room.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", room.Size())
	}
}

func TestRoomRemoveAbsentMemberIsNoop(t *testing.T) {
	room := NewRoom(1, "dev")
	room.AddMember(1)
	room.RemoveMember(99)
	if room.Size() != 1 || !room.Contains(1) {
		t.Fatalf("unexpected membership after removing absent member")
	}
}

func TestRoomMemberIDsIsSnapshot(t *testing.T) {
	room := NewRoom(1, "dev")
	room.AddMember(1)
	room.AddMember(2)

	snapshot := room.MemberIDs()
	room.RemoveMember(1)
	room.RemoveMember(2)

	if len(snapshot) != 2 {
		t.Fatalf("snapshot changed after mutation: %v", snapshot)
	}
	if room.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", room.Size())
	}
}
