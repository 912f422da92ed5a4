package app

import (
	"testing"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

func TestDirectoryJoinCreatesRoomOnce(t *testing.T) {
	d := NewDirectory()

	res := d.Join("call-1", "s1", "p1", "alice", "st1")
	if !res.IsNewRoom {
		t.Fatal("first join: IsNewRoom = false, want true")
	}

	res = d.Join("call-1", "s2", "p2", "bob", "st2")
	if res.IsNewRoom {
		t.Fatal("second join: IsNewRoom = true, want false")
	}

	rooms := d.Rooms()
	if len(rooms) != 1 {
		t.Fatalf("rooms = %d, want exactly 1", len(rooms))
	}
	if rooms[0].ID != domain.RoomID("call-1") {
		t.Fatalf("room id = %q, want call-1", rooms[0].ID)
	}
	if rooms[0].MemberCount != 2 || rooms[0].TotalJoins != 2 {
		t.Fatalf("room info = %+v, want 2 members / 2 joins", rooms[0])
	}
}

func TestDirectoryRejoinReplacesCurrentEntry(t *testing.T) {
	d := NewDirectory()
	d.Join("call-1", "s1", "p1", "alice", "st1")
	d.Join("call-1", "s1", "p1b", "alice", "st1b")

	members := d.MembersSnapshot("call-1")
	if len(members) != 1 {
		t.Fatalf("current members = %d, want 1 (re-join replaces)", len(members))
	}
	if members[0].PeerID != "p1b" || members[0].StreamID != "st1b" {
		t.Fatalf("membership = %+v, want the latest join", members[0])
	}

	// History still records both joins.
	rooms := d.Rooms()
	if rooms[0].TotalJoins != 2 {
		t.Fatalf("total joins = %d, want 2", rooms[0].TotalJoins)
	}
}

func TestDirectorySideIndexFollowsLatestJoin(t *testing.T) {
	d := NewDirectory()
	d.Join("call-1", "s1", "p1", "alice", "st1")
	d.Join("call-2", "s1", "p1", "alice", "st1x")

	m, ok := d.LeaveBySession("s1")
	if !ok {
		t.Fatal("LeaveBySession = not found, want the call-2 membership")
	}
	if m.RoomID != "call-2" || m.StreamID != "st1x" {
		t.Fatalf("membership = %+v, want the most recent join (call-2)", m)
	}

	// Only the owning room's current set is compacted.
	if got := len(d.MembersSnapshot("call-2")); got != 0 {
		t.Fatalf("call-2 members = %d, want 0", got)
	}

	if _, ok := d.LeaveBySession("s1"); ok {
		t.Fatal("second LeaveBySession = found, want not found")
	}
}

func TestDirectoryLeaveByRoom(t *testing.T) {
	d := NewDirectory()
	d.Join("call-1", "s1", "p1", "alice", "st1")
	d.Join("call-1", "s2", "p2", "bob", "st2")

	d.LeaveByRoom("call-1", "s1")

	members := d.MembersSnapshot("call-1")
	if len(members) != 1 || members[0].SessionID != domain.SessionID("s2") {
		t.Fatalf("members after leave = %v, want [s2]", members)
	}
	if _, ok := d.LeaveBySession("s1"); ok {
		t.Fatal("side index still holds s1 after LeaveByRoom")
	}

	// Unknown room and absent member are no-ops.
	d.LeaveByRoom("nope", "s2")
	d.LeaveByRoom("call-1", "s1")
	if got := len(d.MembersSnapshot("call-1")); got != 1 {
		t.Fatalf("members = %d, want 1 after no-op leaves", got)
	}
}

func TestDirectoryLeaveByRoomKeepsForeignSideIndex(t *testing.T) {
	d := NewDirectory()
	d.Join("call-1", "s1", "p1", "alice", "st1")
	d.Join("call-2", "s1", "p1", "alice", "st1x")

	// s1's side index points at call-2; leaving call-1 must not clear it.
	d.LeaveByRoom("call-1", "s1")

	m, ok := d.LeaveBySession("s1")
	if !ok || m.RoomID != "call-2" {
		t.Fatalf("side index = %+v (found=%v), want call-2 membership intact", m, ok)
	}
}
