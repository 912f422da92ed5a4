package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/core"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

type JoinResult struct {
	IsNewRoom bool
}

// roomState keeps an append-only join history separate from the
// current-membership set. Leaving removes from the current set only;
// history answers "who was ever here", members "who is here now".
type roomState struct {
	room    domain.Room
	history []domain.Membership
	members map[domain.SessionID]domain.Membership
	joined  []domain.SessionID // current set in join order
}

func (rs *roomState) add(m domain.Membership) {
	rs.history = append(rs.history, m)
	if _, ok := rs.members[m.SessionID]; !ok {
		rs.joined = append(rs.joined, m.SessionID)
	}
	rs.members[m.SessionID] = m
}

func (rs *roomState) remove(sid domain.SessionID) {
	if _, ok := rs.members[sid]; !ok {
		return
	}
	delete(rs.members, sid)
	for i, id := range rs.joined {
		if id == sid {
			rs.joined = append(rs.joined[:i], rs.joined[i+1:]...)
			break
		}
	}
}

// Directory is the authoritative set of active call rooms, plus a side
// index from session to its single most-recent membership. The side
// index drives disconnect cleanup.
type Directory struct {
	mu        sync.RWMutex
	rooms     map[domain.RoomID]*roomState
	bySession map[domain.SessionID]domain.Membership
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:     make(map[domain.RoomID]*roomState),
		bySession: make(map[domain.SessionID]domain.Membership),
	}
}

// Join creates the room lazily on first use and records the membership.
// Re-joining the same room replaces the session's current entry (join
// history still accumulates). The side index always reflects the most
// recent join, even when the prior entry pointed at a different room.
func (d *Directory) Join(roomID domain.RoomID, sid domain.SessionID, peerID domain.PeerID, hostName string, streamID domain.StreamID) JoinResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	rs, ok := d.rooms[roomID]
	if !ok {
		rs = &roomState{
			room:    domain.Room{ID: roomID},
			members: make(map[domain.SessionID]domain.Membership),
		}
		d.rooms[roomID] = rs
		log.Info().Str("module", "app.directory").Str("room", string(roomID)).Msg("created room")
	}

	m := domain.Membership{
		PeerID:    peerID,
		HostName:  hostName,
		SessionID: sid,
		RoomID:    roomID,
		StreamID:  streamID,
	}
	rs.add(m)
	d.bySession[sid] = m
	log.Info().Str("module", "app.directory").Str("room", string(roomID)).Str("sid", string(sid)).Str("peer_id", string(peerID)).Msg("member joined")
	return JoinResult{IsNewRoom: !ok}
}

// LeaveByRoom removes the session from the room's current-membership
// set. The side index is cleared only if it still points at this room.
// Total over unknown rooms and absent members.
func (d *Directory) LeaveByRoom(roomID domain.RoomID, sid domain.SessionID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rs, ok := d.rooms[roomID]; ok {
		rs.remove(sid)
	}
	if m, ok := d.bySession[sid]; ok && m.RoomID == roomID {
		delete(d.bySession, sid)
	}
	log.Info().Str("module", "app.directory").Str("room", string(roomID)).Str("sid", string(sid)).Msg("member left")
}

// LeaveBySession removes and returns the side-index entry for sid and
// compacts the owning room's current set. Used on disconnect.
func (d *Directory) LeaveBySession(sid domain.SessionID) (domain.Membership, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.bySession[sid]
	if !ok {
		return domain.Membership{}, false
	}
	delete(d.bySession, sid)
	if rs, ok := d.rooms[m.RoomID]; ok {
		rs.remove(sid)
	}
	log.Info().Str("module", "app.directory").Str("room", string(m.RoomID)).Str("sid", string(sid)).Msg("session membership removed")
	return m, true
}

// MembersSnapshot returns the room's current members in join order.
func (d *Directory) MembersSnapshot(roomID domain.RoomID) []domain.Membership {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rs, ok := d.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.Membership, 0, len(rs.joined))
	for _, sid := range rs.joined {
		if m, ok := rs.members[sid]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (d *Directory) Rooms() []core.RoomInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(d.rooms))
	for _, rs := range d.rooms {
		out = append(out, core.RoomInfo{
			ID:          rs.room.ID,
			MemberCount: len(rs.members),
			TotalJoins:  len(rs.history),
		})
	}
	return out
}
