package app

import (
	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/core"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

// Gateway owns the per-channel session lifecycle: it translates client
// intents into Registry/Directory mutations and Hub broadcasts, and
// reconciles all state when a channel closes. A channel moves from
// open (no identity) to registered (known peer) to closed; closed is
// terminal and always runs the full cleanup path.
type Gateway struct {
	Registry  *Registry
	Directory *Directory
	Hub       *Hub
}

func NewGateway(reg *Registry, dir *Directory, hub *Hub) *Gateway {
	return &Gateway{Registry: reg, Directory: dir, Hub: hub}
}

// OnConnect attaches the new channel and acknowledges it. The ack goes
// to the new channel only.
func (g *Gateway) OnConnect(sid domain.SessionID, conn core.SignalConnection) {
	g.Hub.Attach(sid, conn)
	g.Hub.SendTo(sid, core.NewConnectionAck())
	log.Info().Str("module", "app.gateway").Str("sid", string(sid)).Msg("channel open")
}

// Register records the peer's identity and announces the new presence
// list to everyone.
func (g *Gateway) Register(sid domain.SessionID, username string) {
	g.Registry.Register(sid, username)
	g.Hub.BroadcastAll(core.NewActiveUsersEvent(g.Registry.Snapshot()))
}

// JoinRoom subscribes the channel to the room's delivery group before
// recording the membership, so the joining channel receives its own
// new_member event along with the rest of the room.
func (g *Gateway) JoinRoom(sid domain.SessionID, roomID domain.RoomID, peerID domain.PeerID, username string, streamID domain.StreamID) JoinResult {
	g.Hub.Subscribe(roomID, sid)
	res := g.Directory.Join(roomID, sid, peerID, username, streamID)
	g.Hub.BroadcastToRoom(roomID, core.NewMemberJoinedEvent(peerID, streamID))
	return res
}

// SendMessage relays the original chat payload to every subscriber of
// the room, sender included.
func (g *Gateway) SendMessage(roomID domain.RoomID, payload map[string]any) {
	payload["type"] = core.EvtReceiveMessage
	g.Hub.BroadcastToRoom(roomID, payload)
}

// LeaveRoom unsubscribes the channel first, so the leave notification
// reaches only the remaining subscribers.
func (g *Gateway) LeaveRoom(sid domain.SessionID, roomID domain.RoomID, streamID domain.StreamID) {
	g.Hub.Unsubscribe(roomID, sid)
	g.Directory.LeaveByRoom(roomID, sid)
	g.Hub.BroadcastToRoom(roomID, core.NewUserLeftEvent(streamID))
}

// OnDisconnect runs the terminal cleanup for a closed channel: presence
// and membership are reconciled, then the new presence list goes out
// globally. If the session was in a room, the disconnect notification
// is global as well. That asymmetry with the room-scoped explicit-leave
// path is deliberate: other rooms may hold a stale stream for this peer.
func (g *Gateway) OnDisconnect(sid domain.SessionID) {
	g.Hub.Detach(sid)
	g.Registry.Remove(sid)
	m, hadMembership := g.Directory.LeaveBySession(sid)

	g.Hub.BroadcastAll(core.NewActiveUsersEvent(g.Registry.Snapshot()))
	if hadMembership {
		g.Hub.BroadcastAll(core.NewUserDisconnectedEvent(m.StreamID))
	}
	log.Info().Str("module", "app.gateway").Str("sid", string(sid)).Bool("had_membership", hadMembership).Msg("channel closed")
}
