package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/core"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

// Hub is the stateless-delivery fan-out: the set of open connections
// plus per-room delivery groups. It never closes adapter-owned
// transport resources; a dropped frame is counted, not retried.
type Hub struct {
	mu     sync.RWMutex
	conns  map[domain.SessionID]core.SignalConnection
	groups map[domain.RoomID]map[domain.SessionID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[domain.SessionID]core.SignalConnection),
		groups: make(map[domain.RoomID]map[domain.SessionID]struct{}),
	}
}

func (h *Hub) Attach(sid domain.SessionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[sid] = conn
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("channel attached")
}

// Detach removes the connection and strips it from every delivery group.
func (h *Hub) Detach(sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, sid)
	for roomID, group := range h.groups {
		delete(group, sid)
		if len(group) == 0 {
			delete(h.groups, roomID)
		}
	}
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("channel detached")
}

func (h *Hub) Subscribe(roomID domain.RoomID, sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.groups[roomID]
	if !ok {
		group = make(map[domain.SessionID]struct{})
		h.groups[roomID] = group
	}
	group[sid] = struct{}{}
}

func (h *Hub) Unsubscribe(roomID domain.RoomID, sid domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.groups[roomID]; ok {
		delete(group, sid)
		if len(group) == 0 {
			delete(h.groups, roomID)
		}
	}
}

// SendTo delivers to a single channel. No-op for unknown sessions.
func (h *Hub) SendTo(sid domain.SessionID, v any) {
	b, ok := h.marshal(v)
	if !ok {
		return
	}
	h.mu.RLock()
	conn, found := h.conns[sid]
	h.mu.RUnlock()
	if !found {
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Str("module", "app.hub").Str("sid", string(sid)).Msg("dropped frame")
	}
}

// BroadcastAll delivers to every currently open channel.
func (h *Hub) BroadcastAll(v any) {
	b, ok := h.marshal(v)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent, dropped := 0, 0
	for _, conn := range h.conns {
		if err := conn.TrySend(b); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.hub").Int("sent_to", sent).Int("dropped", dropped).Msg("broadcast all")
}

// BroadcastToRoom delivers to every channel subscribed to the room's
// delivery group. An empty or unknown group is a harmless no-op.
func (h *Hub) BroadcastToRoom(roomID domain.RoomID, v any) {
	b, ok := h.marshal(v)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent, dropped := 0, 0
	for sid := range h.groups[roomID] {
		conn, found := h.conns[sid]
		if !found {
			continue
		}
		if err := conn.TrySend(b); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.hub").Str("room", string(roomID)).Int("sent_to", sent).Int("dropped", dropped).Msg("broadcast room")
}

func (h *Hub) marshal(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.hub").Msg("marshal event")
		return nil, false
	}
	return core.Frame(b), true
}
