package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

// Registry is the authoritative set of currently registered peers and
// the global presence sequence, ordered by registration time.
type Registry struct {
	mu    sync.RWMutex
	peers map[domain.SessionID]*domain.Peer
	order []domain.SessionID
}

func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[domain.SessionID]*domain.Peer),
	}
}

// Register inserts the peer for sid, or updates it in place when the
// session registers twice. A live session never appears in the
// presence sequence more than once.
func (r *Registry) Register(sid domain.SessionID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.peers[sid]; ok {
		p.Username = username
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", username).Msg("re-registered peer")
		return
	}
	r.peers[sid] = &domain.Peer{SessionID: sid, Username: username}
	r.order = append(r.order, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", username).Msg("registered peer")
}

// Remove deletes and returns the peer for sid and strips it from the
// presence sequence. Total over absent keys.
func (r *Registry) Remove(sid domain.SessionID) (domain.Peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.peers[sid]
	if !ok {
		return domain.Peer{}, false
	}
	delete(r.peers, sid)
	for i, id := range r.order {
		if id == sid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed peer")
	return *p, true
}

// Snapshot returns the current presence sequence in registration order.
func (r *Registry) Snapshot() []domain.Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Peer, 0, len(r.order))
	for _, sid := range r.order {
		if p, ok := r.peers[sid]; ok {
			out = append(out, *p)
		}
	}
	return out
}
