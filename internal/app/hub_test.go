package app

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/core"
)

// fakeConn records delivered frames; full simulates backpressure.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return errors.New("backpressure")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("bad frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

func TestHubBroadcastAll(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)

	h.BroadcastAll(map[string]string{"type": "x"})

	for name, c := range map[string]*fakeConn{"a": a, "b": b} {
		if got := len(c.events(t)); got != 1 {
			t.Fatalf("%s received %d frames, want 1", name, got)
		}
	}
}

func TestHubRoomScopedDelivery(t *testing.T) {
	h := NewHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)
	h.Attach("c", c)
	h.Subscribe("r1", "a")
	h.Subscribe("r1", "b")
	h.Subscribe("r2", "c")

	h.BroadcastToRoom("r1", map[string]string{"type": "chat"})

	if got := len(a.events(t)); got != 1 {
		t.Fatalf("a received %d frames, want 1", got)
	}
	if got := len(b.events(t)); got != 1 {
		t.Fatalf("b received %d frames, want 1", got)
	}
	if got := len(c.events(t)); got != 0 {
		t.Fatalf("c (other room) received %d frames, want 0", got)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)
	h.Subscribe("r1", "a")
	h.Subscribe("r1", "b")

	h.Unsubscribe("r1", "a")
	h.BroadcastToRoom("r1", map[string]string{"type": "chat"})

	if got := len(a.events(t)); got != 0 {
		t.Fatalf("a received %d frames after unsubscribe, want 0", got)
	}
	if got := len(b.events(t)); got != 1 {
		t.Fatalf("b received %d frames, want 1", got)
	}
}

func TestHubDetachRemovesFromAllGroups(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)
	h.Subscribe("r1", "a")
	h.Subscribe("r2", "a")
	h.Subscribe("r1", "b")

	h.Detach("a")
	h.BroadcastToRoom("r1", map[string]string{"type": "chat"})
	h.BroadcastToRoom("r2", map[string]string{"type": "chat"})
	h.BroadcastAll(map[string]string{"type": "presence"})

	if got := len(a.events(t)); got != 0 {
		t.Fatalf("detached channel received %d frames, want 0", got)
	}
	if got := len(b.events(t)); got != 2 {
		t.Fatalf("b received %d frames, want 2 (r1 + all)", got)
	}
}

func TestHubDroppedFrameIsNotFatal(t *testing.T) {
	h := NewHub()
	slow, ok := &fakeConn{full: true}, &fakeConn{}
	h.Attach("slow", slow)
	h.Attach("ok", ok)

	h.BroadcastAll(map[string]string{"type": "x"})

	if got := len(ok.events(t)); got != 1 {
		t.Fatalf("healthy channel received %d frames, want 1", got)
	}
}

func TestHubSendToUnknownSessionIsNoop(t *testing.T) {
	h := NewHub()
	h.SendTo("ghost", map[string]string{"type": "x"})
}
