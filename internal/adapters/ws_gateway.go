package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/app"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/core"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

const writeWait = 5 * time.Second

// GatewayWSController upgrades channels and dispatches inbound client
// events to the gateway. Malformed payloads are rejected with an error
// event; state is never mutated on a rejected event.
type GatewayWSController struct {
	Gw         *app.Gateway
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewGatewayWSController(gw *app.Gateway, readLimit int64, pingPeriod time.Duration) *GatewayWSController {
	return &GatewayWSController{
		Gw:         gw,
		ReadLimit:  readLimit,
		PingPeriod: pingPeriod,
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleChannel assigns a fresh session id to the new channel and
// starts its pumps. The id is unique per channel; a browser opening
// two tabs holds two independent sessions.
func (ctl *GatewayWSController) HandleChannel(ctx context.Context, c *gin.Context) {
	sid := domain.SessionID(uuid.NewString())
	log.Info().Str("module", "adapters.gateway").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctl.Gw.OnConnect(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}

func (ctl *GatewayWSController) writePump(ctx context.Context, c *wsConn) {
	ping := time.NewTicker(ctl.pingPeriod())
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.gateway").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.gateway").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *GatewayWSController) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.SessionID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "adapters.gateway").Str("sid", string(sid)).Msg("readPump closing")
		cancel()
		ctl.Gw.OnDisconnect(sid)
		c.Close()
	}()

	pongWait := ctl.pingPeriod() * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				return
			}
			ctl.handleEvent(sid, c, data)
		}
	}
}

func (ctl *GatewayWSController) pingPeriod() time.Duration {
	if ctl.PingPeriod > 0 {
		return ctl.PingPeriod
	}
	return 54 * time.Second
}

func (ctl *GatewayWSController) handleEvent(sid domain.SessionID, c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("bad json")
		ctl.sendJSON(c, core.NewErrorEvent("bad_payload"))
		return
	}

	switch env.Type {
	case core.EvtRegisterNewUser:
		ctl.handleRegister(sid, c, data)
	case core.EvtJoinRoom:
		ctl.handleJoin(sid, c, data)
	case core.EvtSendMessage:
		ctl.handleMessage(sid, c, data)
	case core.EvtUserLeft:
		ctl.handleLeave(sid, c, data)
	default:
		log.Warn().Str("module", "adapters.gateway").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *GatewayWSController) handleRegister(sid domain.SessionID, c *wsConn, data []byte) {
	type registerPayload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
	}
	var p registerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("bad register payload")
		ctl.sendJSON(c, core.NewErrorEvent("bad_payload"))
		return
	}
	if err := domain.ValidateUsername(p.Username); err != nil {
		ctl.sendJSON(c, core.NewErrorEvent(err.Error()))
		return
	}

	log.Info().Str("module", "adapters.gateway").Str("sid", string(sid)).Str("username", p.Username).Msg("register")
	ctl.Gw.Register(sid, p.Username)
}

func (ctl *GatewayWSController) handleJoin(sid domain.SessionID, c *wsConn, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		PeerID   string `json:"peerId"`
		Username string `json:"username,omitempty"`
		StreamID string `json:"streamId"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("bad join payload")
		ctl.sendJSON(c, core.NewErrorEvent("bad_payload"))
		return
	}
	if p.Room == "" || p.PeerID == "" || p.StreamID == "" {
		ctl.sendJSON(c, core.NewErrorEvent("room, peerId and streamId are required"))
		return
	}

	log.Info().Str("module", "adapters.gateway").Str("sid", string(sid)).Str("room", p.Room).Msg("join room")
	ctl.Gw.JoinRoom(sid, domain.RoomID(p.Room), domain.PeerID(p.PeerID), p.Username, domain.StreamID(p.StreamID))
}

func (ctl *GatewayWSController) handleMessage(sid domain.SessionID, c *wsConn, data []byte) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("bad message payload")
		ctl.sendJSON(c, core.NewErrorEvent("bad_payload"))
		return
	}
	room, _ := payload["room"].(string)
	if room == "" {
		ctl.sendJSON(c, core.NewErrorEvent("room is required"))
		return
	}

	ctl.Gw.SendMessage(domain.RoomID(room), payload)
}

func (ctl *GatewayWSController) handleLeave(sid domain.SessionID, c *wsConn, data []byte) {
	type leavePayload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		StreamID string `json:"streamId"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("bad leave payload")
		ctl.sendJSON(c, core.NewErrorEvent("bad_payload"))
		return
	}
	if p.RoomID == "" || p.StreamID == "" {
		ctl.sendJSON(c, core.NewErrorEvent("roomId and streamId are required"))
		return
	}

	log.Info().Str("module", "adapters.gateway").Str("sid", string(sid)).Str("room", p.RoomID).Msg("leave room")
	ctl.Gw.LeaveRoom(sid, domain.RoomID(p.RoomID), domain.StreamID(p.StreamID))
}

func (ctl *GatewayWSController) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.gateway").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
