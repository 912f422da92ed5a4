package core

import "github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"

// Inbound event names (client -> service).
const (
	EvtRegisterNewUser = "register-new-user"
	EvtJoinRoom        = "join_room"
	EvtSendMessage     = "send_message"
	EvtUserLeft        = "group-call-user-left"
)

// Outbound event names (service -> client).
const (
	EvtConnection     = "connection"
	EvtBroadcast      = "broadcast"
	EvtNewMember      = "new_member"
	EvtReceiveMessage = "receive_message"
	EvtError          = "error"
)

// BroadcastKind tags the payload of a global "broadcast" event.
type BroadcastKind string

const (
	BroadcastActiveUsers      BroadcastKind = "ACTIVE_USERS"
	BroadcastGroupCallRooms   BroadcastKind = "GROUP_CALL_ROOMS"
	BroadcastRoomMembers      BroadcastKind = "ROOM_MEMBERS"
	BroadcastUserDisconnected BroadcastKind = "USER_DISCONNECTED"
)

type ConnectionAck struct {
	Type string `json:"type"`
}

type ActiveUsersEvent struct {
	Type        string        `json:"type"`
	Event       BroadcastKind `json:"event"`
	ActiveUsers []domain.Peer `json:"activeUsers"`
}

type UserDisconnectedEvent struct {
	Type     string          `json:"type"`
	Event    BroadcastKind   `json:"event"`
	StreamID domain.StreamID `json:"streamId"`
}

type NewMemberEvent struct {
	Type     string          `json:"type"`
	PeerID   domain.PeerID   `json:"peerId"`
	StreamID domain.StreamID `json:"streamId"`
}

type UserLeftEvent struct {
	Type     string          `json:"type"`
	StreamID domain.StreamID `json:"streamId"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewConnectionAck() ConnectionAck {
	return ConnectionAck{Type: EvtConnection}
}

func NewActiveUsersEvent(peers []domain.Peer) ActiveUsersEvent {
	return ActiveUsersEvent{Type: EvtBroadcast, Event: BroadcastActiveUsers, ActiveUsers: peers}
}

func NewUserDisconnectedEvent(streamID domain.StreamID) UserDisconnectedEvent {
	return UserDisconnectedEvent{Type: EvtBroadcast, Event: BroadcastUserDisconnected, StreamID: streamID}
}

func NewMemberJoinedEvent(peerID domain.PeerID, streamID domain.StreamID) NewMemberEvent {
	return NewMemberEvent{Type: EvtNewMember, PeerID: peerID, StreamID: streamID}
}

func NewUserLeftEvent(streamID domain.StreamID) UserLeftEvent {
	return UserLeftEvent{Type: EvtUserLeft, StreamID: streamID}
}

func NewErrorEvent(msg string) ErrorEvent {
	return ErrorEvent{Type: EvtError, Error: msg}
}
