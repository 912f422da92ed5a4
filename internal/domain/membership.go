package domain

type (
	// PeerID is the media-transport identifier of a participant.
	// Opaque here; the media relay addresses streams by it.
	PeerID string

	// StreamID is the opaque media-stream identifier carried in
	// leave/disconnect notifications.
	StreamID string
)

// Membership binds a session to a room for call purposes.
// HostName is the display name at join time; it is not kept in sync
// with later renames of the owning Peer.
type Membership struct {
	PeerID    PeerID    `json:"peerId"`
	HostName  string    `json:"hostName"`
	SessionID SessionID `json:"sessionId"`
	RoomID    RoomID    `json:"roomId"`
	StreamID  StreamID  `json:"streamId"`
}
