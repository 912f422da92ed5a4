package core

import "github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"

// Frame is a raw outbound payload (already marshaled JSON).
type Frame []byte

// SignalConnection abstracts the per-channel outbound transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// RoomInfo is a read-only directory view for APIs (no transport fields).
type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
	TotalJoins  int           `json:"totalJoins"`
}
