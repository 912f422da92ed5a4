package domain

// RoomID is the client-supplied call/session code.
type RoomID string

type Room struct {
	ID RoomID
}
