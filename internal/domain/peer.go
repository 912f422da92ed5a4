// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// SessionID identifies one open channel. Assigned by the gateway at
// connect time and never reused while the channel is alive.
type SessionID string

// Peer is one connected client with a chosen display identity.
type Peer struct {
	SessionID SessionID `json:"sessionId"`
	Username  string    `json:"username"`
}

func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
