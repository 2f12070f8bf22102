package domain

// RoomID is the caller-supplied token identifying one session.
// The coordinator never interprets it.
type RoomID string

// ConnID identifies one live transport connection. Minted on upgrade,
// meaningless after disconnect.
type ConnID string
