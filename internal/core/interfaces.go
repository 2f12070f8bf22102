package core

import "stickervote/internal/domain"

// Frame is a raw outbound payload, already encoded for the wire.
type Frame []byte

// SignalConnection abstracts the messaging transport for one participant.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Gateway is the sole fan-out path for coordinator events. It is injected
// into the coordinator so the command logic runs without a network stack.
type Gateway interface {
	ToRoom(id domain.RoomID, event string, payload any)
	ToConn(cid domain.ConnID, event string, payload any)
}
