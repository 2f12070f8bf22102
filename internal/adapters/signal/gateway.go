package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"stickervote/internal/app"
	"stickervote/internal/core"
	"stickervote/internal/domain"
)

// RoomGateway implements core.Gateway over the live member connections. It
// is the only component that writes to more than one connection, which keeps
// fan-out ordering in one place.
type RoomGateway struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
}

func NewRoomGateway(reg *app.Registry, rooms *app.RoomManager) *RoomGateway {
	return &RoomGateway{Registry: reg, Rooms: rooms}
}

func (g *RoomGateway) ToRoom(id domain.RoomID, event string, payload any) {
	room, ok := g.Rooms.Get(id)
	if !ok {
		// Destroyed between intent and fan-out; nothing to deliver.
		return
	}
	frame, ok := encodeEvent(event, payload)
	if !ok {
		return
	}
	dropped := 0
	for _, conn := range room.Conns() {
		if err := conn.TrySend(frame); err != nil {
			dropped++
		}
	}
	if dropped > 0 {
		log.Warn().Str("module", "signal.gateway").Str("room", string(id)).Str("event", event).Int("dropped", dropped).Msg("slow receivers")
	}
}

func (g *RoomGateway) ToConn(cid domain.ConnID, event string, payload any) {
	conn, ok := g.Registry.Conn(cid)
	if !ok {
		return
	}
	frame, ok := encodeEvent(event, payload)
	if !ok {
		return
	}
	_ = conn.TrySend(frame)
}

func encodeEvent(event string, payload any) (core.Frame, bool) {
	b, err := json.Marshal(outEnvelope{Type: event, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "signal.gateway").Str("event", event).Msg("encode event")
		return nil, false
	}
	return b, true
}
