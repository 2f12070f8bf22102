package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"stickervote/internal/core"
	"stickervote/internal/domain"
)

// Envelope is the wire frame in both directions: a command or event name
// plus its payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
	IsHost bool   `json:"isHost"`
}

type startTimerPayload struct {
	RoomID string `json:"roomId"`
}

type placeStickerPayload struct {
	RoomID   string          `json:"roomId"`
	Emoji    string          `json:"emoji"`
	Position json.RawMessage `json:"position"`
}

func (ctl *Controller) handleCommand(cid domain.ConnID, c *WsConn, data []byte) {
	if ctl.limiter != nil && !ctl.limiter.Allow(cid) {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("command rate limited")
		return
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case core.CmdJoinRoom:
		ctl.handleJoinRoom(cid, c, env.Payload)
	case core.CmdStartTimer:
		ctl.handleStartTimer(cid, c, env.Payload)
	case core.CmdPlaceSticker:
		ctl.handlePlaceSticker(cid, c, env.Payload)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown command")
	}
}

func (ctl *Controller) handleJoinRoom(cid domain.ConnID, c *WsConn, payload json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad joinRoom payload")
		return
	}
	if err := ctl.Coord.Join(cid, domain.RoomID(p.RoomID), p.IsHost); err != nil {
		// Only the rejected joiner learns about it; nothing else changes.
		ctl.sendJSON(c, outEnvelope{Type: core.EventRoomNotFound})
	}
}

func (ctl *Controller) handleStartTimer(cid domain.ConnID, _ *WsConn, payload json.RawMessage) {
	var p startTimerPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad startTimer payload")
		return
	}
	ctl.Coord.StartTimer(cid, domain.RoomID(p.RoomID))
}

func (ctl *Controller) handlePlaceSticker(cid domain.ConnID, _ *WsConn, payload json.RawMessage) {
	var p placeStickerPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad placeSticker payload")
		return
	}
	ctl.Coord.PlaceSticker(cid, domain.RoomID(p.RoomID), p.Emoji, p.Position)
}
