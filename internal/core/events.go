package core

import "stickervote/internal/domain"

// Command names accepted over the event channel.
const (
	CmdJoinRoom     = "joinRoom"
	CmdStartTimer   = "startTimer"
	CmdPlaceSticker = "placeSticker"
)

// Event names emitted over the event channel.
const (
	EventRoomNotFound    = "roomNotFound"
	EventUserCountUpdate = "userCountUpdate"
	EventTimerStarted    = "timerStarted"
	EventTimerUpdate     = "timerUpdate"
	EventTimerEnded      = "timerEnded"
	EventConfetti        = "confetti"
	EventStickerPlaced   = "stickerPlaced"
)

type CountPayload struct {
	Count int `json:"count"`
}

type TimerPayload struct {
	TimeLeft int `json:"timeLeft"`
}

// RevealPayload carries the full ordered set, sent to the whole room only
// at round end.
type RevealPayload struct {
	Stickers []domain.Sticker `json:"stickers"`
}

// PlacedPayload acknowledges a placement to the submitter alone. Stickers
// holds only the submitter's own marker while the round is running.
type PlacedPayload struct {
	Sticker  domain.Sticker   `json:"sticker"`
	Stickers []domain.Sticker `json:"stickers"`
}
