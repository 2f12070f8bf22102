// Package domain holds entities without behavior, only meta-data.
package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Sticker is one participant's marker for the current round. Position is
// owned by the presentation layer and carried through untouched.
type Sticker struct {
	ID       string          `json:"id"`
	Emoji    string          `json:"emoji"`
	Position json.RawMessage `json:"position"`
	OwnerID  ConnID          `json:"playerId"`
}

// NewSticker avoids raw literals in adapters and keeps construction obvious.
func NewSticker(owner ConnID, emoji string, position json.RawMessage) Sticker {
	return Sticker{
		ID:       uuid.NewString(),
		Emoji:    emoji,
		Position: position,
		OwnerID:  owner,
	}
}
