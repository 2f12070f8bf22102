package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"stickervote/internal/domain"
)

// HostArbiter decides which connection, if any, holds host privilege for a
// room. Any client asserting host status becomes host, last claimant wins.
// A departing host leaves the room hostless until the next host-claiming
// join; no other participant is promoted.
type HostArbiter struct {
	mu    sync.Mutex
	hosts map[domain.RoomID]domain.ConnID
}

func NewHostArbiter() *HostArbiter {
	return &HostArbiter{hosts: make(map[domain.RoomID]domain.ConnID)}
}

func (h *HostArbiter) Claim(roomID domain.RoomID, cid domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hosts[roomID] = cid
	log.Info().Str("module", "app.hosts").Str("room", string(roomID)).Str("conn", string(cid)).Msg("host claimed")
}

func (h *HostArbiter) HasHost(roomID domain.RoomID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.hosts[roomID]
	return ok
}

func (h *HostArbiter) IsHost(roomID domain.RoomID, cid domain.ConnID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hosts[roomID] == cid
}

// Release clears the host slot only when the departing connection is the
// recorded host.
func (h *HostArbiter) Release(roomID domain.RoomID, cid domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hosts[roomID] == cid {
		delete(h.hosts, roomID)
		log.Info().Str("module", "app.hosts").Str("room", string(roomID)).Msg("host released")
	}
}

// Drop removes the slot regardless of holder, used on room destruction.
func (h *HostArbiter) Drop(roomID domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hosts, roomID)
}
