package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"stickervote/internal/core"
	"stickervote/internal/domain"
)

type connEntry struct {
	Room domain.RoomID
	Conn core.SignalConnection
}

// Registry maps each live connection to the room it joined. A connection
// belongs to at most one room, so disconnect cleanup runs exactly once.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

// Bind records a freshly upgraded connection with no room yet.
func (r *Registry) Bind(cid domain.ConnID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[cid] = &connEntry{Conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Msg("bound connection")
}

// SetRoom records which room the connection joined. Unknown ids are a no-op.
func (r *Registry) SetRoom(cid domain.ConnID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[cid]; ok {
		e.Room = roomID
	}
}

func (r *Registry) RoomOf(cid domain.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) Conn(cid domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

// Leave removes the binding and reports the room the connection had joined,
// if any. Unknown ids are a no-op.
func (r *Registry) Leave(cid domain.ConnID) (domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[cid]
	if !ok {
		return "", false
	}
	delete(r.conns, cid)
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Msg("unbound connection")
	if e.Room == "" {
		return "", false
	}
	return e.Room, true
}
