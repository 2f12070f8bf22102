package app

import (
	"sync"

	"stickervote/internal/core"
	"stickervote/internal/domain"
)

// RoomManager holds one state record per active room. Records are created
// lazily on first join and destroyed when the member set empties.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*core.Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[domain.RoomID]*core.Room)}
}

// GetOrCreate is idempotent under concurrent first-joins for the same id:
// the second check under the write lock guarantees a single record ever
// exists per id.
func (m *RoomManager) GetOrCreate(id domain.RoomID) *core.Room {
	m.mu.RLock()
	room, ok := m.rooms[id]
	m.mu.RUnlock()
	if ok {
		return room
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok = m.rooms[id]; ok {
		return room
	}
	room = core.NewRoom(id)
	m.rooms[id] = room
	return room
}

func (m *RoomManager) Get(id domain.RoomID) (*core.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	return room, ok
}

// Remove drops the record and stops any tick task still running for it.
func (m *RoomManager) Remove(id domain.RoomID) {
	m.mu.Lock()
	room, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if !ok {
		return
	}
	if cancel := room.Halt(); cancel != nil {
		cancel()
	}
}

func (m *RoomManager) List() []core.RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for _, room := range m.rooms {
		out = append(out, room.Info())
	}
	return out
}
