package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"stickervote/internal/core"
	"stickervote/internal/domain"
)

// Coordinator owns the authoritative session state and is the single arbiter
// for commands arriving from concurrent connections. All outgoing traffic
// flows through the injected Gateway.
type Coordinator struct {
	Registry *Registry
	Rooms    *RoomManager
	Hosts    *HostArbiter
	Gateway  core.Gateway

	RoundSeconds int
	TickEvery    time.Duration

	// locks serializes membership commands per room so a mutation and its
	// count broadcast form one atomic step. Entries are never removed; room
	// ids in one process are few and a stale mutex is harmless.
	mu    sync.Mutex
	locks map[domain.RoomID]*sync.Mutex
}

func NewCoordinator(reg *Registry, rooms *RoomManager, hosts *HostArbiter, gw core.Gateway, roundSeconds int, tickEvery time.Duration) *Coordinator {
	return &Coordinator{
		Registry:     reg,
		Rooms:        rooms,
		Hosts:        hosts,
		Gateway:      gw,
		RoundSeconds: roundSeconds,
		TickEvery:    tickEvery,
		locks:        make(map[domain.RoomID]*sync.Mutex),
	}
}

func (c *Coordinator) roomLock(id domain.RoomID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	return l
}

// Connect registers a freshly upgraded connection.
func (c *Coordinator) Connect(cid domain.ConnID, conn core.SignalConnection) {
	c.Registry.Bind(cid, conn)
}

// Join processes a joinRoom command. A host-claiming join always succeeds
// and may originate the room; a non-host join is rejected with
// ErrRoomNotFound unless a host is already registered.
func (c *Coordinator) Join(cid domain.ConnID, roomID domain.RoomID, isHost bool) error {
	if isHost {
		c.Hosts.Claim(roomID, cid)
	} else if !c.Hosts.HasHost(roomID) {
		return core.ErrRoomNotFound
	}

	conn, ok := c.Registry.Conn(cid)
	if !ok {
		// The connection dropped before the command was applied.
		return nil
	}

	// A connection joins at most one room at a time, so a second join moves
	// it out of the previous room first. The previous room's lock is taken
	// and released before the target room's; the two are never held together.
	if prev, ok := c.Registry.RoomOf(cid); ok && prev != roomID {
		c.leaveRoom(cid, prev)
	}

	l := c.roomLock(roomID)
	l.Lock()
	defer l.Unlock()

	room := c.Rooms.GetOrCreate(roomID)
	count := room.AddMember(cid, conn)
	c.Registry.SetRoom(cid, roomID)
	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("conn", string(cid)).Bool("host", isHost).Msg("joined room")
	c.Gateway.ToRoom(roomID, core.EventUserCountUpdate, core.CountPayload{Count: count})
	return nil
}

// StartTimer arms the countdown for the room. Only the recorded host may
// start it; anything else is an expected race and ignored. Starting while a
// round is running restarts it.
func (c *Coordinator) StartTimer(cid domain.ConnID, roomID domain.RoomID) {
	if !c.Hosts.IsHost(roomID, cid) {
		return
	}
	room, ok := c.Rooms.Get(roomID)
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	gen, prev := room.StartRound(c.RoundSeconds, cancel)
	if prev != nil {
		prev()
	}
	c.Gateway.ToRoom(roomID, core.EventTimerStarted, core.TimerPayload{TimeLeft: c.RoundSeconds})
	go c.runRound(ctx, roomID, gen)
}

// runRound drives one countdown at a fixed cadence. It exits when the round
// ends, when it is cancelled by a restart or room destruction, or when the
// room record is gone.
func (c *Coordinator) runRound(ctx context.Context, roomID domain.RoomID, gen uint64) {
	ticker := time.NewTicker(c.TickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			room, ok := c.Rooms.Get(roomID)
			if !ok {
				// Destroyed mid-countdown; not an error.
				return
			}
			res := room.Tick(gen)
			if res.Stale {
				return
			}
			c.Gateway.ToRoom(roomID, core.EventTimerUpdate, core.TimerPayload{TimeLeft: res.TimeLeft})
			if res.Ended {
				c.Gateway.ToRoom(roomID, core.EventTimerEnded, core.RevealPayload{Stickers: res.Revealed})
				c.Gateway.ToRoom(roomID, core.EventConfetti, nil)
				return
			}
		}
	}
}

// PlaceSticker records a submission during an active round and acknowledges
// it to the submitter alone. Before reveal nobody else learns about it.
func (c *Coordinator) PlaceSticker(cid domain.ConnID, roomID domain.RoomID, emoji string, position json.RawMessage) {
	room, ok := c.Rooms.Get(roomID)
	if !ok {
		return
	}
	s := domain.NewSticker(cid, emoji, position)
	if err := room.PlaceSticker(s); err != nil {
		// Expected race between UI state and server state; nothing is emitted.
		return
	}
	c.Gateway.ToConn(cid, core.EventStickerPlaced, core.PlacedPayload{
		Sticker:  s,
		Stickers: []domain.Sticker{s},
	})
}

// Disconnect runs membership cleanup for a closed connection.
func (c *Coordinator) Disconnect(cid domain.ConnID) {
	roomID, ok := c.Registry.Leave(cid)
	if !ok {
		return
	}
	c.leaveRoom(cid, roomID)
}

func (c *Coordinator) leaveRoom(cid domain.ConnID, roomID domain.RoomID) {
	l := c.roomLock(roomID)
	l.Lock()
	defer l.Unlock()

	room, ok := c.Rooms.Get(roomID)
	if !ok {
		return
	}
	count := room.RemoveMember(cid)
	c.Hosts.Release(roomID, cid)
	if count == 0 {
		c.Rooms.Remove(roomID)
		c.Hosts.Drop(roomID)
		log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Msg("room destroyed")
		return
	}
	c.Gateway.ToRoom(roomID, core.EventUserCountUpdate, core.CountPayload{Count: count})
}
