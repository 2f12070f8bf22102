package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"stickervote/internal/domain"
)

// Room is the authoritative state record for one session: membership,
// round state and submissions. Every mutation goes through the room's own
// mutex; rooms never share locks, so unrelated sessions stay independent.
type Room struct {
	id domain.RoomID

	mu          sync.Mutex
	members     map[domain.ConnID]SignalConnection
	roundActive bool
	timeLeft    int
	pending     []domain.Sticker
	revealed    []domain.Sticker

	// gen distinguishes rounds so a tick scheduled for a replaced round is
	// recognized as stale and applies nothing.
	gen        uint64
	cancelTick context.CancelFunc
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:      id,
		members: make(map[domain.ConnID]SignalConnection),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

// AddMember registers the connection and reports the new member count.
func (r *Room) AddMember(cid domain.ConnID, conn SignalConnection) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[cid] = conn
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(cid)).Msg("member added")
	return len(r.members)
}

// RemoveMember drops the connection and reports the remaining member count.
// Unknown connections are a no-op.
func (r *Room) RemoveMember(cid domain.ConnID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, cid)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(cid)).Msg("member removed")
	return len(r.members)
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Conns snapshots the member connections for fan-out, so senders never hold
// the room lock while writing.
func (r *Room) Conns() []SignalConnection {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SignalConnection, 0, len(r.members))
	for _, conn := range r.members {
		out = append(out, conn)
	}
	return out
}

// StartRound arms a fresh countdown, discarding every submission from the
// previous round. Starting while a round is already running resets it, which
// lets a host restart a stuck round. The returned prev cancel handle, if any,
// belongs to the replaced round's tick task and must be invoked by the
// caller; the returned generation keys ticks for the new round.
func (r *Room) StartRound(seconds int, cancel context.CancelFunc) (gen uint64, prev context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev = r.cancelTick
	r.cancelTick = cancel
	r.gen++
	r.roundActive = true
	r.timeLeft = seconds
	r.pending = nil
	r.revealed = nil
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Int("seconds", seconds).Msg("round started")
	return r.gen, prev
}

// TickResult reports the effect of one countdown step.
type TickResult struct {
	TimeLeft int
	Ended    bool
	Revealed []domain.Sticker
	// Stale means the tick belonged to a round that was replaced or already
	// finished; nothing was applied.
	Stale bool
}

// Tick decrements the countdown by one second. On reaching zero the round
// deactivates and every pending submission moves into the revealed set as an
// ordered snapshot, exactly once.
func (r *Room) Tick(gen uint64) TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.roundActive || gen != r.gen {
		return TickResult{Stale: true}
	}
	r.timeLeft--
	if r.timeLeft > 0 {
		return TickResult{TimeLeft: r.timeLeft}
	}
	r.timeLeft = 0
	r.roundActive = false
	r.cancelTick = nil
	r.revealed = r.pending
	r.pending = nil
	snapshot := make([]domain.Sticker, len(r.revealed))
	copy(snapshot, r.revealed)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Int("stickers", len(snapshot)).Msg("round ended")
	return TickResult{Ended: true, Revealed: snapshot}
}

// PlaceSticker records the participant's marker for the running round. A
// later placement from the same owner replaces the earlier one, never
// accumulates. Outside an active round nothing is recorded.
func (r *Room) PlaceSticker(s domain.Sticker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.roundActive {
		return ErrRoundNotActive
	}
	kept := make([]domain.Sticker, 0, len(r.pending)+1)
	for _, p := range r.pending {
		if p.OwnerID != s.OwnerID {
			kept = append(kept, p)
		}
	}
	r.pending = append(kept, s)
	return nil
}

// Halt detaches the running tick task, if any, so destroying the room never
// leaves a scheduled callback behind. The caller invokes the returned cancel
// outside the room lock.
func (r *Room) Halt() context.CancelFunc {
	r.mu.Lock()
	defer r.mu.Unlock()
	cancel := r.cancelTick
	r.cancelTick = nil
	r.roundActive = false
	return cancel
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
	RoundActive bool          `json:"round_active"`
	TimeLeft    int           `json:"time_left"`
}

func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := RoomInfo{
		ID:          r.id,
		MemberCount: len(r.members),
		RoundActive: r.roundActive,
	}
	if r.roundActive {
		info.TimeLeft = r.timeLeft
	}
	return info
}
