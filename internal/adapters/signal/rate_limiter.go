package signal

import (
	"sync"
	"time"

	"stickervote/internal/domain"
)

// CommandLimiter is a sliding-window limit on inbound commands per
// connection. Defaults are generous; it exists to keep one misbehaving
// client from saturating a room.
type CommandLimiter struct {
	mu       sync.Mutex
	history  map[domain.ConnID][]time.Time
	limit    int
	interval time.Duration
}

func NewCommandLimiter(limit int, interval time.Duration) *CommandLimiter {
	return &CommandLimiter{
		history:  make(map[domain.ConnID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *CommandLimiter) Allow(cid domain.ConnID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[cid]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[cid] = fresh
		return false
	}

	rl.history[cid] = append(fresh, now)
	return true
}

// Forget drops a connection's window on disconnect.
func (rl *CommandLimiter) Forget(cid domain.ConnID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.history, cid)
}
