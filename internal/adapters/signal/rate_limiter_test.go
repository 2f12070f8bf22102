package signal

import (
	"testing"
	"time"
)

func TestCommandLimiterWindow(t *testing.T) {
	rl := NewCommandLimiter(2, 20*time.Millisecond)

	if !rl.Allow("c1") || !rl.Allow("c1") {
		t.Fatal("first two commands must pass")
	}
	if rl.Allow("c1") {
		t.Fatal("third command within the window must be blocked")
	}
	if !rl.Allow("c2") {
		t.Fatal("limits are per connection")
	}

	time.Sleep(25 * time.Millisecond)
	if !rl.Allow("c1") {
		t.Fatal("window expiry must unblock the connection")
	}

	rl.Forget("c2")
	if len(rl.history["c2"]) != 0 {
		t.Fatal("Forget must drop the history")
	}
}
