package core

import (
	"encoding/json"
	"testing"

	"stickervote/internal/domain"
)

func startRound(t *testing.T, r *Room, seconds int) uint64 {
	t.Helper()
	gen, prev := r.StartRound(seconds, func() {})
	if prev != nil {
		prev()
	}
	return gen
}

func sticker(owner domain.ConnID, emoji string) domain.Sticker {
	return domain.NewSticker(owner, emoji, json.RawMessage(`{"x":1,"y":2}`))
}

func TestPlaceRejectedOutsideRound(t *testing.T) {
	r := NewRoom("ABCD")
	if err := r.PlaceSticker(sticker("p1", "🎯")); err != ErrRoundNotActive {
		t.Fatalf("expected ErrRoundNotActive, got %v", err)
	}
}

func TestCountdownRevealsOnce(t *testing.T) {
	r := NewRoom("ABCD")
	gen := startRound(t, r, 3)

	res := r.Tick(gen)
	if res.Stale || res.Ended || res.TimeLeft != 2 {
		t.Fatalf("unexpected first tick: %+v", res)
	}
	res = r.Tick(gen)
	if res.Stale || res.Ended || res.TimeLeft != 1 {
		t.Fatalf("unexpected second tick: %+v", res)
	}
	res = r.Tick(gen)
	if !res.Ended || res.TimeLeft != 0 {
		t.Fatalf("expected round end at zero, got %+v", res)
	}
	if res.Revealed == nil || len(res.Revealed) != 0 {
		t.Fatalf("expected empty non-nil reveal, got %#v", res.Revealed)
	}

	// A stray tick after the end applies nothing.
	if res = r.Tick(gen); !res.Stale {
		t.Fatalf("expected stale tick after end, got %+v", res)
	}
}

func TestLastWriteWinsPerOwner(t *testing.T) {
	r := NewRoom("ABCD")
	gen := startRound(t, r, 1)

	first := sticker("p1", "🎯")
	other := sticker("p2", "🚀")
	second := sticker("p1", "🔥")
	for _, s := range []domain.Sticker{first, other, second} {
		if err := r.PlaceSticker(s); err != nil {
			t.Fatalf("place: %v", err)
		}
	}

	res := r.Tick(gen)
	if !res.Ended {
		t.Fatalf("expected reveal, got %+v", res)
	}
	if len(res.Revealed) != 2 {
		t.Fatalf("expected 2 revealed stickers, got %d", len(res.Revealed))
	}
	if res.Revealed[0].ID != other.ID {
		t.Errorf("expected p2's sticker first, got %s", res.Revealed[0].ID)
	}
	if got := res.Revealed[1]; got.OwnerID != "p1" || got.Emoji != "🔥" {
		t.Errorf("expected p1's latest sticker, got %+v", got)
	}
}

func TestRestartDiscardsRoundState(t *testing.T) {
	r := NewRoom("ABCD")
	gen1 := startRound(t, r, 5)
	if err := r.PlaceSticker(sticker("p1", "🎯")); err != nil {
		t.Fatalf("place: %v", err)
	}

	gen2, prev := r.StartRound(5, func() {})
	if prev == nil {
		t.Fatal("expected cancel handle of the replaced round")
	}
	prev()

	if res := r.Tick(gen1); !res.Stale {
		t.Fatalf("tick of replaced round must be stale, got %+v", res)
	}

	for i := 0; i < 5; i++ {
		if res := r.Tick(gen2); res.Ended && len(res.Revealed) != 0 {
			t.Fatalf("restart must discard pending stickers, got %d", len(res.Revealed))
		}
	}
}

func TestHaltDetachesRound(t *testing.T) {
	r := NewRoom("ABCD")
	called := false
	gen, _ := r.StartRound(5, func() { called = true })

	cancel := r.Halt()
	if cancel == nil {
		t.Fatal("expected cancel handle from Halt")
	}
	cancel()
	if !called {
		t.Fatal("Halt must hand back the round's cancel func")
	}
	if res := r.Tick(gen); !res.Stale {
		t.Fatalf("tick after Halt must be stale, got %+v", res)
	}
	if r.Halt() != nil {
		t.Fatal("second Halt must find nothing to detach")
	}
}

func TestMembershipCounts(t *testing.T) {
	r := NewRoom("ABCD")
	if n := r.AddMember("c1", nil); n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}
	if n := r.AddMember("c2", nil); n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
	if n := r.RemoveMember("c1"); n != 1 {
		t.Fatalf("expected count 1 after removal, got %d", n)
	}
	if n := r.RemoveMember("unknown"); n != 1 {
		t.Fatalf("unknown removal must be a no-op, got %d", n)
	}
}

func TestInfoHidesTimeLeftWhenIdle(t *testing.T) {
	r := NewRoom("ABCD")
	r.AddMember("c1", nil)
	info := r.Info()
	if info.RoundActive || info.TimeLeft != 0 || info.MemberCount != 1 {
		t.Fatalf("unexpected idle info: %+v", info)
	}
	startRound(t, r, 7)
	info = r.Info()
	if !info.RoundActive || info.TimeLeft != 7 {
		t.Fatalf("unexpected running info: %+v", info)
	}
}
