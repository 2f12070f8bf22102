package app

import (
	"sync"
	"testing"
)

func TestGetOrCreateIsIdempotentUnderConcurrency(t *testing.T) {
	m := NewRoomManager()

	const joiners = 64
	rooms := make([]any, joiners)
	var wg sync.WaitGroup
	wg.Add(joiners)
	for i := 0; i < joiners; i++ {
		go func(i int) {
			defer wg.Done()
			rooms[i] = m.GetOrCreate("ABCD")
		}(i)
	}
	wg.Wait()

	for i := 1; i < joiners; i++ {
		if rooms[i] != rooms[0] {
			t.Fatal("concurrent first-joins must share a single room record")
		}
	}
	if len(m.List()) != 1 {
		t.Fatalf("expected one room, got %d", len(m.List()))
	}
}

func TestRemoveUnknownRoomIsNoop(t *testing.T) {
	m := NewRoomManager()
	m.Remove("GHOST")
	if len(m.List()) != 0 {
		t.Fatal("expected empty manager")
	}
}

func TestRemoveCancelsRunningRound(t *testing.T) {
	m := NewRoomManager()
	room := m.GetOrCreate("ABCD")

	cancelled := make(chan struct{})
	room.StartRound(10, func() { close(cancelled) })

	m.Remove("ABCD")
	select {
	case <-cancelled:
	default:
		t.Fatal("Remove must cancel the room's tick task")
	}
	if _, ok := m.Get("ABCD"); ok {
		t.Fatal("room record must be gone")
	}
}
