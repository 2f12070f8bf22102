package app

import "testing"

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Leave("ghost"); ok {
		t.Fatal("unknown connection must be a no-op")
	}

	r.Bind("c1", fakeConn{})
	if _, ok := r.RoomOf("c1"); ok {
		t.Fatal("fresh connection has no room yet")
	}
	if _, ok := r.Conn("c1"); !ok {
		t.Fatal("bound connection must be resolvable")
	}

	r.SetRoom("c1", "ABCD")
	if room, ok := r.RoomOf("c1"); !ok || room != "ABCD" {
		t.Fatalf("RoomOf = %q, %v", room, ok)
	}

	room, ok := r.Leave("c1")
	if !ok || room != "ABCD" {
		t.Fatalf("Leave = %q, %v; want the joined room exactly once", room, ok)
	}
	if _, ok := r.Leave("c1"); ok {
		t.Fatal("second leave must be a no-op")
	}
	if _, ok := r.Conn("c1"); ok {
		t.Fatal("left connection must be unresolvable")
	}
}

func TestSetRoomUnknownConnIsNoop(t *testing.T) {
	r := NewRegistry()
	r.SetRoom("ghost", "ABCD")
	if _, ok := r.RoomOf("ghost"); ok {
		t.Fatal("SetRoom must not create entries")
	}
}
