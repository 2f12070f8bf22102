package app

import "testing"

func TestHostArbiter(t *testing.T) {
	h := NewHostArbiter()

	if h.HasHost("ABCD") {
		t.Fatal("fresh room must be hostless")
	}

	h.Claim("ABCD", "c1")
	if !h.IsHost("ABCD", "c1") {
		t.Fatal("claimant must hold host status")
	}

	h.Claim("ABCD", "c2")
	if h.IsHost("ABCD", "c1") || !h.IsHost("ABCD", "c2") {
		t.Fatal("last claimant wins")
	}

	// A non-host departure leaves the slot alone.
	h.Release("ABCD", "c1")
	if !h.IsHost("ABCD", "c2") {
		t.Fatal("release by non-host must not clear the slot")
	}

	h.Release("ABCD", "c2")
	if h.HasHost("ABCD") {
		t.Fatal("host departure must leave the room hostless")
	}

	h.Claim("WXYZ", "c3")
	h.Drop("WXYZ")
	if h.HasHost("WXYZ") {
		t.Fatal("drop must clear the slot regardless of holder")
	}
}
