package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

func testOwner(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestRegister(t *testing.T) {
	r := NewRegistry(storage.NewMemory())
	owner := testOwner(1)

	addr, err := r.Register(owner, "quest", "an adventure game")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec, err := r.Get(addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Owner != owner || rec.Name != "quest" || rec.Description != "an adventure game" {
		t.Errorf("record = %+v", rec)
	}

	// Address must match the public derivation.
	want, bump, err := Key(owner, "quest")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if addr != want {
		t.Errorf("address = %s, want %s", addr, want)
	}
	if rec.Bump != bump {
		t.Errorf("bump = %d, want %d", rec.Bump, bump)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewRegistry(storage.NewMemory())
	owner := testOwner(1)

	if _, err := r.Register(owner, "quest", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := r.Register(owner, "quest", "different description")
	if !errors.Is(err, protocol.ErrAlreadyExists) {
		t.Errorf("duplicate: err = %v, want ErrAlreadyExists", err)
	}
}

func TestRegister_SameNameDifferentOwner(t *testing.T) {
	r := NewRegistry(storage.NewMemory())

	a1, err := r.Register(testOwner(1), "quest", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	a2, err := r.Register(testOwner(2), "quest", "")
	if err != nil {
		t.Fatalf("Register second owner: %v", err)
	}
	if a1 == a2 {
		t.Error("different owners derived the same game address")
	}
}

func TestRegister_Bounds(t *testing.T) {
	r := NewRegistry(storage.NewMemory())
	owner := testOwner(1)

	cases := []struct {
		name        string
		gameName    string
		description string
	}{
		{"empty name", "", "desc"},
		{"long name", strings.Repeat("x", MaxNameLen+1), "desc"},
		{"long description", "ok", strings.Repeat("x", MaxDescriptionLen+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Register(owner, tc.gameName, tc.description)
			if !errors.Is(err, protocol.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}

	// Exactly at the bounds must pass.
	_, err := r.Register(owner, strings.Repeat("n", MaxNameLen), strings.Repeat("d", MaxDescriptionLen))
	if err != nil {
		t.Errorf("max-length fields rejected: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	r := NewRegistry(storage.NewMemory())
	_, err := r.Get(testOwner(9))
	if !errors.Is(err, protocol.ErrNotFound) {
		t.Errorf("missing game: err = %v, want ErrNotFound", err)
	}
}
