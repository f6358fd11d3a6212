// Package derive computes program-derived ledger addresses. A derived
// address is a deterministic function of a namespace string and a list
// of seed byte strings; no private key exists for it, so state stored
// there can only be changed by code that can reproduce the derivation.
package derive

import (
	"encoding/binary"
	"errors"

	"github.com/zeebo/blake3"

	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

const domainTag = "ludex/derive/v1"

// ErrNoValidBump is returned when no bump in [0,255] yields a usable
// address for the given seeds. Vanishingly unlikely in practice.
var ErrNoValidBump = errors.New("no valid bump for seeds")

// MaxSeedLen bounds a single seed. Matches the longest field a
// derivation consumes (an address plus headroom).
const MaxSeedLen = 64

// MaxSeeds bounds the seed count of one derivation.
const MaxSeeds = 8

func candidate(namespace string, seeds [][]byte, bump uint8) types.Address {
	h := blake3.New()
	h.Write([]byte(domainTag))

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(namespace)))
	h.Write(n[:])
	h.Write([]byte(namespace))

	for _, seed := range seeds {
		binary.BigEndian.PutUint32(n[:], uint32(len(seed)))
		h.Write(n[:])
		h.Write(seed)
	}
	h.Write([]byte{bump})

	var sum [32]byte
	h.Digest().Read(sum[:])

	var addr types.Address
	copy(addr[:], sum[:types.AddressSize])
	return addr
}

// usable reports whether a candidate address may hold derived state.
// Addresses whose first byte is zero are reserved, so roughly 1 in 256
// candidates is rejected and resolved by the bump search.
func usable(addr types.Address) bool {
	return addr[0] != 0x00
}

// Derive finds the canonical derived address for a namespace and seed
// list. It searches bump values from 255 downward and returns the
// first usable address together with the bump that produced it.
func Derive(namespace string, seeds ...[]byte) (types.Address, uint8, error) {
	if len(seeds) > MaxSeeds {
		return types.Address{}, 0, errors.New("too many seeds")
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return types.Address{}, 0, errors.New("seed too long")
		}
	}

	for bump := 255; bump >= 0; bump-- {
		addr := candidate(namespace, seeds, uint8(bump))
		if usable(addr) {
			return addr, uint8(bump), nil
		}
	}
	return types.Address{}, 0, ErrNoValidBump
}

// At recomputes the derived address at a specific bump without
// searching. Used to verify stored proofs.
func At(namespace string, bump uint8, seeds ...[]byte) types.Address {
	return candidate(namespace, seeds, bump)
}

// Proof records the inputs of a derivation so the resulting address
// can be re-verified later.
type Proof struct {
	Namespace string
	Seeds     [][]byte
	Bump      uint8
}

// Verify reports whether the proof reproduces addr. The bump must not
// only match but also be canonical: every higher bump must yield an
// unusable address, otherwise a forged proof could alias a reserved
// candidate.
func (p Proof) Verify(addr types.Address) bool {
	got := candidate(p.Namespace, p.Seeds, p.Bump)
	if got != addr || !usable(got) {
		return false
	}
	for bump := 255; bump > int(p.Bump); bump-- {
		if usable(candidate(p.Namespace, p.Seeds, uint8(bump))) {
			return false
		}
	}
	return true
}
