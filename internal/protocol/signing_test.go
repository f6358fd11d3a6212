package protocol

import (
	"testing"

	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

func addr(b byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func TestSigningHashes_Deterministic(t *testing.T) {
	a := MintSigningHash(addr(1), addr(2), 100)
	b := MintSigningHash(addr(1), addr(2), 100)
	if a != b {
		t.Error("same inputs produced different hashes")
	}
}

func TestSigningHashes_FieldSensitive(t *testing.T) {
	base := MintSigningHash(addr(1), addr(2), 100)

	if MintSigningHash(addr(3), addr(2), 100) == base {
		t.Error("asset change did not change hash")
	}
	if MintSigningHash(addr(1), addr(3), 100) == base {
		t.Error("holder change did not change hash")
	}
	if MintSigningHash(addr(1), addr(2), 101) == base {
		t.Error("amount change did not change hash")
	}
}

func TestSigningHashes_DomainSeparated(t *testing.T) {
	mint := MintSigningHash(addr(1), addr(2), 100)
	xfer := TransferSigningHash(addr(1), addr(2), addr(2), 100)
	owner := OwnerMintSigningHash(addr(1), addr(2), addr(2), 100)

	if mint == xfer || mint == owner || xfer == owner {
		t.Error("different operations produced identical hashes")
	}
}
