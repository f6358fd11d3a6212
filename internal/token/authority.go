package token

import (
	"fmt"

	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Authority proves the right to act as an account in a ledger
// operation. Keyed accounts prove with a signature, derived accounts
// with a derivation proof.
type Authority interface {
	// Authorize returns nil if the caller may act as account for the
	// operation identified by msg. A failed check wraps
	// protocol.ErrUnauthorized.
	Authorize(account types.Address, msg types.Hash) error
}

// SignerAuth authorizes a keyed account with a schnorr signature over
// the operation's canonical signing hash.
type SignerAuth struct {
	PubKey    []byte `json:"pubKey"`
	Signature []byte `json:"signature"`
}

func (a SignerAuth) Authorize(account types.Address, msg types.Hash) error {
	if crypto.AddressFromPubKey(a.PubKey) != account {
		return fmt.Errorf("public key does not match account %s: %w", account, protocol.ErrUnauthorized)
	}
	if !crypto.VerifySignature(msg[:], a.Signature, a.PubKey) {
		return fmt.Errorf("invalid signature for account %s: %w", account, protocol.ErrUnauthorized)
	}
	return nil
}

// DerivedAuth authorizes a derived account by reproducing its
// derivation. The signing hash is ignored; possession of the seeds is
// the proof.
type DerivedAuth struct {
	Proof derive.Proof
}

func (a DerivedAuth) Authorize(account types.Address, _ types.Hash) error {
	if !a.Proof.Verify(account) {
		return fmt.Errorf("derivation proof does not match account %s: %w", account, protocol.ErrUnauthorized)
	}
	return nil
}
