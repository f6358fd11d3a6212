package wallet

import (
	"errors"
	"fmt"

	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// Keys follow the BIP-44 layout m/44'/coin'/account'/change/index.
const (
	purposeBIP44 = bip32.FirstHardenedChild + 44

	// coinTypeLudex is a placeholder coin type until one is registered.
	coinTypeLudex = bip32.FirstHardenedChild + 7261

	// ChangeExternal selects the receiving-address chain.
	ChangeExternal = 0

	// ChangeInternal selects the change chain. Unused by the account
	// ledger but kept so the path layout stays standard.
	ChangeInternal = 1
)

// HDKey wraps a BIP-32 extended key.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey builds the wallet's root key from a BIP-39 seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	root, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}
	return &HDKey{key: root}, nil
}

// DeriveAddress walks m/44'/7261'/account'/change/index from this key.
func (k *HDKey) DeriveAddress(account, change, index uint32) (*HDKey, error) {
	path := []uint32{
		purposeBIP44,
		coinTypeLudex,
		bip32.FirstHardenedChild + account,
		change,
		index,
	}
	current := k.key
	for _, step := range path {
		child, err := current.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("derive step %d: %w", step, err)
		}
		current = child
	}
	return &HDKey{key: current}, nil
}

// PrivateKeyBytes returns the raw 32-byte private key, or nil for a
// public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 stores private keys as 33 bytes with a 0x00 pad.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// Signer returns the Schnorr signing key for this HD key.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	raw := k.PrivateKeyBytes()
	if raw == nil {
		return nil, errors.New("key has no private half")
	}
	return crypto.PrivateKeyFromBytes(raw)
}

// Address returns the Ludex address for this key, the first 20 bytes of
// BLAKE3 over the compressed public key.
func (k *HDKey) Address() types.Address {
	hash := crypto.Hash(k.PublicKeyBytes())
	var addr types.Address
	copy(addr[:], hash[:types.AddressSize])
	return addr
}
