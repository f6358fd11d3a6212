package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// SeedSize is the length in bytes of a BIP-39 seed.
const SeedSize = 64

// SeedFromMnemonic stretches a recovery phrase and optional passphrase into
// the 64-byte seed that roots all key derivation. The mnemonic is checksum
// validated first.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}
