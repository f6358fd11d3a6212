package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// GenerateMnemonic produces a fresh 24-word BIP-39 recovery phrase from
// 256 bits of entropy.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic reports whether the phrase has valid BIP-39 wording and
// checksum. Imported phrases of any standard length are accepted.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
