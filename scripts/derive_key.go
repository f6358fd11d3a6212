// derive_key prints the public key and ludex address for a hex-encoded
// private key stored in a file.
//
// Usage: go run scripts/derive_key.go <keyfile>
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: derive_key <keyfile>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("decode key hex: %w", err)
	}
	key, err := crypto.PrivateKeyFromBytes(raw)
	if err != nil {
		return err
	}
	pub := key.PublicKey()
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Printf("address=%s\n", crypto.AddressFromPubKey(pub).String())
	return nil
}
