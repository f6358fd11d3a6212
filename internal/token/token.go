// Package token implements the fungible token ledger: mint records
// and per-holder balances keyed by derived or keyed addresses.
package token

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Mint describes one fungible token.
type Mint struct {
	// Authority is the only account allowed to mint new supply. A mint
	// whose authority equals its own address is self-authorized and
	// can only be minted through a derivation proof.
	Authority types.Address `json:"authority"`
	Decimals  uint8         `json:"decimals"`
	Supply    uint64        `json:"supply"`
}

// Storage key prefixes.
var (
	mintPrefix    = []byte("m/")
	balancePrefix = []byte("b/")
)

func mintKey(id types.Address) []byte {
	key := make([]byte, 0, len(mintPrefix)+types.AddressSize)
	key = append(key, mintPrefix...)
	return append(key, id[:]...)
}

func balanceKey(mint, holder types.Address) []byte {
	key := make([]byte, 0, len(balancePrefix)+2*types.AddressSize)
	key = append(key, balancePrefix...)
	key = append(key, mint[:]...)
	return append(key, holder[:]...)
}

func encodeMint(m Mint) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode mint: %w", err)
	}
	return data, nil
}

func decodeMint(data []byte) (Mint, error) {
	var m Mint
	if err := json.Unmarshal(data, &m); err != nil {
		return Mint{}, fmt.Errorf("decode mint: %w", err)
	}
	return m, nil
}

func encodeBalance(amount uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], amount)
	return buf[:]
}

func decodeBalance(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("decode balance: bad length %d", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
