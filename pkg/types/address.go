package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressSize is the byte length of an Address.
const AddressSize = 20

// Bech32 human-readable prefixes per network.
const (
	MainnetHRP = "ldx"
	TestnetHRP = "tldx"
)

// activeHRP drives String() and MarshalJSON(). The node sets it once at
// startup from the configured network.
var activeHRP = MainnetHRP

// SetAddressHRP selects the prefix used when rendering addresses.
func SetAddressHRP(hrp string) {
	activeHRP = hrp
}

// GetAddressHRP returns the prefix currently in use.
func GetAddressHRP() string {
	return activeHRP
}

// Address is a 160-bit account identity. Keyed accounts are the truncated
// BLAKE3 hash of a public key; derived sub-accounts are hashed from a
// namespace tag and seed tuple and have no private key at all.
type Address [AddressSize]byte

// IsZero reports whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String renders the address in bech32 with the active prefix.
func (a Address) String() string {
	s, err := Bech32Encode(activeHRP, a[:])
	if err != nil {
		// Unreachable for a valid HRP; keep the address printable anyway.
		return activeHRP + ":" + hex.EncodeToString(a[:])
	}
	return s
}

// Hex renders the raw address bytes as hex, no prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the address as a fresh byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// MarshalJSON renders the address in bech32.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts anything ParseAddress does. The empty string
// decodes to the zero address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress accepts a bech32 address ("ldx1...", "tldx1...") or, mainly
// for tests and tooling, 40 raw hex characters.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	// Bech32 always contains the "1" separator; a 40-char hex string never
	// parses as one, so check for hex first.
	if !isRawHex(s) && strings.Contains(s, "1") {
		_, data, err := Bech32Decode(s)
		if err != nil {
			return Address{}, fmt.Errorf("invalid bech32 address: %w", err)
		}
		return addressFromBytes(data)
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address: %w", err)
	}
	return addressFromBytes(decoded)
}

// HexToAddress parses exactly 40 hex characters into an Address. For input
// that may be bech32, use ParseAddress.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid hex: %w", err)
	}
	return addressFromBytes(b)
}

func addressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressSize {
		return a, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// isRawHex reports whether s is exactly 40 hex characters.
func isRawHex(s string) bool {
	if len(s) != 2*AddressSize {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
