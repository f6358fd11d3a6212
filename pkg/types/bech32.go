package types

import (
	"fmt"
	"strings"
)

// BIP-173 data alphabet.
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// charsetRev maps ASCII back to 5-bit values, -1 for invalid characters.
var charsetRev [128]int8

func init() {
	for i := range charsetRev {
		charsetRev[i] = -1
	}
	for i, c := range charset {
		charsetRev[c] = int8(i)
	}
}

// Bech32Encode renders data under the given human-readable prefix.
func Bech32Encode(hrp string, data []byte) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("bech32: empty HRP")
	}
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", fmt.Errorf("bech32: invalid HRP character %q", c)
		}
	}

	groups, err := regroupBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32: %w", err)
	}

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(groups) + 6)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, g := range groups {
		sb.WriteByte(charset[g])
	}
	for _, g := range checksum(hrp, groups) {
		sb.WriteByte(charset[g])
	}
	return sb.String(), nil
}

// Bech32Decode splits a bech32 string into its prefix and payload bytes,
// verifying the checksum.
func Bech32Decode(s string) (string, []byte, error) {
	if s == "" {
		return "", nil, fmt.Errorf("bech32: empty string")
	}
	if strings.ToLower(s) != s && strings.ToUpper(s) != s {
		return "", nil, fmt.Errorf("bech32: mixed case")
	}
	s = strings.ToLower(s)

	sep := strings.LastIndex(s, "1")
	switch {
	case sep < 1:
		return "", nil, fmt.Errorf("bech32: missing separator")
	case len(s)-sep < 7:
		return "", nil, fmt.Errorf("bech32: too short")
	}
	hrp := s[:sep]

	groups := make([]byte, len(s)-sep-1)
	for i, c := range s[sep+1:] {
		if c > 127 || charsetRev[c] < 0 {
			return "", nil, fmt.Errorf("bech32: invalid character %q", c)
		}
		groups[i] = byte(charsetRev[c])
	}

	if polymod(append(expandHRP(hrp), groups...)) != 1 {
		return "", nil, fmt.Errorf("bech32: invalid checksum")
	}

	data, err := regroupBits(groups[:len(groups)-6], 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("bech32: %w", err)
	}
	return hrp, data, nil
}

// polymod is the BIP-173 checksum polynomial.
func polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func expandHRP(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		out = append(out, byte(c>>5))
	}
	out = append(out, 0)
	for _, c := range hrp {
		out = append(out, byte(c&31))
	}
	return out
}

func checksum(hrp string, groups []byte) []byte {
	values := append(expandHRP(hrp), groups...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ 1
	out := make([]byte, 6)
	for i := range out {
		out[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return out
}

// regroupBits repacks values between bit widths. Encoding pads the final
// group with zeros; decoding rejects leftover non-zero bits.
func regroupBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var (
		acc  uint32
		bits uint
		out  []byte
	)
	maxv := uint32(1)<<toBits - 1

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("value %d exceeds %d bits", b, fromBits)
		}
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits)&byte(maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte(acc<<(toBits-bits))&byte(maxv))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxv != 0 {
		return nil, fmt.Errorf("non-zero padding")
	}
	return out, nil
}
