package types

import "testing"

func TestHash_HexRoundTrip(t *testing.T) {
	h := Hash{0x01, 0x02, 0xFF}

	back, err := HexToHash(h.String())
	if err != nil {
		t.Fatalf("HexToHash: %v", err)
	}
	if back != h {
		t.Errorf("round trip mismatch: %s != %s", back, h)
	}
}

func TestHexToHash_Invalid(t *testing.T) {
	cases := []string{"", "zz", "0102", "0102030405"}
	for _, s := range cases {
		if _, err := HexToHash(s); err == nil {
			t.Errorf("HexToHash(%q): expected error", s)
		}
	}
}

func TestHash_JSONRoundTrip(t *testing.T) {
	h := Hash{0xAB, 0xCD}

	data, err := h.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var back Hash
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != h {
		t.Errorf("JSON round trip mismatch")
	}
}

func TestHash_IsZero(t *testing.T) {
	if !(Hash{}).IsZero() {
		t.Error("zero hash should report IsZero")
	}
	if (Hash{0x01}).IsZero() {
		t.Error("non-zero hash should not report IsZero")
	}
}
