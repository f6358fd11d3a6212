package wallet

import (
	"bytes"
	"testing"

	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
)

// vectorSeed derives the BIP-39 test vector seed ("abandon" x11 + "about",
// passphrase "TREZOR").
func vectorSeed(t *testing.T) []byte {
	t.Helper()
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed, err := SeedFromMnemonic(mnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

func TestNewMasterKey(t *testing.T) {
	master, err := NewMasterKey(vectorSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	if got := len(master.PrivateKeyBytes()); got != 32 {
		t.Errorf("private key length = %d, want 32", got)
	}
	if got := len(master.PublicKeyBytes()); got != 33 {
		t.Errorf("public key length = %d, want 33", got)
	}
}

func TestNewMasterKey_BadSeedLength(t *testing.T) {
	for _, n := range []int{0, 32, 128} {
		if _, err := NewMasterKey(make([]byte, n)); err == nil {
			t.Errorf("NewMasterKey with %d-byte seed should fail", n)
		}
	}
}

func TestNewMasterKey_Deterministic(t *testing.T) {
	seed := vectorSeed(t)
	m1, err := NewMasterKey(seed)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	m2, err := NewMasterKey(seed)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	if !bytes.Equal(m1.PrivateKeyBytes(), m2.PrivateKeyBytes()) {
		t.Error("same seed should produce the same master key")
	}
}

func TestDeriveAddress(t *testing.T) {
	master, err := NewMasterKey(vectorSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}

	base, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}

	// Any path component change must land on a different key.
	variants := []struct {
		name                   string
		account, change, index uint32
	}{
		{"other account", 1, ChangeExternal, 0},
		{"change chain", 0, ChangeInternal, 0},
		{"other index", 0, ChangeExternal, 1},
	}
	for _, v := range variants {
		key, err := master.DeriveAddress(v.account, v.change, v.index)
		if err != nil {
			t.Fatalf("DeriveAddress(%s) error: %v", v.name, err)
		}
		if bytes.Equal(base.PrivateKeyBytes(), key.PrivateKeyBytes()) {
			t.Errorf("%s produced the same key as the base path", v.name)
		}
	}

	// Same path is reproducible.
	again, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}
	if !bytes.Equal(base.PrivateKeyBytes(), again.PrivateKeyBytes()) {
		t.Error("same path should reproduce the same key")
	}
}

func TestHDKeyAddress(t *testing.T) {
	master, err := NewMasterKey(vectorSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	key, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}

	addr := key.Address()
	if addr.IsZero() {
		t.Error("derived address should not be zero")
	}
	if addr != key.Address() {
		t.Error("Address() should be deterministic")
	}

	// The address must match hashing the public key directly.
	want := crypto.AddressFromPubKey(key.PublicKeyBytes())
	if addr != want {
		t.Errorf("Address() = %s, want %s", addr, want)
	}
}

func TestHDKeySigner(t *testing.T) {
	master, err := NewMasterKey(vectorSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	key, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}

	signer, err := key.Signer()
	if err != nil {
		t.Fatalf("Signer() error: %v", err)
	}
	hash := crypto.Hash([]byte("payload"))
	sig, err := signer.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !crypto.VerifySignature(hash[:], sig, signer.PublicKey()) {
		t.Error("signature from HD-derived key should verify")
	}
}

func TestMnemonicToSignature(t *testing.T) {
	// Full path: phrase -> seed -> master -> address key -> sign -> verify.
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	key, err := master.DeriveAddress(0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}
	if key.Address().IsZero() {
		t.Error("derived address should not be zero")
	}

	signer, err := key.Signer()
	if err != nil {
		t.Fatalf("Signer() error: %v", err)
	}
	hash := crypto.Hash([]byte("mint request"))
	sig, err := signer.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if !crypto.VerifySignature(hash[:], sig, signer.PublicKey()) {
		t.Error("end to end signature should verify")
	}
}
