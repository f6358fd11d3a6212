package wallet

import (
	"bytes"
	"testing"
)

// fastParams keeps Argon2 cheap in tests.
func fastParams() EncryptionParams {
	return EncryptionParams{Memory: 64, Iterations: 1, Parallelism: 1}
}

func TestEncryptDecrypt(t *testing.T) {
	cases := []struct {
		name      string
		plaintext []byte
	}{
		{"seed sized", fixedSeed()},
		{"empty", []byte{}},
		{"short", []byte("secret wallet data")},
		{"large", bytes.Repeat([]byte{0xAB, 0xCD}, 5000)},
	}
	password := []byte("strong-password-123")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := Encrypt(tc.plaintext, password, fastParams())
			if err != nil {
				t.Fatalf("Encrypt() error: %v", err)
			}
			opened, err := Decrypt(sealed, password)
			if err != nil {
				t.Fatalf("Decrypt() error: %v", err)
			}
			if !bytes.Equal(opened, tc.plaintext) {
				t.Error("roundtrip changed the plaintext")
			}
		})
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	sealed, err := Encrypt([]byte("secret"), []byte("correct"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := Decrypt(sealed, []byte("wrong")); err == nil {
		t.Error("wrong password should fail authentication")
	}
}

func TestDecrypt_Truncated(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), []byte("pass")); err == nil {
		t.Error("truncated input should fail")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	sealed, err := Encrypt([]byte("data"), []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xFF
	if _, err := Decrypt(sealed, []byte("pass")); err == nil {
		t.Error("flipped ciphertext byte should fail authentication")
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	plaintext := []byte("same data")
	password := []byte("same pass")

	a, err := Encrypt(plaintext, password, fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	b, err := Encrypt(plaintext, password, fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("repeated encryption should produce distinct output")
	}

	for _, sealed := range [][]byte{a, b} {
		opened, err := Decrypt(sealed, password)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if !bytes.Equal(opened, plaintext) {
			t.Error("both encryptions should open to the plaintext")
		}
	}
}

func TestEncrypt_OutputSize(t *testing.T) {
	plaintext := []byte("test")
	sealed, err := Encrypt(plaintext, []byte("pass"), fastParams())
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	// header + 24-byte nonce + plaintext + 16-byte tag.
	want := headerSize + 24 + len(plaintext) + 16
	if len(sealed) != want {
		t.Errorf("sealed length = %d, want %d", len(sealed), want)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Memory != 64*1024 || p.Iterations != 3 || p.Parallelism != 4 {
		t.Errorf("DefaultParams() = %+v, want 64 MiB, 3 iterations, 4 lanes", p)
	}
}
