package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltSize = 32
	keySize  = chacha20poly1305.KeySize

	// headerSize covers salt(32) + memory(4) + iterations(4) + parallelism(1).
	headerSize = saltSize + 4 + 4 + 1
)

// EncryptionParams are the Argon2id cost parameters. They are stored in the
// ciphertext header so decryption rebuilds the same key without external
// configuration.
type EncryptionParams struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns the cost used for new wallets: 64 MiB, 3 passes,
// 4 lanes.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
	}
}

// Encrypt seals plaintext under password using Argon2id key derivation and
// XChaCha20-Poly1305. Layout:
//
//	salt | memory | iterations | parallelism | nonce | ciphertext
//
// Integer fields are little-endian.
func Encrypt(plaintext, password []byte, params EncryptionParams) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, keySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, headerSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. A wrong password, truncated input, or any
// tampering with the ciphertext fails the authentication check.
func Decrypt(data, password []byte) ([]byte, error) {
	if len(data) < headerSize+chacha20poly1305.NonceSizeX {
		return nil, errors.New("encrypted data too short")
	}

	salt := data[:saltSize]
	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(data[saltSize : saltSize+4]),
		Iterations:  binary.LittleEndian.Uint32(data[saltSize+4 : saltSize+8]),
		Parallelism: data[saltSize+8],
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return nil, errors.New("invalid encryption parameters")
	}

	key := argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, keySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := data[headerSize : headerSize+aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, data[headerSize+aead.NonceSize():], nil)
	if err != nil {
		return nil, errors.New("decryption failed: wrong password or corrupted data")
	}
	return plaintext, nil
}

// zeroBytes overwrites key material after use.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
