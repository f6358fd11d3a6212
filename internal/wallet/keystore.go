// Package wallet implements the Ludex HD wallet: BIP-39 recovery phrases,
// BIP-32 key derivation, and a password-encrypted keystore on disk.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const walletExt = ".wallet"

var (
	// ErrWalletExists is returned when creating a wallet whose name is taken.
	ErrWalletExists = errors.New("wallet already exists")

	// ErrWalletNotFound is returned when the named wallet file does not exist.
	ErrWalletNotFound = errors.New("wallet not found")
)

// AccountEntry records a derived address in the wallet file so it can be
// listed without decrypting the seed. Index is the BIP-44 address index on
// the external chain of account 0.
type AccountEntry struct {
	Index   uint32 `json:"index"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// walletFile is the on-disk JSON document. Only the seed is encrypted; the
// account list and derivation cursor are plaintext metadata.
type walletFile struct {
	Version       int            `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	EncryptedSeed []byte         `json:"encrypted_seed"`
	Accounts      []AccountEntry `json:"accounts"`
	NextIndex     uint32         `json:"next_index"`
}

// Keystore manages named wallet files under a single directory.
type Keystore struct {
	dir string
}

// NewKeystore opens (creating if needed) a keystore directory.
func NewKeystore(dir string) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create keystore directory: %w", err)
	}
	return &Keystore{dir: dir}, nil
}

func (ks *Keystore) walletPath(name string) string {
	return filepath.Join(ks.dir, name+walletExt)
}

// checkName rejects names that would escape the keystore directory.
func checkName(name string) error {
	if name == "" {
		return errors.New("wallet name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid wallet name %q", name)
	}
	return nil
}

// Create encrypts seed under password and writes a new wallet file.
// It fails with ErrWalletExists if the name is already in use.
func (ks *Keystore) Create(name string, seed, password []byte, params EncryptionParams) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := os.Stat(ks.walletPath(name)); err == nil {
		return fmt.Errorf("%w: %s", ErrWalletExists, name)
	}

	sealed, err := Encrypt(seed, password, params)
	if err != nil {
		return fmt.Errorf("encrypt seed: %w", err)
	}

	// Index 0 is reserved for the default account callers add right after.
	wf := &walletFile{
		Version:       1,
		CreatedAt:     time.Now().UTC(),
		EncryptedSeed: sealed,
		Accounts:      []AccountEntry{},
		NextIndex:     1,
	}
	return ks.writeWallet(name, wf)
}

// Load decrypts and returns the wallet seed. Callers must zero the returned
// slice as soon as keys have been derived from it.
func (ks *Keystore) Load(name string, password []byte) ([]byte, error) {
	wf, err := ks.readWallet(name)
	if err != nil {
		return nil, err
	}
	seed, err := Decrypt(wf.EncryptedSeed, password)
	if err != nil {
		return nil, fmt.Errorf("unlock wallet %s: %w", name, err)
	}
	return seed, nil
}

// Delete removes the named wallet file. The seed is unrecoverable afterwards
// unless the user kept the mnemonic.
func (ks *Keystore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(ks.walletPath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrWalletNotFound, name)
		}
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

// List returns the names of all wallets in the keystore, sorted.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, fmt.Errorf("read keystore directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), walletExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), walletExt))
	}
	sort.Strings(names)
	return names, nil
}

// AddAccount records a derived address in the wallet file. An existing entry
// with the same index is replaced rather than duplicated.
func (ks *Keystore) AddAccount(name string, acct AccountEntry) error {
	wf, err := ks.readWallet(name)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range wf.Accounts {
		if existing.Index == acct.Index {
			wf.Accounts[i] = acct
			replaced = true
			break
		}
	}
	if !replaced {
		wf.Accounts = append(wf.Accounts, acct)
	}
	return ks.writeWallet(name, wf)
}

// ListAccounts returns the recorded addresses for the named wallet.
func (ks *Keystore) ListAccounts(name string) ([]AccountEntry, error) {
	wf, err := ks.readWallet(name)
	if err != nil {
		return nil, err
	}
	return wf.Accounts, nil
}

// GetExternalIndex returns the next unused external address index.
func (ks *Keystore) GetExternalIndex(name string) (uint32, error) {
	wf, err := ks.readWallet(name)
	if err != nil {
		return 0, err
	}
	return wf.NextIndex, nil
}

// IncrementExternalIndex advances the address cursor after a derivation.
func (ks *Keystore) IncrementExternalIndex(name string) error {
	wf, err := ks.readWallet(name)
	if err != nil {
		return err
	}
	wf.NextIndex++
	return ks.writeWallet(name, wf)
}

func (ks *Keystore) readWallet(name string) (*walletFile, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(ks.walletPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
		}
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse wallet %s: %w", name, err)
	}
	if wf.Version != 1 {
		return nil, fmt.Errorf("wallet %s: unsupported version %d", name, wf.Version)
	}
	return &wf, nil
}

// writeWallet persists the wallet file with a rename so a crash mid-write
// cannot leave a truncated file behind.
func (ks *Keystore) writeWallet(name string, wf *walletFile) error {
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode wallet: %w", err)
	}
	path := ks.walletPath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}
