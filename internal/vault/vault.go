// Package vault implements the collateral vault: a singleton derived
// account that holds the stable tokens locked behind collateralized
// asset mints.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Derivation namespaces.
const (
	AccountNamespace   = "token_vault"
	AuthorityNamespace = "vault_authority"
)

var recordKey = []byte("v/")

// Record is the on-ledger state of the collateral vault. Account is
// the derived address holding collateral; Authority is the derived
// address that would sign a future release.
type Record struct {
	Token         types.Address `json:"token"`
	Account       types.Address `json:"account"`
	AccountBump   uint8         `json:"accountBump"`
	Authority     types.Address `json:"authority"`
	AuthorityBump uint8         `json:"authorityBump"`
}

// GetRecord reads the vault record inside txn.
func GetRecord(txn storage.Txn) (Record, error) {
	data, err := txn.Get(recordKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Record{}, fmt.Errorf("vault: %w", protocol.ErrNotFound)
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode vault record: %w", err)
	}
	return rec, nil
}

// Vault manages the collateral vault singleton.
type Vault struct {
	db     storage.DB
	tokens *token.Ledger
}

// New creates a vault manager backed by db.
func New(db storage.DB, tokens *token.Ledger) *Vault {
	return &Vault{db: db, tokens: tokens}
}

// Initialize creates the vault for the given stable token mint. The
// mint must exist, and the vault can only be initialized once.
func (v *Vault) Initialize(tokenID types.Address) (Record, error) {
	account, accountBump, err := derive.Derive(AccountNamespace)
	if err != nil {
		return Record{}, err
	}
	authority, authorityBump, err := derive.Derive(AuthorityNamespace)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Token:         tokenID,
		Account:       account,
		AccountBump:   accountBump,
		Authority:     authority,
		AuthorityBump: authorityBump,
	}

	err = v.db.Update(func(txn storage.Txn) error {
		if _, err := token.GetMint(txn, tokenID); err != nil {
			return err
		}

		has, err := txn.Has(recordKey)
		if err != nil {
			return err
		}
		if has {
			return fmt.Errorf("vault: %w", protocol.ErrAlreadyExists)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode vault record: %w", err)
		}
		return txn.Put(recordKey, data)
	})
	if err != nil {
		return Record{}, err
	}

	log.Vault.Info().
		Str("token", tokenID.String()).
		Str("account", account.String()).
		Msg("Vault initialized")
	return rec, nil
}

// Get reads the vault record.
func (v *Vault) Get() (Record, error) {
	var rec Record
	err := v.db.View(func(txn storage.Txn) error {
		var err error
		rec, err = GetRecord(txn)
		return err
	})
	return rec, err
}

// Balance returns the amount of collateral currently locked.
func (v *Vault) Balance() (uint64, error) {
	rec, err := v.Get()
	if err != nil {
		return 0, err
	}
	return v.tokens.Balance(rec.Token, rec.Account)
}
