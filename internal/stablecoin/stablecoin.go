// Package stablecoin implements the stable token issuer that supplies
// the collateral currency of the asset protocol.
package stablecoin

import (
	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Namespace for the stable token mint derivation.
const Namespace = "mint"

// Decimals of the stable token.
const Decimals = 6

// Issuer manages the stable token mint.
type Issuer struct {
	db     storage.DB
	tokens *token.Ledger
}

// New creates a stable token issuer backed by db.
func New(db storage.DB, tokens *token.Ledger) *Issuer {
	return &Issuer{db: db, tokens: tokens}
}

// TokenID derives the address of the stable token mint.
func TokenID() (types.Address, uint8, error) {
	return derive.Derive(Namespace)
}

// InitToken creates the stable token mint. The mint is
// self-authorized; new supply can only be issued through its
// derivation proof. Fails with protocol.ErrAlreadyExists once created.
func (i *Issuer) InitToken() (types.Address, error) {
	id, _, err := TokenID()
	if err != nil {
		return types.Address{}, err
	}

	err = i.db.Update(func(txn storage.Txn) error {
		return i.tokens.CreateMint(txn, id, token.Mint{Authority: id, Decimals: Decimals})
	})
	if err != nil {
		return types.Address{}, err
	}

	log.Mint.Info().
		Str("token", id.String()).
		Uint8("decimals", Decimals).
		Msg("Stable token initialized")
	return id, nil
}

// MintTokens issues amount stable tokens to dest.
func (i *Issuer) MintTokens(dest types.Address, amount uint64) error {
	id, bump, err := TokenID()
	if err != nil {
		return err
	}
	auth := token.DerivedAuth{Proof: derive.Proof{Namespace: Namespace, Bump: bump}}

	err = i.db.Update(func(txn storage.Txn) error {
		return i.tokens.MintTo(txn, id, dest, amount, auth, types.Hash{})
	})
	if err != nil {
		return err
	}

	log.Mint.Info().
		Str("dest", dest.String()).
		Uint64("amount", amount).
		Msg("Stable tokens minted")
	return nil
}

// Supply returns the outstanding stable token supply.
func (i *Issuer) Supply() (uint64, error) {
	id, _, err := TokenID()
	if err != nil {
		return 0, err
	}
	m, err := i.tokens.Mint(id)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}
