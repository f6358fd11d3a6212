// Package mint implements the collateralized minting engine. A mint
// locks stable tokens in the vault and issues asset units in one
// atomic step; if either leg fails, neither happens.
package mint

import (
	"fmt"
	"math"

	"github.com/Ludex-tech/ludex-chain/internal/asset"
	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	"github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/internal/vault"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Engine executes asset mints and transfers against the ledger.
type Engine struct {
	db     storage.DB
	tokens *token.Ledger
}

// NewEngine creates a mint engine backed by db.
func NewEngine(db storage.DB, tokens *token.Ledger) *Engine {
	return &Engine{db: db, tokens: tokens}
}

// MintRequest asks to mint asset units to a holder. Auth must carry
// the holder's signature when the asset requires collateral; a mint
// without collateral needs no signature.
type MintRequest struct {
	Asset  types.Address
	Holder types.Address
	Amount uint64
	Auth   token.SignerAuth
}

// collateralDue computes the stable tokens a mint must lock. Zero for
// assets without the collateral option.
func collateralDue(rec asset.Record, amount uint64) (uint64, error) {
	if !rec.CollateralEnabled || amount == 0 {
		return 0, nil
	}
	if rec.CollateralRatio > math.MaxUint64/amount {
		return 0, fmt.Errorf("collateral amount overflows: %w", protocol.ErrInvalidArgument)
	}
	return amount * rec.CollateralRatio, nil
}

func supplyMintID(assetAddr types.Address, rec asset.Record) (types.Address, token.DerivedAuth) {
	id := derive.At(asset.SupplyNamespace, rec.SupplyBump, rec.Game[:], assetAddr[:])
	auth := token.DerivedAuth{Proof: asset.SupplyProof(rec.Game, assetAddr, rec.SupplyBump)}
	return id, auth
}

// issue locks collateral and credits asset units inside txn. payer is
// the account the collateral is debited from; payerAuth authorizes it
// for msg.
func (e *Engine) issue(txn storage.Txn, assetAddr, holder, payer types.Address, amount uint64, payerAuth token.Authority, msg types.Hash) error {
	rec, err := asset.GetRecord(txn, assetAddr)
	if err != nil {
		return err
	}
	if !rec.TradeEnabled {
		return fmt.Errorf("minting disabled for asset %s: %w", assetAddr, protocol.ErrPolicyViolation)
	}

	due, err := collateralDue(rec, amount)
	if err != nil {
		return err
	}
	if due > 0 {
		vrec, err := vault.GetRecord(txn)
		if err != nil {
			return err
		}
		if err := e.tokens.Transfer(txn, vrec.Token, payer, vrec.Account, due, payerAuth, msg); err != nil {
			return err
		}
	}

	if amount == 0 {
		return nil
	}
	if err := asset.AddSupply(txn, assetAddr, amount); err != nil {
		return err
	}
	supplyID, supplyAuth := supplyMintID(assetAddr, rec)
	return e.tokens.MintTo(txn, supplyID, holder, amount, supplyAuth, types.Hash{})
}

// MintAsset mints asset units to the requesting holder, locking the
// asset's collateral from the holder's stable balance.
func (e *Engine) MintAsset(req MintRequest) error {
	msg := protocol.MintSigningHash(req.Asset, req.Holder, req.Amount)

	err := e.db.Update(func(txn storage.Txn) error {
		return e.issue(txn, req.Asset, req.Holder, req.Holder, req.Amount, req.Auth, msg)
	})
	if err != nil {
		return err
	}

	log.Mint.Info().
		Str("asset", req.Asset.String()).
		Str("holder", req.Holder.String()).
		Uint64("amount", req.Amount).
		Msg("Asset minted")
	return nil
}

// MintAssetAsOwner mints asset units to any holder on the authority of
// the game owner or an approved minter. The collateral is locked from
// the caller's stable balance, not the holder's.
func (e *Engine) MintAssetAsOwner(req MintRequest) error {
	caller := crypto.AddressFromPubKey(req.Auth.PubKey)
	msg := protocol.OwnerMintSigningHash(req.Asset, caller, req.Holder, req.Amount)
	if err := req.Auth.Authorize(caller, msg); err != nil {
		return err
	}

	err := e.db.Update(func(txn storage.Txn) error {
		rec, err := asset.GetRecord(txn, req.Asset)
		if err != nil {
			return err
		}
		g, err := game.GetRecord(txn, rec.Game)
		if err != nil {
			return err
		}
		if g.Owner != caller {
			approved, err := asset.HasApproval(txn, req.Asset, caller)
			if err != nil {
				return err
			}
			if !approved {
				return fmt.Errorf("caller %s is neither game owner nor approved minter: %w", caller, protocol.ErrPolicyViolation)
			}
		}
		return e.issue(txn, req.Asset, req.Holder, caller, req.Amount, req.Auth, msg)
	})
	if err != nil {
		return err
	}

	log.Mint.Info().
		Str("asset", req.Asset.String()).
		Str("holder", req.Holder.String()).
		Str("caller", caller.String()).
		Uint64("amount", req.Amount).
		Msg("Asset minted by owner")
	return nil
}

// TransferRequest asks to move asset units between holders. Auth must
// carry the sender's signature.
type TransferRequest struct {
	Asset  types.Address
	From   types.Address
	To     types.Address
	Amount uint64
	Auth   token.SignerAuth
}

// TransferAsset moves asset units between holders. Rejected with
// protocol.ErrPolicyViolation when the asset's trade flag is off.
func (e *Engine) TransferAsset(req TransferRequest) error {
	msg := protocol.TransferSigningHash(req.Asset, req.From, req.To, req.Amount)

	err := e.db.Update(func(txn storage.Txn) error {
		rec, err := asset.GetRecord(txn, req.Asset)
		if err != nil {
			return err
		}
		if !rec.TradeEnabled {
			return fmt.Errorf("asset %s is not tradeable: %w", req.Asset, protocol.ErrPolicyViolation)
		}
		supplyID, _ := supplyMintID(req.Asset, rec)
		return e.tokens.Transfer(txn, supplyID, req.From, req.To, req.Amount, req.Auth, msg)
	})
	if err != nil {
		return err
	}

	log.Mint.Info().
		Str("asset", req.Asset.String()).
		Str("from", req.From.String()).
		Str("to", req.To.String()).
		Uint64("amount", req.Amount).
		Msg("Asset transferred")
	return nil
}

// Balance returns a holder's balance of an asset.
func (e *Engine) Balance(assetAddr, holder types.Address) (uint64, error) {
	var bal uint64
	err := e.db.View(func(txn storage.Txn) error {
		rec, err := asset.GetRecord(txn, assetAddr)
		if err != nil {
			return err
		}
		supplyID, _ := supplyMintID(assetAddr, rec)
		b, err := e.tokens.Balance(supplyID, holder)
		if err != nil {
			return err
		}
		bal = b
		return nil
	})
	return bal, err
}
