// Package asset implements the asset registry. An asset belongs to a
// game, carries trading and collateral policy, and owns a supply mint
// at a derived address that only the mint engine can grow.
package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	"github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Derivation namespaces.
const (
	Namespace       = "asset"
	SupplyNamespace = "asset_supply"
)

// Field bounds.
const (
	MaxNameLen   = 20
	MaxSymbolLen = 5
	MaxURILen    = 20
)

// Record is the on-ledger state of a registered asset.
type Record struct {
	Game              types.Address `json:"game"`
	Name              string        `json:"name"`
	Symbol            string        `json:"symbol"`
	URI               string        `json:"uri"`
	Price             uint64        `json:"price"`
	Score             uint8         `json:"score"`
	TradeEnabled      bool          `json:"tradeEnabled"`
	CollateralEnabled bool          `json:"collateralEnabled"`
	CollateralRatio   uint64        `json:"collateralRatio"`
	MintedSupply      uint64        `json:"mintedSupply"`
	Bump              uint8         `json:"bump"`
	SupplyBump        uint8         `json:"supplyBump"`
}

var (
	recordPrefix   = []byte("a/")
	approvalPrefix = []byte("ma/")
)

func recordKey(addr types.Address) []byte {
	key := make([]byte, 0, len(recordPrefix)+types.AddressSize)
	key = append(key, recordPrefix...)
	return append(key, addr[:]...)
}

func approvalKey(asset, delegate types.Address) []byte {
	key := make([]byte, 0, len(approvalPrefix)+2*types.AddressSize)
	key = append(key, approvalPrefix...)
	key = append(key, asset[:]...)
	return append(key, delegate[:]...)
}

// Key derives the registry address of an asset within a game.
func Key(gameAddr types.Address, name string) (types.Address, uint8, error) {
	return derive.Derive(Namespace, []byte(name), gameAddr[:])
}

// SupplyKey derives the address of an asset's supply mint.
func SupplyKey(gameAddr, assetAddr types.Address) (types.Address, uint8, error) {
	return derive.Derive(SupplyNamespace, gameAddr[:], assetAddr[:])
}

// SupplyProof builds the derivation proof that authorizes minting from
// an asset's self-authorized supply mint.
func SupplyProof(gameAddr, assetAddr types.Address, bump uint8) derive.Proof {
	return derive.Proof{
		Namespace: SupplyNamespace,
		Seeds:     [][]byte{gameAddr[:], assetAddr[:]},
		Bump:      bump,
	}
}

// GetRecord reads an asset record inside txn.
func GetRecord(txn storage.Txn, addr types.Address) (Record, error) {
	data, err := txn.Get(recordKey(addr))
	if errors.Is(err, storage.ErrNotFound) {
		return Record{}, fmt.Errorf("asset %s: %w", addr, protocol.ErrNotFound)
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode asset record: %w", err)
	}
	return rec, nil
}

// AddSupply increments the recorded minted supply of an asset inside
// txn. Kept in lockstep with the supply mint by the minting engine.
func AddSupply(txn storage.Txn, addr types.Address, amount uint64) error {
	rec, err := GetRecord(txn, addr)
	if err != nil {
		return err
	}
	if rec.MintedSupply > math.MaxUint64-amount {
		return fmt.Errorf("asset %s: supply overflow: %w", addr, protocol.ErrInvalidArgument)
	}
	rec.MintedSupply += amount

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode asset record: %w", err)
	}
	return txn.Put(recordKey(addr), data)
}

// HasApproval reports whether delegate holds owner-mint rights on the
// asset.
func HasApproval(txn storage.Txn, assetAddr, delegate types.Address) (bool, error) {
	return txn.Has(approvalKey(assetAddr, delegate))
}

// Registry manages asset records and their supply mints.
type Registry struct {
	db     storage.DB
	tokens *token.Ledger
}

// NewRegistry creates an asset registry backed by db.
func NewRegistry(db storage.DB, tokens *token.Ledger) *Registry {
	return &Registry{db: db, tokens: tokens}
}

// RegisterParams carries the fields of a new asset.
type RegisterParams struct {
	Game              types.Address
	Name              string
	Symbol            string
	URI               string
	Price             uint64
	Score             uint8
	TradeEnabled      bool
	CollateralEnabled bool
	CollateralRatio   uint64
}

// Register adds an asset to a game and creates its supply mint. Only
// the game owner may register; auth must carry the owner's signature
// over the asset's registration hash.
func (r *Registry) Register(p RegisterParams, auth token.SignerAuth) (types.Address, error) {
	if p.Name == "" || len(p.Name) > MaxNameLen {
		return types.Address{}, fmt.Errorf("asset name must be 1-%d bytes: %w", MaxNameLen, protocol.ErrInvalidArgument)
	}
	if len(p.Symbol) > MaxSymbolLen {
		return types.Address{}, fmt.Errorf("asset symbol exceeds %d bytes: %w", MaxSymbolLen, protocol.ErrInvalidArgument)
	}
	if len(p.URI) > MaxURILen {
		return types.Address{}, fmt.Errorf("asset uri exceeds %d bytes: %w", MaxURILen, protocol.ErrInvalidArgument)
	}
	if p.CollateralEnabled && p.CollateralRatio == 0 {
		return types.Address{}, fmt.Errorf("collateral ratio must be positive when collateral is enabled: %w", protocol.ErrInvalidArgument)
	}

	addr, bump, err := Key(p.Game, p.Name)
	if err != nil {
		return types.Address{}, err
	}
	supplyAddr, supplyBump, err := SupplyKey(p.Game, addr)
	if err != nil {
		return types.Address{}, err
	}

	caller := crypto.AddressFromPubKey(auth.PubKey)
	msg := protocol.AssetRegisterSigningHash(p.Game, p.Name, p.Symbol, p.URI,
		p.Price, p.Score, p.TradeEnabled, p.CollateralEnabled, p.CollateralRatio)
	if err := auth.Authorize(caller, msg); err != nil {
		return types.Address{}, err
	}

	err = r.db.Update(func(txn storage.Txn) error {
		g, err := game.GetRecord(txn, p.Game)
		if err != nil {
			return err
		}
		if g.Owner != caller {
			return fmt.Errorf("only game owner may register assets: %w", protocol.ErrPolicyViolation)
		}

		has, err := txn.Has(recordKey(addr))
		if err != nil {
			return err
		}
		if has {
			return fmt.Errorf("asset %q in game %s: %w", p.Name, p.Game, protocol.ErrAlreadyExists)
		}

		rec := Record{
			Game:              p.Game,
			Name:              p.Name,
			Symbol:            p.Symbol,
			URI:               p.URI,
			Price:             p.Price,
			Score:             p.Score,
			TradeEnabled:      p.TradeEnabled,
			CollateralEnabled: p.CollateralEnabled,
			CollateralRatio:   p.CollateralRatio,
			Bump:              bump,
			SupplyBump:        supplyBump,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode asset record: %w", err)
		}
		if err := txn.Put(recordKey(addr), data); err != nil {
			return err
		}

		// Supply mint is self-authorized so new units can only come
		// from code holding the derivation seeds.
		return r.tokens.CreateMint(txn, supplyAddr, token.Mint{Authority: supplyAddr, Decimals: 0})
	})
	if err != nil {
		return types.Address{}, err
	}

	log.Registry.Info().
		Str("asset", addr.String()).
		Str("game", p.Game.String()).
		Str("name", p.Name).
		Bool("trade", p.TradeEnabled).
		Bool("collateral", p.CollateralEnabled).
		Msg("Asset registered")
	return addr, nil
}

// ApproveMinter grants delegate owner-mint rights on an asset. Only
// the game owner may approve.
func (r *Registry) ApproveMinter(assetAddr, delegate types.Address, auth token.SignerAuth) error {
	caller := crypto.AddressFromPubKey(auth.PubKey)
	msg := protocol.ApproveMinterSigningHash(assetAddr, delegate)
	if err := auth.Authorize(caller, msg); err != nil {
		return err
	}

	err := r.db.Update(func(txn storage.Txn) error {
		rec, err := GetRecord(txn, assetAddr)
		if err != nil {
			return err
		}
		g, err := game.GetRecord(txn, rec.Game)
		if err != nil {
			return err
		}
		if g.Owner != caller {
			return fmt.Errorf("only game owner may approve minters: %w", protocol.ErrPolicyViolation)
		}
		return txn.Put(approvalKey(assetAddr, delegate), []byte{1})
	})
	if err != nil {
		return err
	}

	log.Registry.Info().
		Str("asset", assetAddr.String()).
		Str("delegate", delegate.String()).
		Msg("Minter approved")
	return nil
}

// Get reads an asset record by address.
func (r *Registry) Get(addr types.Address) (Record, error) {
	var rec Record
	err := r.db.View(func(txn storage.Txn) error {
		var err error
		rec, err = GetRecord(txn, addr)
		return err
	})
	return rec, err
}

// Supply returns the minted supply of an asset.
func (r *Registry) Supply(addr types.Address) (uint64, error) {
	rec, err := r.Get(addr)
	if err != nil {
		return 0, err
	}
	return rec.MintedSupply, nil
}
