// Package game implements the game registry. Each registered game
// lives at an address derived from its owner and name, so a studio
// can register many games and no two owners can collide.
package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Namespace for game address derivation.
const Namespace = "game"

// Field bounds.
const (
	MaxNameLen        = 10
	MaxDescriptionLen = 50
)

// Record is the on-ledger state of a registered game.
type Record struct {
	Owner       types.Address `json:"owner"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Bump        uint8         `json:"bump"`
}

var recordPrefix = []byte("g/")

func recordKey(addr types.Address) []byte {
	key := make([]byte, 0, len(recordPrefix)+types.AddressSize)
	key = append(key, recordPrefix...)
	return append(key, addr[:]...)
}

// Key derives the registry address for an owner's game name.
func Key(owner types.Address, name string) (types.Address, uint8, error) {
	return derive.Derive(Namespace, owner[:], []byte(name))
}

// GetRecord reads a game record inside txn.
func GetRecord(txn storage.Txn, addr types.Address) (Record, error) {
	data, err := txn.Get(recordKey(addr))
	if errors.Is(err, storage.ErrNotFound) {
		return Record{}, fmt.Errorf("game %s: %w", addr, protocol.ErrNotFound)
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode game record: %w", err)
	}
	return rec, nil
}

// Registry manages game records.
type Registry struct {
	db storage.DB
}

// NewRegistry creates a game registry backed by db.
func NewRegistry(db storage.DB) *Registry {
	return &Registry{db: db}
}

// Register creates a new game for owner and returns its derived
// address. Name and description are validated against the protocol
// bounds; a second registration of the same owner and name fails with
// protocol.ErrAlreadyExists.
func (r *Registry) Register(owner types.Address, name, description string) (types.Address, error) {
	if name == "" || len(name) > MaxNameLen {
		return types.Address{}, fmt.Errorf("game name must be 1-%d bytes: %w", MaxNameLen, protocol.ErrInvalidArgument)
	}
	if len(description) > MaxDescriptionLen {
		return types.Address{}, fmt.Errorf("game description exceeds %d bytes: %w", MaxDescriptionLen, protocol.ErrInvalidArgument)
	}

	addr, bump, err := Key(owner, name)
	if err != nil {
		return types.Address{}, err
	}

	err = r.db.Update(func(txn storage.Txn) error {
		has, err := txn.Has(recordKey(addr))
		if err != nil {
			return err
		}
		if has {
			return fmt.Errorf("game %q for owner %s: %w", name, owner, protocol.ErrAlreadyExists)
		}

		rec := Record{Owner: owner, Name: name, Description: description, Bump: bump}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode game record: %w", err)
		}
		return txn.Put(recordKey(addr), data)
	})
	if err != nil {
		return types.Address{}, err
	}

	log.Registry.Info().
		Str("game", addr.String()).
		Str("owner", owner.String()).
		Str("name", name).
		Msg("Game registered")
	return addr, nil
}

// Get reads a game record by address.
func (r *Registry) Get(addr types.Address) (Record, error) {
	var rec Record
	err := r.db.View(func(txn storage.Txn) error {
		var err error
		rec, err = GetRecord(txn, addr)
		return err
	})
	return rec, err
}
