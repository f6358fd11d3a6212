package token

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Ledger stores mints and balances.
type Ledger struct {
	db storage.DB
}

// NewLedger creates a token ledger backed by db.
func NewLedger(db storage.DB) *Ledger {
	return &Ledger{db: db}
}

// CreateMint writes a new mint record inside txn. Fails with
// protocol.ErrAlreadyExists if a mint already lives at id.
func (l *Ledger) CreateMint(txn storage.Txn, id types.Address, m Mint) error {
	has, err := txn.Has(mintKey(id))
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("mint %s: %w", id, protocol.ErrAlreadyExists)
	}
	data, err := encodeMint(m)
	if err != nil {
		return err
	}
	return txn.Put(mintKey(id), data)
}

// GetMint reads a mint record inside txn.
func GetMint(txn storage.Txn, id types.Address) (Mint, error) {
	data, err := txn.Get(mintKey(id))
	if errors.Is(err, storage.ErrNotFound) {
		return Mint{}, fmt.Errorf("mint %s: %w", id, protocol.ErrNotFound)
	}
	if err != nil {
		return Mint{}, err
	}
	return decodeMint(data)
}

// Mint reads a mint record outside a transaction.
func (l *Ledger) Mint(id types.Address) (Mint, error) {
	var m Mint
	err := l.db.View(func(txn storage.Txn) error {
		var err error
		m, err = GetMint(txn, id)
		return err
	})
	return m, err
}

// Balance returns the holder's balance of a mint. A missing balance
// record reads as zero.
func (l *Ledger) Balance(mint, holder types.Address) (uint64, error) {
	var bal uint64
	err := l.db.View(func(txn storage.Txn) error {
		var err error
		bal, err = getBalance(txn, mint, holder)
		return err
	})
	return bal, err
}

func getBalance(txn storage.Txn, mint, holder types.Address) (uint64, error) {
	data, err := txn.Get(balanceKey(mint, holder))
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return decodeBalance(data)
}

func putBalance(txn storage.Txn, mint, holder types.Address, amount uint64) error {
	return txn.Put(balanceKey(mint, holder), encodeBalance(amount))
}

// MintTo creates amount new units of the mint and credits them to
// dest. auth must authorize the mint's authority account for msg.
func (l *Ledger) MintTo(txn storage.Txn, id, dest types.Address, amount uint64, auth Authority, msg types.Hash) error {
	m, err := GetMint(txn, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(m.Authority, msg); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	if m.Supply > math.MaxUint64-amount {
		return fmt.Errorf("mint %s: supply overflow: %w", id, protocol.ErrInvalidArgument)
	}

	bal, err := getBalance(txn, id, dest)
	if err != nil {
		return err
	}
	if bal > math.MaxUint64-amount {
		return fmt.Errorf("balance overflow for %s: %w", dest, protocol.ErrInvalidArgument)
	}

	m.Supply += amount
	data, err := encodeMint(m)
	if err != nil {
		return err
	}
	if err := txn.Put(mintKey(id), data); err != nil {
		return err
	}
	return putBalance(txn, id, dest, bal+amount)
}

// Transfer moves amount units of the mint from one holder to another.
// auth must authorize the sending account for msg.
func (l *Ledger) Transfer(txn storage.Txn, id, from, to types.Address, amount uint64, auth Authority, msg types.Hash) error {
	if _, err := GetMint(txn, id); err != nil {
		return err
	}
	if err := auth.Authorize(from, msg); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}

	fromBal, err := getBalance(txn, id, from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return fmt.Errorf("account %s holds %d, needs %d: %w", from, fromBal, amount, protocol.ErrInsufficientFunds)
	}

	if from == to {
		return nil
	}

	toBal, err := getBalance(txn, id, to)
	if err != nil {
		return err
	}
	if toBal > math.MaxUint64-amount {
		return fmt.Errorf("balance overflow for %s: %w", to, protocol.ErrInvalidArgument)
	}

	if err := putBalance(txn, id, from, fromBal-amount); err != nil {
		return err
	}
	return putBalance(txn, id, to, toBal+amount)
}
