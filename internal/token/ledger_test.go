package token

import (
	"errors"
	"testing"

	"github.com/Ludex-tech/ludex-chain/internal/derive"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// newDerivedMint creates a self-authorized mint at a derived address
// and returns its id and the authority proof.
func newDerivedMint(t *testing.T, l *Ledger, namespace string, decimals uint8) (types.Address, DerivedAuth) {
	t.Helper()

	id, bump, err := derive.Derive(namespace)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	err = l.db.Update(func(txn storage.Txn) error {
		return l.CreateMint(txn, id, Mint{Authority: id, Decimals: decimals})
	})
	if err != nil {
		t.Fatalf("CreateMint: %v", err)
	}
	return id, DerivedAuth{Proof: derive.Proof{Namespace: namespace, Bump: bump}}
}

func mintTo(t *testing.T, l *Ledger, id, dest types.Address, amount uint64, auth Authority) {
	t.Helper()
	err := l.db.Update(func(txn storage.Txn) error {
		return l.MintTo(txn, id, dest, amount, auth, types.Hash{})
	})
	if err != nil {
		t.Fatalf("MintTo: %v", err)
	}
}

func TestCreateMint_Duplicate(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, _ := newDerivedMint(t, l, "dup", 0)

	err := l.db.Update(func(txn storage.Txn) error {
		return l.CreateMint(txn, id, Mint{Authority: id})
	})
	if !errors.Is(err, protocol.ErrAlreadyExists) {
		t.Errorf("duplicate CreateMint: err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetMint_Missing(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	var id types.Address
	id[0] = 0x42

	_, err := l.Mint(id)
	if !errors.Is(err, protocol.ErrNotFound) {
		t.Errorf("missing mint: err = %v, want ErrNotFound", err)
	}
}

func TestMintTo(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, auth := newDerivedMint(t, l, "coin", 6)

	var holder types.Address
	holder[0] = 0x01

	mintTo(t, l, id, holder, 500, auth)
	mintTo(t, l, id, holder, 250, auth)

	bal, err := l.Balance(id, holder)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal != 750 {
		t.Errorf("balance = %d, want 750", bal)
	}

	m, err := l.Mint(id)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if m.Supply != 750 {
		t.Errorf("supply = %d, want 750", m.Supply)
	}
}

func TestMintTo_WrongAuthority(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, _ := newDerivedMint(t, l, "coin", 0)

	var holder types.Address
	holder[0] = 0x01

	bad := DerivedAuth{Proof: derive.Proof{Namespace: "other"}}
	err := l.db.Update(func(txn storage.Txn) error {
		return l.MintTo(txn, id, holder, 10, bad, types.Hash{})
	})
	if !errors.Is(err, protocol.ErrUnauthorized) {
		t.Errorf("wrong authority: err = %v, want ErrUnauthorized", err)
	}

	// Rejected mint must not move supply.
	m, _ := l.Mint(id)
	if m.Supply != 0 {
		t.Errorf("supply = %d after rejected mint, want 0", m.Supply)
	}
}

func TestMintTo_KeyedAuthority(t *testing.T) {
	l := NewLedger(storage.NewMemory())

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	authority := crypto.AddressFromPubKey(key.PublicKey())

	var id types.Address
	id[0] = 0x05
	err = l.db.Update(func(txn storage.Txn) error {
		return l.CreateMint(txn, id, Mint{Authority: authority})
	})
	if err != nil {
		t.Fatalf("CreateMint: %v", err)
	}

	msg := crypto.Hash([]byte("mint op"))
	sig, err := key.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var holder types.Address
	holder[0] = 0x02
	err = l.db.Update(func(txn storage.Txn) error {
		return l.MintTo(txn, id, holder, 7, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, msg)
	})
	if err != nil {
		t.Fatalf("MintTo with signer auth: %v", err)
	}

	// A signature over a different message must not authorize.
	other := crypto.Hash([]byte("other op"))
	err = l.db.Update(func(txn storage.Txn) error {
		return l.MintTo(txn, id, holder, 7, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, other)
	})
	if !errors.Is(err, protocol.ErrUnauthorized) {
		t.Errorf("replayed signature: err = %v, want ErrUnauthorized", err)
	}
}

func TestTransfer(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, auth := newDerivedMint(t, l, "coin", 0)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.AddressFromPubKey(key.PublicKey())
	var to types.Address
	to[0] = 0x09

	mintTo(t, l, id, from, 100, auth)

	msg := protocol.TransferSigningHash(id, from, to, 40)
	sig, err := key.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	err = l.db.Update(func(txn storage.Txn) error {
		return l.Transfer(txn, id, from, to, 40, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, msg)
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	fromBal, _ := l.Balance(id, from)
	toBal, _ := l.Balance(id, to)
	if fromBal != 60 || toBal != 40 {
		t.Errorf("balances = %d/%d, want 60/40", fromBal, toBal)
	}
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, auth := newDerivedMint(t, l, "coin", 0)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.AddressFromPubKey(key.PublicKey())
	var to types.Address
	to[0] = 0x09

	mintTo(t, l, id, from, 10, auth)

	msg := protocol.TransferSigningHash(id, from, to, 11)
	sig, err := key.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	err = l.db.Update(func(txn storage.Txn) error {
		return l.Transfer(txn, id, from, to, 11, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, msg)
	})
	if !errors.Is(err, protocol.ErrInsufficientFunds) {
		t.Errorf("overdraw: err = %v, want ErrInsufficientFunds", err)
	}
}

func TestTransfer_ZeroAmount(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, auth := newDerivedMint(t, l, "coin", 0)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.AddressFromPubKey(key.PublicKey())
	var to types.Address
	to[0] = 0x09
	mintTo(t, l, id, from, 5, auth)

	msg := protocol.TransferSigningHash(id, from, to, 0)
	sig, err := key.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	err = l.db.Update(func(txn storage.Txn) error {
		return l.Transfer(txn, id, from, to, 0, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, msg)
	})
	if err != nil {
		t.Fatalf("zero transfer: %v", err)
	}

	fromBal, _ := l.Balance(id, from)
	if fromBal != 5 {
		t.Errorf("balance = %d after zero transfer, want 5", fromBal)
	}
}

func TestTransfer_SelfKeepsBalance(t *testing.T) {
	l := NewLedger(storage.NewMemory())
	id, auth := newDerivedMint(t, l, "coin", 0)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.AddressFromPubKey(key.PublicKey())
	mintTo(t, l, id, from, 5, auth)

	msg := protocol.TransferSigningHash(id, from, from, 3)
	sig, err := key.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	err = l.db.Update(func(txn storage.Txn) error {
		return l.Transfer(txn, id, from, from, 3, SignerAuth{PubKey: key.PublicKey(), Signature: sig}, msg)
	})
	if err != nil {
		t.Fatalf("self transfer: %v", err)
	}

	bal, _ := l.Balance(id, from)
	if bal != 5 {
		t.Errorf("balance = %d after self transfer, want 5", bal)
	}
}
