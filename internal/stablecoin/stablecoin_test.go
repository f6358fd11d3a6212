package stablecoin

import (
	"errors"
	"testing"

	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

func TestInitToken(t *testing.T) {
	db := storage.NewMemory()
	tokens := token.NewLedger(db)
	i := New(db, tokens)

	id, err := i.InitToken()
	if err != nil {
		t.Fatalf("InitToken: %v", err)
	}

	want, _, err := TokenID()
	if err != nil {
		t.Fatalf("TokenID: %v", err)
	}
	if id != want {
		t.Errorf("token id = %s, want %s", id, want)
	}

	m, err := tokens.Mint(id)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if m.Authority != id {
		t.Errorf("authority = %s, want self-authorized %s", m.Authority, id)
	}
	if m.Decimals != Decimals {
		t.Errorf("decimals = %d, want %d", m.Decimals, Decimals)
	}
}

func TestInitToken_Twice(t *testing.T) {
	db := storage.NewMemory()
	i := New(db, token.NewLedger(db))

	if _, err := i.InitToken(); err != nil {
		t.Fatalf("InitToken: %v", err)
	}
	_, err := i.InitToken()
	if !errors.Is(err, protocol.ErrAlreadyExists) {
		t.Errorf("second InitToken: err = %v, want ErrAlreadyExists", err)
	}
}

func TestMintTokens(t *testing.T) {
	db := storage.NewMemory()
	tokens := token.NewLedger(db)
	i := New(db, tokens)

	id, err := i.InitToken()
	if err != nil {
		t.Fatalf("InitToken: %v", err)
	}

	var dest types.Address
	dest[0] = 0x01
	if err := i.MintTokens(dest, 1000); err != nil {
		t.Fatalf("MintTokens: %v", err)
	}
	if err := i.MintTokens(dest, 500); err != nil {
		t.Fatalf("MintTokens: %v", err)
	}

	bal, err := tokens.Balance(id, dest)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal != 1500 {
		t.Errorf("balance = %d, want 1500", bal)
	}

	supply, err := i.Supply()
	if err != nil {
		t.Fatalf("Supply: %v", err)
	}
	if supply != 1500 {
		t.Errorf("supply = %d, want 1500", supply)
	}
}

func TestMintTokens_BeforeInit(t *testing.T) {
	db := storage.NewMemory()
	i := New(db, token.NewLedger(db))

	var dest types.Address
	dest[0] = 0x01
	err := i.MintTokens(dest, 1)
	if !errors.Is(err, protocol.ErrNotFound) {
		t.Errorf("mint before init: err = %v, want ErrNotFound", err)
	}
}
