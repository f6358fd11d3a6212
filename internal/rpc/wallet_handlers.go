package rpc

import (
	"github.com/Ludex-tech/ludex-chain/internal/wallet"
)

// walletEnabled returns an error when no keystore is configured.
func (s *Server) walletEnabled() *Error {
	if s.keystore == nil {
		return &Error{Code: CodeInvalidRequest, Message: "wallet RPC is disabled on this node"}
	}
	return nil
}

// firstAddress derives the wallet's first external address from its seed.
func firstAddress(seed []byte) (string, error) {
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return "", err
	}
	key, err := master.DeriveAddress(0, wallet.ChangeExternal, 0)
	if err != nil {
		return "", err
	}
	return key.Address().String(), nil
}

func (s *Server) handleWalletCreate(req *Request) (interface{}, *Error) {
	if rpcErr := s.walletEnabled(); rpcErr != nil {
		return nil, rpcErr
	}

	var p WalletCreateParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	if p.Name == "" || p.Password == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "name and password required"}
	}

	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	if err := s.keystore.Create(p.Name, seed, []byte(p.Password), wallet.DefaultParams()); err != nil {
		return nil, &Error{Code: CodeInvalidRequest, Message: err.Error()}
	}

	addr, err := firstAddress(seed)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	if err := s.keystore.AddAccount(p.Name, wallet.AccountEntry{Index: 0, Name: "default", Address: addr}); err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	return WalletCreateResult{Mnemonic: mnemonic, Address: addr}, nil
}

func (s *Server) handleWalletImport(req *Request) (interface{}, *Error) {
	if rpcErr := s.walletEnabled(); rpcErr != nil {
		return nil, rpcErr
	}

	var p WalletImportParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	if p.Name == "" || p.Password == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "name and password required"}
	}
	if !wallet.ValidateMnemonic(p.Mnemonic) {
		return nil, &Error{Code: CodeInvalidParams, Message: "invalid mnemonic"}
	}

	seed, err := wallet.SeedFromMnemonic(p.Mnemonic, "")
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	if err := s.keystore.Create(p.Name, seed, []byte(p.Password), wallet.DefaultParams()); err != nil {
		return nil, &Error{Code: CodeInvalidRequest, Message: err.Error()}
	}

	addr, err := firstAddress(seed)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	if err := s.keystore.AddAccount(p.Name, wallet.AccountEntry{Index: 0, Name: "default", Address: addr}); err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	return WalletImportResult{Address: addr}, nil
}

func (s *Server) handleWalletList(req *Request) (interface{}, *Error) {
	if rpcErr := s.walletEnabled(); rpcErr != nil {
		return nil, rpcErr
	}

	names, err := s.keystore.List()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	if names == nil {
		names = []string{}
	}
	return WalletListResult{Wallets: names}, nil
}
