package rpc

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Ludex-tech/ludex-chain/internal/asset"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	"github.com/Ludex-tech/ludex-chain/internal/mint"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/stablecoin"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// errorToRPC maps protocol sentinel errors onto JSON-RPC error codes.
func errorToRPC(err error) *Error {
	code := CodeInternalError
	switch {
	case errors.Is(err, protocol.ErrNotFound):
		code = CodeNotFound
	case errors.Is(err, protocol.ErrAlreadyExists):
		code = CodeAlreadyExists
	case errors.Is(err, protocol.ErrInvalidArgument):
		code = CodeInvalidParams
	case errors.Is(err, protocol.ErrPolicyViolation):
		code = CodePolicyViolation
	case errors.Is(err, protocol.ErrInsufficientFunds):
		code = CodeInsufficientFunds
	case errors.Is(err, protocol.ErrUnauthorized):
		code = CodeUnauthorized
	}
	return &Error{Code: code, Message: err.Error()}
}

// parseAddr decodes a bech32 or hex address parameter.
func parseAddr(field, value string) (types.Address, *Error) {
	addr, err := types.ParseAddress(value)
	if err != nil {
		return types.Address{}, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid %s: %v", field, err)}
	}
	return addr, nil
}

// parseAuth decodes hex pubkey and signature parameters.
func parseAuth(pubKeyHex, sigHex string) (token.SignerAuth, *Error) {
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return token.SignerAuth{}, &Error{Code: CodeInvalidParams, Message: "invalid pubkey: must be hex"}
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return token.SignerAuth{}, &Error{Code: CodeInvalidParams, Message: "invalid signature: must be hex"}
	}
	return token.SignerAuth{PubKey: pubKey, Signature: sig}, nil
}

// ── Game handlers ───────────────────────────────────────────────────────

func (s *Server) handleGameRegister(req *Request) (interface{}, *Error) {
	var p GameRegisterParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	owner, rpcErr := parseAddr("owner", p.Owner)
	if rpcErr != nil {
		return nil, rpcErr
	}

	addr, err := s.games.Register(owner, p.Name, p.Description)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return GameRegisterResult{Game: addr.String()}, nil
}

func (s *Server) handleGameGetInfo(req *Request) (interface{}, *Error) {
	var p GameInfoParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}

	var addr types.Address
	switch {
	case p.Game != "":
		a, rpcErr := parseAddr("game", p.Game)
		if rpcErr != nil {
			return nil, rpcErr
		}
		addr = a
	case p.Owner != "" && p.Name != "":
		owner, rpcErr := parseAddr("owner", p.Owner)
		if rpcErr != nil {
			return nil, rpcErr
		}
		a, _, err := game.Key(owner, p.Name)
		if err != nil {
			return nil, errorToRPC(err)
		}
		addr = a
	default:
		return nil, &Error{Code: CodeInvalidParams, Message: "game or (owner, name) required"}
	}

	rec, err := s.games.Get(addr)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return GameInfoResult{
		Game:        addr.String(),
		Owner:       rec.Owner.String(),
		Name:        rec.Name,
		Description: rec.Description,
	}, nil
}

// ── Asset handlers ──────────────────────────────────────────────────────

func (s *Server) handleAssetRegister(req *Request) (interface{}, *Error) {
	var p AssetRegisterParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	gameAddr, rpcErr := parseAddr("game", p.Game)
	if rpcErr != nil {
		return nil, rpcErr
	}
	auth, rpcErr := parseAuth(p.PubKey, p.Signature)
	if rpcErr != nil {
		return nil, rpcErr
	}

	addr, err := s.assets.Register(asset.RegisterParams{
		Game:              gameAddr,
		Name:              p.Name,
		Symbol:            p.Symbol,
		URI:               p.URI,
		Price:             p.Price,
		Score:             p.Score,
		TradeEnabled:      p.TradeEnabled,
		CollateralEnabled: p.CollateralEnabled,
		CollateralRatio:   p.CollateralRatio,
	}, auth)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return AssetRegisterResult{Asset: addr.String()}, nil
}

func (s *Server) handleAssetGetInfo(req *Request) (interface{}, *Error) {
	var p AssetInfoParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}

	var addr types.Address
	switch {
	case p.Asset != "":
		a, rpcErr := parseAddr("asset", p.Asset)
		if rpcErr != nil {
			return nil, rpcErr
		}
		addr = a
	case p.Game != "" && p.Name != "":
		gameAddr, rpcErr := parseAddr("game", p.Game)
		if rpcErr != nil {
			return nil, rpcErr
		}
		a, _, err := asset.Key(gameAddr, p.Name)
		if err != nil {
			return nil, errorToRPC(err)
		}
		addr = a
	default:
		return nil, &Error{Code: CodeInvalidParams, Message: "asset or (game, name) required"}
	}

	rec, err := s.assets.Get(addr)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return AssetInfoResult{
		Asset:             addr.String(),
		Game:              rec.Game.String(),
		Name:              rec.Name,
		Symbol:            rec.Symbol,
		URI:               rec.URI,
		Price:             rec.Price,
		Score:             rec.Score,
		TradeEnabled:      rec.TradeEnabled,
		CollateralEnabled: rec.CollateralEnabled,
		CollateralRatio:   rec.CollateralRatio,
		MintedSupply:      rec.MintedSupply,
	}, nil
}

func (s *Server) parseMintParam(req *Request) (mint.MintRequest, *Error) {
	var p AssetMintParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return mint.MintRequest{}, rpcErr
	}
	assetAddr, rpcErr := parseAddr("asset", p.Asset)
	if rpcErr != nil {
		return mint.MintRequest{}, rpcErr
	}
	holder, rpcErr := parseAddr("holder", p.Holder)
	if rpcErr != nil {
		return mint.MintRequest{}, rpcErr
	}
	auth, rpcErr := parseAuth(p.PubKey, p.Signature)
	if rpcErr != nil {
		return mint.MintRequest{}, rpcErr
	}
	return mint.MintRequest{Asset: assetAddr, Holder: holder, Amount: p.Amount, Auth: auth}, nil
}

func (s *Server) mintResult(r mint.MintRequest) (interface{}, *Error) {
	supply, err := s.assets.Supply(r.Asset)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return AssetMintResult{
		Asset:        r.Asset.String(),
		Holder:       r.Holder.String(),
		Amount:       r.Amount,
		MintedSupply: supply,
	}, nil
}

func (s *Server) handleAssetMint(req *Request) (interface{}, *Error) {
	r, rpcErr := s.parseMintParam(req)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.MintAsset(r); err != nil {
		return nil, errorToRPC(err)
	}
	return s.mintResult(r)
}

func (s *Server) handleAssetMintAsOwner(req *Request) (interface{}, *Error) {
	r, rpcErr := s.parseMintParam(req)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.MintAssetAsOwner(r); err != nil {
		return nil, errorToRPC(err)
	}
	return s.mintResult(r)
}

func (s *Server) handleAssetApproveMinter(req *Request) (interface{}, *Error) {
	var p AssetApproveMinterParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	assetAddr, rpcErr := parseAddr("asset", p.Asset)
	if rpcErr != nil {
		return nil, rpcErr
	}
	delegate, rpcErr := parseAddr("delegate", p.Delegate)
	if rpcErr != nil {
		return nil, rpcErr
	}
	auth, rpcErr := parseAuth(p.PubKey, p.Signature)
	if rpcErr != nil {
		return nil, rpcErr
	}

	if err := s.assets.ApproveMinter(assetAddr, delegate, auth); err != nil {
		return nil, errorToRPC(err)
	}
	return AssetApproveMinterResult{Asset: assetAddr.String(), Delegate: delegate.String()}, nil
}

func (s *Server) handleAssetTransfer(req *Request) (interface{}, *Error) {
	var p AssetTransferParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	assetAddr, rpcErr := parseAddr("asset", p.Asset)
	if rpcErr != nil {
		return nil, rpcErr
	}
	from, rpcErr := parseAddr("from", p.From)
	if rpcErr != nil {
		return nil, rpcErr
	}
	to, rpcErr := parseAddr("to", p.To)
	if rpcErr != nil {
		return nil, rpcErr
	}
	auth, rpcErr := parseAuth(p.PubKey, p.Signature)
	if rpcErr != nil {
		return nil, rpcErr
	}

	err := s.engine.TransferAsset(mint.TransferRequest{
		Asset:  assetAddr,
		From:   from,
		To:     to,
		Amount: p.Amount,
		Auth:   auth,
	})
	if err != nil {
		return nil, errorToRPC(err)
	}
	return AssetTransferResult{
		Asset:  assetAddr.String(),
		From:   from.String(),
		To:     to.String(),
		Amount: p.Amount,
	}, nil
}

func (s *Server) handleAssetGetBalance(req *Request) (interface{}, *Error) {
	var p AssetBalanceParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	assetAddr, rpcErr := parseAddr("asset", p.Asset)
	if rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := parseAddr("holder", p.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}

	bal, err := s.engine.Balance(assetAddr, holder)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return AssetBalanceResult{Asset: assetAddr.String(), Holder: holder.String(), Balance: bal}, nil
}

// ── Vault handlers ──────────────────────────────────────────────────────

func (s *Server) handleVaultInitialize(req *Request) (interface{}, *Error) {
	var p VaultInitializeParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	tokenID, rpcErr := parseAddr("token", p.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}

	rec, err := s.vaults.Initialize(tokenID)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return VaultInfoResult{
		Token:     rec.Token.String(),
		Account:   rec.Account.String(),
		Authority: rec.Authority.String(),
		Balance:   0,
	}, nil
}

func (s *Server) handleVaultGetInfo(req *Request) (interface{}, *Error) {
	rec, err := s.vaults.Get()
	if err != nil {
		return nil, errorToRPC(err)
	}
	bal, err := s.vaults.Balance()
	if err != nil {
		return nil, errorToRPC(err)
	}
	return VaultInfoResult{
		Token:     rec.Token.String(),
		Account:   rec.Account.String(),
		Authority: rec.Authority.String(),
		Balance:   bal,
	}, nil
}

// ── Stable token handlers ───────────────────────────────────────────────

func (s *Server) handleStableInitToken(req *Request) (interface{}, *Error) {
	id, err := s.issuer.InitToken()
	if err != nil {
		return nil, errorToRPC(err)
	}
	return StableInitResult{Token: id.String(), Decimals: stablecoin.Decimals}, nil
}

func (s *Server) handleStableMintTokens(req *Request) (interface{}, *Error) {
	var p StableMintParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	dest, rpcErr := parseAddr("destination", p.Destination)
	if rpcErr != nil {
		return nil, rpcErr
	}

	if err := s.issuer.MintTokens(dest, p.Amount); err != nil {
		return nil, errorToRPC(err)
	}
	id, _, err := stablecoin.TokenID()
	if err != nil {
		return nil, errorToRPC(err)
	}
	supply, err := s.issuer.Supply()
	if err != nil {
		return nil, errorToRPC(err)
	}
	return StableMintResult{
		Token:       id.String(),
		Destination: dest.String(),
		Amount:      p.Amount,
		Supply:      supply,
	}, nil
}

// ── Token handlers ──────────────────────────────────────────────────────

func (s *Server) handleTokenGetBalance(req *Request) (interface{}, *Error) {
	var p TokenBalanceParam
	if rpcErr := parseParams(req, &p); rpcErr != nil {
		return nil, rpcErr
	}
	tokenID, rpcErr := parseAddr("token", p.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := parseAddr("address", p.Address)
	if rpcErr != nil {
		return nil, rpcErr
	}

	bal, err := s.tokens.Balance(tokenID, addr)
	if err != nil {
		return nil, errorToRPC(err)
	}
	return TokenBalanceResult{Token: tokenID.String(), Address: addr.String(), Balance: bal}, nil
}
