package rpc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Ludex-tech/ludex-chain/internal/asset"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	"github.com/Ludex-tech/ludex-chain/internal/mint"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/stablecoin"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/internal/vault"
	"github.com/Ludex-tech/ludex-chain/internal/wallet"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// newTestServer starts an RPC server over an in-memory ledger.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	db := storage.NewMemory()
	tokens := token.NewLedger(db)
	games := game.NewRegistry(db)
	assets := asset.NewRegistry(db, tokens)
	vaults := vault.New(db, tokens)
	engine := mint.NewEngine(db, tokens)
	issuer := stablecoin.New(db, tokens)

	s := New("127.0.0.1:0", games, assets, vaults, engine, issuer, tokens)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { s.Stop() })

	return s, "http://" + s.Addr()
}

// call posts a JSON-RPC request and decodes the result into out.
// Returns the error object, nil on success.
func call(t *testing.T, url, method string, params, out interface{}) *Error {
	t.Helper()

	body, err := json.Marshal(Request{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", method, err)
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *Error          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			t.Fatalf("decode result: %v", err)
		}
	}
	return nil
}

func mustCall(t *testing.T, url, method string, params, out interface{}) {
	t.Helper()
	if rpcErr := call(t, url, method, params, out); rpcErr != nil {
		t.Fatalf("%s: rpc error %d: %s", method, rpcErr.Code, rpcErr.Message)
	}
}

func newKey(t *testing.T) (*crypto.PrivateKey, types.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return key, crypto.AddressFromPubKey(key.PublicKey())
}

func TestFullProtocolFlow(t *testing.T) {
	_, url := newTestServer(t)

	ownerKey, owner := newKey(t)
	_, holder := newKey(t)

	// Bootstrap the stable token and the vault.
	var stableRes StableInitResult
	mustCall(t, url, "stable_initToken", struct{}{}, &stableRes)

	var vaultRes VaultInfoResult
	mustCall(t, url, "vault_initialize", VaultInitializeParam{Token: stableRes.Token}, &vaultRes)
	if vaultRes.Token != stableRes.Token {
		t.Errorf("vault token = %s, want %s", vaultRes.Token, stableRes.Token)
	}

	// Register a game and an asset.
	var gameRes GameRegisterResult
	mustCall(t, url, "game_register", GameRegisterParam{
		Owner: owner.String(), Name: "Game", Description: "Game Description",
	}, &gameRes)

	gameAddr, err := types.ParseAddress(gameRes.Game)
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}

	regParam := AssetRegisterParam{
		Game:              gameRes.Game,
		Name:              "asset",
		Symbol:            "AST",
		URI:               "URI",
		Price:             10,
		Score:             10,
		TradeEnabled:      true,
		CollateralEnabled: true,
		CollateralRatio:   2,
	}
	msg := protocol.AssetRegisterSigningHash(gameAddr, regParam.Name, regParam.Symbol, regParam.URI,
		regParam.Price, regParam.Score, regParam.TradeEnabled, regParam.CollateralEnabled, regParam.CollateralRatio)
	sig, err := ownerKey.Sign(msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	regParam.PubKey = hex.EncodeToString(ownerKey.PublicKey())
	regParam.Signature = hex.EncodeToString(sig)

	var assetRes AssetRegisterResult
	mustCall(t, url, "asset_register", regParam, &assetRes)

	assetAddr, err := types.ParseAddress(assetRes.Asset)
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}

	// Fund the holder and mint with collateral.
	mustCall(t, url, "stable_mintTokens", StableMintParam{
		Destination: holder.String(), Amount: 10,
	}, nil)

	mintHolderKey, mintHolder := newKey(t)
	mustCall(t, url, "stable_mintTokens", StableMintParam{
		Destination: mintHolder.String(), Amount: 10,
	}, nil)

	mintMsg := protocol.MintSigningHash(assetAddr, mintHolder, 3)
	mintSig, err := mintHolderKey.Sign(mintMsg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	var mintRes AssetMintResult
	mustCall(t, url, "asset_mint", AssetMintParam{
		Asset:     assetRes.Asset,
		Holder:    mintHolder.String(),
		Amount:    3,
		PubKey:    hex.EncodeToString(mintHolderKey.PublicKey()),
		Signature: hex.EncodeToString(mintSig),
	}, &mintRes)
	if mintRes.MintedSupply != 3 {
		t.Errorf("minted supply = %d, want 3", mintRes.MintedSupply)
	}

	// Vault holds ratio * amount = 6.
	var vaultInfo VaultInfoResult
	mustCall(t, url, "vault_getInfo", struct{}{}, &vaultInfo)
	if vaultInfo.Balance != 6 {
		t.Errorf("vault balance = %d, want 6", vaultInfo.Balance)
	}

	// Holder keeps 10-6=4 stable tokens.
	var balRes TokenBalanceResult
	mustCall(t, url, "token_getBalance", TokenBalanceParam{
		Token: stableRes.Token, Address: mintHolder.String(),
	}, &balRes)
	if balRes.Balance != 4 {
		t.Errorf("stable balance = %d, want 4", balRes.Balance)
	}

	// Asset balance query.
	var assetBal AssetBalanceResult
	mustCall(t, url, "asset_getBalance", AssetBalanceParam{
		Asset: assetRes.Asset, Holder: mintHolder.String(),
	}, &assetBal)
	if assetBal.Balance != 3 {
		t.Errorf("asset balance = %d, want 3", assetBal.Balance)
	}

	// Info lookups by (owner, name) and (game, name).
	var gameInfo GameInfoResult
	mustCall(t, url, "game_getInfo", GameInfoParam{Owner: owner.String(), Name: "Game"}, &gameInfo)
	if gameInfo.Game != gameRes.Game || gameInfo.Owner != owner.String() {
		t.Errorf("game info = %+v", gameInfo)
	}

	var assetInfo AssetInfoResult
	mustCall(t, url, "asset_getInfo", AssetInfoParam{Game: gameRes.Game, Name: "asset"}, &assetInfo)
	if assetInfo.Asset != assetRes.Asset || assetInfo.MintedSupply != 3 {
		t.Errorf("asset info = %+v", assetInfo)
	}
}

func TestErrorCodes(t *testing.T) {
	_, url := newTestServer(t)
	_, owner := newKey(t)

	// Unknown method.
	rpcErr := call(t, url, "no_suchMethod", struct{}{}, nil)
	if rpcErr == nil || rpcErr.Code != CodeMethodNotFound {
		t.Errorf("unknown method: err = %+v, want code %d", rpcErr, CodeMethodNotFound)
	}

	// Missing game maps to CodeNotFound.
	rpcErr = call(t, url, "game_getInfo", GameInfoParam{Owner: owner.String(), Name: "ghost"}, nil)
	if rpcErr == nil || rpcErr.Code != CodeNotFound {
		t.Errorf("missing game: err = %+v, want code %d", rpcErr, CodeNotFound)
	}

	// Uninitialized vault maps to CodeNotFound.
	rpcErr = call(t, url, "vault_getInfo", struct{}{}, nil)
	if rpcErr == nil || rpcErr.Code != CodeNotFound {
		t.Errorf("uninitialized vault: err = %+v, want code %d", rpcErr, CodeNotFound)
	}

	// Oversized game name maps to CodeInvalidParams with the generic
	// validation message.
	rpcErr = call(t, url, "game_register", GameRegisterParam{
		Owner: owner.String(), Name: "far-too-long-game-name",
	}, nil)
	if rpcErr == nil || rpcErr.Code != CodeInvalidParams {
		t.Errorf("long name: err = %+v, want code %d", rpcErr, CodeInvalidParams)
	}

	// Duplicate registration maps to CodeAlreadyExists.
	mustCall(t, url, "game_register", GameRegisterParam{Owner: owner.String(), Name: "quest"}, nil)
	rpcErr = call(t, url, "game_register", GameRegisterParam{Owner: owner.String(), Name: "quest"}, nil)
	if rpcErr == nil || rpcErr.Code != CodeAlreadyExists {
		t.Errorf("duplicate game: err = %+v, want code %d", rpcErr, CodeAlreadyExists)
	}

	// Double vault init maps to CodeAlreadyExists.
	var stableRes StableInitResult
	mustCall(t, url, "stable_initToken", struct{}{}, &stableRes)
	mustCall(t, url, "vault_initialize", VaultInitializeParam{Token: stableRes.Token}, nil)
	rpcErr = call(t, url, "vault_initialize", VaultInitializeParam{Token: stableRes.Token}, nil)
	if rpcErr == nil || rpcErr.Code != CodeAlreadyExists {
		t.Errorf("double vault init: err = %+v, want code %d", rpcErr, CodeAlreadyExists)
	}
}

func TestInvalidRequests(t *testing.T) {
	_, url := newTestServer(t)

	// Non-POST is rejected.
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpcResp.Error == nil || rpcResp.Error.Code != CodeInvalidRequest {
		t.Errorf("GET: err = %+v, want code %d", rpcResp.Error, CodeInvalidRequest)
	}

	// Malformed JSON is a parse error.
	resp2, err := http.Post(url, "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp2.Body.Close()
	var rpcResp2 Response
	if err := json.NewDecoder(resp2.Body).Decode(&rpcResp2); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpcResp2.Error == nil || rpcResp2.Error.Code != CodeParseError {
		t.Errorf("bad JSON: err = %+v, want code %d", rpcResp2.Error, CodeParseError)
	}

	// Wrong jsonrpc version.
	body, _ := json.Marshal(map[string]interface{}{"jsonrpc": "1.0", "method": "game_getInfo", "id": 1})
	resp3, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp3.Body.Close()
	var rpcResp3 Response
	if err := json.NewDecoder(resp3.Body).Decode(&rpcResp3); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpcResp3.Error == nil || rpcResp3.Error.Code != CodeInvalidRequest {
		t.Errorf("jsonrpc 1.0: err = %+v, want code %d", rpcResp3.Error, CodeInvalidRequest)
	}
}

func TestWalletRPC(t *testing.T) {
	s, url := newTestServer(t)

	// Disabled without a keystore.
	rpcErr := call(t, url, "wallet_list", struct{}{}, nil)
	if rpcErr == nil || rpcErr.Code != CodeInvalidRequest {
		t.Errorf("wallet without keystore: err = %+v, want code %d", rpcErr, CodeInvalidRequest)
	}

	ks, err := wallet.NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("keystore: %v", err)
	}
	s.SetKeystore(ks)

	var created WalletCreateResult
	mustCall(t, url, "wallet_create", WalletCreateParam{Name: "main", Password: "pw"}, &created)
	if created.Mnemonic == "" || created.Address == "" {
		t.Fatalf("wallet_create result = %+v", created)
	}

	var list WalletListResult
	mustCall(t, url, "wallet_list", struct{}{}, &list)
	if len(list.Wallets) != 1 || list.Wallets[0] != "main" {
		t.Errorf("wallets = %v, want [main]", list.Wallets)
	}

	// Importing the same mnemonic reproduces the address.
	var imported WalletImportResult
	mustCall(t, url, "wallet_import", WalletImportParam{
		Name: "copy", Password: "pw", Mnemonic: created.Mnemonic,
	}, &imported)
	if imported.Address != created.Address {
		t.Errorf("imported address = %s, want %s", imported.Address, created.Address)
	}
}
