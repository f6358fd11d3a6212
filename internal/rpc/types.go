package rpc

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// Protocol error codes.
	CodeNotFound          = -32000
	CodeAlreadyExists     = -32001
	CodePolicyViolation   = -32002
	CodeInsufficientFunds = -32003
	CodeUnauthorized      = -32004
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Game param/result types ─────────────────────────────────────────────

// GameRegisterParam is used by game_register.
type GameRegisterParam struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GameRegisterResult is returned by game_register.
type GameRegisterResult struct {
	Game string `json:"game"`
}

// GameInfoParam is used by game_getInfo. Either the game address or
// the (owner, name) pair may be given.
type GameInfoParam struct {
	Game  string `json:"game,omitempty"`
	Owner string `json:"owner,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GameInfoResult is returned by game_getInfo.
type GameInfoResult struct {
	Game        string `json:"game"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ── Asset param/result types ────────────────────────────────────────────

// AssetRegisterParam is used by asset_register.
type AssetRegisterParam struct {
	Game              string `json:"game"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	URI               string `json:"uri"`
	Price             uint64 `json:"price"`
	Score             uint8  `json:"score"`
	TradeEnabled      bool   `json:"trade_enabled"`
	CollateralEnabled bool   `json:"collateral_enabled"`
	CollateralRatio   uint64 `json:"collateral_ratio"`
	PubKey            string `json:"pubkey"`
	Signature         string `json:"signature"`
}

// AssetRegisterResult is returned by asset_register.
type AssetRegisterResult struct {
	Asset string `json:"asset"`
}

// AssetInfoParam is used by asset_getInfo. Either the asset address or
// the (game, name) pair may be given.
type AssetInfoParam struct {
	Asset string `json:"asset,omitempty"`
	Game  string `json:"game,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AssetInfoResult is returned by asset_getInfo.
type AssetInfoResult struct {
	Asset             string `json:"asset"`
	Game              string `json:"game"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	URI               string `json:"uri"`
	Price             uint64 `json:"price"`
	Score             uint8  `json:"score"`
	TradeEnabled      bool   `json:"trade_enabled"`
	CollateralEnabled bool   `json:"collateral_enabled"`
	CollateralRatio   uint64 `json:"collateral_ratio"`
	MintedSupply      uint64 `json:"minted_supply"`
}

// AssetMintParam is used by asset_mint and asset_mintAsOwner. PubKey
// and Signature authorize the collateral debit; they may be omitted on
// asset_mint when the asset requires no collateral.
type AssetMintParam struct {
	Asset     string `json:"asset"`
	Holder    string `json:"holder"`
	Amount    uint64 `json:"amount"`
	PubKey    string `json:"pubkey,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// AssetMintResult is returned by asset_mint and asset_mintAsOwner.
type AssetMintResult struct {
	Asset        string `json:"asset"`
	Holder       string `json:"holder"`
	Amount       uint64 `json:"amount"`
	MintedSupply uint64 `json:"minted_supply"`
}

// AssetApproveMinterParam is used by asset_approveMinter.
type AssetApproveMinterParam struct {
	Asset     string `json:"asset"`
	Delegate  string `json:"delegate"`
	PubKey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// AssetApproveMinterResult is returned by asset_approveMinter.
type AssetApproveMinterResult struct {
	Asset    string `json:"asset"`
	Delegate string `json:"delegate"`
}

// AssetTransferParam is used by asset_transfer.
type AssetTransferParam struct {
	Asset     string `json:"asset"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	PubKey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// AssetTransferResult is returned by asset_transfer.
type AssetTransferResult struct {
	Asset  string `json:"asset"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// AssetBalanceParam is used by asset_getBalance.
type AssetBalanceParam struct {
	Asset  string `json:"asset"`
	Holder string `json:"holder"`
}

// AssetBalanceResult is returned by asset_getBalance.
type AssetBalanceResult struct {
	Asset   string `json:"asset"`
	Holder  string `json:"holder"`
	Balance uint64 `json:"balance"`
}

// ── Vault param/result types ────────────────────────────────────────────

// VaultInitializeParam is used by vault_initialize.
type VaultInitializeParam struct {
	Token string `json:"token"`
}

// VaultInfoResult is returned by vault_initialize and vault_getInfo.
type VaultInfoResult struct {
	Token     string `json:"token"`
	Account   string `json:"account"`
	Authority string `json:"authority"`
	Balance   uint64 `json:"balance"`
}

// ── Stable token param/result types ─────────────────────────────────────

// StableInitResult is returned by stable_initToken.
type StableInitResult struct {
	Token    string `json:"token"`
	Decimals uint8  `json:"decimals"`
}

// StableMintParam is used by stable_mintTokens.
type StableMintParam struct {
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

// StableMintResult is returned by stable_mintTokens.
type StableMintResult struct {
	Token       string `json:"token"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
	Supply      uint64 `json:"supply"`
}

// ── Token param/result types ────────────────────────────────────────────

// TokenBalanceParam is used by token_getBalance.
type TokenBalanceParam struct {
	Token   string `json:"token"`
	Address string `json:"address"`
}

// TokenBalanceResult is returned by token_getBalance.
type TokenBalanceResult struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// ── Wallet param/result types ───────────────────────────────────────────

// WalletCreateParam is used by wallet_create.
type WalletCreateParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// WalletCreateResult is returned by wallet_create.
type WalletCreateResult struct {
	Mnemonic string `json:"mnemonic"`
	Address  string `json:"address"`
}

// WalletImportParam is used by wallet_import.
type WalletImportParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Mnemonic string `json:"mnemonic"`
}

// WalletImportResult is returned by wallet_import.
type WalletImportResult struct {
	Address string `json:"address"`
}

// WalletListResult is returned by wallet_list.
type WalletListResult struct {
	Wallets []string `json:"wallets"`
}
