// ludex-cli is a command-line client for interacting with a ludexd node.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Ludex-tech/ludex-chain/config"
	"github.com/Ludex-tech/ludex-chain/internal/protocol"
	"github.com/Ludex-tech/ludex-chain/internal/rpc"
	"github.com/Ludex-tech/ludex-chain/internal/rpcclient"
	"github.com/Ludex-tech/ludex-chain/internal/wallet"
	"github.com/Ludex-tech/ludex-chain/pkg/crypto"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
	"golang.org/x/term"
)

// keystoreDir returns the keystore path matching ludexd's layout:
// <datadir>/<network>/keystore
func keystoreDir(dataDir, network string) string {
	return filepath.Join(dataDir, network, "keystore")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	rpcURL := "http://127.0.0.1:8545"
	dataDir := config.DefaultDataDir()
	network := "mainnet"

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			dataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			dataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	// Set address HRP based on network.
	if network == "testnet" {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	ksDir := keystoreDir(dataDir, network)
	client := rpcclient.New(rpcURL)
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "wallet":
		cmdWallet(cmdArgs, ksDir)
	case "game":
		cmdGame(client, cmdArgs, ksDir)
	case "asset":
		cmdAsset(client, cmdArgs, ksDir)
	case "vault":
		cmdVault(client, cmdArgs)
	case "stable":
		cmdStable(client, cmdArgs)
	case "balance":
		cmdBalance(client, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: ludex-cli [global flags] <command> [flags]

Global flags:
  --rpc <url>         RPC endpoint (default: http://127.0.0.1:8545)
  --datadir <path>    Data directory (default: ~/.ludex)
  --network <net>     mainnet (default) or testnet

Commands:
  wallet create --name <n>        Create a new wallet
  wallet import --name <n> --mnemonic "..."
                                  Import wallet from mnemonic
  wallet list                     List wallets
  wallet address --wallet <w>     List wallet addresses
  wallet new-address --wallet <w> Generate a new address

  game register --wallet <w> --name <n> [--description <d>]
                                  Register a game owned by the wallet
  game info <game_address>        Show game details
  game info --owner <addr> --name <n>
                                  Look up a game by owner and name

  asset register --wallet <w> --game <addr> --name <n> --symbol <SYM> [opts]
                                  Register an asset under a game
  asset info <asset_address>      Show asset details
  asset info --game <addr> --name <n>
                                  Look up an asset by game and name
  asset mint --wallet <w> --asset <a> --amount <n> [--holder <addr>]
                                  Mint asset units (pays collateral if required)
  asset mint-owner --wallet <w> --asset <a> --holder <addr> --amount <n>
                                  Mint on behalf of a holder (owner or delegate)
  asset approve --wallet <w> --asset <a> --delegate <addr>
                                  Approve a delegate minter (owner only)
  asset transfer --wallet <w> --asset <a> --to <addr> --amount <n>
                                  Transfer asset units
  asset balance --asset <a> --holder <addr>
                                  Show asset balance

  vault init --token <addr>       Initialize the collateral vault
  vault info                      Show vault account and balance

  stable init                     Initialize the stable token
  stable mint --to <addr> --amount <n>
                                  Mint stable tokens to an address

  balance --token <t> --address <a>
                                  Show token balance
`)
}

// ── wallet ──────────────────────────────────────────────────────────────

func cmdWallet(args []string, ksDir string) {
	if len(args) < 1 {
		fatal("Usage: ludex-cli wallet <create|import|list|address|new-address> [flags]")
	}

	switch args[0] {
	case "create":
		cmdWalletCreate(args[1:], ksDir)
	case "import":
		cmdWalletImport(args[1:], ksDir)
	case "list":
		cmdWalletList(ksDir)
	case "address":
		cmdWalletAddress(args[1:], ksDir)
	case "new-address":
		cmdWalletNewAddress(args[1:], ksDir)
	default:
		fatal("Unknown wallet command: %s\nUsage: ludex-cli wallet <create|import|list|address|new-address> [flags]", args[0])
	}
}

func cmdWalletCreate(args []string, ksDir string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: ludex-cli wallet create --name <name>")
	}

	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}

	fmt.Println("Mnemonic (write this down!):")
	fmt.Printf("  %s\n\n", mnemonic)

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}

	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		fatal("derive seed: %v", err)
	}

	// Derive account 0 address before encrypting.
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		fatal("derive master key: %v", err)
	}
	hdKey, err := master.DeriveAddress(0, wallet.ChangeExternal, 0)
	if err != nil {
		fatal("derive address: %v", err)
	}
	addr := hdKey.Address()

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("create keystore: %v", err)
	}

	if err := ks.Create(*name, seed, password, wallet.DefaultParams()); err != nil {
		fatal("create wallet: %v", err)
	}

	for i := range seed {
		seed[i] = 0
	}

	if err := ks.AddAccount(*name, wallet.AccountEntry{
		Index:   0,
		Name:    "Default",
		Address: addr.String(),
	}); err != nil {
		fatal("add account: %v", err)
	}

	fmt.Printf("\nWallet created: %s\n", *name)
	fmt.Printf("Address: %s\n", addr.String())
}

func cmdWalletImport(args []string, ksDir string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 mnemonic (24 words)")
	fs.Parse(args)

	if *name == "" || *mnemonic == "" {
		fatal("Usage: ludex-cli wallet import --name <name> --mnemonic \"word1 word2 ...\"")
	}

	if !wallet.ValidateMnemonic(*mnemonic) {
		fatal("invalid mnemonic")
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}

	seed, err := wallet.SeedFromMnemonic(*mnemonic, "")
	if err != nil {
		fatal("derive seed: %v", err)
	}

	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		fatal("derive master key: %v", err)
	}
	hdKey, err := master.DeriveAddress(0, wallet.ChangeExternal, 0)
	if err != nil {
		fatal("derive address: %v", err)
	}
	addr := hdKey.Address()

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("create keystore: %v", err)
	}

	if err := ks.Create(*name, seed, password, wallet.DefaultParams()); err != nil {
		fatal("create wallet: %v", err)
	}

	for i := range seed {
		seed[i] = 0
	}

	if err := ks.AddAccount(*name, wallet.AccountEntry{
		Index:   0,
		Name:    "Default",
		Address: addr.String(),
	}); err != nil {
		fatal("add account: %v", err)
	}

	fmt.Printf("Wallet imported: %s\n", *name)
	fmt.Printf("Address: %s\n", addr.String())
}

func cmdWalletList(ksDir string) {
	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}

	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}

	if len(names) == 0 {
		fmt.Println("No wallets found.")
		return
	}

	for _, name := range names {
		fmt.Println(name)
	}
}

func cmdWalletAddress(args []string, ksDir string) {
	fs := flag.NewFlagSet("wallet address", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: ludex-cli wallet address --wallet <name>")
	}

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}

	accounts, err := ks.ListAccounts(*walletName)
	if err != nil {
		fatal("list accounts: %v", err)
	}

	if len(accounts) == 0 {
		fmt.Println("No addresses found.")
		return
	}

	for _, acct := range accounts {
		fmt.Printf("  [%d] %s\n", acct.Index, acct.Address)
	}
}

func cmdWalletNewAddress(args []string, ksDir string) {
	fs := flag.NewFlagSet("wallet new-address", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *walletName == "" {
		fatal("Usage: ludex-cli wallet new-address --wallet <name>")
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}

	seed, err := ks.Load(*walletName, password)
	if err != nil {
		fatal("load wallet: %v", err)
	}

	master, err := wallet.NewMasterKey(seed)
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		fatal("derive master key: %v", err)
	}

	nextIdx, err := ks.GetExternalIndex(*walletName)
	if err != nil {
		fatal("get external index: %v", err)
	}
	// Index 0 is the default account, new addresses start at 1.
	if nextIdx == 0 {
		nextIdx = 1
	}

	hdKey, err := master.DeriveAddress(0, wallet.ChangeExternal, nextIdx)
	if err != nil {
		fatal("derive address: %v", err)
	}
	addr := hdKey.Address()

	if err := ks.AddAccount(*walletName, wallet.AccountEntry{
		Index:   nextIdx,
		Name:    fmt.Sprintf("Address %d", nextIdx),
		Address: addr.String(),
	}); err != nil {
		fatal("add account: %v", err)
	}

	if err := ks.IncrementExternalIndex(*walletName); err != nil {
		fatal("increment index: %v", err)
	}

	fmt.Printf("New address [%d]: %s\n", nextIdx, addr.String())
}

// walletSigner unlocks a wallet and returns the account 0 signing key
// and its address. The seed is zeroed before returning.
func walletSigner(ksDir, walletName string) (*crypto.PrivateKey, types.Address) {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}

	seed, err := ks.Load(walletName, password)
	if err != nil {
		fatal("load wallet: %v", err)
	}

	master, err := wallet.NewMasterKey(seed)
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		fatal("derive master key: %v", err)
	}

	hdKey, err := master.DeriveAddress(0, wallet.ChangeExternal, 0)
	if err != nil {
		fatal("derive address: %v", err)
	}

	signer, err := hdKey.Signer()
	if err != nil {
		fatal("derive signer: %v", err)
	}

	return signer, hdKey.Address()
}

// sign produces hex-encoded pubkey and signature over the given hash.
func sign(signer *crypto.PrivateKey, hash types.Hash) (pubHex, sigHex string) {
	sig, err := signer.Sign(hash[:])
	if err != nil {
		fatal("sign: %v", err)
	}
	return hex.EncodeToString(signer.PublicKey()), hex.EncodeToString(sig)
}

// ── game ────────────────────────────────────────────────────────────────

func cmdGame(client *rpcclient.Client, args []string, ksDir string) {
	if len(args) < 1 {
		fatal("Usage: ludex-cli game <register|info> [flags]")
	}

	switch args[0] {
	case "register":
		cmdGameRegister(client, args[1:], ksDir)
	case "info":
		cmdGameInfo(client, args[1:])
	default:
		fatal("Unknown game command: %s\nUsage: ludex-cli game <register|info> [flags]", args[0])
	}
}

func cmdGameRegister(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("game register", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (game owner)")
	owner := fs.String("owner", "", "Owner address (alternative to --wallet)")
	name := fs.String("name", "", "Game name (max 10 chars)")
	description := fs.String("description", "", "Game description (max 50 chars)")
	fs.Parse(args)

	if *name == "" || (*walletName == "" && *owner == "") {
		fatal("Usage: ludex-cli game register --wallet <w> --name <n> [--description <d>]")
	}

	ownerAddr := *owner
	if ownerAddr == "" {
		ownerAddr = walletAddress(ksDir, *walletName)
	}

	var result rpc.GameRegisterResult
	if err := client.Call("game_register", rpc.GameRegisterParam{
		Owner:       ownerAddr,
		Name:        *name,
		Description: *description,
	}, &result); err != nil {
		fatal("game_register: %v", err)
	}

	fmt.Printf("Game registered: %s\n", result.Game)
	fmt.Printf("Owner: %s\n", ownerAddr)
}

func cmdGameInfo(client *rpcclient.Client, args []string) {
	var param rpc.GameInfoParam

	if len(args) > 0 && !strings.HasPrefix(args[0], "--") {
		param.Game = args[0]
	} else {
		fs := flag.NewFlagSet("game info", flag.ExitOnError)
		owner := fs.String("owner", "", "Owner address")
		name := fs.String("name", "", "Game name")
		fs.Parse(args)
		if *owner == "" || *name == "" {
			fatal("Usage: ludex-cli game info <game_address> | --owner <addr> --name <n>")
		}
		param.Owner = *owner
		param.Name = *name
	}

	var info rpc.GameInfoResult
	if err := client.Call("game_getInfo", param, &info); err != nil {
		fatal("game_getInfo: %v", err)
	}

	fmt.Printf("Game:        %s\n", info.Game)
	fmt.Printf("Owner:       %s\n", info.Owner)
	fmt.Printf("Name:        %s\n", info.Name)
	if info.Description != "" {
		fmt.Printf("Description: %s\n", info.Description)
	}
}

// walletAddress returns the account 0 address without unlocking the wallet.
func walletAddress(ksDir, walletName string) string {
	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}
	accounts, err := ks.ListAccounts(walletName)
	if err != nil {
		fatal("list accounts: %v", err)
	}
	for _, acct := range accounts {
		if acct.Index == 0 {
			return acct.Address
		}
	}
	fatal("wallet %s has no default account", walletName)
	return ""
}

// ── asset ───────────────────────────────────────────────────────────────

func cmdAsset(client *rpcclient.Client, args []string, ksDir string) {
	if len(args) < 1 {
		fatal("Usage: ludex-cli asset <register|info|mint|mint-owner|approve|transfer|balance> [flags]")
	}

	switch args[0] {
	case "register":
		cmdAssetRegister(client, args[1:], ksDir)
	case "info":
		cmdAssetInfo(client, args[1:])
	case "mint":
		cmdAssetMint(client, args[1:], ksDir)
	case "mint-owner":
		cmdAssetMintOwner(client, args[1:], ksDir)
	case "approve":
		cmdAssetApprove(client, args[1:], ksDir)
	case "transfer":
		cmdAssetTransfer(client, args[1:], ksDir)
	case "balance":
		cmdAssetBalance(client, args[1:])
	default:
		fatal("Unknown asset command: %s\nUsage: ludex-cli asset <register|info|mint|mint-owner|approve|transfer|balance> [flags]", args[0])
	}
}

func cmdAssetRegister(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("asset register", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (must own the game)")
	gameStr := fs.String("game", "", "Game address")
	name := fs.String("name", "", "Asset name (max 20 chars)")
	symbol := fs.String("symbol", "", "Asset symbol (max 5 chars)")
	uri := fs.String("uri", "", "Metadata URI (max 20 chars)")
	price := fs.Uint64("price", 0, "Asset price in stable units")
	score := fs.Uint("score", 0, "Asset score (0-255)")
	trade := fs.Bool("trade", true, "Enable trading and minting")
	collateral := fs.Bool("collateral", false, "Require collateral for minting")
	ratio := fs.Uint64("ratio", 0, "Collateral ratio (stable units per asset unit)")
	fs.Parse(args)

	if *walletName == "" || *gameStr == "" || *name == "" || *symbol == "" {
		fatal("Usage: ludex-cli asset register --wallet <w> --game <addr> --name <n> --symbol <SYM> [--uri u] [--price p] [--score s] [--trade] [--collateral --ratio r]")
	}

	game, err := types.ParseAddress(*gameStr)
	if err != nil {
		fatal("invalid game address: %v", err)
	}

	signer, _ := walletSigner(ksDir, *walletName)
	hash := protocol.AssetRegisterSigningHash(game, *name, *symbol, *uri,
		*price, uint8(*score), *trade, *collateral, *ratio)
	pubHex, sigHex := sign(signer, hash)
	signer.Zero()

	var result rpc.AssetRegisterResult
	if err := client.Call("asset_register", rpc.AssetRegisterParam{
		Game:              *gameStr,
		Name:              *name,
		Symbol:            *symbol,
		URI:               *uri,
		Price:             *price,
		Score:             uint8(*score),
		TradeEnabled:      *trade,
		CollateralEnabled: *collateral,
		CollateralRatio:   *ratio,
		PubKey:            pubHex,
		Signature:         sigHex,
	}, &result); err != nil {
		fatal("asset_register: %v", err)
	}

	fmt.Printf("Asset registered: %s\n", result.Asset)
}

func cmdAssetInfo(client *rpcclient.Client, args []string) {
	var param rpc.AssetInfoParam

	if len(args) > 0 && !strings.HasPrefix(args[0], "--") {
		param.Asset = args[0]
	} else {
		fs := flag.NewFlagSet("asset info", flag.ExitOnError)
		game := fs.String("game", "", "Game address")
		name := fs.String("name", "", "Asset name")
		fs.Parse(args)
		if *game == "" || *name == "" {
			fatal("Usage: ludex-cli asset info <asset_address> | --game <addr> --name <n>")
		}
		param.Game = *game
		param.Name = *name
	}

	var info rpc.AssetInfoResult
	if err := client.Call("asset_getInfo", param, &info); err != nil {
		fatal("asset_getInfo: %v", err)
	}

	fmt.Printf("Asset:         %s\n", info.Asset)
	fmt.Printf("Game:          %s\n", info.Game)
	fmt.Printf("Name:          %s\n", info.Name)
	fmt.Printf("Symbol:        %s\n", info.Symbol)
	if info.URI != "" {
		fmt.Printf("URI:           %s\n", info.URI)
	}
	fmt.Printf("Price:         %d\n", info.Price)
	fmt.Printf("Score:         %d\n", info.Score)
	fmt.Printf("Trade:         %v\n", info.TradeEnabled)
	fmt.Printf("Collateral:    %v", info.CollateralEnabled)
	if info.CollateralEnabled {
		fmt.Printf(" (ratio %d)", info.CollateralRatio)
	}
	fmt.Println()
	fmt.Printf("Minted Supply: %d\n", info.MintedSupply)
}

func cmdAssetMint(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("asset mint", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (pays collateral)")
	assetStr := fs.String("asset", "", "Asset address")
	holderStr := fs.String("holder", "", "Holder address (default: wallet address)")
	amount := fs.Uint64("amount", 0, "Units to mint")
	fs.Parse(args)

	if *walletName == "" || *assetStr == "" {
		fatal("Usage: ludex-cli asset mint --wallet <w> --asset <a> --amount <n> [--holder <addr>]")
	}

	asset, err := types.ParseAddress(*assetStr)
	if err != nil {
		fatal("invalid asset address: %v", err)
	}

	signer, walletAddr := walletSigner(ksDir, *walletName)
	holder := walletAddr
	if *holderStr != "" {
		holder, err = types.ParseAddress(*holderStr)
		if err != nil {
			fatal("invalid holder address: %v", err)
		}
	}

	hash := protocol.MintSigningHash(asset, holder, *amount)
	pubHex, sigHex := sign(signer, hash)
	signer.Zero()

	var result rpc.AssetMintResult
	if err := client.Call("asset_mint", rpc.AssetMintParam{
		Asset:     *assetStr,
		Holder:    holder.String(),
		Amount:    *amount,
		PubKey:    pubHex,
		Signature: sigHex,
	}, &result); err != nil {
		fatal("asset_mint: %v", err)
	}

	fmt.Printf("Minted %d units of %s\n", result.Amount, result.Asset)
	fmt.Printf("Holder: %s\n", result.Holder)
	fmt.Printf("Total supply: %d\n", result.MintedSupply)
}

func cmdAssetMintOwner(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("asset mint-owner", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (game owner or delegate)")
	assetStr := fs.String("asset", "", "Asset address")
	holderStr := fs.String("holder", "", "Holder address")
	amount := fs.Uint64("amount", 0, "Units to mint")
	fs.Parse(args)

	if *walletName == "" || *assetStr == "" || *holderStr == "" {
		fatal("Usage: ludex-cli asset mint-owner --wallet <w> --asset <a> --holder <addr> --amount <n>")
	}

	asset, err := types.ParseAddress(*assetStr)
	if err != nil {
		fatal("invalid asset address: %v", err)
	}
	holder, err := types.ParseAddress(*holderStr)
	if err != nil {
		fatal("invalid holder address: %v", err)
	}

	signer, caller := walletSigner(ksDir, *walletName)
	hash := protocol.OwnerMintSigningHash(asset, caller, holder, *amount)
	pubHex, sigHex := sign(signer, hash)
	signer.Zero()

	var result rpc.AssetMintResult
	if err := client.Call("asset_mintAsOwner", rpc.AssetMintParam{
		Asset:     *assetStr,
		Holder:    *holderStr,
		Amount:    *amount,
		PubKey:    pubHex,
		Signature: sigHex,
	}, &result); err != nil {
		fatal("asset_mintAsOwner: %v", err)
	}

	fmt.Printf("Minted %d units of %s\n", result.Amount, result.Asset)
	fmt.Printf("Holder: %s\n", result.Holder)
	fmt.Printf("Total supply: %d\n", result.MintedSupply)
}

func cmdAssetApprove(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("asset approve", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (must own the game)")
	assetStr := fs.String("asset", "", "Asset address")
	delegateStr := fs.String("delegate", "", "Delegate minter address")
	fs.Parse(args)

	if *walletName == "" || *assetStr == "" || *delegateStr == "" {
		fatal("Usage: ludex-cli asset approve --wallet <w> --asset <a> --delegate <addr>")
	}

	asset, err := types.ParseAddress(*assetStr)
	if err != nil {
		fatal("invalid asset address: %v", err)
	}
	delegate, err := types.ParseAddress(*delegateStr)
	if err != nil {
		fatal("invalid delegate address: %v", err)
	}

	signer, _ := walletSigner(ksDir, *walletName)
	hash := protocol.ApproveMinterSigningHash(asset, delegate)
	pubHex, sigHex := sign(signer, hash)
	signer.Zero()

	var result rpc.AssetApproveMinterResult
	if err := client.Call("asset_approveMinter", rpc.AssetApproveMinterParam{
		Asset:     *assetStr,
		Delegate:  *delegateStr,
		PubKey:    pubHex,
		Signature: sigHex,
	}, &result); err != nil {
		fatal("asset_approveMinter: %v", err)
	}

	fmt.Printf("Approved minter %s on asset %s\n", result.Delegate, result.Asset)
}

func cmdAssetTransfer(client *rpcclient.Client, args []string, ksDir string) {
	fs := flag.NewFlagSet("asset transfer", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name (sender)")
	assetStr := fs.String("asset", "", "Asset address")
	toStr := fs.String("to", "", "Recipient address")
	amount := fs.Uint64("amount", 0, "Units to transfer")
	fs.Parse(args)

	if *walletName == "" || *assetStr == "" || *toStr == "" {
		fatal("Usage: ludex-cli asset transfer --wallet <w> --asset <a> --to <addr> --amount <n>")
	}

	asset, err := types.ParseAddress(*assetStr)
	if err != nil {
		fatal("invalid asset address: %v", err)
	}
	to, err := types.ParseAddress(*toStr)
	if err != nil {
		fatal("invalid recipient address: %v", err)
	}

	signer, from := walletSigner(ksDir, *walletName)
	hash := protocol.TransferSigningHash(asset, from, to, *amount)
	pubHex, sigHex := sign(signer, hash)
	signer.Zero()

	var result rpc.AssetTransferResult
	if err := client.Call("asset_transfer", rpc.AssetTransferParam{
		Asset:     *assetStr,
		From:      from.String(),
		To:        *toStr,
		Amount:    *amount,
		PubKey:    pubHex,
		Signature: sigHex,
	}, &result); err != nil {
		fatal("asset_transfer: %v", err)
	}

	fmt.Printf("Transferred %d units of %s\n", result.Amount, result.Asset)
	fmt.Printf("From: %s\n", result.From)
	fmt.Printf("To:   %s\n", result.To)
}

func cmdAssetBalance(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("asset balance", flag.ExitOnError)
	assetStr := fs.String("asset", "", "Asset address")
	holderStr := fs.String("holder", "", "Holder address")
	fs.Parse(args)

	if *assetStr == "" || *holderStr == "" {
		fatal("Usage: ludex-cli asset balance --asset <a> --holder <addr>")
	}

	var result rpc.AssetBalanceResult
	if err := client.Call("asset_getBalance", rpc.AssetBalanceParam{
		Asset:  *assetStr,
		Holder: *holderStr,
	}, &result); err != nil {
		fatal("asset_getBalance: %v", err)
	}

	fmt.Printf("Balance: %d\n", result.Balance)
}

// ── vault ───────────────────────────────────────────────────────────────

func cmdVault(client *rpcclient.Client, args []string) {
	if len(args) < 1 {
		fatal("Usage: ludex-cli vault <init|info> [flags]")
	}

	switch args[0] {
	case "init":
		cmdVaultInit(client, args[1:])
	case "info":
		cmdVaultInfo(client)
	default:
		fatal("Unknown vault command: %s\nUsage: ludex-cli vault <init|info> [flags]", args[0])
	}
}

func cmdVaultInit(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("vault init", flag.ExitOnError)
	token := fs.String("token", "", "Collateral token address")
	fs.Parse(args)

	if *token == "" {
		fatal("Usage: ludex-cli vault init --token <addr>")
	}

	var result rpc.VaultInfoResult
	if err := client.Call("vault_initialize", rpc.VaultInitializeParam{Token: *token}, &result); err != nil {
		fatal("vault_initialize: %v", err)
	}

	fmt.Printf("Vault initialized\n")
	fmt.Printf("Token:     %s\n", result.Token)
	fmt.Printf("Account:   %s\n", result.Account)
	fmt.Printf("Authority: %s\n", result.Authority)
}

func cmdVaultInfo(client *rpcclient.Client) {
	var result rpc.VaultInfoResult
	if err := client.Call("vault_getInfo", nil, &result); err != nil {
		fatal("vault_getInfo: %v", err)
	}

	fmt.Printf("Token:     %s\n", result.Token)
	fmt.Printf("Account:   %s\n", result.Account)
	fmt.Printf("Authority: %s\n", result.Authority)
	fmt.Printf("Balance:   %d\n", result.Balance)
}

// ── stable ──────────────────────────────────────────────────────────────

func cmdStable(client *rpcclient.Client, args []string) {
	if len(args) < 1 {
		fatal("Usage: ludex-cli stable <init|mint> [flags]")
	}

	switch args[0] {
	case "init":
		cmdStableInit(client)
	case "mint":
		cmdStableMint(client, args[1:])
	default:
		fatal("Unknown stable command: %s\nUsage: ludex-cli stable <init|mint> [flags]", args[0])
	}
}

func cmdStableInit(client *rpcclient.Client) {
	var result rpc.StableInitResult
	if err := client.Call("stable_initToken", nil, &result); err != nil {
		fatal("stable_initToken: %v", err)
	}

	fmt.Printf("Stable token initialized\n")
	fmt.Printf("Token:    %s\n", result.Token)
	fmt.Printf("Decimals: %d\n", result.Decimals)
}

func cmdStableMint(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("stable mint", flag.ExitOnError)
	to := fs.String("to", "", "Destination address")
	amount := fs.Uint64("amount", 0, "Units to mint")
	fs.Parse(args)

	if *to == "" || *amount == 0 {
		fatal("Usage: ludex-cli stable mint --to <addr> --amount <n>")
	}

	var result rpc.StableMintResult
	if err := client.Call("stable_mintTokens", rpc.StableMintParam{
		Destination: *to,
		Amount:      *amount,
	}, &result); err != nil {
		fatal("stable_mintTokens: %v", err)
	}

	fmt.Printf("Minted %d stable units to %s\n", result.Amount, result.Destination)
	fmt.Printf("Total supply: %d\n", result.Supply)
}

// ── balance ─────────────────────────────────────────────────────────────

func cmdBalance(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	token := fs.String("token", "", "Token address")
	address := fs.String("address", "", "Account address")
	fs.Parse(args)

	if *token == "" || *address == "" {
		fatal("Usage: ludex-cli balance --token <t> --address <a>")
	}

	var result rpc.TokenBalanceResult
	if err := client.Call("token_getBalance", rpc.TokenBalanceParam{
		Token:   *token,
		Address: *address,
	}, &result); err != nil {
		fatal("token_getBalance: %v", err)
	}

	fmt.Printf("Balance: %d\n", result.Balance)
}

// ── Password helper ─────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
