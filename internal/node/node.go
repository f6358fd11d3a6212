// Package node provides a reusable ledger node that can be embedded in any
// binary (daemon, tests, tooling).
package node

import (
	"fmt"
	"os"

	"github.com/Ludex-tech/ludex-chain/config"
	"github.com/Ludex-tech/ludex-chain/internal/asset"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	llog "github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/mint"
	"github.com/Ludex-tech/ludex-chain/internal/rpc"
	"github.com/Ludex-tech/ludex-chain/internal/stablecoin"
	"github.com/Ludex-tech/ludex-chain/internal/storage"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/internal/vault"
	"github.com/Ludex-tech/ludex-chain/internal/wallet"
	"github.com/Ludex-tech/ludex-chain/pkg/types"
	"github.com/rs/zerolog"
)

// Node is a fully-initialized ledger node.
type Node struct {
	cfg    *config.Config
	logger zerolog.Logger

	// Core
	db     storage.DB
	tokens *token.Ledger
	games  *game.Registry
	assets *asset.Registry
	vaults *vault.Vault
	engine *mint.Engine
	issuer *stablecoin.Issuer

	// RPC
	rpcServer *rpc.Server
}

// New creates and initializes a new Node. It performs all setup steps
// (logger, storage, registries, RPC) and leaves the node serving requests
// once Start() is called.
func New(cfg *config.Config) (*Node, error) {
	// ── 1. Set address HRP ──────────────────────────────────────────
	if cfg.Network == config.Testnet {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	// ── 2. Init logger ──────────────────────────────────────────────
	logFile := cfg.Log.File
	if logFile == "" {
		logsDir := cfg.LogsDir()
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		logFile = logsDir + "/ludex.log"
	}
	if err := llog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger := llog.WithComponent("node")

	logger.Info().
		Str("network", string(cfg.Network)).
		Msg("Starting Ludex Node")

	// ── 3. Open storage ─────────────────────────────────────────────
	db, err := storage.NewBadger(cfg.StateDir())
	if err != nil {
		return nil, fmt.Errorf("open database at %s: %w", cfg.StateDir(), err)
	}
	logger.Info().Str("path", cfg.StateDir()).Msg("Database opened")

	// ── 4. Ledger and registries ────────────────────────────────────
	tokens := token.NewLedger(db)
	games := game.NewRegistry(db)
	assets := asset.NewRegistry(db, tokens)
	vaults := vault.New(db, tokens)
	engine := mint.NewEngine(db, tokens)
	issuer := stablecoin.New(db, tokens)

	// ── 5. RPC server ───────────────────────────────────────────────
	var rpcServer *rpc.Server
	if cfg.RPC.Enabled {
		rpcAddr := fmt.Sprintf("%s:%d", cfg.RPC.Addr, cfg.RPC.Port)
		rpcServer = rpc.New(rpcAddr, games, assets, vaults, engine, issuer, tokens, cfg.RPC)
		if err := rpcServer.Start(); err != nil {
			db.Close()
			return nil, fmt.Errorf("start RPC at %s: %w", rpcAddr, err)
		}
		logger.Info().Str("addr", rpcServer.Addr()).Msg("RPC server started")

		// Wallet RPC.
		if cfg.Wallet.Enabled {
			ks, ksErr := wallet.NewKeystore(cfg.KeystoreDir())
			if ksErr != nil {
				rpcServer.Stop()
				db.Close()
				return nil, fmt.Errorf("create wallet keystore: %w", ksErr)
			}
			rpcServer.SetKeystore(ks)
			logger.Info().Str("path", cfg.KeystoreDir()).Msg("Wallet RPC enabled")
		}
	} else {
		if cfg.Wallet.Enabled {
			logger.Warn().Msg("wallet.enabled is true but RPC is disabled; wallet RPC endpoints unavailable")
		}
		logger.Warn().Msg("RPC disabled by config")
	}

	return &Node{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		tokens:    tokens,
		games:     games,
		assets:    assets,
		vaults:    vaults,
		engine:    engine,
		issuer:    issuer,
		rpcServer: rpcServer,
	}, nil
}

// Start logs the node's readiness. All serving components are already
// running after New; this hook exists for symmetry with Stop.
func (n *Node) Start() error {
	n.logger.Info().
		Bool("rpc", n.rpcServer != nil).
		Msg("Node started successfully")
	return nil
}

// Stop performs graceful shutdown in reverse order.
func (n *Node) Stop() {
	if n.rpcServer != nil {
		n.rpcServer.Stop()
	}
	if n.db != nil {
		n.db.Close()
	}
	n.logger.Info().Msg("Goodbye!")
}

// RPCAddr returns the address the RPC server is listening on.
func (n *Node) RPCAddr() string {
	if n.rpcServer == nil {
		return ""
	}
	return n.rpcServer.Addr()
}

// DB exposes the underlying state database.
func (n *Node) DB() storage.DB {
	return n.db
}

// Tokens exposes the token ledger.
func (n *Node) Tokens() *token.Ledger {
	return n.tokens
}
