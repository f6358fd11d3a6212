// Package rpc exposes the ledger over a JSON-RPC 2.0 HTTP API.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ludex-tech/ludex-chain/config"
	"github.com/Ludex-tech/ludex-chain/internal/asset"
	"github.com/Ludex-tech/ludex-chain/internal/game"
	llog "github.com/Ludex-tech/ludex-chain/internal/log"
	"github.com/Ludex-tech/ludex-chain/internal/mint"
	"github.com/Ludex-tech/ludex-chain/internal/stablecoin"
	"github.com/Ludex-tech/ludex-chain/internal/token"
	"github.com/Ludex-tech/ludex-chain/internal/vault"
	"github.com/Ludex-tech/ludex-chain/internal/wallet"
)

// maxBodySize caps request bodies at 1 MB.
const maxBodySize = 1 << 20

// Server serves the node's JSON-RPC methods over HTTP POST.
type Server struct {
	addr        string
	games       *game.Registry
	assets      *asset.Registry
	vaults      *vault.Vault
	engine      *mint.Engine
	issuer      *stablecoin.Issuer
	tokens      *token.Ledger
	keystore    *wallet.Keystore // nil disables wallet RPC
	server      *http.Server
	logger      zerolog.Logger
	ln          net.Listener
	allowedNets []*net.IPNet // empty allows all
	corsOrigins []string     // empty disables CORS headers
}

// New wires the RPC server over the protocol components. rpcCfg, when
// given, supplies the IP allowlist and CORS origins; omitting it allows
// every client IP and sends no CORS headers.
func New(addr string, games *game.Registry, assets *asset.Registry, vaults *vault.Vault,
	engine *mint.Engine, issuer *stablecoin.Issuer, tokens *token.Ledger, rpcCfg ...config.RPCConfig) *Server {

	s := &Server{
		addr:   addr,
		games:  games,
		assets: assets,
		vaults: vaults,
		engine: engine,
		issuer: issuer,
		tokens: tokens,
		logger: llog.WithComponent("rpc"),
	}
	if len(rpcCfg) > 0 {
		s.allowedNets = parseAllowedIPs(rpcCfg[0].AllowedIPs)
		s.corsOrigins = rpcCfg[0].CORSOrigins
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// parseAllowedIPs accepts CIDR blocks and bare IPs, widening the latter to
// single-host networks. Unparseable entries are dropped.
func parseAllowedIPs(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, ipNet)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			continue
		}
		bits := 32
		if ip.To4() == nil {
			bits = 128
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets
}

// Start binds the listener and serves in the background. It returns once
// the port is bound, so Addr() is immediately usable.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("rpc listen: %w", err)
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("RPC server error")
		}
	}()
	return nil
}

// Addr reports the bound listener address, which differs from the
// configured one when listening on port 0.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// SetKeystore enables the wallet_* methods.
func (s *Server) SetKeystore(ks *wallet.Keystore) {
	s.keystore = ks
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	if !s.remoteAllowed(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	s.setCORSHeaders(w, r)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, nil, CodeInvalidRequest, "only POST method is allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		writeError(w, nil, CodeParseError, "failed to read request body")
		return
	}
	if len(body) > maxBodySize {
		writeError(w, nil, CodeInvalidRequest, "request body too large")
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, nil, CodeParseError, "invalid JSON")
		return
	}
	if req.JSONRPC != "2.0" {
		writeError(w, req.ID, CodeInvalidRequest, "jsonrpc must be \"2.0\"")
		return
	}

	result, rpcErr := s.dispatch(&req)
	writeJSON(w, Response{JSONRPC: "2.0", Result: result, Error: rpcErr, ID: req.ID})
}

// remoteAllowed applies the IP allowlist. An empty list admits everyone.
func (s *Server) remoteAllowed(r *http.Request) bool {
	if len(s.allowedNets) == 0 {
		return true
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range s.allowedNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (s *Server) dispatch(req *Request) (interface{}, *Error) {
	switch req.Method {
	case "game_register":
		return s.handleGameRegister(req)
	case "game_getInfo":
		return s.handleGameGetInfo(req)
	case "asset_register":
		return s.handleAssetRegister(req)
	case "asset_getInfo":
		return s.handleAssetGetInfo(req)
	case "asset_mint":
		return s.handleAssetMint(req)
	case "asset_mintAsOwner":
		return s.handleAssetMintAsOwner(req)
	case "asset_approveMinter":
		return s.handleAssetApproveMinter(req)
	case "asset_transfer":
		return s.handleAssetTransfer(req)
	case "asset_getBalance":
		return s.handleAssetGetBalance(req)
	case "vault_initialize":
		return s.handleVaultInitialize(req)
	case "vault_getInfo":
		return s.handleVaultGetInfo(req)
	case "stable_initToken":
		return s.handleStableInitToken(req)
	case "stable_mintTokens":
		return s.handleStableMintTokens(req)
	case "token_getBalance":
		return s.handleTokenGetBalance(req)
	case "wallet_create":
		return s.handleWalletCreate(req)
	case "wallet_import":
		return s.handleWalletImport(req)
	case "wallet_list":
		return s.handleWalletList(req)
	default:
		return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method %q not found", req.Method)}
	}
}

func writeJSON(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	writeJSON(w, Response{
		JSONRPC: "2.0",
		Error:   &Error{Code: code, Message: message},
		ID:      id,
	})
}

// setCORSHeaders answers for configured origins only. "*" opens every
// origin.
func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	if len(s.corsOrigins) == 0 {
		return
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	for _, o := range s.corsOrigins {
		if o != "*" && o != origin {
			continue
		}
		if o == "*" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		return
	}
}

// parseParams re-marshals the decoded params into the method's typed
// struct.
func parseParams(req *Request, target interface{}) *Error {
	if req.Params == nil {
		return &Error{Code: CodeInvalidParams, Message: "params required"}
	}
	data, err := json.Marshal(req.Params)
	if err != nil {
		return &Error{Code: CodeInvalidParams, Message: "invalid params"}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	return nil
}
