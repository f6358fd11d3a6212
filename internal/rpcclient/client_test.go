package rpcclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// echoServer answers every request with the configured result or error.
func echoServer(t *testing.T, result interface{}, rpcErr *RPCError) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.JSONRPC != "2.0" {
			t.Errorf("jsonrpc = %q, want 2.0", req.JSONRPC)
		}

		resp := response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
		if rpcErr == nil {
			data, err := json.Marshal(result)
			if err != nil {
				t.Errorf("marshal result: %v", err)
			}
			resp.Result = data
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestCall(t *testing.T) {
	type balanceResult struct {
		Balance uint64 `json:"balance"`
	}

	srv := echoServer(t, balanceResult{Balance: 42}, nil)
	defer srv.Close()

	c := New(srv.URL)
	var got balanceResult
	if err := c.Call("token_getBalance", map[string]string{"address": "x"}, &got); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.Balance != 42 {
		t.Errorf("balance = %d, want 42", got.Balance)
	}
}

func TestCall_NilResult(t *testing.T) {
	srv := echoServer(t, map[string]string{"ok": "yes"}, nil)
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Call("stable_initToken", nil, nil); err != nil {
		t.Fatalf("Call with nil result: %v", err)
	}
}

func TestCall_RPCError(t *testing.T) {
	srv := echoServer(t, nil, &RPCError{Code: -32000, Message: "record not found"})
	defer srv.Close()

	c := New(srv.URL)
	err := c.Call("game_getInfo", map[string]string{"game": "x"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("err = %T, want *RPCError", err)
	}
	if rpcErr.Code != -32000 || rpcErr.Message != "record not found" {
		t.Errorf("rpc error = %+v", rpcErr)
	}
}

func TestCall_BadEndpoint(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if err := c.Call("game_getInfo", nil, nil); err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}

func TestCall_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Call("game_getInfo", nil, nil); err == nil {
		t.Error("expected error for malformed response")
	}
}
