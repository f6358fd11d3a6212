// Package rpcclient implements the JSON-RPC 2.0 client side used by the
// CLI to talk to a ludex node over HTTP.
package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client posts JSON-RPC 2.0 requests to a single node endpoint. It is safe
// for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	nextID   atomic.Int64
}

// New returns a client with the default request timeout.
func New(endpoint string) *Client {
	return NewWithTimeout(endpoint, defaultTimeout)
}

// NewWithTimeout returns a client with an explicit request timeout.
// Non-positive timeouts fall back to the default.
func NewWithTimeout(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// request is the JSON-RPC 2.0 request envelope.
type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int64       `json:"id"`
}

// response is the JSON-RPC 2.0 response envelope.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int64           `json:"id"`
}

// RPCError is the error object a node returns for a failed call. Callers
// match on Code with errors.As.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call invokes method with params and decodes the result into out. A nil
// out discards the result.
func (c *Client) Call(method string, params, out interface{}) error {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var reply response
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if reply.Error != nil {
		return reply.Error
	}
	if out != nil && reply.Result != nil {
		if err := json.Unmarshal(reply.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}
