package chainrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/ethereum/go-ethereum/rpc"
)

// Failure kinds. Every error returned by the client is an *Error whose Kind is
// one of these, so callers branch with errors.Is.
var (
	// ErrTransport covers connection failures and timeouts. Retryable.
	ErrTransport = errors.New("chain-data transport failure")

	// ErrProtocol covers non-2xx responses and bodies that are not valid JSON-RPC.
	// Retryable.
	ErrProtocol = errors.New("chain-data protocol failure")

	// ErrRPC is a JSON-RPC error object returned by the remote node.
	ErrRPC = errors.New("chain-data rpc error")

	// ErrNotFound is the node's "invalid address or key" error (code -5) in
	// answer to a transaction lookup. Typed wrappers turn it into an absent value.
	ErrNotFound = errors.New("chain-data object not found")
)

// Error describes a failed call. Code holds the JSON-RPC error code for ErrRPC
// and ErrNotFound, the HTTP status for ErrProtocol, zero otherwise.
type Error struct {
	Kind    error
	Method  string
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Method, e.Kind)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Retryable reports whether err is a transport or protocol failure, the kinds
// another endpoint may not share.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrProtocol)
}

// rpcErrorBody is the error member of a JSON-RPC response, as sent in the body
// of non-2xx replies by bitcoind style nodes.
type rpcErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Classify maps an error of the go-ethereum rpc client onto *Error. endpoint is
// the redacted URL substituted into transport errors so the access token never
// ends up in a message.
func Classify(method, endpoint string, err error) *Error {
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		var body rpcErrorBody
		if jsonErr := json.Unmarshal(httpErr.Body, &body); jsonErr == nil && body.Error != nil {
			return rpcError(method, body.Error.Code, body.Error.Message, nil)
		}

		return &Error{Kind: ErrProtocol, Method: method, Code: httpErr.StatusCode, Message: httpErr.Status}
	}

	var codeErr rpc.Error
	if errors.As(err, &codeErr) {
		return rpcError(method, codeErr.ErrorCode(), codeErr.Error(), err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: ErrTransport, Method: method, Err: &url.Error{Op: urlErr.Op, URL: endpoint, Err: urlErr.Err}}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return &Error{Kind: ErrTransport, Method: method, Err: err}
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, rpc.ErrNoResult) {
		return &Error{Kind: ErrProtocol, Method: method, Err: err}
	}

	return &Error{Kind: ErrTransport, Method: method, Err: err}
}

// rpcError scopes code -5 by method: an unknown transaction is absent, an
// address the node rejects is invalid. Anything else stays ErrRPC.
func rpcError(method string, code int, message string, cause error) *Error {
	kind := ErrRPC
	if code == int(btcjson.ErrRPCInvalidAddressOrKey) {
		switch method {
		case "gettransaction", "getrawtransaction":
			kind = ErrNotFound
		case "listunspent":
			cause = chain.ErrInvalidAddress
		}
	}

	return &Error{Kind: kind, Method: method, Code: code, Message: message, Err: cause}
}
