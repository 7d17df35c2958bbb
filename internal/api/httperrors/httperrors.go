package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
	"github.com/chapool/go-hdpay/internal/wallet/chainrpc"
	"github.com/chapool/go-hdpay/internal/wallet/provider"
	"github.com/labstack/echo/v4"
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code  int    `json:"status"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

const (
	TypeGeneric            = "generic"
	TypeUnsupported        = "UNSUPPORTED_CONFIGURATION"
	TypeNotConfigured      = "CONFIGURATION"
	TypeSeed               = "SEED"
	TypeUpstreamTransport  = "UPSTREAM_TRANSPORT"
	TypeUpstreamProtocol   = "UPSTREAM_PROTOCOL"
	TypeUpstreamRPC        = "UPSTREAM_RPC"
	TypeDeriveAtNotAllowed = "DERIVE_AT_UNSUPPORTED"
)

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{Code: code, Type: errorType, Title: title}
}

func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return NewHTTPError(e.Code, TypeGeneric, fmt.Sprint(e.Message))
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// FromError maps wallet errors onto HTTP errors. Titles never carry the wrapped
// error text, which may name files or endpoints.
func FromError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return NewFromEcho(echoErr)
	}

	var fbErr *provider.FallbackError
	if errors.As(err, &fbErr) {
		return fromFallbackError(fbErr)
	}

	switch {
	case errors.Is(err, provider.ErrDeriveAtUnsupported):
		return NewHTTPError(http.StatusConflict, TypeDeriveAtNotAllowed, "Addresses of this currency come from the node wallet.")
	case errors.Is(err, chain.ErrUnsupportedConfiguration):
		return NewHTTPError(http.StatusBadRequest, TypeUnsupported, "Unsupported currency, network or argument.")
	case errors.Is(err, chain.ErrSeed):
		return NewHTTPError(http.StatusServiceUnavailable, TypeSeed, "Seed could not be opened.")
	case errors.Is(err, chain.ErrConfiguration):
		return NewHTTPError(http.StatusServiceUnavailable, TypeNotConfigured, "Currency is not fully configured.")
	case errors.Is(err, chainrpc.ErrTransport):
		return NewHTTPError(http.StatusBadGateway, TypeUpstreamTransport, "Chain data source unreachable.")
	case errors.Is(err, chainrpc.ErrProtocol):
		return NewHTTPError(http.StatusBadGateway, TypeUpstreamProtocol, "Chain data source sent an invalid response.")
	case errors.Is(err, chainrpc.ErrRPC):
		return NewHTTPError(http.StatusBadGateway, TypeUpstreamRPC, "Chain data source rejected the request.")
	default:
		return NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
	}
}

// fromFallbackError answers with a client error only when both sources
// rejected the request. Otherwise the upstream failure wins.
func fromFallbackError(err *provider.FallbackError) *HTTPError {
	primary := FromError(err.Primary)
	if primary.Code >= http.StatusInternalServerError {
		return primary
	}

	fallback := FromError(err.Fallback)
	if fallback.Code >= http.StatusInternalServerError {
		return fallback
	}

	return primary
}
