package chain

import (
	"errors"
	"fmt"
)

// Error categories shared by every wallet component. Package specific errors wrap
// one of these so callers can branch on the category with errors.Is.
var (
	// ErrConfiguration covers missing or invalid credentials, paths and endpoints.
	// It is fatal for the affected currency provider until the operator fixes the
	// configuration, never for the process.
	ErrConfiguration = errors.New("configuration error")

	// ErrSeed covers seed decryption and mnemonic validation failures.
	ErrSeed = errors.New("seed error")

	// ErrUnsupportedConfiguration is returned for unknown currencies, networks or
	// address encodings. It indicates a deployment error.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

// ErrInvalidAddress is returned by every read source for an address that does
// not decode for the configured network. It is never read as an empty balance.
var ErrInvalidAddress = fmt.Errorf("%w: address does not match network", ErrUnsupportedConfiguration)
