package seed

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// manager implements Manager with a mutex-guarded lazily loaded root key
type manager struct {
	vault Vault
	path  string
	key   string

	mu      sync.Mutex
	root    *RootKey
	cleared bool
}

// NewManager creates a Manager loading the seed at path with key on first use.
// The key is dropped from memory once the root key has been derived.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager(vault Vault, path string, key string) Manager {
	return &manager{
		vault: vault,
		path:  path,
		key:   key,
	}
}

func (m *manager) Root(ctx context.Context) (*RootKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.root != nil {
		return m.root, nil
	}
	if m.cleared {
		return nil, errors.WithStack(ErrWiped)
	}

	root, err := m.vault.Load(ctx, m.path, m.key)
	if err != nil {
		return nil, err
	}

	m.root = root
	m.key = ""

	return root, nil
}

func (m *manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.root != nil
}

func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.root != nil {
		m.root.Wipe()
		m.root = nil
	}
	m.key = ""
	m.cleared = true
}
