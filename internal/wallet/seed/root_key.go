package seed

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// RootKey is an opaque handle on the BIP32 master key. It hands out public keys
// only; private key material never leaves the package.
type RootKey struct {
	mu     sync.RWMutex
	master *bip32.Key
}

func newRootKey(seed []byte) (*RootKey, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	return &RootKey{master: master}, nil
}

// PublicKeyAt derives the child at path (already parsed, hardened bit set where
// needed) and returns its 33 byte compressed public key. Intermediate private
// keys are zeroed before returning.
func (r *RootKey) PublicKeyAt(path []uint32) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.master == nil {
		return nil, errors.WithStack(ErrWiped)
	}

	key := r.master
	for _, index := range path {
		child, err := key.NewChildKey(index)
		if key != r.master {
			wipeKey(key)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
		key = child
	}

	pub := key.PublicKey()
	out := make([]byte, len(pub.Key))
	copy(out, pub.Key)

	if key != r.master {
		wipeKey(key)
	}

	return out, nil
}

// Wipe zeroes the master key. Safe to call more than once.
func (r *RootKey) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.master != nil {
		wipeKey(r.master)
		r.master = nil
	}
}

func wipeKey(k *bip32.Key) {
	zero(k.Key)
	zero(k.ChainCode)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
