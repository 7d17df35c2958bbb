package address

import (
	"sync"
	"sync/atomic"

	"github.com/chapool/go-hdpay/internal/wallet/chain"
)

// Allocator hands out derivation indices, strictly increasing and gap-free from
// zero per currency. One instance is shared by every provider in the process.
type Allocator struct {
	mu       sync.RWMutex
	counters map[chain.Currency]*atomic.Uint32
}

// NewAllocator returns an allocator with every counter at zero.
func NewAllocator() *Allocator {
	return &Allocator{counters: make(map[chain.Currency]*atomic.Uint32)}
}

func (a *Allocator) counter(currency chain.Currency) *atomic.Uint32 {
	a.mu.RLock()
	c, ok := a.counters[currency]
	a.mu.RUnlock()
	if ok {
		return c
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok = a.counters[currency]; !ok {
		c = new(atomic.Uint32)
		a.counters[currency] = c
	}

	return c
}

// NextIndex reserves and returns the next index for currency. Concurrent
// callers always receive distinct values.
func (a *Allocator) NextIndex(currency chain.Currency) uint32 {
	return a.counter(currency).Add(1) - 1
}

// CurrentIndex returns the index the next NextIndex call will hand out.
func (a *Allocator) CurrentIndex(currency chain.Currency) uint32 {
	return a.counter(currency).Load()
}

// Restore moves the counter for currency forward to next, typically from the
// highest persisted index plus one after a restart. It never moves a counter
// backwards and reports whether the counter changed.
func (a *Allocator) Restore(currency chain.Currency, next uint32) bool {
	c := a.counter(currency)
	for {
		cur := c.Load()
		if next <= cur {
			return false
		}
		if c.CompareAndSwap(cur, next) {
			return true
		}
	}
}
