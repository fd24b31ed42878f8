package tabular

import (
	"context"
	"sync"
)

// Holder owns the one-time load of the Store. Readers call Store and get a
// NotReadyError until the loader has finished.
type Holder struct {
	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	store *Store
	err   error
}

func NewHolder() *Holder {
	return &Holder{done: make(chan struct{})}
}

// Ready builds a Holder that is already loaded.
func Ready(s *Store) *Holder {
	h := NewHolder()
	h.Load(func() (*Store, error) { return s, nil })
	return h
}

// Load runs fn once. Later calls return the first result.
func (h *Holder) Load(fn func() (*Store, error)) (*Store, error) {
	h.once.Do(func() {
		s, err := fn()
		h.mu.Lock()
		h.store, h.err = s, err
		h.mu.Unlock()
		close(h.done)
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store, h.err
}

// Store returns the loaded store, NotReadyError while loading, or the load
// error.
func (h *Holder) Store() (*Store, error) {
	select {
	case <-h.done:
	default:
		return nil, NotReadyError{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store, h.err
}

// Wait blocks until the load finished or ctx is done.
func (h *Holder) Wait(ctx context.Context) (*Store, error) {
	select {
	case <-h.done:
		return h.Store()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
