package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one CartStore per cart key, rehydrating from the
// persister on first use and caching the container afterwards.
type Manager struct {
	mu        sync.Mutex
	persister Persister
	logger    *zap.Logger
	entries   map[string]*cartEntry
}

// cartEntry defers rehydration to a per-key once, so a slow load for one
// cart never holds the manager lock and never stalls other carts.
type cartEntry struct {
	once sync.Once
	cart *CartStore
}

func NewManager(persister Persister, logger *zap.Logger) *Manager {
	return &Manager{
		persister: persister,
		logger:    logger,
		entries:   make(map[string]*cartEntry),
	}
}

// Cart returns the store for key, creating and rehydrating it if needed.
// Concurrent callers for the same key share one rehydration; callers for
// different keys never block each other.
func (m *Manager) Cart(ctx context.Context, key string) *CartStore {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &cartEntry{}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.cart = NewCartStore(ctx, key, m.persister, m.logger)
	})
	return entry.cart
}
