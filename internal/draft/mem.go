package draft

import "sync"

// MemStore is an in-memory Store for tests and for running without a
// writable data directory.
type MemStore struct {
	mu    sync.Mutex
	d     *Draft
	saves int
}

// NewMemStore returns an empty in-memory store, optionally pre-seeded.
func NewMemStore(seed *Draft) *MemStore {
	return &MemStore{d: seed}
}

func (m *MemStore) Load() (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.d == nil {
		return nil, nil
	}
	cp := *m.d
	return &cp, nil
}

func (m *MemStore) Save(d *Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.d = &cp
	m.saves++
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d = nil
	return nil
}

// Saves reports how many times Save was called.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
