package envnode

import (
	"context"
	"sync"
)

// Mem is an in-memory Store.  It lets a host give each node its own environment instead of the
// process one.
type Mem struct {
	vals map[string]string
	mu   sync.RWMutex
}

var _ Reader = &Mem{}
var _ Store = &Mem{}

func (m *Mem) Read(_ context.Context, key string) ([]byte, error) {
	v, exists := m.Lookup(key)
	if !exists {
		return nil, nil
	}
	return []byte(v), nil
}

func (m *Mem) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, exists := m.vals[key]
	return v, exists
}

func (m *Mem) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vals == nil {
		m.vals = make(map[string]string)
	}
	m.vals[key] = value
	return nil
}

