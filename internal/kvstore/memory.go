package kvstore

import "sync"

// Memory is an in-memory [Store] for tests and ephemeral sessions.
// The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string

	// FailReads, when set, makes every Get return this error. Lets tests
	// exercise the fail-soft paths of the stores built on top.
	FailReads error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailReads != nil {
		return "", false, m.FailReads
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
