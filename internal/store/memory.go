package store

import "sync"

// MemoryBackend keeps credentials in process memory. It is the silent
// fallback when the file backend is unavailable, and the fixture for tests.
type MemoryBackend struct {
	mu    sync.Mutex
	creds credentials
	set   bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load implements Backend.
func (m *MemoryBackend) Load() (*credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return &credentials{}, nil
	}
	copy := m.creds
	return &copy, nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(creds *credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = *creds
	m.set = true
	return nil
}

// Clear implements Backend.
func (m *MemoryBackend) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = credentials{}
	m.set = false
	return nil
}
