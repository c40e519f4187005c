// Package store persists the client credential: one bearer token and one
// cached user record.
//
// The store is a cache, not a source of truth. Writes never fail across the
// public boundary: if the backing file becomes unusable the store logs the
// problem once and degrades to an in-memory backend for the remaining life
// of the process, invisibly to callers.
package store

import (
	"sync"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/log"
)

// credentials is the single persisted document.
type credentials struct {
	Token string    `json:"token,omitempty"`
	User  *api.User `json:"user,omitempty"`
}

func (c *credentials) empty() bool {
	return c == nil || (c.Token == "" && c.User == nil)
}

// Backend is the persistence layer behind a Store.
type Backend interface {
	// Load reads the persisted credentials. Absent, malformed, or
	// undecryptable content reads as empty credentials, not an error.
	Load() (*credentials, error)

	// Save persists the credentials.
	Save(*credentials) error

	// Clear removes any persisted credentials.
	Clear() error
}

// Store holds the current credential and writes it through to a backend.
// It implements api.TokenSource.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger

	// cache mirrors the backend; nil until first load.
	cache *credentials

	// degraded is set once a backend write fails; from then on the store
	// runs on the in-memory backend.
	degraded bool
}

// New creates a Store over the given backend.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		backend: backend,
		logger:  logger.With("component", "store"),
	}
}

// Open creates a Store over a file backend rooted at dataDir, degrading to
// memory immediately if the directory cannot be prepared.
func Open(dataDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	backend, err := NewFileBackend(dataDir)
	if err != nil {
		logger.Warn("credential file unavailable, using in-memory store",
			"dir", dataDir, "error", err.Error())
		return New(NewMemoryBackend(), logger)
	}

	return New(backend, logger)
}

// Token returns the persisted token, or "" if absent.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load().Token
}

// SetToken persists the token. Never fails; storage errors degrade the
// store to memory.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.Token = token
	s.save(creds)
}

// User returns the cached user record, or nil if absent.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load().User
}

// SetUser persists the user record. Never fails.
func (s *Store) SetUser(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.User = user
	s.save(creds)
}

// Set persists token and user together in one write.
func (s *Store) Set(token string, user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(&credentials{Token: token, User: user})
}

// Clear removes the token and the cached user record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = &credentials{}
	if err := s.backend.Clear(); err != nil {
		s.degrade("clear", err)
	}
}

// load returns the cached credentials, reading the backend on first use.
// Callers must hold s.mu.
func (s *Store) load() *credentials {
	if s.cache != nil {
		return s.cache
	}

	creds, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("failed to read credentials, treating as absent", "error", err.Error())
		creds = &credentials{}
	}
	if creds == nil {
		creds = &credentials{}
	}

	s.cache = creds
	return s.cache
}

// save writes through to the backend. Callers must hold s.mu.
func (s *Store) save(creds *credentials) {
	s.cache = creds
	if err := s.backend.Save(creds); err != nil {
		s.degrade("save", err)
		// The in-memory backend cannot fail.
		_ = s.backend.Save(creds)
	}
}

// degrade switches to the in-memory backend after a write failure.
// Callers must hold s.mu.
func (s *Store) degrade(op string, err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Warn("credential storage failed, degrading to in-memory store",
		"op", op, "error", err.Error())
	s.backend = NewMemoryBackend()
}
