package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/internal/api"
)

// failingBackend fails every write; reads succeed empty.
type failingBackend struct {
	saves  int
	clears int
}

func (f *failingBackend) Load() (*credentials, error) { return &credentials{}, nil }
func (f *failingBackend) Save(*credentials) error {
	f.saves++
	return errors.New("disk full")
}
func (f *failingBackend) Clear() error {
	f.clears++
	return errors.New("disk full")
}

func TestStore_SetAndGet(t *testing.T) {
	s := New(NewMemoryBackend(), nil)

	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	user := &api.User{ID: "u1", Email: "a@example.com"}
	s.Set("tok-1", user)

	assert.Equal(t, "tok-1", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "a@example.com", s.User().Email)
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	s := New(NewMemoryBackend(), nil)
	s.Set("tok-1", &api.User{ID: "u1"})

	s.Clear()

	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestStore_SetTokenKeepsUser(t *testing.T) {
	s := New(NewMemoryBackend(), nil)
	s.Set("tok-1", &api.User{ID: "u1"})

	s.SetToken("tok-2")

	assert.Equal(t, "tok-2", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "u1", s.User().ID)
}

func TestStore_DegradesToMemoryOnWriteFailure(t *testing.T) {
	backend := &failingBackend{}
	s := New(backend, nil)

	// The write must not fail across the public boundary.
	s.SetToken("tok-1")
	assert.Equal(t, "tok-1", s.Token())

	// Later writes land on the in-memory backend, not the broken one.
	s.SetToken("tok-2")
	assert.Equal(t, "tok-2", s.Token())
	assert.Equal(t, 1, backend.saves, "broken backend is abandoned after the first failure")
}

func TestStore_ClearDegradesButStillClears(t *testing.T) {
	backend := &failingBackend{}
	s := New(backend, nil)
	s.SetToken("tok-1")

	s.Clear()

	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestOpen_BadDirectoryDegradesToMemory(t *testing.T) {
	// A file path cannot be used as a directory.
	file := t.TempDir() + "/occupied"
	writeFile(t, file)

	s := Open(file+"/sub", nil)

	s.SetToken("tok-1")
	assert.Equal(t, "tok-1", s.Token())
}
