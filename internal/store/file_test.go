package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/internal/api"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestFileBackend_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)

	creds := &credentials{
		Token: "tok-secret",
		User:  &api.User{ID: "u1", Email: "a@example.com"},
	}
	require.NoError(t, backend.Save(creds))

	// A fresh backend over the same directory reads the same credentials.
	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)

	loaded, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-secret", loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "a@example.com", loaded.User.Email)
}

func TestFileBackend_TokenNotOnDiskInPlaintext(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(&credentials{Token: "tok-very-secret"}))

	raw, err := os.ReadFile(filepath.Join(dir, credentialsFile))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(raw, []byte("tok-very-secret")))
	assert.False(t, bytes.Contains(raw, []byte("token")))
}

func TestFileBackend_MissingFileReadsEmpty(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	creds, err := backend.Load()
	require.NoError(t, err)
	assert.True(t, creds.empty())
}

func TestFileBackend_CorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte("not sealed data"), 0o600))

	creds, err := backend.Load()
	require.NoError(t, err)
	assert.True(t, creds.empty(), "garbage on disk reads as absent, never as an error")
}

func TestFileBackend_DifferentSaltCannotRead(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(&credentials{Token: "tok-1"}))

	// Losing the salt is losing the credentials, by design of the scheme:
	// the payload just reads as absent.
	require.NoError(t, os.Remove(filepath.Join(dir, saltFile)))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)

	creds, err := reopened.Load()
	require.NoError(t, err)
	assert.True(t, creds.empty())
}

func TestFileBackend_ClearRemovesFile(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(&credentials{Token: "tok-1"}))
	require.NoError(t, backend.Clear())

	_, err = os.Stat(filepath.Join(dir, credentialsFile))
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, backend.Clear())
}

func TestFileBackend_SavingEmptyClears(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(&credentials{Token: "tok-1"}))
	require.NoError(t, backend.Save(&credentials{}))

	_, err = os.Stat(filepath.Join(dir, credentialsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackend_CredentialFilePermissions(t *testing.T) {
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Save(&credentials{Token: "tok-1"}))

	info, err := os.Stat(filepath.Join(dir, credentialsFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
