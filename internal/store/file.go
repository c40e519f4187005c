package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	credentialsFile = "credentials.json"
	saltFile        = ".salt"
	saltSize        = 32

	// deriveContext namespaces the obfuscation key derivation.
	deriveContext = "leadpilot credentials v1"
)

// FileBackend stores credentials in a single file under the data directory.
//
// The payload is obfuscated with ChaCha20-Poly1305 under a key derived from
// a machine-local salt file. This keeps tokens out of casual greps and
// backups; it is obfuscation against shoulder-surfing, not protection
// against an attacker who can read the salt file next to it.
type FileBackend struct {
	path string
	key  []byte
}

// NewFileBackend prepares the data directory and obfuscation key.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	salt, err := loadOrCreateSalt(filepath.Join(dataDir, saltFile))
	if err != nil {
		return nil, err
	}

	key := make([]byte, chacha20poly1305.KeySize)
	blake3.DeriveKey(deriveContext, salt, key)

	return &FileBackend{
		path: filepath.Join(dataDir, credentialsFile),
		key:  key,
	}, nil
}

// Load implements Backend.
func (f *FileBackend) Load() (*credentials, error) {
	sealed, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return &credentials{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	plain, err := f.open(sealed)
	if err != nil {
		// Undecryptable content reads as absent; a garbage file must not
		// wedge the client.
		return &credentials{}, nil
	}

	var creds credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return &credentials{}, nil
	}

	return &creds, nil
}

// Save implements Backend.
func (f *FileBackend) Save(creds *credentials) error {
	if creds.empty() {
		return f.Clear()
	}

	plain, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	sealed, err := f.seal(plain)
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, sealed, 0o600)
}

// Clear implements Backend.
func (f *FileBackend) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// seal obfuscates the payload: nonce || ciphertext.
func (f *FileBackend) seal(plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(f.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plain, nil), nil
}

// open reverses seal.
func (f *FileBackend) open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(f.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("credentials file too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

// loadOrCreateSalt reads the machine-local salt, creating it on first run.
func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil && len(salt) == saltSize {
		return salt, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write salt: %w", err)
	}

	return salt, nil
}
