// Package keyring stores the detector API key on disk, encrypted with a key
// derived from a user passphrase. The file holds a small JSON document with
// the argon2id salt, the GCM nonce and the ciphertext; without the
// passphrase it is useless.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/synthscan/synthscan/internal/cryptox"
)

// ErrWrongPassphrase is returned by Load when decryption fails. Tampering
// with the file produces the same error, GCM cannot tell the two apart.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")

const saltSize = 16

// sealedKey is the on-disk layout. The byte slices round-trip through JSON
// as base64.
type sealedKey struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Keyring reads and writes one sealed API key at a fixed path.
type Keyring struct {
	path string
}

func New(path string) *Keyring {
	return &Keyring{path: path}
}

// Exists reports whether a sealed key file is present.
func (k *Keyring) Exists() bool {
	info, err := os.Stat(k.path)
	return err == nil && !info.IsDir()
}

// Store seals apiKey under a key derived from passphrase and writes it out,
// replacing any previous content. The file is created owner-readable only.
func (k *Keyring) Store(apiKey, passphrase string) error {
	salt, err := cryptox.RandBytes(saltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := cryptox.DeriveKey([]byte(passphrase), salt)
	ciphertext, nonce, err := cryptox.Seal([]byte(apiKey), key)
	if err != nil {
		return fmt.Errorf("failed to seal api key: %w", err)
	}

	data, err := json.Marshal(sealedKey{Salt: salt, Nonce: nonce, Ciphertext: ciphertext})
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	if err := os.WriteFile(k.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// Load reads the sealed key file and decrypts it with the given passphrase.
func (k *Keyring) Load(passphrase string) (string, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}

	var sealed sealedKey
	if err := json.Unmarshal(data, &sealed); err != nil {
		return "", fmt.Errorf("failed to parse key file: %w", err)
	}

	key := cryptox.DeriveKey([]byte(passphrase), sealed.Salt)
	plaintext, err := cryptox.Open(sealed.Ciphertext, sealed.Nonce, key)
	if err != nil {
		return "", ErrWrongPassphrase
	}
	return string(plaintext), nil
}

// Remove deletes the key file. A missing file is not an error.
func (k *Keyring) Remove() error {
	err := os.Remove(k.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key file: %w", err)
	}
	return nil
}
