package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	keySize    = 32
	iterations = 100_000
)

// deriveKey stretches the passphrase into a 32-byte AES-256 key.
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}

// EncryptAES seals plaintext with AES-256-GCM under a key derived from
// passphrase and a fresh random salt. Output is salt+nonce+ciphertext.
func EncryptAES(passphrase string, plaintext []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase is empty")
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	aesgcm, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// DecryptAES reverses EncryptAES. A wrong passphrase or tampered data fails
// authentication and returns an error.
func DecryptAES(passphrase string, data []byte) ([]byte, error) {
	if len(data) < saltSize {
		return nil, fmt.Errorf("cipher too short")
	}
	salt, rest := data[:saltSize], data[saltSize:]

	aesgcm, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(rest) < ns+aesgcm.Overhead() {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := rest[:ns], rest[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
