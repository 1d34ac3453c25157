package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	eserrors "github.com/envsync-cli/envsync/internal/errors"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32 // AES-256

	// scrypt cost parameters. Interactive-use profile: ~100ms per
	// derivation on current hardware, memory-hard against GPU attacks.
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// Envelope carries one encrypted environment payload together with the
// public parameters needed to attempt decryption. A fresh envelope is
// produced on every push; envelopes are never reused or diffed.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	AuthTag    string `json:"authTag"`
}

// DeriveKey derives a 256-bit key from the passphrase and salt using
// scrypt. Deterministic for a given (passphrase, salt) pair.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	if len(salt) != saltSize {
		return nil, fmt.Errorf("invalid salt length: expected %d bytes, got %d bytes", saltSize, len(salt))
	}
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// Encrypt seals plaintext under a key derived from the passphrase and a
// fresh random salt, using AES-256-GCM with a fresh random nonce. The
// authentication tag is carried detached from the ciphertext.
func Encrypt(plaintext, passphrase []byte) (*Envelope, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: reading salt: %v", eserrors.ErrEncryptFailed, err)
	}

	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", eserrors.ErrEncryptFailed, err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", eserrors.ErrEncryptFailed, err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: reading nonce: %v", eserrors.ErrEncryptFailed, err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)

	// GCM appends the tag to the ciphertext; the wire format carries it
	// as a separate field.
	tagStart := len(sealed) - aead.Overhead()
	return &Envelope{
		Ciphertext: hex.EncodeToString(sealed[:tagStart]),
		Salt:       hex.EncodeToString(salt),
		IV:         hex.EncodeToString(nonce),
		AuthTag:    hex.EncodeToString(sealed[tagStart:]),
	}, nil
}

// Decrypt re-derives the key from the envelope's salt and the passphrase,
// then verifies and opens the ciphertext. Every failure returns
// errors.ErrDecryptFailed without further detail: a wrong passphrase, a
// tampered tag, corrupted ciphertext, and malformed encoding are
// indistinguishable to the caller. No partial plaintext is ever released.
func Decrypt(env *Envelope, passphrase []byte) ([]byte, error) {
	if env == nil {
		return nil, eserrors.ErrDecryptFailed
	}

	ciphertext, err := hex.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, eserrors.ErrDecryptFailed
	}
	salt, err := hex.DecodeString(env.Salt)
	if err != nil || len(salt) != saltSize {
		return nil, eserrors.ErrDecryptFailed
	}
	nonce, err := hex.DecodeString(env.IV)
	if err != nil || len(nonce) != nonceSize {
		return nil, eserrors.ErrDecryptFailed
	}
	tag, err := hex.DecodeString(env.AuthTag)
	if err != nil {
		return nil, eserrors.ErrDecryptFailed
	}

	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, eserrors.ErrDecryptFailed
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, eserrors.ErrDecryptFailed
	}
	if len(tag) != aead.Overhead() {
		return nil, eserrors.ErrDecryptFailed
	}

	sealed := append(ciphertext, tag...)
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, eserrors.ErrDecryptFailed
	}
	return plaintext, nil
}

// Complete reports whether every envelope field is present. A pull response
// missing any field carries no usable data.
func (e *Envelope) Complete() bool {
	return e != nil && e.Ciphertext != "" && e.Salt != "" && e.IV != "" && e.AuthTag != ""
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d bytes", keySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
