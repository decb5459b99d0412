package kvstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the required master key length for NewEncryptedStore.
const KeySize = 32

// hkdfInfo separates the derived storage key from any other key derived
// from the same master key. Changing it invalidates existing ciphertext.
const hkdfInfo = "authkit.kvstore.enc.v1"

// EncryptedStore decorates another Store with authenticated encryption of
// values at rest. Storage keys stay in plaintext; each value is sealed with
// XChaCha20-Poly1305 using its storage key as additional authenticated
// data, so a ciphertext copied under a different key fails to open.
type EncryptedStore struct {
	inner Store
	aead  cipher.AEAD
}

var _ Store = (*EncryptedStore)(nil)

// NewEncryptedStore wraps inner with value encryption. masterKey must be
// KeySize bytes; the actual encryption key is derived from it with
// HKDF-SHA256 so the master key itself never touches the cipher.
func NewEncryptedStore(inner Store, masterKey []byte) (*EncryptedStore, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidEncryptionKey
	}

	derived := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(hkdfInfo)), derived); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := chacha20poly1305.NewX(derived)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &EncryptedStore{inner: inner, aead: aead}, nil
}

// GenerateKey creates a new random master key suitable for NewEncryptedStore.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *EncryptedStore) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	sealed, err := s.inner.GetMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(sealed))
	for key, value := range sealed {
		plaintext, err := s.open(key, value)
		if err != nil {
			return nil, err
		}
		out[key] = plaintext
	}
	return out, nil
}

func (s *EncryptedStore) SetMulti(ctx context.Context, items map[string][]byte) error {
	sealed := make(map[string][]byte, len(items))
	for key, value := range items {
		ciphertext, err := s.seal(key, value)
		if err != nil {
			return err
		}
		sealed[key] = ciphertext
	}
	return s.inner.SetMulti(ctx, sealed)
}

func (s *EncryptedStore) RemoveMulti(ctx context.Context, keys []string) error {
	return s.inner.RemoveMulti(ctx, keys)
}

// seal encrypts value and prepends the nonce to the ciphertext for storage.
func (s *EncryptedStore) seal(key string, value []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return s.aead.Seal(nonce, nonce, value, []byte(key)), nil
}

// open expects the nonce-prefixed format produced by seal.
func (s *EncryptedStore) open(key string, sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrDecryptionFailed
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
