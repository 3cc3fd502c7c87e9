package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm selects the AEAD used for payloads.
type Algorithm uint8

const (
	AlgorithmAES256GCM Algorithm = iota + 1
	AlgorithmXChaCha20Poly1305
)

// DefaultAlgorithm is used when nothing else is configured.
const DefaultAlgorithm = AlgorithmAES256GCM

var (
	ErrUnknownAlgorithm   = errors.New("unknown encryption algorithm")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	ErrDecrypt            = errors.New("decryption failed")
	ErrInvalidKey         = errors.New("invalid key")
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAES256GCM:
		return "aes-256-gcm"
	case AlgorithmXChaCha20Poly1305:
		return "xchacha20-poly1305"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm accepts the names produced by String, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aes-256-gcm", "aes256gcm", "aes":
		return AlgorithmAES256GCM, nil
	case "xchacha20-poly1305", "xchacha20poly1305", "xchacha":
		return AlgorithmXChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// KeySize returns the key length the algorithm expects.
func (a Algorithm) KeySize() int {
	switch a {
	case AlgorithmAES256GCM:
		return 32
	case AlgorithmXChaCha20Poly1305:
		return chacha20poly1305.KeySize
	default:
		return 0
	}
}

func (a Algorithm) aead(key []byte) (cipher.AEAD, error) {
	if a.KeySize() == 0 {
		return nil, ErrUnknownAlgorithm
	}
	if len(key) != a.KeySize() {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrInvalidKey, a, a.KeySize(), len(key))
	}

	switch a {
	case AlgorithmAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case AlgorithmXChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// Seal encrypts plaintext under key with alg. aad is authenticated but not
// encrypted; the same aad must be passed to Open.
//
// Layout of the result: [algorithm id][nonce][ciphertext || tag].
func Seal(alg Algorithm, key *Key, plaintext, aad []byte) ([]byte, error) {
	if key.Len() == 0 {
		return nil, ErrInvalidKey
	}

	aead, err := alg.aead(key.b)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1+aead.NonceSize(), 1+aead.NonceSize()+len(plaintext)+aead.Overhead())
	out[0] = byte(alg)
	if _, err := rand.Read(out[1:]); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return aead.Seal(out, out[1:], plaintext, aad), nil
}

// Open reverses Seal. The algorithm is taken from the blob header.
func Open(key *Key, blob, aad []byte) ([]byte, error) {
	if key.Len() == 0 {
		return nil, ErrInvalidKey
	}
	alg, err := AlgorithmOf(blob)
	if err != nil {
		return nil, err
	}

	aead, err := alg.aead(key.b)
	if err != nil {
		return nil, err
	}

	ns := aead.NonceSize()
	if len(blob) < 1+ns+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := aead.Open(nil, blob[1:1+ns], blob[1+ns:], aad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// AlgorithmOf reports which algorithm sealed blob.
func AlgorithmOf(blob []byte) (Algorithm, error) {
	if len(blob) == 0 {
		return 0, ErrCiphertextTooShort
	}
	a := Algorithm(blob[0])
	if a.KeySize() == 0 {
		return 0, ErrUnknownAlgorithm
	}
	return a, nil
}
