package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of salts produced by GenerateSalt.
	SaltSize = 32
	// MinSaltSize is the shortest salt DeriveKey accepts.
	MinSaltSize = 16
	// KeySize is the length of derived keys.
	KeySize = 32
)

var (
	ErrSaltTooShort  = errors.New("salt too short")
	ErrInvalidParams = errors.New("invalid key derivation parameters")
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultKDFParams are used by DeriveKey. Changing them changes every derived
// key, so existing accounts would no longer be able to log in.
var DefaultKDFParams = KDFParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  KeySize,
}

// GenerateSalt returns SaltSize bytes from the system CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives the payload encryption key from password and salt using
// DefaultKDFParams. The same inputs always yield the same key.
func DeriveKey(password, salt []byte) (*Key, error) {
	return DeriveKeyWithParams(password, salt, DefaultKDFParams)
}

// DeriveKeyWithParams is DeriveKey with explicit Argon2id parameters.
func DeriveKeyWithParams(password, salt []byte, p KDFParams) (*Key, error) {
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSaltTooShort, len(salt), MinSaltSize)
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 || p.KeyLen == 0 {
		return nil, ErrInvalidParams
	}

	return newKey(argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)), nil
}
