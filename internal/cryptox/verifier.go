package cryptox

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

const verifierInfo = "gophsync auth verifier"

// MakeVerifier derives the login verifier from the encryption key. The server
// stores and compares verifiers; it never receives the key itself.
func MakeVerifier(key *Key) []byte {
	if key.Len() == 0 {
		return nil
	}

	out := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, key.b, nil, []byte(verifierInfo))
	if _, err := io.ReadFull(r, out); err != nil {
		// hkdf only fails when more than 255*HashLen bytes are requested.
		panic(err)
	}
	return out
}
