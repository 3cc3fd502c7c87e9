package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"runtime"

	"github.com/dmitrijs2005/gophsync/internal/common"
)

// Key is derived symmetric key material. The zero value is not usable;
// keys come from DeriveKey or Clone.
//
// Wipe zeroes the bytes in place. A finalizer does the same when a Key is
// garbage collected without being wiped.
type Key struct {
	b []byte
}

func newKey(b []byte) *Key {
	k := &Key{b: b}
	runtime.SetFinalizer(k, (*Key).Wipe)
	return k
}

// Len returns the key length in bytes, 0 after Wipe.
func (k *Key) Len() int {
	if k == nil {
		return 0
	}
	return len(k.b)
}

// Equal compares two keys in constant time.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return subtle.ConstantTimeCompare(k.b, other.b) == 1
}

// Clone returns an independent copy that must be wiped separately.
func (k *Key) Clone() *Key {
	b := make([]byte, len(k.b))
	copy(b, k.b)
	return newKey(b)
}

// Wipe zeroes the key material. Safe to call more than once and on nil.
func (k *Key) Wipe() {
	if k == nil {
		return
	}
	common.WipeByteArray(k.b)
	k.b = nil
}

// Fingerprint returns a short identifier of the key, suitable for logs.
func (k *Key) Fingerprint() string {
	if k.Len() == 0 {
		return ""
	}
	sum := sha256.Sum256(k.b)
	return hex.EncodeToString(sum[:4])
}
