package models

import "time"

// Blob is the metadata of one stored object. The ciphertext itself lives in
// the object store under StorageKey.
type Blob struct {
	UserID     string
	Name       string
	Version    int64
	Size       int64
	StorageKey string
	UpdatedAt  time.Time
}
