package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a stored blob as reported by the server.
type ObjectInfo struct {
	Name      string
	Size      int64
	Version   int64
	UpdatedAt time.Time
}

// Transport is the network boundary of the client. Implementations carry the
// bearer token on authenticated calls and map their errors onto the storage
// error family.
type Transport interface {
	Put(ctx context.Context, token, name string, blob []byte) (int64, error)
	Get(ctx context.Context, token, name string) ([]byte, error)
	Delete(ctx context.Context, token, name string) error
	List(ctx context.Context, token string) ([]ObjectInfo, error)
	Ping(ctx context.Context) error
	Close() error
}
