// Package storage is the encrypted cloud-sync client core.
//
// Client is the composition root: it holds the service address, the transport
// handle, the session's access token and derived encryption key, and the
// payload algorithm. Everything that talks to the remote side goes through
// two guards:
//
//   - RequireAuth returns the access token or ErrAuthRequired;
//   - RequireEncryptionKey returns (a copy of) the key or an ErrEncryption error.
//
// Neither guard falls back to an anonymous request or to plaintext. Upload,
// Download, Delete and List apply the guards themselves, so callers cannot
// forget them.
//
// # Errors
//
// All failures surface through one family of sentinels that callers match
// with errors.Is: ErrAuthRequired, ErrEncryption, ErrUnauthorized,
// ErrUnavailable, ErrTimeout and ErrNotFound. Transports map their native
// errors onto these.
//
// # Concurrency
//
// Client is safe for concurrent use. Token and key live behind a single
// RWMutex; payload sealing and opening run under the read lock, network I/O
// runs without it.
package storage
