// Package cli provides the interactive gophsync command-line client.
//
// NewApp wires configuration, the local database, the gRPC transport, the
// storage client, the sync worker and the status aggregate. Run starts a
// connectivity watcher and the background sync loop, then blocks in the
// REPL until the user exits.
//
// Objects are queued with put/get and transferred by sync or by the
// background loop; ls and rm talk to the server directly.
package cli
