// Package config loads runtime configuration for the gophsync client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// # Flags
//
//	-a string     address:port of the BlobStore gRPC endpoint
//	-i duration   online status check interval
//	-d string     path of the local SQLite database
//	-o string     download directory
//	-alg string   cipher for new uploads: aes-256-gcm or xchacha20-poly1305
//	-t duration   per-request timeout
//	-w int        parallel transfers per sync cycle
//	-s duration   background sync interval
//	-l string     log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are timex.Duration values, either "3s" strings or integer
// nanoseconds. Absent keys keep the default:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "/home/me/.config/gophsync/gophsync.db",
//	  "download_dir": "downloads",
//	  "encryption_algorithm": "xchacha20-poly1305",
//	  "request_timeout": "15s",
//	  "sync_concurrency": 4,
//	  "sync_interval": "1m",
//	  "log_level": "info"
//	}
package config
