package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophsync/internal/flagx"
)

var knownFlags = []string{"-a", "-i", "-d", "-o", "-alg", "-t", "-w", "-s", "-l"}

// parseFlags overlays cfg with the known flags in args. Unknown flags,
// including -c/-config, are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gophsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the server")
	fs.DurationVar(&cfg.OnlineCheckInterval, "i", cfg.OnlineCheckInterval, "online check interval")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.EncryptionAlgorithm, "alg", cfg.EncryptionAlgorithm, "encryption algorithm")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.IntVar(&cfg.SyncConcurrency, "w", cfg.SyncConcurrency, "parallel transfers")
	fs.DurationVar(&cfg.SyncInterval, "s", cfg.SyncInterval, "background sync interval")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
