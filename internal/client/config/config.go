package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/cryptox"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	DownloadDir         string
	EncryptionAlgorithm string
	RequestTimeout      time.Duration
	SyncConcurrency     int
	SyncInterval        time.Duration
	LogLevel            string
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gophsync.db"
	}
	return filepath.Join(dir, "gophsync", "gophsync.db")
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = defaultDatabasePath()
	c.DownloadDir = "downloads"
	c.EncryptionAlgorithm = cryptox.DefaultAlgorithm.String()
	c.RequestTimeout = 15 * time.Second
	c.SyncConcurrency = 4
	c.SyncInterval = time.Minute
	c.LogLevel = "info"
}

// Algorithm returns the parsed EncryptionAlgorithm.
func (c *Config) Algorithm() (cryptox.Algorithm, error) {
	return cryptox.ParseAlgorithm(c.EncryptionAlgorithm)
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return fmt.Errorf("%w: empty server address", ErrInvalidConfig)
	}
	if _, err := c.Algorithm(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.SyncConcurrency < 1 {
		return fmt.Errorf("%w: sync concurrency must be positive, got %d", ErrInvalidConfig, c.SyncConcurrency)
	}
	for name, d := range map[string]time.Duration{
		"online check interval": c.OnlineCheckInterval,
		"request timeout":       c.RequestTimeout,
		"sync interval":         c.SyncInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, name, d)
		}
	}
	return nil
}

// Load builds a Config from defaults, the optional JSON file and the flags in
// args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
