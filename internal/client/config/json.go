package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/flagx"
	"github.com/dmitrijs2005/gophsync/internal/timex"
)

// jsonConfig mirrors Config for decoding; pointers tell absent keys apart.
type jsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabasePath        *string         `json:"database_path"`
	DownloadDir         *string         `json:"download_dir"`
	EncryptionAlgorithm *string         `json:"encryption_algorithm"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SyncConcurrency     *int            `json:"sync_concurrency"`
	SyncInterval        *timex.Duration `json:"sync_interval"`
	LogLevel            *string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.EncryptionAlgorithm, jc.EncryptionAlgorithm)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	if jc.SyncConcurrency != nil {
		cfg.SyncConcurrency = *jc.SyncConcurrency
	}
	setDuration(&cfg.SyncInterval, jc.SyncInterval)
	setString(&cfg.LogLevel, jc.LogLevel)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
