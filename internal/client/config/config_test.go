package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/cryptox"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "aes-256-gcm", c.EncryptionAlgorithm)
	assert.Equal(t, 4, c.SyncConcurrency)
	assert.Equal(t, time.Minute, c.SyncInterval)
	assert.NotEmpty(t, c.DatabasePath)
	require.NoError(t, c.Validate())
}

func TestLoad_NoArgs(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Flags(t *testing.T) {
	args := []string{"-a", "sync.example:443", "-i", "10s", "-alg", "xchacha20-poly1305", "-w", "8", "-o", "/tmp/dl", "-unknown", "x"}

	cfg, err := Load(args)
	require.NoError(t, err)

	want := defaults()
	want.ServerEndpointAddr = "sync.example:443"
	want.OnlineCheckInterval = 10 * time.Second
	want.EncryptionAlgorithm = "xchacha20-poly1305"
	want.SyncConcurrency = 8
	want.DownloadDir = "/tmp/dl"
	assert.Empty(t, cmp.Diff(want, cfg))

	alg, err := cfg.Algorithm()
	require.NoError(t, err)
	assert.Equal(t, cryptox.AlgorithmXChaCha20Poly1305, alg)
}

func TestLoad_JSONThenFlags(t *testing.T) {
	path := writeJSON(t, map[string]any{
		"server_endpoint_addr":  "json.example:9000",
		"online_check_interval": "7s",
		"request_timeout":       int64(2 * time.Second),
		"sync_concurrency":      2,
		"log_level":             "debug",
	})

	cfg, err := Load([]string{"-c", path, "-a", "flag.example:1"})
	require.NoError(t, err)

	want := defaults()
	want.ServerEndpointAddr = "flag.example:1"
	want.OnlineCheckInterval = 7 * time.Second
	want.RequestTimeout = 2 * time.Second
	want.SyncConcurrency = 2
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_JSONAbsentKeysKeepDefaults(t *testing.T) {
	path := writeJSON(t, map[string]any{"download_dir": "elsewhere"})

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	want := defaults()
	want.DownloadDir = "elsewhere"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-c", filepath.Join(t.TempDir(), "missing.json")}},
		{"invalid json", []string{"-c", bad}},
		{"bad duration flag", []string{"-i", "soon"}},
		{"bad int flag", []string{"-w", "many"}},
		{"unknown algorithm", []string{"-alg", "rot13"}},
		{"zero workers", []string{"-w", "0"}},
		{"zero interval", []string{"-s", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
		})
	}
}

func TestValidate_Sentinel(t *testing.T) {
	c := defaults()
	c.ServerEndpointAddr = ""
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}
