package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/flagx"
	"github.com/dmitrijs2005/gophsync/internal/timex"
)

// jsonConfig is the on-disk shape of Config. Durations accept "1m" or
// integer nanoseconds; absent keys leave the current value alone.
type jsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	ObjectStore                 *string         `json:"object_store"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	MaxBlobSize                 *int64          `json:"max_blob_size"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJSON loads the file named by -c/-config in args, if any.
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

	for dst, v := range map[*string]*string{
		&cfg.EndpointAddrGRPC: jc.EndpointAddrGRPC,
		&cfg.DatabaseDSN:      jc.DatabaseDSN,
		&cfg.SecretKey:        jc.SecretKey,
		&cfg.ObjectStore:      jc.ObjectStore,
		&cfg.S3RootUser:       jc.S3RootUser,
		&cfg.S3RootPassword:   jc.S3RootPassword,
		&cfg.S3Bucket:         jc.S3Bucket,
		&cfg.S3Region:         jc.S3Region,
		&cfg.S3BaseEndpoint:   jc.S3BaseEndpoint,
		&cfg.LogLevel:         jc.LogLevel,
	} {
		if v != nil {
			*dst = *v
		}
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.MaxBlobSize != nil {
		cfg.MaxBlobSize = *jc.MaxBlobSize
	}

	return nil
}
