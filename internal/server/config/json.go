package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Harshinireddy05/DayntTech/internal/flagx"
	"github.com/Harshinireddy05/DayntTech/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer and
// zero-value fields that are absent leave the current value untouched.
type JsonConfig struct {
	HTTPAddr                string          `json:"http_addr"`
	GRPCAddr                string          `json:"grpc_addr"`
	LogLevel                string          `json:"log_level"`
	StorageBackend          string          `json:"storage_backend"`
	DatabaseDSN             string          `json:"database_dsn"`
	LocalStoreDir           string          `json:"local_store_dir"`
	LocalStorePassword      string          `json:"local_store_password"`
	SecretKey               string          `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	PasswordHasher          string          `json:"password_hasher"`
	SeedOnFirstAccess       *bool           `json:"seed_on_first_access"`
	S3RootUser              string          `json:"s3_root_user"`
	S3RootPassword          string          `json:"s3_root_password"`
	S3Bucket                string          `json:"s3_bucket"`
	S3Region                string          `json:"s3_region"`
	S3BaseEndpoint          string          `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file selected by -c/-config or
// the PEOPLEHUB_CONFIG environment variable. No file means no change.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LocalStoreDir, c.LocalStoreDir)
	setString(&config.LocalStorePassword, c.LocalStorePassword)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.PasswordHasher, c.PasswordHasher)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.SeedOnFirstAccess != nil {
		config.SeedOnFirstAccess = *c.SeedOnFirstAccess
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
