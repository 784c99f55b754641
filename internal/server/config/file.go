package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the server configuration. Durations
// accept "10s" or integer nanoseconds. Fields left out of the file keep the
// values already present in Config.
type FileConfig struct {
	EndpointAddr       string         `json:"endpoint_addr" yaml:"endpoint_addr"`
	StorageDriver      string         `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN        string         `json:"database_dsn" yaml:"database_dsn"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins" yaml:"cors_allowed_origins"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	BackupSchedule     string         `json:"backup_schedule" yaml:"backup_schedule"`
	S3RootUser         string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region           string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile overlays values from the file named by -c or -config. The file
// is decoded as YAML when its extension is .yaml or .yml and as JSON
// otherwise. Unreadable or malformed files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch flagx.FormatOf(path) {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.StorageDriver, c.StorageDriver)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.BackupSchedule, c.BackupSchedule)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
