package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "TASKKEEPER_"

// envFile is loaded before the process environment is read. Variables that
// are already set are not overridden by it.
var envFile = ".env"

func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	setString("ADDR", &config.EndpointAddr)
	setString("STORAGE_DRIVER", &config.StorageDriver)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("LOG_LEVEL", &config.LogLevel)
	setString("BACKUP_SCHEDULE", &config.BackupSchedule)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v := os.Getenv(envPrefix + "CORS_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}

	if v := os.Getenv(envPrefix + "SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.ShutdownTimeout = d
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
