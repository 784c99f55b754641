package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origEnvFile := envFile
	t.Cleanup(func() { envFile = origEnvFile })
	envFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("TASKKEEPER_STORAGE_DRIVER", "sqlite")
	t.Setenv("TASKKEEPER_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TASKKEEPER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("TASKKEEPER_BACKUP_SCHEDULE", "@daily")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "@daily", c.BackupSchedule)
	assert.Equal(t, ":8080", c.EndpointAddr)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	origEnvFile := envFile
	t.Cleanup(func() { envFile = origEnvFile })

	envFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TASKKEEPER_S3_BUCKET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TASKKEEPER_S3_BUCKET") })

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "from-dotenv", c.S3Bucket)
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	origEnvFile := envFile
	t.Cleanup(func() { envFile = origEnvFile })
	envFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("TASKKEEPER_SHUTDOWN_TIMEOUT", "soon")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}
