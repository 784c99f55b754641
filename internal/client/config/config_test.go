package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"taskctl"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "taskctl.db", c.PrefsPath)
	assert.Empty(t, c.OwnerID)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("TASKCTL_SERVER_URL", "http://tasks.test")
	t.Setenv("TASKCTL_REQUEST_TIMEOUT", "2s")
	t.Setenv("TASKCTL_PREFS_PATH", "/tmp/p.db")
	t.Setenv("TASKCTL_OWNER_ID", "u1")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, Config{
		ServerURL:      "http://tasks.test",
		RequestTimeout: 2 * time.Second,
		PrefsPath:      "/tmp/p.db",
		OwnerID:        "u1",
	}, c)
}

func TestParseEnv_BadTimeoutPanics(t *testing.T) {
	t.Setenv("TASKCTL_REQUEST_TIMEOUT", "soon")

	var c Config
	assert.Panics(t, func() { parseEnv(&c) })
}

func TestParseFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeTempFile(t, "taskctl.yaml", "server_url: http://yaml.test\nrequest_timeout: 3s\n")
		withArgs(t, "tasks", "list", "--config", path)

		var c Config
		c.LoadDefaults()
		parseFile(&c)

		assert.Equal(t, "http://yaml.test", c.ServerURL)
		assert.Equal(t, 3*time.Second, c.RequestTimeout)
		assert.Equal(t, "taskctl.db", c.PrefsPath, "absent keys keep earlier values")
	})

	t.Run("json", func(t *testing.T) {
		path := writeTempFile(t, "taskctl.json", `{"owner_id":"u9","request_timeout":1000000000}`)
		withArgs(t, "-c", path)

		var c Config
		c.LoadDefaults()
		parseFile(&c)

		assert.Equal(t, "u9", c.OwnerID)
		assert.Equal(t, time.Second, c.RequestTimeout)
	})

	t.Run("missing file panics", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))

		var c Config
		assert.Panics(t, func() { parseFile(&c) })
	})

	t.Run("malformed file panics", func(t *testing.T) {
		withArgs(t, "-c", writeTempFile(t, "bad.json", "{"))

		var c Config
		assert.Panics(t, func() { parseFile(&c) })
	})
}

func TestLoadConfig_FileOverridesEnv(t *testing.T) {
	t.Setenv("TASKCTL_SERVER_URL", "http://env.test")
	t.Setenv("TASKCTL_OWNER_ID", "env-owner")
	withArgs(t, "-c", writeTempFile(t, "c.json", `{"server_url":"http://file.test"}`))

	cfg := LoadConfig()

	assert.Equal(t, "http://file.test", cfg.ServerURL)
	assert.Equal(t, "env-owner", cfg.OwnerID)
}
