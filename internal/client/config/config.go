package config

import "time"

// Config holds runtime settings for taskctl.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	PrefsPath      string
	OwnerID        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.PrefsPath = "taskctl.db"
	c.OwnerID = ""
}

// LoadConfig applies defaults, then the environment, then the config file
// named by -c/--config. Command-line flags are bound on top of the result by
// the cli package.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	return cfg
}
