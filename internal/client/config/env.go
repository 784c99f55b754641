package config

import (
	"os"
	"time"
)

const envPrefix = "TASKCTL_"

func parseEnv(cfg *Config) {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	setString("SERVER_URL", &cfg.ServerURL)
	setString("PREFS_PATH", &cfg.PrefsPath)
	setString("OWNER_ID", &cfg.OwnerID)

	if v := os.Getenv(envPrefix + "REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
