package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the client configuration.
type FileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PrefsPath      string         `json:"prefs_path" yaml:"prefs_path"`
	OwnerID        string         `json:"owner_id" yaml:"owner_id"`
}

func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	if flagx.FormatOf(path) == flagx.FormatYAML {
		err = yaml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.PrefsPath != "" {
		cfg.PrefsPath = fc.PrefsPath
	}
	if fc.OwnerID != "" {
		cfg.OwnerID = fc.OwnerID
	}
}
