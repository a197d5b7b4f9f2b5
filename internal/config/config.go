package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the file server.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Listen string `mapstructure:"listen"`
	Root   string `mapstructure:"root"`
}

const (
	DefaultListen = "0.0.0.0:3000"
	DefaultRoot   = "./files"
)

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("root", DefaultRoot)
}

// Load unmarshals the configuration, makes the storage root absolute, and
// ensures the root directory exists. The root is fixed for the process
// lifetime; nothing else mutates it afterwards.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = absRoot

	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}
