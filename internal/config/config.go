// Package config loads the application configuration from the user's config
// file and the TIMETRACK_* environment, with sensible defaults for everything.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database Database `mapstructure:"database"`
	User     User     `mapstructure:"user"`
	Export   Export   `mapstructure:"export"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type User struct {
	ID string `mapstructure:"id"`
}

type Export struct {
	Dir      string `mapstructure:"dir"`
	Currency string `mapstructure:"currency"`
}

// Load reads config.yaml from dir (defaulting to ~/.timetrack) and overlays
// TIMETRACK_* environment variables, e.g. TIMETRACK_DATABASE_PATH. A missing
// config file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".timetrack")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("TIMETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", filepath.Join(dir, "timetrack.db"))
	v.SetDefault("user.id", "default")
	v.SetDefault("export.dir", filepath.Join(dir, "exports"))
	v.SetDefault("export.currency", "EUR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
