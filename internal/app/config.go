package app

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/worktime/internal/adapters/otel"
	"github.com/emiliopalmerini/worktime/internal/adapters/turso"
	"github.com/emiliopalmerini/worktime/internal/util"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WORKTIME"

type Config struct {
	// DatabaseURL of a remote Turso database. Empty keeps the data in a
	// local file only.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	AuthToken   string `envconfig:"AUTH_TOKEN"`

	// DataDir holds the database and the log file. Defaults to the XDG
	// data directory.
	DataDir string `envconfig:"DATA_DIR"`
	Debug   bool   `envconfig:"DEBUG"`

	Otel otel.Config `envconfig:"OTEL"`
}

// Load reads the configuration from WORKTIME_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		dir, err := util.GetXDGDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	return &cfg, nil
}

// DatabasePath is the local database file, or the embedded replica when a
// remote database is configured.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "worktime.db")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "worktime.log")
}

// Database returns the options for opening the tracker database.
func (c *Config) Database() turso.Options {
	return turso.Options{
		Path:      c.DatabasePath(),
		URL:       c.DatabaseURL,
		AuthToken: c.AuthToken,
	}
}
