package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration. A YAML file provides the
// baseline; a handful of environment variables override it so container
// deployments need no file at all.
type Config struct {
	// BackendURL is the records service base URL, including any path
	// prefix (e.g. http://localhost:5001/api).
	BackendURL string `yaml:"backend_url"`
	// AuthToken is the bearer credential for the records service.
	AuthToken string `yaml:"auth_token"`

	Port        string `yaml:"port"`
	MetricsAddr string `yaml:"metrics_addr"`
	DBPath      string `yaml:"db_path"`
	Timezone    string `yaml:"timezone"`
}

func Default() Config {
	return Config{
		BackendURL:  "http://localhost:5001/api",
		Port:        "8080",
		MetricsAddr: ":9090",
		DBPath:      filepath.Join("data", "helia.db"),
		Timezone:    "UTC",
	}
}

// Load reads the YAML file at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file is fine; env and defaults carry the config.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.BackendURL == "" {
		return Config{}, errors.New("backend_url must be set")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideEnv(&cfg.BackendURL, "BACKEND_URL")
	overrideEnv(&cfg.AuthToken, "AUTH_TOKEN")
	overrideEnv(&cfg.Port, "PORT")
	overrideEnv(&cfg.MetricsAddr, "METRICS_ADDR")
	overrideEnv(&cfg.DBPath, "DB_PATH")
	overrideEnv(&cfg.Timezone, "TZ")
}

func overrideEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
