// Package config loads casetrail configuration from a YAML file, with
// working defaults when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings.
type Config struct {
	// SessionsDir is where session records live, one JSON file each.
	SessionsDir string `yaml:"sessions_dir"`
	// ArchivePath is the SQLite database holding result payloads.
	ArchivePath string `yaml:"archive_path"`
	// IDPrefix prefixes generated session ids.
	IDPrefix string `yaml:"id_prefix"`
	// IndexQueries makes interaction query text searchable in addition
	// to labels and metadata.
	IndexQueries bool `yaml:"index_queries"`

	Scrape ScrapeConfig `yaml:"scrape"`
}

// ScrapeConfig configures the scrape backend client.
type ScrapeConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	RetryMax int    `yaml:"retry_max"`
}

// BaseDir returns the casetrail state directory: $CASETRAIL_HOME when set,
// otherwise ~/.casetrail.
func BaseDir() string {
	if env := os.Getenv("CASETRAIL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".casetrail")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	base := BaseDir()
	return Config{
		SessionsDir:  filepath.Join(base, "sessions"),
		ArchivePath:  filepath.Join(base, "archive.db"),
		IDPrefix:     "sess",
		IndexQueries: true,
		Scrape: ScrapeConfig{
			Endpoint: "https://api.firecrawl.dev",
			RetryMax: 3,
		},
	}
}

// Load reads path, overlaying file values on the defaults. A missing file
// is not an error. The scrape API key falls back to $CASETRAIL_SCRAPE_KEY
// when the file does not set one.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.Scrape.APIKey == "" {
		cfg.Scrape.APIKey = os.Getenv("CASETRAIL_SCRAPE_KEY")
	}
	return cfg, nil
}
