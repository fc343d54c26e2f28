package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CASETRAIL_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionsDir == "" || cfg.ArchivePath == "" {
		t.Errorf("expected default paths, got %+v", cfg)
	}
	if cfg.IDPrefix != "sess" {
		t.Errorf("expected default id prefix, got %q", cfg.IDPrefix)
	}
	if !cfg.IndexQueries {
		t.Error("expected query indexing on by default")
	}
	if cfg.Scrape.RetryMax != 3 {
		t.Errorf("expected default retry max 3, got %d", cfg.Scrape.RetryMax)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
sessions_dir: /var/lib/casetrail/sessions
id_prefix: case
index_queries: false
scrape:
  endpoint: http://localhost:3002
  retry_max: 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionsDir != "/var/lib/casetrail/sessions" {
		t.Errorf("sessions_dir not applied: %q", cfg.SessionsDir)
	}
	if cfg.IDPrefix != "case" {
		t.Errorf("id_prefix not applied: %q", cfg.IDPrefix)
	}
	if cfg.IndexQueries {
		t.Error("index_queries override not applied")
	}
	if cfg.Scrape.Endpoint != "http://localhost:3002" || cfg.Scrape.RetryMax != 5 {
		t.Errorf("scrape overrides not applied: %+v", cfg.Scrape)
	}
	// Unset keys keep their defaults
	if cfg.ArchivePath == "" {
		t.Error("archive_path default lost")
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("CASETRAIL_SCRAPE_KEY", "fc-test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scrape.APIKey != "fc-test-key" {
		t.Errorf("expected env key, got %q", cfg.Scrape.APIKey)
	}
}

func TestBadYAMLReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("sessions_dir: [unclosed"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
