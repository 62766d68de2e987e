package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_EnvOverridesYAML(t *testing.T) {
	// Create a temp directory with a config.yaml
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
env: "test"
log_level: "debug"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Change to temp directory so Load() finds config.yaml
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	// Clear env vars that might interfere with test
	os.Unsetenv("PGHOST")
	os.Unsetenv("LOG_LEVEL")

	// Set env vars to override YAML values
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PGDATABASE", "overridden")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify env vars override YAML
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.Database.Database != "overridden" {
		t.Errorf("expected Database.Database=overridden (from env), got %s", cfg.Database.Database)
	}

	// Verify version was set
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}

	// Verify YAML value used for database host (proves YAML was read)
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host=db.example.com (from yaml), got %s", cfg.Database.Host)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug (from yaml), got %s", cfg.LogLevel)
	}
}

func TestLoad_MissingConfigFileFallsBackToEnv(t *testing.T) {
	// The engine runs as a CLI from arbitrary directories; a missing
	// config.yaml means environment-only configuration, not an error.
	tmpDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	t.Setenv("PGHOST", "envhost")
	t.Setenv("PGDATABASE", "envdb")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed without config.yaml: %v", err)
	}

	if cfg.Database.Host != "envhost" {
		t.Errorf("expected Database.Host=envhost (from env), got %s", cfg.Database.Host)
	}
	if cfg.Database.Database != "envdb" {
		t.Errorf("expected Database.Database=envdb (from env), got %s", cfg.Database.Database)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	for _, key := range []string{"PGHOST", "PGPORT", "PGUSER", "PGDATABASE", "PGMAX_CONNECTIONS", "PGSSLMODE", "ENVIRONMENT", "LOG_LEVEL", "MIGRATIONS_PATH"} {
		os.Unsetenv(key)
	}

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("expected Database.Host=localhost (default), got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected Database.Port=5432 (default), got %d", cfg.Database.Port)
	}
	if cfg.Database.MaxConnections != 25 {
		t.Errorf("expected Database.MaxConnections=25 (default), got %d", cfg.Database.MaxConnections)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("expected Database.SSLMode=disable (default), got %s", cfg.Database.SSLMode)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info (default), got %s", cfg.LogLevel)
	}
	if cfg.Migrations.Path != "migrations" {
		t.Errorf("expected Migrations.Path=migrations (default), got %s", cfg.Migrations.Path)
	}
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "engine",
		Password: "secret",
		Database: "plant",
		SSLMode:  "require",
	}

	got := cfg.ConnectionString()
	want := "host=db.example.com port=5433 user=engine password=secret dbname=plant sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}

	// Non-local hosts are never rewritten, in or out of Docker.
	if strings.Contains(got, "host.docker.internal") {
		t.Errorf("ConnectionString() rewrote a non-local host: %q", got)
	}
}
