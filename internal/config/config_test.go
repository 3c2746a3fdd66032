package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir == "" {
		t.Fatal("data dir default not applied")
	}
	if cfg.API.BaseURL != DefaultAPIBaseURL {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "pipeboard", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("data_dir: /tmp/pb-test\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/pb-test" {
		t.Fatalf("data dir = %q", cfg.DataDir)
	}
	if cfg.API.BaseURL != DefaultAPIBaseURL {
		t.Fatal("missing api section must fall back to the default base url")
	}
}

func TestSaveRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.API.Token = "tok-xyz"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.API.Token != "tok-xyz" {
		t.Fatalf("token = %q", again.API.Token)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.DatabasePath(); got != filepath.Join("/data", "pipeboard.db") {
		t.Fatalf("path = %q", got)
	}
}
