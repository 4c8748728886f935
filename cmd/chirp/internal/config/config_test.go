package config

import (
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.StoreDir != "" || cfg.LogLevel != "" || cfg.OutputFormat != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chirp")
	cfg := &Config{
		Dir:          dir,
		StoreDir:     "/var/lib/chirp/runs",
		LogLevel:     "debug",
		OutputFormat: "yaml",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.StoreDir != cfg.StoreDir || loaded.LogLevel != cfg.LogLevel || loaded.OutputFormat != cfg.OutputFormat {
		t.Errorf("round-trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestStorePath(t *testing.T) {
	cfg := &Config{Dir: "/home/u/.config/chirp"}
	if got, want := cfg.StorePath(), filepath.Join(cfg.Dir, "runs"); got != want {
		t.Errorf("StorePath = %q, want %q", got, want)
	}

	cfg.StoreDir = "/data/runs"
	if got := cfg.StorePath(); got != "/data/runs" {
		t.Errorf("StorePath with override = %q, want /data/runs", got)
	}
}
