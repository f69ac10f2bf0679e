package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_FILE_SIZE", "MAX_FILES", "MAX_OUTPUT_PAGES", "RESULT_TTL", "RESULT_STORE_BYTES"} {
		t.Setenv(key, "")
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort || cfg.MaxFileSize != DefaultMaxFileSize || cfg.MaxFiles != DefaultMaxFiles {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ResultTTL != DefaultResultTTL {
		t.Errorf("ttl = %v", cfg.ResultTTL)
	}
	if cfg.MaxOutputPages != DefaultMaxOutputPages || cfg.ResultStoreBytes != DefaultResultStoreBytes {
		t.Errorf("limits = %d pages, %d bytes", cfg.MaxOutputPages, cfg.ResultStoreBytes)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.yaml")
	yml := "port: \"9000\"\nmax_file_size: 2048\nmax_output_pages: 300\nresult_ttl: 90s\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("RESULT_STORE_BYTES", "4096")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override file port, got %q", cfg.Port)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("max file size = %d", cfg.MaxFileSize)
	}
	if cfg.MaxOutputPages != 300 || cfg.ResultStoreBytes != 4096 {
		t.Errorf("limits = %d pages, %d bytes", cfg.MaxOutputPages, cfg.ResultStoreBytes)
	}
	if cfg.ResultTTL != 90*time.Second {
		t.Errorf("ttl = %v", cfg.ResultTTL)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v", cfg.SlogLevel())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "lots")
	t.Setenv("RESULT_TTL", "soon")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize || cfg.ResultTTL != DefaultResultTTL {
		t.Errorf("invalid env values should fall back to defaults: %+v", cfg)
	}
}
