package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/photometa/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photometa.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRequiredMissingFile(t *testing.T) {
	if _, err := LoadRequired(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Expected error for explicit missing config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
format: json
concurrency: 8
signing:
  gpg_key: /keys/report.asc
watch:
  debounce: 1s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != "json" || cfg.Concurrency != 8 {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if cfg.Compress != "none" {
		t.Errorf("Expected default compression to survive, got %q", cfg.Compress)
	}
	if cfg.Signing.GPGKey != "/keys/report.asc" {
		t.Errorf("Expected gpg key from file, got %q", cfg.Signing.GPGKey)
	}
	if cfg.GetDebounce() != time.Second {
		t.Errorf("Expected 1s debounce, got %v", cfg.GetDebounce())
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "format: [unclosed")); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PHOTOMETA_GPG_PASSPHRASE", "from-env")
	t.Setenv("PHOTOMETA_RSA_PASSPHRASE", "rsa-from-env")

	tests := []struct {
		name string
		path string
	}{
		{"with file", writeConfig(t, "signing:\n  gpg_passphrase: from-file\n")},
		{"without file", filepath.Join(t.TempDir(), "absent.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Signing.GPGPassphrase != "from-env" {
				t.Errorf("Expected environment to win, got %q", cfg.Signing.GPGPassphrase)
			}
			if cfg.Signing.RSAPassphrase != "rsa-from-env" {
				t.Errorf("Expected RSA passphrase from environment, got %q", cfg.Signing.RSAPassphrase)
			}

			extract := models.ExtractConfig{}
			cfg.Apply(&extract, func(string) bool { return false })
			if extract.GPGPassphrase != "from-env" {
				t.Errorf("Expected passphrase to reach the run config, got %q", extract.GPGPassphrase)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"format", func(c *Config) { c.Format = "xml" }},
		{"compress", func(c *Config) { c.Compress = "lz4" }},
		{"concurrency", func(c *Config) { c.Concurrency = -1 }},
		{"debounce", func(c *Config) { c.Watch.Debounce = "soon" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !models.IsType(err, models.ErrInvalidConfig) {
				t.Errorf("Expected InvalidConfig error, got %v", err)
			}
		})
	}
}

func TestApplyFlagsWin(t *testing.T) {
	file := DefaultConfig()
	file.Format = "yaml"
	file.Concurrency = 16
	file.Signing.RSAKey = "/keys/rsa.pem"

	cfg := models.ExtractConfig{Format: "json", Concurrency: 2}
	file.Apply(&cfg, func(flag string) bool { return flag == "format" })

	if cfg.Format != "json" {
		t.Errorf("Explicit flag should win, got %q", cfg.Format)
	}
	if cfg.Concurrency != 16 || cfg.RSAKeyPath != "/keys/rsa.pem" {
		t.Errorf("File values should fill unset flags, got %+v", cfg)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Expected default debounce, got %v", cfg.Debounce)
	}
}
