package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/report"
	"github.com/ralt/photometa/internal/utils"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when --config is not given. It may be absent.
const DefaultPath = ".photometa.yaml"

// Config holds defaults for the extract and watch commands
type Config struct {
	Format      string        `yaml:"format"`
	Compress    string        `yaml:"compress"`
	Concurrency int           `yaml:"concurrency"`
	FailOnError bool          `yaml:"fail_on_error"`
	Signing     SigningConfig `yaml:"signing"`
	Watch       WatchConfig   `yaml:"watch"`
}

// SigningConfig configures report signatures
type SigningConfig struct {
	GPGKey        string `yaml:"gpg_key"`
	GPGPassphrase string `yaml:"gpg_passphrase"`
	RSAKey        string `yaml:"rsa_key"`
	RSAPassphrase string `yaml:"rsa_passphrase"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // e.g. "250ms"
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Format:      string(report.FormatText),
		Compress:    string(utils.CompressNone),
		Concurrency: 4,
		Watch: WatchConfig{
			Debounce: "250ms",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadRequired is Load for a path the user named explicitly
func LoadRequired(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Load(path)
}

// applyEnvOverrides keeps passphrases out of files and shell history
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("PHOTOMETA_GPG_PASSPHRASE"); p != "" {
		c.Signing.GPGPassphrase = p
	}
	if p := os.Getenv("PHOTOMETA_RSA_PASSPHRASE"); p != "" {
		c.Signing.RSAPassphrase = p
	}
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return invalid(err)
	}
	if _, err := utils.ParseCompression(c.Compress); err != nil {
		return invalid(err)
	}
	if c.Concurrency < 0 {
		return invalid(fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return invalid(fmt.Errorf("invalid watch debounce: %w", err))
		}
	}
	return nil
}

// Apply copies file values into cfg for every flag the user did not set.
// changed reports whether a flag was given on the command line.
func (c *Config) Apply(cfg *models.ExtractConfig, changed func(flag string) bool) {
	if !changed("format") {
		cfg.Format = c.Format
	}
	if !changed("compress") {
		cfg.Compress = c.Compress
	}
	if !changed("concurrency") {
		cfg.Concurrency = c.Concurrency
	}
	if !changed("fail-on-error") {
		cfg.FailOnError = c.FailOnError
	}
	if !changed("gpg-key") {
		cfg.GPGKeyPath = c.Signing.GPGKey
	}
	if !changed("gpg-passphrase") {
		cfg.GPGPassphrase = c.Signing.GPGPassphrase
	}
	if !changed("rsa-key") {
		cfg.RSAKeyPath = c.Signing.RSAKey
	}
	if !changed("rsa-passphrase") {
		cfg.RSAPassphrase = c.Signing.RSAPassphrase
	}
	if !changed("debounce") {
		cfg.Debounce = c.GetDebounce()
	}
}

func invalid(err error) error {
	return &models.PhotoMetaError{Type: models.ErrInvalidConfig, Err: err}
}
