package models

import "time"

// ExtractConfig contains configuration for an extraction run
type ExtractConfig struct {
	// Input/Output
	Paths      []string
	Format     string // text, json or yaml
	OutputPath string // empty means stdout
	Compress   string // none, gzip, zstd or xz

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
	RSAKeyPath    string
	RSAPassphrase string
	ExportKey     bool // write public keys next to signatures

	// Behaviour
	Concurrency int
	FailOnError bool

	// Watch mode
	Debounce time.Duration
}
