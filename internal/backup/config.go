package backup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

const (
	defaultCompression   = CompressionTarGz
	defaultRetentionDays = 30
)

// defaultExcludePatterns filters transient files out of every archive
// unless the config overrides them.
var defaultExcludePatterns = []string{".tmp", ".log", ".cache"}

// DefaultConfig returns the baseline configuration a config file is merged
// over.
func DefaultConfig() Config {
	return Config{
		Compression:     defaultCompression,
		RetentionDays:   defaultRetentionDays,
		ExcludePatterns: append([]string(nil), defaultExcludePatterns...),
	}
}

// LoadConfig reads and merges a JSON config file over the defaults.
// An empty path yields the defaults unchanged; validation happens later,
// after command-line overrides are applied.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("backup: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("backup: parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration shape. Path existence is checked
// separately by Manager.ValidatePaths so a dry run can report both layers.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("backup: invalid config: %w", err)
	}
	if c.Encryption && c.EncryptionKey == "" {
		return fmt.Errorf("backup: encryption enabled but no key provided")
	}
	return nil
}

// Save writes the configuration as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("backup: marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("backup: write config: %w", err)
	}
	return nil
}

// SampleConfig returns a starter configuration for --create-config.
func SampleConfig() Config {
	cfg := DefaultConfig()
	cfg.Sources = []string{"./documents", "./projects"}
	cfg.Destinations = []string{"./backups"}
	cfg.RetentionDays = 7
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, "node_modules")
	cfg.EncryptionKey = "your-secret-key-here"
	return cfg
}
