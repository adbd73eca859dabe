package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultMaxFiles bounds how many of the most recently modified log files
// are scanned per load. Recommended range 10-10000.
const DefaultMaxFiles = 500

// Config holds all ccview configuration.
type Config struct {
	General GeneralConfig    `toml:"general"`
	Pricing PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	MaxFiles int    `toml:"max_files"`
	Theme    string `toml:"theme"`
}

// PricingOverrides allows user-defined pricing for specific models.
// Applied over the static table once at startup; there is no runtime
// mutation path afterwards.
type PricingOverrides struct {
	Overrides map[string]ModelPricingOverride `toml:"overrides,omitempty"`
}

// ModelPricingOverride holds per-model pricing overrides.
type ModelPricingOverride struct {
	InputPerMTok      *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok     *float64 `toml:"output_per_mtok,omitempty"`
	CacheWritePerMTok *float64 `toml:"cache_write_per_mtok,omitempty"`
	CacheReadPerMTok  *float64 `toml:"cache_read_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MaxFiles: DefaultMaxFiles,
			Theme:    "dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccview")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.MaxFiles <= 0 {
		cfg.General.MaxFiles = DefaultMaxFiles
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ApplyPricingOverrides merges user overrides into the static pricing table.
// Called once during startup, before any cost computation.
func ApplyPricingOverrides(o PricingOverrides) {
	for modelName, ov := range o.Overrides {
		p := pricing[modelName] // zero value for brand-new models
		if ov.InputPerMTok != nil {
			p.InputPerMTok = *ov.InputPerMTok
		}
		if ov.OutputPerMTok != nil {
			p.OutputPerMTok = *ov.OutputPerMTok
		}
		if ov.CacheWritePerMTok != nil {
			p.CacheWritePerMTok = *ov.CacheWritePerMTok
		}
		if ov.CacheReadPerMTok != nil {
			p.CacheReadPerMTok = *ov.CacheReadPerMTok
		}
		pricing[modelName] = p
	}
}
