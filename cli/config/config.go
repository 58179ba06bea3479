package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents a swupdate-apply YAML configuration file.
// All values are optional and act as defaults for flags of the same name.
// CLI flags always override config values.
type Config struct {
	Image    string         `yaml:"image"`
	DryRun   bool           `yaml:"dry_run"`
	Format   string         `yaml:"format"`
	Log      LogConfig      `yaml:"log"`
	Request  RequestConfig  `yaml:"request"`
	Versions VersionsConfig `yaml:"versions"`
	AES      AESConfig      `yaml:"aes"`
	Engine   EngineConfig   `yaml:"engine"`
}

// LogConfig holds logging defaults.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error
	Level string `yaml:"level"`

	// Encoding is console or json
	Encoding string `yaml:"encoding"`
}

// RequestConfig holds the metadata sent with the update request.
type RequestConfig struct {
	Info         string `yaml:"info"`
	SoftwareSet  string `yaml:"software_set"`
	RunningMode  string `yaml:"running_mode"`
	DisableStore bool   `yaml:"disable_store"`
}

// VersionsConfig holds an optional version range sent before the update.
type VersionsConfig struct {
	Minimum string `yaml:"minimum"`
	Maximum string `yaml:"maximum"`
	Current string `yaml:"current"`
}

// IsSet reports whether any bound is configured.
func (v VersionsConfig) IsSet() bool {
	return v.Minimum != "" || v.Maximum != "" || v.Current != ""
}

// AESConfig holds an optional decryption key sent before the update.
// Use ${VAR} references to keep the key out of the file.
type AESConfig struct {
	Key string `yaml:"key"`
	IVT string `yaml:"ivt"`
}

// IsSet reports whether a key or IVT is configured.
func (a AESConfig) IsSet() bool {
	return a.Key != "" || a.IVT != ""
}

// EngineConfig holds engine tuning.
type EngineConfig struct {
	// BufferSize is the read buffer handed to the engine, in bytes
	BufferSize int `yaml:"buffer_size"`
}

// Load reads a YAML config file, expands environment variables, and
// unmarshals into a Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	expanded, err := ExpandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if cfg.Engine.BufferSize < 0 {
		return nil, fmt.Errorf("invalid engine.buffer_size %d in %s", cfg.Engine.BufferSize, path)
	}

	return &cfg, nil
}
