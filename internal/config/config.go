// Package config provides configuration loading and structs for the Bogoseo server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Storage  StorageConfig  `yaml:"storage"`
	Segment  SegmentConfig  `yaml:"segment"`
	Generate GenerateConfig `yaml:"generate"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GatewayConfig holds the MCP generation gateway settings.
type GatewayConfig struct {
	// Enabled starts the streamable HTTP gateway alongside the API server.
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// StorageConfig selects the registry backend. An empty DatabasePath keeps
// templates and reports in process memory; a path selects SQLite.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SegmentConfig holds section segmentation settings. The keyword set and
// locale strings are configuration, not code: the header heuristics must
// work for any locale's structural vocabulary.
type SegmentConfig struct {
	// MaxHeaderLength is the rune length bound for the colon and keyword
	// header rules. It applies to every keyword alternative.
	MaxHeaderLength int `yaml:"max_header_length"`
	// Keywords mark a short line as a header when any of them occurs in it.
	Keywords []string `yaml:"keywords"`
	// DefaultSectionTitle names the single fallback section emitted when no
	// headers are detected.
	DefaultSectionTitle string `yaml:"default_section_title"`
	// PlaceholderFormat is the fmt pattern for auto-generated placeholders;
	// the single %s verb receives the section title.
	PlaceholderFormat string `yaml:"placeholder_format"`
}

// GenerateConfig holds report synthesis settings.
type GenerateConfig struct {
	// DefaultTitleFormat is the fmt pattern for a report title when the
	// request omits one; the %s verb receives the template filename.
	DefaultTitleFormat string `yaml:"default_title_format"`
}

// WatchConfig holds drop-folder ingestion settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Storage.DatabasePath != "" {
		cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path. Used for persisting watch directory add/remove.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
