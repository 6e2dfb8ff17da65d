// Package config provides configuration loading and structs for the cvpress server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Generate GenerateConfig `yaml:"generate"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for uploaded files, the page database, and the
// page search index. None of these default: they must be set in the config
// file so that data never lands in a surprise location.
type StorageConfig struct {
	UploadsDir    string `yaml:"uploads_dir"`
	DatabasePath  string `yaml:"database_path"`
	PageIndexPath string `yaml:"page_index_path"`
}

// ScrapeConfig holds shared-page fetch settings.
type ScrapeConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Timeout returns the scrape timeout as a duration.
func (s *ScrapeConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// GenerateConfig holds generation thresholds.
type GenerateConfig struct {
	MinTextChars   int   `yaml:"min_text_chars"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// Load reads and parses the config file at path, applies defaults, validates
// required storage paths, and expands relative paths.
// Returns an error if the file cannot be read or parsed, or if a required
// storage path is missing.
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
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.UploadsDir = expandPath(cfg.Storage.UploadsDir, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.PageIndexPath = expandPath(cfg.Storage.PageIndexPath, configDir)

	return &cfg, nil
}

// validateStorage ensures every required storage path is configured.
func (c *Config) validateStorage() error {
	var missing []string
	if c.Storage.UploadsDir == "" {
		missing = append(missing, "storage.uploads_dir")
	}
	if c.Storage.DatabasePath == "" {
		missing = append(missing, "storage.database_path")
	}
	if c.Storage.PageIndexPath == "" {
		missing = append(missing, "storage.page_index_path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
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
