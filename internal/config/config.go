// Package config provides centralized configuration for the gitbttf binaries.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application-wide configuration.
type Config struct {
	// Addr is the HTTP listen address of the server.
	Addr string `yaml:"addr"`
	// DataRoot is the base directory for persistent data (progress, achievements).
	DataRoot string `yaml:"data_root"`
	// ExercisesDir optionally overrides the builtin exercise screens.
	ExercisesDir string `yaml:"exercises_dir"`
	LogLevel     string `yaml:"log_level"`
	// PullChance is the probability that pull brings a remote commit.
	PullChance float64 `yaml:"pull_chance"`
	// GraphRetries bounds the attempts to reflect a change in the graph.
	GraphRetries uint `yaml:"graph_retries"`
	// StrictCommitMessages makes commit exercises compare the message text.
	StrictCommitMessages bool `yaml:"strict_commit_messages"`
}

// DefaultConfig returns the default configuration, reading from environment variables.
func DefaultConfig() *Config {
	cfg := &Config{
		Addr:         ":8080",
		DataRoot:     ".gitbttf-data",
		LogLevel:     "info",
		PullChance:   0.7,
		GraphRetries: 5,
	}
	applyEnv(cfg)
	return cfg
}

// Load reads the YAML file named by GITBTTF_CONFIG (if any) over the
// defaults. Environment variables win over the file.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	path := os.Getenv("GITBTTF_CONFIG")
	if path == "" {
		return cfg, nil
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("GITBTTF_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GITBTTF_DATA_ROOT"); v != "" {
		c.DataRoot = v
	}
	if v := os.Getenv("GITBTTF_EXERCISES_DIR"); v != "" {
		c.ExercisesDir = v
	}
	if v := os.Getenv("GITBTTF_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("GITBTTF_PULL_CHANCE"), 64); err == nil {
		c.PullChance = v
	}
	if v, err := strconv.ParseUint(os.Getenv("GITBTTF_GRAPH_RETRIES"), 10, 32); err == nil {
		c.GraphRetries = uint(v)
	}
	if v, err := strconv.ParseBool(os.Getenv("GITBTTF_STRICT_COMMIT_MESSAGES")); err == nil {
		c.StrictCommitMessages = v
	}
}

func (c *Config) Validate() error {
	if c.PullChance < 0 || c.PullChance > 1 {
		return fmt.Errorf("pull_chance must be within [0,1], got %v", c.PullChance)
	}
	if c.GraphRetries == 0 {
		return fmt.Errorf("graph_retries must be at least 1")
	}
	return nil
}

// ProgressFile is where level progress and achievements are stored.
func (c *Config) ProgressFile() string {
	return filepath.Join(c.DataRoot, "progress.json")
}

// Global is the application-wide configuration instance.
var Global = DefaultConfig()
