package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Number of concurrent analyses in batch runs
	Concurrency int `yaml:"concurrency"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Analysis defaults, applied per call
	Analysis AnalysisConfig `yaml:"analysis"`
}

// FFmpegConfig controls the external ffmpeg/ffprobe processes
type FFmpegConfig struct {
	Threads         int `yaml:"threads"`
	ProbeTimeoutSec int `yaml:"probe_timeout_sec"`
	ExecTimeoutSec  int `yaml:"exec_timeout_sec"`
}

// ProbeBudget is the wall-clock budget for one ffprobe run
func (c FFmpegConfig) ProbeBudget() time.Duration {
	return time.Duration(c.ProbeTimeoutSec) * time.Second
}

// ExecBudget is the wall-clock budget for one ffmpeg run
func (c FFmpegConfig) ExecBudget() time.Duration {
	return time.Duration(c.ExecTimeoutSec) * time.Second
}

// AnalysisConfig holds the default analysis knobs. These become a per-call
// options value; nothing reads them as process-wide state.
type AnalysisConfig struct {
	SampleCap    int     `yaml:"sample_cap"`
	ClusterCount int     `yaml:"cluster_count"`
	SampleDim    int     `yaml:"sample_dim"`
	Epsilon      float64 `yaml:"epsilon"`
	Attempts     int     `yaml:"attempts"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		Concurrency: 4,
		FFmpeg: FFmpegConfig{
			Threads:         0,
			ProbeTimeoutSec: 30,
			ExecTimeoutSec:  120,
		},
		Analysis: AnalysisConfig{
			SampleCap:    20,
			ClusterCount: 5,
			SampleDim:    100,
			Epsilon:      1.0,
			Attempts:     3,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".clipvibe", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
