package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	ASR        ASRConfig        `toml:"asr"`
	Enrichment EnrichmentConfig `toml:"enrichment"`
	Player     PlayerConfig     `toml:"player"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	DBPath    string `toml:"db_path"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ASRConfig holds speech recognition settings
type ASRConfig struct {
	Binary     string `toml:"binary"` // whisper binary; empty = auto-detect
	ModelPath  string `toml:"model_path"`
	Language   string `toml:"language"` // default language hint; empty = autodetect
	DisableVAD bool   `toml:"disable_vad"`
	NumThreads int    `toml:"num_threads"`
}

// EnrichmentConfig holds sentiment/tone enrichment settings
type EnrichmentConfig struct {
	MaxWorkers int    `toml:"max_workers"`
	TonesPath  string `toml:"tones_path"` // optional YAML tone lexicon override
}

// PlayerConfig holds media player settings
type PlayerConfig struct {
	Command string `toml:"command"` // "auto" tries vlc, mpv, then ffplay
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in path fields
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the MTA_CONFIG environment variable
// or the default locations; without a config file the defaults apply
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MTA_CONFIG")
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/meintranskriptarchiv/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Default returns the configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinTRANSKRIPTARCHIV"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = filepath.Join(os.Getenv("HOME"), "mta_out")
	}
	if c.General.DBPath == "" {
		c.General.DBPath = filepath.Join(c.General.DataDir, "transcripts.sqlite")
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// ASR
	if c.ASR.NumThreads == 0 {
		c.ASR.NumThreads = 4
	}

	// Enrichment
	if c.Enrichment.MaxWorkers == 0 {
		c.Enrichment.MaxWorkers = 8
	}

	// Player
	if c.Player.Command == "" {
		c.Player.Command = "auto"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.DBPath = os.ExpandEnv(c.General.DBPath)
	c.ASR.ModelPath = os.ExpandEnv(c.ASR.ModelPath)
	c.Enrichment.TonesPath = os.ExpandEnv(c.Enrichment.TonesPath)
}
