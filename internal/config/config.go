package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	MusicAtlas MusicAtlasConfig `yaml:"musicatlas"`
	Spotify    SpotifyConfig    `yaml:"spotify"`
	Grok       GrokConfig       `yaml:"grok"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int    `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// MusicAtlasConfig holds metadata provider settings
type MusicAtlasConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	RetryDelay      string `yaml:"retry_delay"`
	PollInterval    string `yaml:"poll_interval"`
	MaxPollDuration string `yaml:"max_poll_duration"`
	MaxRetries      int    `yaml:"max_retries"`
}

// SpotifyConfig holds search provider credentials
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
}

// GrokConfig holds feedback generator settings
type GrokConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// defaults returns a Config with sensible defaults
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "30s",
		},
		MusicAtlas: MusicAtlasConfig{
			BaseURL:         "https://api.musicatlas.io",
			RetryDelay:      "2s",
			PollInterval:    "3s",
			MaxPollDuration: "10m",
			MaxRetries:      3,
		},
		Spotify: SpotifyConfig{
			BaseURL:  "https://api.spotify.com",
			TokenURL: "https://accounts.spotify.com/api/token",
		},
		Grok: GrokConfig{
			BaseURL: "https://api.x.ai",
			Model:   "grok-3",
		},
	}
}

// Load reads configuration from YAML files and environment variables.
// Files are loaded in order; later files override earlier ones.
// Environment variables override file values.
func Load(paths ...string) (*Config, error) {
	cfg := defaults()

	for _, path := range paths {
		if err := loadFile(cfg, path); err != nil {
			// Skip missing files silently (config.local.yaml may not exist)
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadFile reads a YAML file and merges into cfg
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return nil
}

// mergeConfig copies non-zero values from src to dst
func mergeConfig(dst, src *Config) {
	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ReadTimeout != "" {
		dst.Server.ReadTimeout = src.Server.ReadTimeout
	}
	if src.Server.WriteTimeout != "" {
		dst.Server.WriteTimeout = src.Server.WriteTimeout
	}
	if src.Server.ShutdownTimeout != "" {
		dst.Server.ShutdownTimeout = src.Server.ShutdownTimeout
	}

	// MusicAtlas
	if src.MusicAtlas.BaseURL != "" {
		dst.MusicAtlas.BaseURL = src.MusicAtlas.BaseURL
	}
	if src.MusicAtlas.APIKey != "" {
		dst.MusicAtlas.APIKey = src.MusicAtlas.APIKey
	}
	if src.MusicAtlas.RetryDelay != "" {
		dst.MusicAtlas.RetryDelay = src.MusicAtlas.RetryDelay
	}
	if src.MusicAtlas.PollInterval != "" {
		dst.MusicAtlas.PollInterval = src.MusicAtlas.PollInterval
	}
	if src.MusicAtlas.MaxPollDuration != "" {
		dst.MusicAtlas.MaxPollDuration = src.MusicAtlas.MaxPollDuration
	}
	if src.MusicAtlas.MaxRetries != 0 {
		dst.MusicAtlas.MaxRetries = src.MusicAtlas.MaxRetries
	}

	// Spotify
	if src.Spotify.ClientID != "" {
		dst.Spotify.ClientID = src.Spotify.ClientID
	}
	if src.Spotify.ClientSecret != "" {
		dst.Spotify.ClientSecret = src.Spotify.ClientSecret
	}
	if src.Spotify.BaseURL != "" {
		dst.Spotify.BaseURL = src.Spotify.BaseURL
	}
	if src.Spotify.TokenURL != "" {
		dst.Spotify.TokenURL = src.Spotify.TokenURL
	}

	// Grok
	if src.Grok.BaseURL != "" {
		dst.Grok.BaseURL = src.Grok.BaseURL
	}
	if src.Grok.APIKey != "" {
		dst.Grok.APIKey = src.Grok.APIKey
	}
	if src.Grok.Model != "" {
		dst.Grok.Model = src.Grok.Model
	}
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("MUSICATLAS_API_KEY"); v != "" {
		cfg.MusicAtlas.APIKey = v
	}
	if v := os.Getenv("MUSICATLAS_BASE_URL"); v != "" {
		cfg.MusicAtlas.BaseURL = v
	}

	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}

	if v := os.Getenv("XAI_API_KEY"); v != "" {
		cfg.Grok.APIKey = v
	}
}

// validate checks required fields and value constraints
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}

	if cfg.MusicAtlas.BaseURL == "" {
		return fmt.Errorf("musicatlas.base_url is required")
	}

	if _, err := cfg.GetReadTimeout(); err != nil {
		return fmt.Errorf("server.read_timeout invalid: %w", err)
	}
	if _, err := cfg.GetWriteTimeout(); err != nil {
		return fmt.Errorf("server.write_timeout invalid: %w", err)
	}
	if _, err := cfg.GetShutdownTimeout(); err != nil {
		return fmt.Errorf("server.shutdown_timeout invalid: %w", err)
	}
	if _, err := cfg.GetRetryDelay(); err != nil {
		return fmt.Errorf("musicatlas.retry_delay invalid: %w", err)
	}
	if _, err := cfg.GetPollInterval(); err != nil {
		return fmt.Errorf("musicatlas.poll_interval invalid: %w", err)
	}
	if _, err := cfg.GetMaxPollDuration(); err != nil {
		return fmt.Errorf("musicatlas.max_poll_duration invalid: %w", err)
	}

	return nil
}

// Helper methods to get parsed duration values

func (c *Config) GetReadTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ReadTimeout)
}

func (c *Config) GetWriteTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.WriteTimeout)
}

func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ShutdownTimeout)
}

func (c *Config) GetRetryDelay() (time.Duration, error) {
	return time.ParseDuration(c.MusicAtlas.RetryDelay)
}

func (c *Config) GetPollInterval() (time.Duration, error) {
	return time.ParseDuration(c.MusicAtlas.PollInterval)
}

func (c *Config) GetMaxPollDuration() (time.Duration, error) {
	return time.ParseDuration(c.MusicAtlas.MaxPollDuration)
}
