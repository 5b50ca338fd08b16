package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cookies  CookieConfig   `yaml:"cookies"`
	Extract  ExtractConfig  `yaml:"extract"`
	Download DownloadConfig `yaml:"download"`
	Remux    RemuxConfig    `yaml:"remux"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"10m"`
}

// CookieConfig holds per-platform cookie file storage configuration.
type CookieConfig struct {
	Dir string `yaml:"dir" envconfig:"COOKIE_DIR" default:"/data/cookies"`
}

// ExtractConfig holds stream extractor configuration.
type ExtractConfig struct {
	BinPath  string        `yaml:"bin_path" envconfig:"EXTRACT_BIN" default:"yt-dlp"`
	Attempts int           `yaml:"attempts" envconfig:"EXTRACT_ATTEMPTS" default:"3"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"EXTRACT_TIMEOUT" default:"60s"`
}

// DownloadConfig holds stream download and relay configuration.
type DownloadConfig struct {
	Attempts      int           `yaml:"attempts" envconfig:"DOWNLOAD_ATTEMPTS" default:"4"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"DOWNLOAD_TIMEOUT" default:"5m"`
	RetryDelay    time.Duration `yaml:"retry_delay" envconfig:"DOWNLOAD_RETRY_DELAY" default:"1s"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" envconfig:"DOWNLOAD_MAX_RETRY_DELAY" default:"15s"`
}

// RemuxConfig holds remux subprocess configuration.
type RemuxConfig struct {
	FFmpegPath   string        `yaml:"ffmpeg_path" envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	ScratchDir   string        `yaml:"scratch_dir" envconfig:"SCRATCH_DIR" default:"/data/scratch"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"REMUX_TIMEOUT" default:"300s"`
	AudioBitrate string        `yaml:"audio_bitrate" envconfig:"REMUX_AUDIO_BITRATE" default:"192k"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Cookies.Dir == "" {
		return fmt.Errorf("COOKIE_DIR is required")
	}
	if c.Remux.ScratchDir == "" {
		return fmt.Errorf("SCRATCH_DIR is required")
	}
	if c.Extract.Attempts < 1 {
		return fmt.Errorf("EXTRACT_ATTEMPTS must be at least 1")
	}
	if c.Download.Attempts < 1 {
		return fmt.Errorf("DOWNLOAD_ATTEMPTS must be at least 1")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
