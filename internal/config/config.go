package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults used when neither a config file nor the environment override them.
const (
	DefaultSourceURL    = "https://iptv-org.github.io/iptv/countries/bd.m3u"
	DefaultReportPath   = "data/sports_channels.json"
	DefaultPlaylistPath = "data/playlists/sports_playlists.m3u"
	DefaultUserAgent    = "Mozilla/5.0 (compatible; PlaylistBot/1.0)"
	DefaultKeyword      = "sport"
	DefaultFetchTimeout = 15 * time.Second
	DefaultCheckTimeout = 10 * time.Second
	DefaultLogLevel     = "info"
)

var (
	ErrMissingSourceURL = errors.New("source_url is required")
	ErrMissingPath      = errors.New("report_path and playlist_path are required")
	ErrInvalidSource    = errors.New("source_url must be an http or https URL")
	ErrInvalidTimeout   = errors.New("timeouts must be positive")
)

// Config holds the run configuration. Redis, metrics and the log file are optional.
type Config struct {
	SourceURL    string        `yaml:"source_url" env:"SPORTSVAULT_SOURCE_URL"`
	ReportPath   string        `yaml:"report_path" env:"SPORTSVAULT_REPORT_PATH"`
	PlaylistPath string        `yaml:"playlist_path" env:"SPORTSVAULT_PLAYLIST_PATH"`
	UserAgent    string        `yaml:"user_agent" env:"SPORTSVAULT_USER_AGENT"`
	Keyword      string        `yaml:"keyword" env:"SPORTSVAULT_KEYWORD"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"SPORTSVAULT_FETCH_TIMEOUT"`
	CheckTimeout time.Duration `yaml:"check_timeout" env:"SPORTSVAULT_CHECK_TIMEOUT"`
	RedisURL     string        `yaml:"redis_url" env:"REDIS_URL"`
	MetricsFile  string        `yaml:"metrics_file" env:"SPORTSVAULT_METRICS_FILE"`
	LogLevel     string        `yaml:"log_level" env:"SPORTSVAULT_LOG_LEVEL"`
	LogFile      string        `yaml:"log_file" env:"SPORTSVAULT_LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SourceURL:    DefaultSourceURL,
		ReportPath:   DefaultReportPath,
		PlaylistPath: DefaultPlaylistPath,
		UserAgent:    DefaultUserAgent,
		Keyword:      DefaultKeyword,
		FetchTimeout: DefaultFetchTimeout,
		CheckTimeout: DefaultCheckTimeout,
		LogLevel:     DefaultLogLevel,
	}
}

// Load builds config from the defaults overlaid with environment variables.
// .env.local and .env in the working directory are read first; variables
// already set in the environment take precedence over them.
func Load() (*Config, error) {
	loadEnvFiles()
	c := Default()
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"SPORTSVAULT_SOURCE_URL":    &c.SourceURL,
		"SPORTSVAULT_REPORT_PATH":   &c.ReportPath,
		"SPORTSVAULT_PLAYLIST_PATH": &c.PlaylistPath,
		"SPORTSVAULT_USER_AGENT":    &c.UserAgent,
		"SPORTSVAULT_KEYWORD":       &c.Keyword,
		"REDIS_URL":                 &c.RedisURL,
		"SPORTSVAULT_METRICS_FILE":  &c.MetricsFile,
		"SPORTSVAULT_LOG_LEVEL":     &c.LogLevel,
		"SPORTSVAULT_LOG_FILE":      &c.LogFile,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	durations := map[string]*time.Duration{
		"SPORTSVAULT_FETCH_TIMEOUT": &c.FetchTimeout,
		"SPORTSVAULT_CHECK_TIMEOUT": &c.CheckTimeout,
	}
	for key, dst := range durations {
		s := os.Getenv(key)
		if s == "" {
			continue
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return ErrMissingSourceURL
	}
	lower := strings.ToLower(c.SourceURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return ErrInvalidSource
	}
	if c.ReportPath == "" || c.PlaylistPath == "" {
		return ErrMissingPath
	}
	if c.FetchTimeout <= 0 || c.CheckTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
