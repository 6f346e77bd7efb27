package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	SourceURL    string `yaml:"source_url"`
	ReportPath   string `yaml:"report_path"`
	PlaylistPath string `yaml:"playlist_path"`
	UserAgent    string `yaml:"user_agent"`
	Keyword      string `yaml:"keyword"`
	FetchTimeout string `yaml:"fetch_timeout"`
	CheckTimeout string `yaml:"check_timeout"`
	RedisURL     string `yaml:"redis_url"`
	MetricsFile  string `yaml:"metrics_file"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
}

// LoadFromFile loads config from a YAML file. Keys left out keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	c := Default()
	setString(&c.SourceURL, f.SourceURL)
	setString(&c.ReportPath, f.ReportPath)
	setString(&c.PlaylistPath, f.PlaylistPath)
	setString(&c.UserAgent, f.UserAgent)
	setString(&c.Keyword, f.Keyword)
	setString(&c.RedisURL, f.RedisURL)
	setString(&c.MetricsFile, f.MetricsFile)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFile, f.LogFile)
	if err := setDuration(&c.FetchTimeout, f.FetchTimeout); err != nil {
		return nil, fmt.Errorf("fetch_timeout: %w", err)
	}
	if err := setDuration(&c.CheckTimeout, f.CheckTimeout); err != nil {
		return nil, fmt.Errorf("check_timeout: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
