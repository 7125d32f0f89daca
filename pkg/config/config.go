package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Fetch struct {
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxBodyMB      int64  `yaml:"max_body_mb"`
	} `yaml:"fetch"`
	Images struct {
		MinWidth            int    `yaml:"min_width"`
		MinHeight           int    `yaml:"min_height"`
		ProbeConcurrency    int    `yaml:"probe_concurrency"`
		ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"`
		PlaceholderURL      string `yaml:"placeholder_url"`
	} `yaml:"images"`
	Cache struct {
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"cache"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		setDefaults(config)
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}

	fillMissing(config)
	return config, nil
}

func setDefaults(config *Config) {
	config.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	config.Fetch.TimeoutSeconds = 30
	config.Fetch.MaxBodyMB = 50
	config.Images.MinWidth = 200
	config.Images.MinHeight = 200
	config.Images.ProbeConcurrency = 4
	config.Images.ProbeTimeoutSeconds = 10
	config.Images.PlaceholderURL = "https://picsum.photos/600/600"
	config.Cache.TTLHours = 24
}

// fillMissing patches zero-valued fields with defaults so a partial config
// file only overrides what it names.
func fillMissing(config *Config) {
	defaults := &Config{}
	setDefaults(defaults)

	if config.Fetch.UserAgent == "" {
		config.Fetch.UserAgent = defaults.Fetch.UserAgent
	}
	if config.Fetch.TimeoutSeconds == 0 {
		config.Fetch.TimeoutSeconds = defaults.Fetch.TimeoutSeconds
	}
	if config.Fetch.MaxBodyMB == 0 {
		config.Fetch.MaxBodyMB = defaults.Fetch.MaxBodyMB
	}
	if config.Images.MinWidth == 0 {
		config.Images.MinWidth = defaults.Images.MinWidth
	}
	if config.Images.MinHeight == 0 {
		config.Images.MinHeight = defaults.Images.MinHeight
	}
	if config.Images.ProbeConcurrency == 0 {
		config.Images.ProbeConcurrency = defaults.Images.ProbeConcurrency
	}
	if config.Images.ProbeTimeoutSeconds == 0 {
		config.Images.ProbeTimeoutSeconds = defaults.Images.ProbeTimeoutSeconds
	}
	if config.Images.PlaceholderURL == "" {
		config.Images.PlaceholderURL = defaults.Images.PlaceholderURL
	}
	if config.Cache.TTLHours == 0 {
		config.Cache.TTLHours = defaults.Cache.TTLHours
	}
}
