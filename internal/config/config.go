package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TickerScope/internal/provider"
)

// Config holds the shared configuration for all TickerScope commands.
type Config struct {
	Defaults struct {
		Ticker           string `yaml:"ticker"`
		Source           string `yaml:"source"`
		IntradayStepMins int    `yaml:"intraday_step_minutes"`
		HistoryStepDays  int    `yaml:"history_step_days"`
		HistoryLimit     int    `yaml:"history_limit"`
	} `yaml:"defaults"`
	Providers struct {
		MassiveAPIKey     string `yaml:"massive_api_key"`
		FinnhubAPIKey     string `yaml:"finnhub_api_key"`
		TwelveDataAPIKey  string `yaml:"twelvedata_api_key"`
		YahooBaseURL      string `yaml:"yahoo_base_url"`
		MassiveBaseURL    string `yaml:"massive_base_url"`
		FinnhubBaseURL    string `yaml:"finnhub_base_url"`
		TwelveDataBaseURL string `yaml:"twelvedata_base_url"`
	} `yaml:"providers"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		TTLSeconds int    `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing config file or .env is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// API keys are commonly kept in a .env next to the binary.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MASSIVE_API_KEY"); v != "" {
		cfg.Providers.MassiveAPIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Providers.FinnhubAPIKey = v
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		cfg.Providers.TwelveDataAPIKey = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Providers.YahooBaseURL = v
	}
	if v := os.Getenv("MASSIVE_BASE_URL"); v != "" {
		cfg.Providers.MassiveBaseURL = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Providers.FinnhubBaseURL = v
	}
	if v := os.Getenv("TWELVEDATA_BASE_URL"); v != "" {
		cfg.Providers.TwelveDataBaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSeconds = ttl
		}
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}

	// Defaults
	if cfg.Defaults.Ticker == "" {
		cfg.Defaults.Ticker = "NVDA"
	}
	if cfg.Defaults.Source == "" {
		cfg.Defaults.Source = "yfinance"
	}
	if cfg.Defaults.IntradayStepMins == 0 {
		cfg.Defaults.IntradayStepMins = 15
	}
	if cfg.Defaults.HistoryStepDays == 0 {
		cfg.Defaults.HistoryStepDays = 1
	}
	if cfg.Defaults.HistoryLimit == 0 {
		cfg.Defaults.HistoryLimit = 21
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 * * * * *"
	}

	return cfg, nil
}

// LoadDefault loads from CONFIG_PATH, falling back to configs/config.yaml.
func LoadDefault() (*Config, error) {
	path := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	return Load(path)
}

// ProviderOptions maps the provider-related fields into construction options.
func (c *Config) ProviderOptions() provider.Options {
	return provider.Options{
		MassiveAPIKey:     c.Providers.MassiveAPIKey,
		FinnhubAPIKey:     c.Providers.FinnhubAPIKey,
		TwelveDataAPIKey:  c.Providers.TwelveDataAPIKey,
		YahooBaseURL:      c.Providers.YahooBaseURL,
		MassiveBaseURL:    c.Providers.MassiveBaseURL,
		FinnhubBaseURL:    c.Providers.FinnhubBaseURL,
		TwelveDataBaseURL: c.Providers.TwelveDataBaseURL,
		Proxy:             c.Proxy,
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Defaults.Ticker == "" {
		return fmt.Errorf("defaults.ticker is required")
	}
	if c.Defaults.IntradayStepMins <= 0 {
		return fmt.Errorf("defaults.intraday_step_minutes must be positive")
	}
	if c.Defaults.HistoryStepDays <= 0 {
		return fmt.Errorf("defaults.history_step_days must be positive")
	}
	if c.Defaults.HistoryLimit <= 0 {
		return fmt.Errorf("defaults.history_limit must be positive")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative")
	}
	return nil
}
