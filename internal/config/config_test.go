package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Defaults.Ticker != "NVDA" {
		t.Errorf("expected default ticker NVDA, got %s", cfg.Defaults.Ticker)
	}
	if cfg.Defaults.Source != "yfinance" {
		t.Errorf("expected default source yfinance, got %s", cfg.Defaults.Source)
	}
	if cfg.Defaults.IntradayStepMins != 15 || cfg.Defaults.HistoryStepDays != 1 {
		t.Errorf("unexpected default steps: %+v", cfg.Defaults)
	}
	if cfg.Defaults.HistoryLimit != 21 {
		t.Errorf("expected default history limit 21, got %d", cfg.Defaults.HistoryLimit)
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Errorf("expected default cache TTL 60, got %d", cfg.Cache.TTLSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTempConfig(t, `
defaults:
  ticker: AAPL
  source: finnhub
  intraday_step_minutes: 5
providers:
  finnhub_api_key: yamlkey
cache:
  sqlite_path: /tmp/bars.db
  ttl_seconds: 120
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Ticker != "AAPL" || cfg.Defaults.Source != "finnhub" {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.IntradayStepMins != 5 {
		t.Errorf("expected step 5, got %d", cfg.Defaults.IntradayStepMins)
	}
	if cfg.Providers.FinnhubAPIKey != "yamlkey" {
		t.Errorf("unexpected finnhub key: %s", cfg.Providers.FinnhubAPIKey)
	}
	if cfg.Cache.SQLitePath != "/tmp/bars.db" || cfg.Cache.TTLSeconds != 120 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
providers:
  massive_api_key: fromfile
`)
	t.Setenv("MASSIVE_API_KEY", "fromenv")
	t.Setenv("FINNHUB_API_KEY", "fh")
	t.Setenv("TWELVEDATA_API_KEY", "td")
	t.Setenv("HTTPS_PROXY", "http://proxy:8080")
	t.Setenv("CACHE_TTL_SECONDS", "300")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.MassiveAPIKey != "fromenv" {
		t.Errorf("env should override file, got %s", cfg.Providers.MassiveAPIKey)
	}
	if cfg.Providers.FinnhubAPIKey != "fh" || cfg.Providers.TwelveDataAPIKey != "td" {
		t.Errorf("unexpected provider keys: %+v", cfg.Providers)
	}
	if cfg.Proxy != "http://proxy:8080" {
		t.Errorf("unexpected proxy: %s", cfg.Proxy)
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("expected TTL 300, got %d", cfg.Cache.TTLSeconds)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeTempConfig(t, "defaults: [not a map")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Defaults.IntradayStepMins = -5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative intraday step")
	}
	cfg.Defaults.IntradayStepMins = 15

	cfg.Cache.TTLSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative cache TTL")
	}
}

func TestProviderOptions(t *testing.T) {
	path := writeTempConfig(t, `
providers:
  massive_api_key: mk
  yahoo_base_url: http://localhost:9999
proxy: http://proxy:1234
`)
	t.Setenv("MASSIVE_API_KEY", "")
	t.Setenv("HTTPS_PROXY", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := cfg.ProviderOptions()
	if opts.MassiveAPIKey != "mk" || opts.YahooBaseURL != "http://localhost:9999" || opts.Proxy != "http://proxy:1234" {
		t.Errorf("unexpected options: %+v", opts)
	}
}
