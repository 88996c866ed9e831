package provider

import (
	"strings"
	"testing"
)

func TestOpenYahooAliases(t *testing.T) {
	for _, name := range []string{"", "yfinance", "yahoo", "YFinance"} {
		f, err := Open(name, Options{})
		if err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		if f.Name() != "yfinance" {
			t.Errorf("Open(%q): expected yfinance, got %s", name, f.Name())
		}
	}
}

func TestOpenUnknownSource(t *testing.T) {
	_, err := Open("bloomberg", Options{})
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
	if !strings.Contains(err.Error(), "unknown data source") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestOpenRequiresAPIKeys(t *testing.T) {
	tests := []struct {
		source string
		envVar string
	}{
		{"massive", "MASSIVE_API_KEY"},
		{"finnhub", "FINNHUB_API_KEY"},
		{"twelvedata", "TWELVEDATA_API_KEY"},
	}
	for _, tt := range tests {
		_, err := Open(tt.source, Options{})
		if err == nil {
			t.Errorf("Open(%q) without key: expected error", tt.source)
			continue
		}
		if !strings.Contains(err.Error(), tt.envVar) {
			t.Errorf("Open(%q) error should mention %s, got: %v", tt.source, tt.envVar, err)
		}
	}
}

func TestOpenKeyedSources(t *testing.T) {
	opts := Options{
		MassiveAPIKey:    "k1",
		FinnhubAPIKey:    "k2",
		TwelveDataAPIKey: "k3",
	}
	for _, source := range []string{"massive", "finnhub", "twelvedata"} {
		f, err := Open(source, opts)
		if err != nil {
			t.Fatalf("Open(%q): %v", source, err)
		}
		if f.Name() != source {
			t.Errorf("expected name %s, got %s", source, f.Name())
		}
	}
}

func TestCapabilityInterfaces(t *testing.T) {
	yahoo, _ := Open("yfinance", Options{})
	if _, ok := yahoo.(IntradayFetcher); !ok {
		t.Error("yahoo should provide intraday history")
	}
	if _, ok := yahoo.(DailyFetcher); !ok {
		t.Error("yahoo should provide daily history")
	}

	finnhub, _ := Open("finnhub", Options{FinnhubAPIKey: "k"})
	if _, ok := finnhub.(IntradayFetcher); ok {
		t.Error("finnhub should not claim intraday history")
	}
	if _, ok := finnhub.(DailyFetcher); ok {
		t.Error("finnhub should not claim daily history")
	}

	massive, _ := Open("massive", Options{MassiveAPIKey: "k"})
	if _, ok := massive.(DailyFetcher); !ok {
		t.Error("massive should provide daily history")
	}
	if _, ok := massive.(IntradayFetcher); ok {
		t.Error("massive should not claim intraday history")
	}

	td, _ := Open("twelvedata", Options{TwelveDataAPIKey: "k"})
	if _, ok := td.(IntradayFetcher); !ok {
		t.Error("twelvedata should provide intraday history")
	}
	if _, ok := td.(DailyFetcher); !ok {
		t.Error("twelvedata should provide daily history")
	}
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{Price: 250}
	q, err := m.FetchQuote("ANY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Current == nil || *q.Current != 250 {
		t.Errorf("unexpected mock price: %v", q.Current)
	}

	bars, err := m.FetchDailyBars("ANY", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 10 {
		t.Errorf("expected 10 mock bars, got %d", len(bars))
	}
	for _, b := range bars {
		if b.High < b.Low || b.High < b.Close || b.Low > b.Open {
			t.Errorf("inconsistent mock bar: %+v", b)
		}
	}
}
