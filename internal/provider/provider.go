// Package provider contains the market-data vendor adapters. Every vendor is
// normalized to the same small set of capability interfaces so the commands
// can stay source-agnostic.
package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TickerScope/internal/model"
)

// ErrNoData reports that the vendor answered but had no data for the request
// (unknown symbol, market holiday, empty series). Wrap it so callers can
// tell data gaps apart from transport failures with errors.Is.
var ErrNoData = errors.New("no data available")

// Fetcher is the minimum every data source supports: a current quote.
type Fetcher interface {
	FetchQuote(symbol string) (*model.Quote, error)
	Name() string
}

// IntradayFetcher is implemented by sources that can return raw 1-minute
// samples for a single trading day, including extended hours.
type IntradayFetcher interface {
	Fetcher
	FetchIntraday(symbol string, day time.Time) ([]model.PriceSample, error)
}

// DailyFetcher is implemented by sources that can return daily history bars.
type DailyFetcher interface {
	Fetcher
	FetchDailyBars(symbol string, limit int) ([]model.OHLCV, error)
}

// Options carries everything needed to construct a fetcher. Base URLs are
// only set in tests or when pointing at a compatible mirror.
type Options struct {
	MassiveAPIKey     string
	FinnhubAPIKey     string
	TwelveDataAPIKey  string
	YahooBaseURL      string
	MassiveBaseURL    string
	FinnhubBaseURL    string
	TwelveDataBaseURL string
	Proxy             string
}

// Sources lists the accepted data source names for usage text.
func Sources() []string {
	return []string{"yfinance", "massive", "finnhub", "twelvedata"}
}

// Open constructs the fetcher for the given source name. Unknown names are a
// usage error; keyed sources fail here when their API key is missing so no
// request is ever sent unauthenticated.
func Open(name string, opts Options) (Fetcher, error) {
	switch strings.ToLower(name) {
	case "", "yfinance", "yahoo":
		return NewYahooFetcher(opts.YahooBaseURL, opts.Proxy), nil
	case "massive":
		if opts.MassiveAPIKey == "" {
			return nil, fmt.Errorf("source massive requires MASSIVE_API_KEY")
		}
		return NewMassiveFetcher(opts.MassiveBaseURL, opts.MassiveAPIKey, opts.Proxy), nil
	case "finnhub":
		if opts.FinnhubAPIKey == "" {
			return nil, fmt.Errorf("source finnhub requires FINNHUB_API_KEY")
		}
		return NewFinnhubFetcher(opts.FinnhubBaseURL, opts.FinnhubAPIKey, opts.Proxy), nil
	case "twelvedata":
		if opts.TwelveDataAPIKey == "" {
			return nil, fmt.Errorf("source twelvedata requires TWELVEDATA_API_KEY")
		}
		return NewTwelveDataFetcher(opts.TwelveDataBaseURL, opts.TwelveDataAPIKey, opts.Proxy), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data source %q (options: %s)", name, strings.Join(Sources(), ", "))
	}
}

// newHTTPClient builds the shared client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
