package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"TickerScope/internal/model"
)

const defaultTwelveDataBaseURL = "https://api.twelvedata.com"

// TwelveDataFetcher implements quote, intraday, and daily-history
// capabilities using the Twelve Data time_series API.
type TwelveDataFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewTwelveDataFetcher creates a new fetcher with optional proxy support.
func NewTwelveDataFetcher(baseURL, apiKey, proxyURL string) *TwelveDataFetcher {
	if baseURL == "" {
		baseURL = defaultTwelveDataBaseURL
	}
	return &TwelveDataFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// tdValue is one time_series entry; all numbers arrive as strings.
type tdValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type tdResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Values  []tdValue `json:"values"`
}

// tdLayouts covers the two datetime shapes time_series returns: intraday
// bars carry a clock, daily bars only a date.
var tdLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

func parseTDTime(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range tdLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (v tdValue) bar(loc *time.Location) (model.OHLCV, error) {
	t, err := parseTDTime(v.Datetime, loc)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse datetime %q: %w", v.Datetime, err)
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	vol, _ := strconv.ParseFloat(v.Volume, 64) // volume is optional for indices
	return model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}

func (f *TwelveDataFetcher) fetchSeries(symbol, interval string, extra url.Values) ([]model.OHLCV, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", interval)
	query.Set("apikey", f.APIKey)
	query.Set("timezone", "America/New_York")
	for k, vs := range extra {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	endpoint := fmt.Sprintf("%s/time_series?%s", f.BaseURL, query.Encode())

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("twelvedata fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("twelvedata: status %d, body: %s", resp.StatusCode, string(body))
	}

	var td tdResponse
	if err := json.NewDecoder(resp.Body).Decode(&td); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if td.Status == "error" {
		return nil, fmt.Errorf("twelvedata api error: %s", td.Message)
	}
	if len(td.Values) == 0 {
		return nil, fmt.Errorf("twelvedata: %s: %w", symbol, ErrNoData)
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load ET location: %w", err)
	}
	bars := make([]model.OHLCV, 0, len(td.Values))
	for _, v := range td.Values {
		b, err := v.bar(loc)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: %w", err)
		}
		bars = append(bars, b)
	}
	// time_series returns newest first
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchQuote returns the latest 1-minute bar as the quote. During extended
// hours the latest bar tracks pre/after market trading.
func (f *TwelveDataFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	extra := url.Values{}
	extra.Set("outputsize", "1")
	extra.Set("prepost", "true")
	bars, err := f.fetchSeries(symbol, "1min", extra)
	if err != nil {
		return nil, err
	}
	last := bars[len(bars)-1]
	return &model.Quote{
		Symbol:  symbol,
		Source:  f.Name(),
		AsOf:    last.Time,
		Current: model.Float(last.Close),
		Open:    model.Float(last.Open),
		DayHigh: model.Float(last.High),
		DayLow:  model.Float(last.Low),
	}, nil
}

// FetchIntraday returns 1-minute samples for the given day, extended hours
// included.
func (f *TwelveDataFetcher) FetchIntraday(symbol string, day time.Time) ([]model.PriceSample, error) {
	extra := url.Values{}
	extra.Set("date", day.Format("2006-01-02"))
	extra.Set("outputsize", "5000")
	extra.Set("prepost", "true")
	bars, err := f.fetchSeries(symbol, "1min", extra)
	if err != nil {
		return nil, err
	}
	samples := make([]model.PriceSample, len(bars))
	for i, b := range bars {
		samples[i] = model.PriceSample{Time: b.Time, Price: b.Close, Volume: b.Volume}
	}
	return samples, nil
}

// FetchDailyBars returns up to limit daily bars.
func (f *TwelveDataFetcher) FetchDailyBars(symbol string, limit int) ([]model.OHLCV, error) {
	if limit <= 0 || limit > 5000 {
		limit = 5000
	}
	extra := url.Values{}
	extra.Set("outputsize", strconv.Itoa(limit))
	return f.fetchSeries(symbol, "1day", extra)
}
