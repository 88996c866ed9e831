package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"TickerScope/internal/model"
)

const defaultMassiveBaseURL = "https://api.massive.com"

// MassiveFetcher implements the quote and daily-history capabilities using
// the Massive aggregates REST API. The free tier has no real-time quote, so
// FetchQuote reports the latest end-of-day close.
type MassiveFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewMassiveFetcher creates a new fetcher with optional proxy support.
func NewMassiveFetcher(baseURL, apiKey, proxyURL string) *MassiveFetcher {
	if baseURL == "" {
		baseURL = defaultMassiveBaseURL
	}
	return &MassiveFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *MassiveFetcher) Name() string { return "massive" }

// massiveAgg is one aggregate bar; timestamps are epoch milliseconds.
type massiveAgg struct {
	Timestamp int64   `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
}

type massiveAggsResponse struct {
	Ticker       string       `json:"ticker"`
	Status       string       `json:"status"`
	ResultsCount int          `json:"resultsCount"`
	Results      []massiveAgg `json:"results"`
	Error        string       `json:"error"`
}

func (f *MassiveFetcher) fetchAggs(symbol string, from, to time.Time, limit int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=%d",
		f.BaseURL, symbol, from.Format("2006-01-02"), to.Format("2006-01-02"), limit)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("massive: auth failed (status %d), check MASSIVE_API_KEY", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("massive: status %d, body: %s", resp.StatusCode, string(body))
	}

	var aggs massiveAggsResponse
	if err := json.NewDecoder(resp.Body).Decode(&aggs); err != nil {
		return nil, fmt.Errorf("massive decode: %w", err)
	}
	if aggs.Error != "" {
		return nil, fmt.Errorf("massive api error: %s", aggs.Error)
	}
	if len(aggs.Results) == 0 {
		return nil, fmt.Errorf("massive: %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.OHLCV, len(aggs.Results))
	for i, a := range aggs.Results {
		bars[i] = model.OHLCV{
			Time:   time.UnixMilli(a.Timestamp),
			Open:   a.Open,
			High:   a.High,
			Low:    a.Low,
			Close:  a.Close,
			Volume: a.Volume,
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchQuote returns the latest daily close as the quote.
func (f *MassiveFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	now := time.Now()
	bars, err := f.fetchAggs(symbol, now.AddDate(0, 0, -7), now, 10)
	if err != nil {
		return nil, err
	}
	last := bars[len(bars)-1]
	q := &model.Quote{
		Symbol:  symbol,
		Source:  f.Name(),
		AsOf:    last.Time,
		Current: model.Float(last.Close),
		Open:    model.Float(last.Open),
		DayHigh: model.Float(last.High),
		DayLow:  model.Float(last.Low),
	}
	if len(bars) > 1 {
		q.PrevClose = model.Float(bars[len(bars)-2].Close)
	}
	return q, nil
}

// FetchDailyBars returns up to limit daily bars ending today.
func (f *MassiveFetcher) FetchDailyBars(symbol string, limit int) ([]model.OHLCV, error) {
	if limit <= 0 {
		limit = 5000
	}
	now := time.Now()
	// Calendar span is wider than the bar count to cover weekends/holidays.
	from := now.AddDate(0, 0, -limit*2)
	bars, err := f.fetchAggs(symbol, from, now, limit)
	if err != nil {
		return nil, err
	}
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}
