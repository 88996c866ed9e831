package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"TickerScope/internal/model"
)

const defaultFinnhubBaseURL = "https://finnhub.io"

// FinnhubFetcher implements the quote capability using the Finnhub REST API.
// Finnhub's free tier is real-time but does not separate off-hours prices.
type FinnhubFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFinnhubFetcher creates a new fetcher with optional proxy support.
func NewFinnhubFetcher(baseURL, apiKey, proxyURL string) *FinnhubFetcher {
	if baseURL == "" {
		baseURL = defaultFinnhubBaseURL
	}
	return &FinnhubFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *FinnhubFetcher) Name() string { return "finnhub" }

// finnhubQuote is the /quote response shape.
type finnhubQuote struct {
	Current   float64 `json:"c"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	PrevClose float64 `json:"pc"`
	Timestamp int64   `json:"t"`
}

// FetchQuote returns the current quote. Finnhub answers all-zero fields for
// unknown symbols, which is mapped to ErrNoData.
func (f *FinnhubFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s&token=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(f.APIKey))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("finnhub: auth failed (status %d), check FINNHUB_API_KEY", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("finnhub: status %d, body: %s", resp.StatusCode, string(body))
	}

	var fq finnhubQuote
	if err := json.NewDecoder(resp.Body).Decode(&fq); err != nil {
		return nil, fmt.Errorf("finnhub decode: %w", err)
	}
	if fq.Current == 0 && fq.Open == 0 && fq.High == 0 && fq.Low == 0 {
		return nil, fmt.Errorf("finnhub: %s: %w", symbol, ErrNoData)
	}

	q := &model.Quote{
		Symbol:    symbol,
		Source:    f.Name(),
		AsOf:      time.Now(),
		Current:   model.Float(fq.Current),
		Open:      model.Float(fq.Open),
		DayHigh:   model.Float(fq.High),
		DayLow:    model.Float(fq.Low),
		PrevClose: model.Float(fq.PrevClose),
	}
	if fq.Timestamp > 0 {
		q.AsOf = time.Unix(fq.Timestamp, 0)
	}
	return q, nil
}
