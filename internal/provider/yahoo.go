package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TickerScope/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements all capabilities using the Yahoo Finance public
// chart API. It is the default source and needs no API key.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps convenience aliases to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support. An empty baseURL selects the public endpoint.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yfinance" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice   *float64 `json:"regularMarketPrice"`
				ChartPreviousClose   *float64 `json:"chartPreviousClose"`
				PreviousClose        *float64 `json:"previousClose"`
				RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
				FiftyTwoWeekHigh     *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      *float64 `json:"fiftyTwoWeekLow"`
				PreMarketPrice       *float64 `json:"preMarketPrice"`
				PostMarketPrice      *float64 `json:"postMarketPrice"`
				RegularMarketTime    int64    `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(symbol string, query url.Values) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), query.Encode())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo: symbol %s: %w", symbol, ErrNoData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	return &chart, nil
}

// bars converts a chart result into candles, skipping null entries
// (holidays, halted minutes).
func (f *YahooFetcher) bars(chart *yahooChart) []model.OHLCV {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		var v float64
		if i < len(quote.Volume) {
			v = toFloat(quote.Volume[i])
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

// FetchQuote builds the quote summary from the one-day chart: live fields
// come from the chart meta, the session open from the day's bar.
func (f *YahooFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("range", "1d")
	chart, err := f.fetchChart(symbol, query)
	if err != nil {
		return nil, err
	}

	meta := chart.Chart.Result[0].Meta
	q := &model.Quote{
		Symbol:     symbol,
		Source:     f.Name(),
		AsOf:       time.Now(),
		Current:    meta.RegularMarketPrice,
		DayHigh:    meta.RegularMarketDayHigh,
		DayLow:     meta.RegularMarketDayLow,
		High52w:    meta.FiftyTwoWeekHigh,
		Low52w:     meta.FiftyTwoWeekLow,
		PreMarket:  meta.PreMarketPrice,
		PostMarket: meta.PostMarketPrice,
	}
	if meta.PreviousClose != nil {
		q.PrevClose = meta.PreviousClose
	} else {
		q.PrevClose = meta.ChartPreviousClose
	}
	if meta.RegularMarketTime > 0 {
		q.AsOf = time.Unix(meta.RegularMarketTime, 0)
	}

	if bars := f.bars(chart); len(bars) > 0 {
		day := bars[len(bars)-1]
		q.Open = model.Float(day.Open)
		if q.Current == nil {
			q.Current = model.Float(day.Close)
		}
		if q.DayHigh == nil {
			q.DayHigh = model.Float(day.High)
		}
		if q.DayLow == nil {
			q.DayLow = model.Float(day.Low)
		}
	}
	if q.Current == nil {
		return nil, fmt.Errorf("yahoo: symbol %s: %w", symbol, ErrNoData)
	}
	return q, nil
}

// FetchIntraday returns 1-minute samples for the day starting at `day`
// (expected to be midnight in the exchange time zone), extended hours
// included. The sample price is the minute close.
func (f *YahooFetcher) FetchIntraday(symbol string, day time.Time) ([]model.PriceSample, error) {
	query := url.Values{}
	query.Set("interval", "1m")
	query.Set("period1", fmt.Sprintf("%d", day.Unix()))
	query.Set("period2", fmt.Sprintf("%d", day.Add(24*time.Hour).Unix()))
	query.Set("includePrePost", "true")
	chart, err := f.fetchChart(symbol, query)
	if err != nil {
		return nil, err
	}
	bars := f.bars(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: %s on %s: %w", symbol, day.Format("2006-01-02"), ErrNoData)
	}
	samples := make([]model.PriceSample, len(bars))
	for i, b := range bars {
		samples[i] = model.PriceSample{Time: b.Time, Price: b.Close, Volume: b.Volume}
	}
	return samples, nil
}

// FetchDailyBars returns up to limit daily bars from the full listed history.
// limit <= 0 means no trimming.
func (f *YahooFetcher) FetchDailyBars(symbol string, limit int) ([]model.OHLCV, error) {
	query := url.Values{}
	query.Set("interval", "1d")
	query.Set("range", "max")
	chart, err := f.fetchChart(symbol, query)
	if err != nil {
		return nil, err
	}
	bars := f.bars(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: %s: %w", symbol, ErrNoData)
	}
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}
