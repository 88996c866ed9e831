package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const twelveDataIntradayFixture = `{
  "meta": {"symbol": "NVDA", "interval": "1min"},
  "values": [
    {"datetime": "2023-10-27 09:32:00", "open": "101.2", "high": "101.5", "low": "101.0", "close": "101.4", "volume": "900"},
    {"datetime": "2023-10-27 09:31:00", "open": "100.6", "high": "101.3", "low": "100.5", "close": "101.2", "volume": "1100"},
    {"datetime": "2023-10-27 09:30:00", "open": "100.0", "high": "100.8", "low": "99.9", "close": "100.6", "volume": "1500"}
  ],
  "status": "ok"
}`

func twelveDataServer(t *testing.T, handler http.HandlerFunc) *TwelveDataFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTwelveDataFetcher(srv.URL, "secret", "")
}

func TestTwelveDataFetchIntraday(t *testing.T) {
	var gotQuery map[string]string
	f := twelveDataServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/time_series" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"symbol":   r.URL.Query().Get("symbol"),
			"interval": r.URL.Query().Get("interval"),
			"apikey":   r.URL.Query().Get("apikey"),
			"date":     r.URL.Query().Get("date"),
			"prepost":  r.URL.Query().Get("prepost"),
		}
		fmt.Fprint(w, twelveDataIntradayFixture)
	})

	day := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)
	samples, err := f.FetchIntraday("NVDA", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"symbol": "NVDA", "interval": "1min", "apikey": "secret",
		"date": "2023-10-27", "prepost": "true",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s: expected %q, got %q", k, v, gotQuery[k])
		}
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	// Newest-first input must come back chronological.
	if !samples[0].Time.Before(samples[1].Time) || !samples[1].Time.Before(samples[2].Time) {
		t.Error("samples must be chronological")
	}
	if samples[0].Price != 100.6 {
		t.Errorf("unexpected first sample price: %v", samples[0].Price)
	}
}

func TestTwelveDataFetchQuote(t *testing.T) {
	f := twelveDataServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"meta":{"symbol":"NVDA"},"values":[{"datetime":"2023-10-27 15:59:00","open":"104.0","high":"104.6","low":"103.9","close":"104.5","volume":"800"}],"status":"ok"}`)
	})

	q, err := f.FetchQuote("NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *q.Current != 104.5 || *q.Open != 104.0 {
		t.Errorf("unexpected quote: %+v", q)
	}
}

func TestTwelveDataDailyDates(t *testing.T) {
	f := twelveDataServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1day" {
			t.Errorf("expected interval=1day, got %s", got)
		}
		fmt.Fprint(w, `{"meta":{"symbol":"NVDA"},"values":[{"datetime":"2023-10-27","open":"104.0","high":"104.6","low":"103.9","close":"104.5","volume":"800"}],"status":"ok"}`)
	})

	bars, err := f.FetchDailyBars("NVDA", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].Time.Format("2006-01-02") != "2023-10-27" {
		t.Errorf("unexpected bar date: %v", bars[0].Time)
	}
}

func TestTwelveDataAPIError(t *testing.T) {
	f := twelveDataServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"**symbol** not found"}`)
	})
	_, err := f.FetchQuote("NOPE")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTwelveDataEmptySeries(t *testing.T) {
	f := twelveDataServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"meta":{"symbol":"NVDA"},"values":[],"status":"ok"}`)
	})
	_, err := f.FetchQuote("NVDA")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestTwelveDataBadNumber(t *testing.T) {
	f := twelveDataServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"meta":{},"values":[{"datetime":"2023-10-27","open":"oops","high":"1","low":"1","close":"1","volume":"1"}],"status":"ok"}`)
	})
	_, err := f.FetchQuote("NVDA")
	if err == nil {
		t.Fatal("expected parse error")
	}
}
