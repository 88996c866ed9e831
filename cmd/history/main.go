package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"TickerScope/internal/aggregate"
	"TickerScope/internal/cache"
	"TickerScope/internal/cli"
	"TickerScope/internal/config"
	"TickerScope/internal/model"
	"TickerScope/internal/provider"
	"TickerScope/internal/render"
	"TickerScope/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("history", flag.ExitOnError)
	tickerFlag := fs.String("t", "", "stock ticker symbol (named alternative to the positional)")
	stepFlag := fs.Int("s", 0, "interval in days for K-lines (default 1)")
	fs.IntVar(stepFlag, "step", 0, "interval in days for K-lines (default 1)")
	limitFlag := fs.Int("limit", 0, "number of K-lines to show (default 21)")
	chartFlag := fs.Bool("chart", false, "render a close-price histogram instead of K-line rows")
	sourceFlag := fs.String("source", "", "data source with daily history (default yfinance)")
	showVersion := fs.Bool("v", false, "print version and exit")
	fs.BoolVar(showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: history [TICKER] [STEP] [flags]\n")
		fmt.Fprintf(fs.Output(), "Generates historical text-based K-lines (candlesticks).\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "Example: history AAPL --step 5\n")
	}
	pos := cli.Parse(fs, os.Args[1:], 2)

	if *showVersion {
		fmt.Printf("history v%s\n", version.Version)
		return
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ticker := cfg.Defaults.Ticker
	if len(pos) > 0 {
		ticker = pos[0]
	}
	if *tickerFlag != "" {
		ticker = *tickerFlag
	}

	step := cfg.Defaults.HistoryStepDays
	if len(pos) > 1 { // step as 2nd positional for compatibility
		step, err = strconv.Atoi(pos[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid STEP %q: expected a number of days\n", pos[1])
			fs.Usage()
			os.Exit(2)
		}
	}
	if *stepFlag != 0 {
		step = *stepFlag
	}
	if step <= 0 {
		fmt.Fprintln(os.Stderr, "step must be a positive number of days")
		fs.Usage()
		os.Exit(2)
	}

	limit := cfg.Defaults.HistoryLimit
	if *limitFlag != 0 {
		limit = *limitFlag
	}
	if limit <= 0 {
		fmt.Fprintln(os.Stderr, "limit must be positive")
		fs.Usage()
		os.Exit(2)
	}

	source := cfg.Defaults.Source
	if *sourceFlag != "" {
		source = *sourceFlag
	}
	fetcher, err := provider.Open(source, cfg.ProviderOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}
	daily, ok := fetcher.(provider.DailyFetcher)
	if !ok {
		fmt.Fprintf(os.Stderr, "source %q does not provide daily history\n", source)
		fs.Usage()
		os.Exit(2)
	}

	if err := run(cfg, daily, ticker, step, limit, *chartFlag); err != nil {
		if errors.Is(err, provider.ErrNoData) {
			fmt.Fprintln(os.Stderr, "No data available.")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, fetcher provider.DailyFetcher, ticker string, step, limit int, chart bool) error {
	barCache := cache.Open(cfg.Cache.SQLitePath, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	defer barCache.Close()

	// The daily series grows every session, so the cache entry is keyed to
	// today and expires with the TTL.
	key := cache.Key{
		Source:   fetcher.Name(),
		Symbol:   ticker,
		Interval: "1d",
		Day:      time.Now().Format("2006-01-02"),
	}
	bars, hit, err := barCache.GetBars(key)
	if err != nil {
		log.Printf("[WARN] read bar cache: %v", err)
	}
	if !hit {
		bars, err = fetcher.FetchDailyBars(ticker, 0)
		if err != nil {
			return err
		}
		if err := barCache.PutBars(key, bars); err != nil {
			log.Printf("[WARN] write bar cache: %v", err)
		}
	}
	if len(bars) == 0 {
		return provider.ErrNoData
	}

	candles, err := aggregate.ResampleBars(bars, step)
	if err != nil {
		return fmt.Errorf("resample bars: %w", err)
	}
	candles = aggregate.Tail(candles, limit)

	if chart {
		render.Histogram(os.Stdout, ticker, candles, render.DefaultHistogramWidth)
	} else {
		render.HistoryChart(os.Stdout, ticker, step, candles, render.NewColorizer(os.Stdout))
	}

	printSummary(fetcher, ticker, bars)
	return nil
}

// printSummary renders the quote block, filling the 52-week range from the
// daily history when the provider's quote does not carry one.
func printSummary(fetcher provider.DailyFetcher, ticker string, bars []model.OHLCV) {
	et, err := aggregate.EasternTime()
	if err != nil {
		log.Printf("[WARN] load exchange time zone: %v", err)
		return
	}
	pt, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		log.Printf("[WARN] load Pacific time zone: %v", err)
		return
	}

	quote, err := fetcher.FetchQuote(ticker)
	if err != nil {
		log.Printf("[WARN] fetch quote summary: %v", err)
		return
	}
	if quote.High52w == nil || quote.Low52w == nil {
		if high, low, err := aggregate.Range(bars, 252); err == nil {
			quote.High52w = model.Float(high)
			quote.Low52w = model.Float(low)
		}
	}
	render.QuoteSummary(os.Stdout, quote, time.Now(), et, pt)
}
