package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
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

// extendedHours is a tri-state flag: auto-detect when absent, boolean words
// otherwise. Bare --extended-hours means show.
type extendedHours int

const (
	extAuto extendedHours = iota
	extShow
	extHide
)

func (e *extendedHours) String() string {
	switch *e {
	case extShow:
		return "true"
	case extHide:
		return "false"
	default:
		return "auto"
	}
}

func (e *extendedHours) Set(s string) error {
	switch strings.ToLower(s) {
	case "yes", "true", "t", "y", "1", "show", "":
		*e = extShow
	case "no", "false", "f", "n", "0", "hide":
		*e = extHide
	case "auto":
		*e = extAuto
	default:
		return fmt.Errorf("boolean value expected, got: %s", s)
	}
	return nil
}

func (e *extendedHours) IsBoolFlag() bool { return true }

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("daily", flag.ExitOnError)
	tickerFlag := fs.String("t", "", "stock ticker symbol (named alternative to the positional)")
	stepFlag := fs.Int("s", 0, "interval in minutes for K-lines (default 15)")
	fs.IntVar(stepFlag, "step", 0, "interval in minutes for K-lines (default 15)")
	dateFlag := fs.String("d", "", "date to fetch, yyyymmdd (default today)")
	fs.StringVar(dateFlag, "date", "", "date to fetch, yyyymmdd (default today)")
	sourceFlag := fs.String("source", "", "data source with intraday history (default yfinance)")
	var ext extendedHours
	fs.Var(&ext, "extended-hours", "show pre-market and after-hours sessions: true/false, omit for auto-detect")
	showVersion := fs.Bool("v", false, "print version and exit")
	fs.BoolVar(showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: daily [TICKER] [flags]\n")
		fmt.Fprintf(fs.Output(), "Generates text-based K-lines for pre-market, regular, and after-hours sessions for a given day.\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "Example: daily AAPL -s 5 -d 20231027\n")
	}
	pos := cli.Parse(fs, os.Args[1:], 1)

	if *showVersion {
		fmt.Printf("daily v%s\n", version.Version)
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
	step := cfg.Defaults.IntradayStepMins
	if *stepFlag != 0 {
		step = *stepFlag
	}
	if step <= 0 {
		fmt.Fprintln(os.Stderr, "step must be a positive number of minutes")
		fs.Usage()
		os.Exit(2)
	}
	source := cfg.Defaults.Source
	if *sourceFlag != "" {
		source = *sourceFlag
	}

	et, err := aggregate.EasternTime()
	if err != nil {
		log.Fatalf("[FATAL] load exchange time zone: %v", err)
	}
	pt, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		log.Fatalf("[FATAL] load Pacific time zone: %v", err)
	}

	now := time.Now()
	day := time.Date(now.In(et).Year(), now.In(et).Month(), now.In(et).Day(), 0, 0, 0, 0, et)
	if *dateFlag != "" {
		day, err = time.ParseInLocation("20060102", *dateFlag, et)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid DATE format. Use yyyymmdd (e.g., 20231027).")
			fs.Usage()
			os.Exit(2)
		}
	}

	fetcher, err := provider.Open(source, cfg.ProviderOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}
	intraday, ok := fetcher.(provider.IntradayFetcher)
	if !ok {
		fmt.Fprintf(os.Stderr, "source %q does not provide intraday history\n", source)
		fs.Usage()
		os.Exit(2)
	}

	showExtended := ext == extShow
	if ext == extAuto {
		showExtended = aggregate.ExtendedHoursNow(now, et)
	}

	if err := run(cfg, intraday, ticker, step, day, showExtended, et, pt); err != nil {
		if errors.Is(err, provider.ErrNoData) {
			fmt.Fprintf(os.Stderr, "No data available for %s on %s.\n", ticker, day.Format("2006-01-02"))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, fetcher provider.IntradayFetcher, ticker string, step int, day time.Time, showExtended bool, et, pt *time.Location) error {
	barCache := cache.Open(cfg.Cache.SQLitePath, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	defer barCache.Close()

	key := cache.Key{
		Source:   fetcher.Name(),
		Symbol:   ticker,
		Interval: "1m",
		Day:      day.Format("2006-01-02"),
	}
	samples, hit, err := barCache.GetSamples(key)
	if err != nil {
		log.Printf("[WARN] read bar cache: %v", err)
	}
	if !hit {
		samples, err = fetcher.FetchIntraday(ticker, day)
		if err != nil {
			return err
		}
		if err := barCache.PutSamples(key, samples); err != nil {
			log.Printf("[WARN] write bar cache: %v", err)
		}
	}
	if len(samples) == 0 {
		return provider.ErrNoData
	}

	pre, regular, after := aggregate.SplitSessions(samples, et)
	color := render.NewColorizer(os.Stdout)
	stepDur := time.Duration(step) * time.Minute

	fmt.Printf("\n%s K-lines for %s\n", ticker, day.Format("2006-01-02"))

	if showExtended {
		if err := renderSession(string(aggregate.SessionPreMarket), pre, step, stepDur, et, pt, color); err != nil {
			return err
		}
	}
	if err := renderSession(string(aggregate.SessionRegular), regular, step, stepDur, et, pt, color); err != nil {
		return err
	}
	if showExtended {
		if err := renderSession(string(aggregate.SessionAfterHours), after, step, stepDur, et, pt, color); err != nil {
			return err
		}
	}

	// The summary block is best-effort; chart output stands on its own.
	quote, err := fetcher.FetchQuote(ticker)
	if err != nil {
		log.Printf("[WARN] fetch quote summary: %v", err)
		return nil
	}
	render.QuoteSummary(os.Stdout, quote, time.Now(), et, pt)
	return nil
}

func renderSession(title string, samples []model.PriceSample, step int, stepDur time.Duration, et, pt *time.Location, color render.Colorizer) error {
	bars, err := aggregate.BucketSamples(samples, stepDur, et)
	if err != nil {
		return fmt.Errorf("bucket %s samples: %w", title, err)
	}
	render.SessionChart(os.Stdout, title, step, bars, et, pt, color)
	return nil
}
