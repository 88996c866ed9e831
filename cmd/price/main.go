package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"TickerScope/internal/cli"
	"TickerScope/internal/config"
	"TickerScope/internal/provider"
	"TickerScope/internal/render"
	"TickerScope/internal/version"
	"TickerScope/internal/watch"
)

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), "Usage: price [TICKER] [SOURCE] [flags]\n")
		fmt.Fprintf(fs.Output(), "  - TICKER: stock ticker symbol (default: NVDA)\n")
		fmt.Fprintf(fs.Output(), "  - SOURCE: data source (default: yfinance). Options: %s\n", strings.Join(provider.Sources(), ", "))
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "Examples:\n")
		fmt.Fprintf(fs.Output(), "  price NVDA\n")
		fmt.Fprintf(fs.Output(), "  price AAPL finnhub\n")
		fmt.Fprintf(fs.Output(), "Requirements:\n")
		fmt.Fprintf(fs.Output(), "  - massive: set MASSIVE_API_KEY\n")
		fmt.Fprintf(fs.Output(), "  - finnhub: set FINNHUB_API_KEY\n")
		fmt.Fprintf(fs.Output(), "  - twelvedata: set TWELVEDATA_API_KEY\n")
		fmt.Fprintf(fs.Output(), "  - yfinance: no key needed\n")
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("price", flag.ExitOnError)
	sourceFlag := fs.String("source", "", "data source (named alternative to the SOURCE positional)")
	watchMode := fs.Bool("watch", false, "keep refreshing the quote on the configured cron schedule")
	showVersion := fs.Bool("v", false, "print version and exit")
	fs.BoolVar(showVersion, "version", false, "print version and exit")
	fs.Usage = usage(fs)
	pos := cli.Parse(fs, os.Args[1:], 2)

	if *showVersion {
		fmt.Printf("price v%s\n", version.Version)
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
	source := cfg.Defaults.Source
	if len(pos) > 0 {
		ticker = pos[0]
	}
	if len(pos) > 1 {
		source = pos[1]
	}
	if *sourceFlag != "" {
		source = *sourceFlag
	}

	fetcher, err := provider.Open(source, cfg.ProviderOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}

	if !*watchMode {
		if err := showQuote(fetcher, ticker); err != nil {
			reportFetchError(err, ticker)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop, err := watch.New(ctx, cfg.Watch.Cron, func() {
		if err := showQuote(fetcher, ticker); err != nil {
			log.Printf("[WARN] refresh %s: %v", ticker, err)
		}
	})
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	loop.Run()
}

func showQuote(fetcher provider.Fetcher, ticker string) error {
	quote, err := fetcher.FetchQuote(ticker)
	if err != nil {
		return err
	}
	render.PriceQuote(os.Stdout, quote)
	return nil
}

func reportFetchError(err error, ticker string) {
	if errors.Is(err, provider.ErrNoData) {
		fmt.Fprintf(os.Stderr, "No data for %s\n", ticker)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
