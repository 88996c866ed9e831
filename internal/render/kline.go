// Package render turns candles and quotes into the text charts printed on
// stdout.
package render

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"TickerScope/internal/model"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Colorizer colors direction arrows when the output is a terminal.
type Colorizer struct {
	enabled bool
}

// NewColorizer enables color only when f is an interactive terminal.
func NewColorizer(f *os.File) Colorizer {
	return Colorizer{
		enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
	}
}

// NoColor returns a colorizer that never emits escape codes.
func NoColor() Colorizer { return Colorizer{} }

// Direction returns the up/down arrow for a candle, colored when enabled.
func (c Colorizer) Direction(up bool) string {
	arrow, color := "↓", ansiRed
	if up {
		arrow, color = "↑", ansiGreen
	}
	if !c.enabled {
		return arrow
	}
	return color + arrow + ansiReset
}

// body formats the open→close part of a K-line row with its percent change.
func body(b model.OHLCV, c Colorizer) string {
	pct := b.PercentChange()
	sign := "+"
	if pct < 0 {
		sign = "-"
	}
	return fmt.Sprintf("[%10.2f %s %10.2f] (%s%5.2f%%)",
		b.Open, c.Direction(b.Close > b.Open), b.Close, sign, abs(pct))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// IntradayRow renders one intraday candle with PT/ET clock labels:
//
//	06:30/09:30e:      102.10L | [    102.50 ↑     103.20] (+ 0.68%) |     103.40H
func IntradayRow(b model.OHLCV, et, pt *time.Location, c Colorizer) string {
	return fmt.Sprintf("%s/%se: %10.2fL | %s | %10.2fH",
		b.Time.In(pt).Format("15:04"), b.Time.In(et).Format("15:04"),
		b.Low, body(b, c), b.High)
}

// DailyRow renders one daily/multi-day candle keyed by date, with a
// humanized volume suffix.
func DailyRow(b model.OHLCV, c Colorizer) string {
	return fmt.Sprintf("%s: %10.2fL | %s | %10.2fH  vol %s",
		b.Time.Format("2006-01-02"), b.Low, body(b, c), b.High,
		humanize.SIWithDigits(b.Volume, 1, ""))
}

// SessionChart prints a titled block of intraday K-line rows. Nothing is
// printed for an empty candle list, so sessions without data stay silent.
func SessionChart(w io.Writer, title string, stepMinutes int, bars []model.OHLCV, et, pt *time.Location, c Colorizer) {
	if len(bars) == 0 {
		return
	}
	fmt.Fprintf(w, "\n--- %s (%d-Minute) ---\n", title, stepMinutes)
	for _, b := range bars {
		fmt.Fprintln(w, IntradayRow(b, et, pt, c))
	}
}

// HistoryChart prints daily/multi-day K-line rows under a header.
func HistoryChart(w io.Writer, symbol string, stepDays int, bars []model.OHLCV, c Colorizer) {
	fmt.Fprintf(w, "\n%s K-lines for %d-day intervals (last %d lines):\n", symbol, stepDays, len(bars))
	for _, b := range bars {
		fmt.Fprintln(w, DailyRow(b, c))
	}
}
