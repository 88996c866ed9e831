package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"TickerScope/internal/model"
)

// DefaultHistogramWidth is the bar width used by the history command.
const DefaultHistogramWidth = 50

// BarLength scales v into [1, width] proportionally to its position in
// [min, max]. A degenerate range renders every bar at full width. The
// minimum length is 1 so every value stays visible.
func BarLength(v, min, max float64, width int) int {
	if width <= 0 {
		return 0
	}
	if max <= min {
		return width
	}
	n := int(math.Round((v - min) / (max - min) * float64(width-1)))
	return n + 1
}

// Histogram prints one proportionally scaled bar per candle close, labeled
// with the candle date.
func Histogram(w io.Writer, symbol string, bars []model.OHLCV, width int) {
	if len(bars) == 0 {
		return
	}
	if width <= 0 {
		width = DefaultHistogramWidth
	}
	min, max := bars[0].Close, bars[0].Close
	for _, b := range bars[1:] {
		if b.Close < min {
			min = b.Close
		}
		if b.Close > max {
			max = b.Close
		}
	}

	fmt.Fprintf(w, "\n%s close prices (%.2f .. %.2f):\n", symbol, min, max)
	for _, b := range bars {
		n := BarLength(b.Close, min, max, width)
		fmt.Fprintf(w, "%s %10.2f |%s\n",
			b.Time.Format("2006-01-02"), b.Close, strings.Repeat("█", n))
	}
}
