package aggregate

import (
	"errors"
	"math"

	"TickerScope/internal/model"
)

// Range scans the most recent lastN bars and returns the high and low.
// lastN <= 0 scans everything.
func Range(bars []model.OHLCV, lastN int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := 0
	if lastN > 0 && n > lastN {
		start = n - lastN
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}
