package model

import "time"

// PriceSample is a single raw quote sample as returned by a provider.
type PriceSample struct {
	Time   time.Time
	Price  float64
	Volume float64
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PercentChange returns the close-vs-open change in percent. Zero open yields 0.
func (b OHLCV) PercentChange() float64 {
	if b.Open == 0 {
		return 0
	}
	return (b.Close - b.Open) / b.Open * 100
}
