// Package aggregate reduces raw price samples and daily bars into
// fixed-width candles.
package aggregate

import (
	"errors"
	"sort"
	"time"

	"TickerScope/internal/model"
)

// BucketSamples groups samples into candles of the given step. Bucket
// boundaries are whole multiples of the step counted from midnight of the
// sample's day in loc, so buckets line up with the exchange clock for any
// step width. Buckets with no samples are omitted, so gaps in the input stay
// gaps in the output. Output is ordered by bucket start time.
func BucketSamples(samples []model.PriceSample, step time.Duration, loc *time.Location) ([]model.OHLCV, error) {
	if step <= 0 {
		return nil, errors.New("step must be positive")
	}
	if loc == nil {
		loc = time.UTC
	}
	if len(samples) == 0 {
		return nil, nil
	}

	sorted := make([]model.PriceSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	var out []model.OHLCV
	for _, s := range sorted {
		lt := s.Time.In(loc)
		midnight := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
		start := midnight.Add(lt.Sub(midnight).Truncate(step))
		if n := len(out); n > 0 && out[n-1].Time.Equal(start) {
			b := &out[n-1]
			if s.Price > b.High {
				b.High = s.Price
			}
			if s.Price < b.Low {
				b.Low = s.Price
			}
			b.Close = s.Price
			b.Volume += s.Volume
			continue
		}
		out = append(out, model.OHLCV{
			Time:   start,
			Open:   s.Price,
			High:   s.Price,
			Low:    s.Price,
			Close:  s.Price,
			Volume: s.Volume,
		})
	}
	return out, nil
}

// ResampleBars reduces daily bars into stepDays-wide candles. Buckets are
// anchored at the first bar's calendar date, so boundaries are contiguous
// stepDays-long date ranges. Empty buckets (holidays spanning a whole
// bucket) are omitted.
func ResampleBars(bars []model.OHLCV, stepDays int) ([]model.OHLCV, error) {
	if stepDays <= 0 {
		return nil, errors.New("step must be positive")
	}
	if len(bars) == 0 {
		return nil, nil
	}
	if stepDays == 1 {
		out := make([]model.OHLCV, len(bars))
		copy(out, bars)
		return out, nil
	}

	first := bars[0].Time
	anchor := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())

	var out []model.OHLCV
	currentBucket := -1
	for _, d := range bars {
		bucket := calendarDays(first, d.Time) / stepDays

		if bucket != currentBucket {
			out = append(out, model.OHLCV{
				Time:   anchor.AddDate(0, 0, bucket*stepDays),
				Open:   d.Open,
				High:   d.High,
				Low:    d.Low,
				Close:  d.Close,
				Volume: d.Volume,
			})
			currentBucket = bucket
			continue
		}
		b := &out[len(out)-1]
		if d.High > b.High {
			b.High = d.High
		}
		if d.Low < b.Low {
			b.Low = d.Low
		}
		b.Close = d.Close
		b.Volume += d.Volume
	}
	return out, nil
}

// calendarDays counts whole calendar days from a to b. Both dates are
// normalized to UTC midnight first, so DST transitions cannot shorten a day
// and shift the count.
func calendarDays(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// Tail returns the last n bars (all of them when n <= 0 or n >= len).
func Tail(bars []model.OHLCV, n int) []model.OHLCV {
	if n > 0 && len(bars) > n {
		return bars[len(bars)-n:]
	}
	return bars
}
