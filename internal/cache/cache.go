// Package cache stores fetched bar series keyed by request, so repeated
// invocations for the same day do not re-hit the vendor API.
package cache

import (
	"log"
	"time"

	"TickerScope/internal/model"
)

// Key identifies one cached series. Day is the ISO date the series covers
// ("" for open-ended history requests).
type Key struct {
	Source   string
	Symbol   string
	Interval string
	Day      string
}

// Cache persists bar series between invocations. Entries for completed past
// days never expire; entries that still cover the current day are only
// served within the TTL.
type Cache interface {
	GetBars(key Key) ([]model.OHLCV, bool, error)
	PutBars(key Key, bars []model.OHLCV) error
	GetSamples(key Key) ([]model.PriceSample, bool, error)
	PutSamples(key Key, samples []model.PriceSample) error
	Close() error
}

// Open returns a SQLite cache at path, or a no-op cache when path is empty.
// A SQLite open failure degrades to the no-op cache with a warning, never a
// fatal error.
func Open(path string, ttl time.Duration) Cache {
	if path == "" {
		return NewNoopCache()
	}
	c, err := NewSQLiteCache(path, ttl)
	if err != nil {
		log.Printf("[WARN] open bar cache failed, caching disabled: %v", err)
		return NewNoopCache()
	}
	return c
}
