package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TickerScope/internal/model"
)

// SQLiteCache persists bar series to a SQLite database.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time // overridable in tests
}

// barRecord is the JSON payload shape; sample series are stored as flat
// bars (open=high=low=close=price).
type barRecord struct {
	Time   int64   `json:"t"`
	Open   float64 `json:"o"`
	High   float64 `json:"h"`
	Low    float64 `json:"l"`
	Close  float64 `json:"c"`
	Volume float64 `json:"v"`
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl, now: time.Now}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] bar cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bar_cache (
			source     TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			interval   TEXT NOT NULL,
			day        TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			PRIMARY KEY (source, symbol, interval, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bar_cache_fetched ON bar_cache(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// fresh reports whether an entry written at fetchedAt may still be served.
// Entries for completed past days are immutable.
func (c *SQLiteCache) fresh(key Key, fetchedAt time.Time) bool {
	today := c.now().Format("2006-01-02")
	if key.Day != "" && key.Day < today {
		return true
	}
	return c.now().Sub(fetchedAt) <= c.ttl
}

func (c *SQLiteCache) get(key Key) ([]barRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	var payload string
	err := c.db.QueryRow(
		`SELECT fetched_at, payload FROM bar_cache
		 WHERE source=? AND symbol=? AND interval=? AND day=?`,
		key.Source, key.Symbol, key.Interval, key.Day,
	).Scan(&fetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query bar cache: %w", err)
	}
	if !c.fresh(key, time.Unix(fetchedAt, 0)) {
		return nil, false, nil
	}

	var records []barRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, fmt.Errorf("decode cached bars: %w", err)
	}
	return records, true, nil
}

func (c *SQLiteCache) put(key Key, records []barRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode bars: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO bar_cache (source, symbol, interval, day, fetched_at, payload)
		 VALUES (?,?,?,?,?,?)`,
		key.Source, key.Symbol, key.Interval, key.Day, c.now().Unix(), string(payload),
	)
	return err
}

func (c *SQLiteCache) GetBars(key Key) ([]model.OHLCV, bool, error) {
	records, ok, err := c.get(key)
	if !ok || err != nil {
		return nil, false, err
	}
	bars := make([]model.OHLCV, len(records))
	for i, r := range records {
		bars[i] = model.OHLCV{
			Time:   time.Unix(r.Time, 0),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
	}
	return bars, true, nil
}

func (c *SQLiteCache) PutBars(key Key, bars []model.OHLCV) error {
	records := make([]barRecord, len(bars))
	for i, b := range bars {
		records[i] = barRecord{
			Time:   b.Time.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return c.put(key, records)
}

func (c *SQLiteCache) GetSamples(key Key) ([]model.PriceSample, bool, error) {
	records, ok, err := c.get(key)
	if !ok || err != nil {
		return nil, false, err
	}
	samples := make([]model.PriceSample, len(records))
	for i, r := range records {
		samples[i] = model.PriceSample{
			Time:   time.Unix(r.Time, 0),
			Price:  r.Close,
			Volume: r.Volume,
		}
	}
	return samples, true, nil
}

func (c *SQLiteCache) PutSamples(key Key, samples []model.PriceSample) error {
	records := make([]barRecord, len(samples))
	for i, s := range samples {
		records[i] = barRecord{
			Time:   s.Time.Unix(),
			Open:   s.Price,
			High:   s.Price,
			Low:    s.Price,
			Close:  s.Price,
			Volume: s.Volume,
		}
	}
	return c.put(key, records)
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
