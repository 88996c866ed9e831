package cache

import "TickerScope/internal/model"

// NoopCache is a no-op implementation used when SQLite is not configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) GetBars(_ Key) ([]model.OHLCV, bool, error)         { return nil, false, nil }
func (n *NoopCache) PutBars(_ Key, _ []model.OHLCV) error               { return nil }
func (n *NoopCache) GetSamples(_ Key) ([]model.PriceSample, bool, error) { return nil, false, nil }
func (n *NoopCache) PutSamples(_ Key, _ []model.PriceSample) error      { return nil }
func (n *NoopCache) Close() error                                       { return nil }
