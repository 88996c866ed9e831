package provider

import (
	"time"

	"TickerScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Samples   []model.PriceSample
	DailyData []model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ string) (*model.Quote, error) {
	return &model.Quote{
		Symbol:    "MOCK",
		Source:    m.Name(),
		AsOf:      time.Now(),
		Current:   model.Float(m.Price),
		Open:      model.Float(m.Price * 0.999),
		DayHigh:   model.Float(m.Price * 1.005),
		DayLow:    model.Float(m.Price * 0.995),
		PrevClose: model.Float(m.Price * 0.998),
	}, nil
}

func (m *MockFetcher) FetchIntraday(_ string, day time.Time) ([]model.PriceSample, error) {
	if m.Samples != nil {
		return m.Samples, nil
	}
	return generateMockSamples(m.Price, day), nil
}

func (m *MockFetcher) FetchDailyBars(_ string, limit int) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, limit), nil
}

// generateMockSamples fabricates one sample per minute of the regular session.
func generateMockSamples(basePrice float64, day time.Time) []model.PriceSample {
	start := day.Add(9*time.Hour + 30*time.Minute)
	count := int(6.5 * 60)
	samples := make([]model.PriceSample, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0001)
		samples[i] = model.PriceSample{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Price:  p,
			Volume: 1000,
		}
	}
	return samples
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	if count <= 0 {
		count = 30
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
