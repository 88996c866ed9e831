package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerScope/internal/model"
)

func fullQuote() *model.Quote {
	return &model.Quote{
		Symbol:     "NVDA",
		Source:     "yfinance",
		Current:    model.Float(500),
		Open:       model.Float(490),
		DayHigh:    model.Float(505),
		DayLow:     model.Float(488),
		PrevClose:  model.Float(495),
		High52w:    model.Float(520),
		Low52w:     model.Float(300),
		PreMarket:  model.Float(497),
		PostMarket: model.Float(501),
	}
}

func TestQuoteSummary(t *testing.T) {
	et, pt := locations(t)
	now := time.Date(2023, 10, 27, 16, 30, 0, 0, et)

	var buf bytes.Buffer
	QuoteSummary(&buf, fullQuote(), now, et, pt)
	out := buf.String()

	assert.Contains(t, out, "Current Data as of 2023-10-27 13:30 PT (16:30 ET) (Close Prices Summary):")
	assert.Contains(t, out, "Previous Close:     495.00")
	assert.Contains(t, out, "Open:     490.00")
	assert.Contains(t, out, "High:     505.00H")
	assert.Contains(t, out, "Low:     488.00L")
	// 500 vs 490 open = +2.04%
	assert.Contains(t, out, "Current/Regular Market Price:     500.00 (+2.04% from open)")
	assert.Contains(t, out, "52wk High:     520.00")
	assert.Contains(t, out, "52wk Low:     300.00")
	// pre-market vs previous close: 497/495 = +0.40%
	assert.Contains(t, out, "Pre-Market Price:     497.00 (+0.40%)")
	// after-market vs regular price: 501/500 = +0.20%
	assert.Contains(t, out, "After-Market Price:     501.00 (+0.20%)")
}

func TestQuoteSummaryMissingFields(t *testing.T) {
	et, pt := locations(t)
	q := &model.Quote{Symbol: "NVDA", Current: model.Float(500)}

	var buf bytes.Buffer
	QuoteSummary(&buf, q, time.Now(), et, pt)
	out := buf.String()

	assert.Contains(t, out, "Previous Close:        N/A")
	assert.Contains(t, out, "52wk High:        N/A")
	assert.Contains(t, out, "Current/Regular Market Price:     500.00 (+0.00% from open)")
	assert.Contains(t, out, "Pre-Market Price:        N/A\n")
	assert.NotContains(t, out, "N/A (")
}

func TestPriceQuote(t *testing.T) {
	var buf bytes.Buffer
	PriceQuote(&buf, fullQuote())
	out := buf.String()

	assert.Contains(t, out, "Ticker: NVDA")
	assert.Contains(t, out, "Current/Regular Market Price:     500.00")
	assert.Contains(t, out, "Pre-Market Price:     497.00")
	assert.Contains(t, out, "After-Market Price:     501.00")
}

func TestPriceQuoteMassiveLabelsEOD(t *testing.T) {
	q := &model.Quote{Symbol: "NVDA", Source: "massive", Current: model.Float(500)}
	var buf bytes.Buffer
	PriceQuote(&buf, q)
	assert.Contains(t, buf.String(), "Last Close (EOD, no real-time):     500.00")
}

func TestPriceQuoteSkipsMissingOptionalFields(t *testing.T) {
	q := &model.Quote{Symbol: "NVDA", Source: "yfinance", Current: model.Float(500)}
	var buf bytes.Buffer
	PriceQuote(&buf, q)
	out := buf.String()

	require.Contains(t, out, "Ticker: NVDA")
	assert.NotContains(t, out, "Pre-Market")
	assert.NotContains(t, out, "After-Market")
	assert.NotContains(t, out, "Open:")
}
