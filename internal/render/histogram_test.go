package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerScope/internal/model"
)

func TestBarLengthMonotonic(t *testing.T) {
	values := []float64{90, 95, 95.5, 100, 120, 150}
	min, max := values[0], values[len(values)-1]

	prev := 0
	for _, v := range values {
		n := BarLength(v, min, max, 40)
		assert.GreaterOrEqual(t, n, prev, "bar lengths must be monotonic in value")
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 40)
		prev = n
	}
	assert.Equal(t, 1, BarLength(min, min, max, 40))
	assert.Equal(t, 40, BarLength(max, min, max, 40))
}

func TestBarLengthDegenerateRange(t *testing.T) {
	assert.Equal(t, 30, BarLength(100, 100, 100, 30))
}

func TestHistogram(t *testing.T) {
	day := time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: day, Close: 100},
		{Time: day.AddDate(0, 0, 1), Close: 110},
		{Time: day.AddDate(0, 0, 2), Close: 105},
	}

	var buf bytes.Buffer
	Histogram(&buf, "NVDA", bars, 20)
	out := buf.String()

	assert.Contains(t, out, "NVDA close prices (100.00 .. 110.00):")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4) // header + one row per bar

	barLen := func(line string) int {
		_, bar, ok := strings.Cut(line, "|")
		require.True(t, ok, "line %q missing bar", line)
		return strings.Count(bar, "█")
	}
	low, high, mid := barLen(lines[1]), barLen(lines[2]), barLen(lines[3])
	assert.Less(t, low, mid)
	assert.Less(t, mid, high)
	assert.Equal(t, 1, low)
	assert.Equal(t, 20, high)
}

func TestHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	Histogram(&buf, "NVDA", nil, 20)
	assert.Empty(t, buf.String())
}
