package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"TickerScope/internal/model"
)

// fmtPrice formats an optional price as a 10.2f column, right-aligned N/A
// when the value is missing or not a real number.
func fmtPrice(p *float64) string {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return fmt.Sprintf("%10s", "N/A")
	}
	return fmt.Sprintf("%10.2f", *p)
}

// pctSuffix formats " (+x.xx%)" of value vs reference, or "" when either
// side is missing or the reference is zero.
func pctSuffix(value, reference *float64) string {
	if value == nil || reference == nil || *reference == 0 {
		return ""
	}
	pct := (*value - *reference) / *reference * 100
	sign := "+"
	if pct < 0 {
		sign = "-"
	}
	return fmt.Sprintf(" (%s%.2f%%)", sign, abs(pct))
}

// QuoteSummary prints the close-prices summary block shared by the daily and
// history commands. Pre-market change is measured against the previous
// close, after-market change against the regular market price.
func QuoteSummary(w io.Writer, q *model.Quote, now time.Time, et, pt *time.Location) {
	fmt.Fprintf(w, "\nCurrent Data as of %s (%s) (Close Prices Summary):\n",
		now.In(pt).Format("2006-01-02 15:04 PT"), now.In(et).Format("15:04 ET"))

	fmt.Fprintf(w, "Previous Close: %s\n", fmtPrice(q.PrevClose))
	fmt.Fprintf(w, "Open: %s\n", fmtPrice(q.Open))
	fmt.Fprintf(w, "High: %sH\n", fmtPrice(q.DayHigh))
	fmt.Fprintf(w, "Low: %sL\n", fmtPrice(q.DayLow))

	change := " (+0.00% from open)"
	if q.Current != nil && q.Open != nil && *q.Open != 0 {
		pct := (*q.Current - *q.Open) / *q.Open * 100
		sign := "+"
		if pct < 0 {
			sign = "-"
		}
		change = fmt.Sprintf(" (%s%.2f%% from open)", sign, abs(pct))
	}
	fmt.Fprintf(w, "Current/Regular Market Price: %s%s\n", fmtPrice(q.Current), change)

	fmt.Fprintf(w, "52wk High: %s\n", fmtPrice(q.High52w))
	fmt.Fprintf(w, "52wk Low: %s\n", fmtPrice(q.Low52w))
	fmt.Fprintf(w, "Pre-Market Price: %s%s\n", fmtPrice(q.PreMarket), pctSuffix(q.PreMarket, q.PrevClose))
	fmt.Fprintf(w, "After-Market Price: %s%s\n", fmtPrice(q.PostMarket), pctSuffix(q.PostMarket, q.Current))
}

// PriceQuote prints the short quote used by the price command. Optional
// fields are only printed when the provider reported them.
func PriceQuote(w io.Writer, q *model.Quote) {
	fmt.Fprintf(w, "Ticker: %s\n", q.Symbol)
	if q.Source == "massive" {
		fmt.Fprintf(w, "Last Close (EOD, no real-time): %s\n", fmtPrice(q.Current))
	} else {
		fmt.Fprintf(w, "Current/Regular Market Price: %s\n", fmtPrice(q.Current))
	}
	if q.Open != nil {
		fmt.Fprintf(w, "Open: %s\n", fmtPrice(q.Open))
	}
	if q.DayHigh != nil {
		fmt.Fprintf(w, "High: %s\n", fmtPrice(q.DayHigh))
	}
	if q.DayLow != nil {
		fmt.Fprintf(w, "Low: %s\n", fmtPrice(q.DayLow))
	}
	if q.PreMarket != nil {
		fmt.Fprintf(w, "Pre-Market Price: %s\n", fmtPrice(q.PreMarket))
	}
	if q.PostMarket != nil {
		fmt.Fprintf(w, "After-Market Price: %s\n", fmtPrice(q.PostMarket))
	}
}
