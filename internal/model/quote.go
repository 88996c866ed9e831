package model

import "time"

// Quote is a normalized current-quote snapshot. Fields a provider does not
// report stay nil and render as N/A.
type Quote struct {
	Symbol     string
	Source     string
	AsOf       time.Time
	Current    *float64
	Open       *float64
	DayHigh    *float64
	DayLow     *float64
	PrevClose  *float64
	High52w    *float64
	Low52w     *float64
	PreMarket  *float64
	PostMarket *float64
}

// Float returns a pointer to v, for building Quote fields from literals.
func Float(v float64) *float64 { return &v }
