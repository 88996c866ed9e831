package aggregate

import (
	"time"

	"TickerScope/internal/model"
)

// US equity session boundaries, minutes after midnight Eastern Time.
const (
	preMarketStartMin = 4 * 60
	regularStartMin   = 9*60 + 30
	regularEndMin     = 16 * 60
	afterHoursEndMin  = 20 * 60
)

// Session identifies one of the US equity trading sessions.
type Session string

const (
	SessionPreMarket  Session = "Pre-Market"
	SessionRegular    Session = "Regular Market"
	SessionAfterHours Session = "After-Hours"
)

// EasternTime returns the exchange time zone for US equities.
func EasternTime() (*time.Location, error) {
	return time.LoadLocation("America/New_York")
}

func minuteOfDay(t time.Time, loc *time.Location) int {
	et := t.In(loc)
	return et.Hour()*60 + et.Minute()
}

// SplitSessions partitions samples into the pre-market, regular, and
// after-hours windows. Samples outside 04:00-20:00 ET are dropped.
func SplitSessions(samples []model.PriceSample, loc *time.Location) (pre, regular, after []model.PriceSample) {
	for _, s := range samples {
		m := minuteOfDay(s.Time, loc)
		switch {
		case m >= preMarketStartMin && m < regularStartMin:
			pre = append(pre, s)
		case m >= regularStartMin && m < regularEndMin:
			regular = append(regular, s)
		case m >= regularEndMin && m < afterHoursEndMin:
			after = append(after, s)
		}
	}
	return pre, regular, after
}

// ExtendedHoursNow reports whether now falls outside the regular session:
// weekends, pre-market, after-hours, or the overnight close. Used as the
// default for showing extended-hours charts.
func ExtendedHoursNow(now time.Time, loc *time.Location) bool {
	et := now.In(loc)
	if wd := et.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}
	m := minuteOfDay(now, loc)
	return m < regularStartMin || m >= regularEndMin
}
