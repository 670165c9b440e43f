package rplot

import (
	"time"
)

// CalendarTicker steps over real calendar month boundaries instead of fixed
// second counts, so ticks land on the first of the month regardless of month
// length.  Months is the step; 12 steps by year.  Boundaries are aligned to
// multiples of Months counted from January.
type CalendarTicker struct {
	Months   int
	Layout   string
	Location *time.Location
}

func NewCalendarTicker(layout string, months int) *CalendarTicker {
	return &CalendarTicker{
		Months: months,
		Layout: layout,
	}
}

func (self *CalendarTicker) location() *time.Location {
	if self.Location == nil {
		return time.UTC
	}

	return self.Location
}

// Align returns the aligned calendar boundary at or before value.
func (self *CalendarTicker) Align(value float64) time.Time {
	loc := self.location()
	tm := EpochToTime(value).In(loc)
	step := self.Months

	if step <= 0 {
		step = 1
	}

	month := int(tm.Month()) - 1
	month -= month % step

	return time.Date(tm.Year(), time.Month(month+1), 1, 0, 0, 0, 0, loc)
}

func (self *CalendarTicker) Each(min float64, max float64, fn TickFunc) {
	if self.Months <= 0 || !isFinite(min) || !isFinite(max) {
		return
	}

	start := self.Align(min)

	for i := 1; ; i++ {
		tm := start.AddDate(0, i*self.Months, 0)
		value := TimeToEpoch(tm)

		if value > max {
			return
		}

		label := ``

		if self.Layout != `` {
			label = tm.Format(self.Layout)
		}

		if !fn(NewTick(value, label)) {
			return
		}
	}
}
