package rplot

import (
	"math"
	"strconv"
	"time"
)

// TickFunc receives each tick produced by a Ticker.  Returning false stops
// the traversal.
type TickFunc func(tick Tick) bool

// LabelFunc renders the label for a tick at the given value.  An empty string
// produces an unlabeled tick.
type LabelFunc func(value float64) string

// A Ticker produces the ticks that fall within a range of axis values.  Each
// call is an independent traversal: calling Each twice with the same bounds
// yields the same ticks in the same order.
type Ticker interface {
	Each(min float64, max float64, fn TickFunc)
}

// CollectTicks drains a Ticker into a slice.
func CollectTicks(ticker Ticker, min float64, max float64) []Tick {
	ticks := make([]Tick, 0)

	ticker.Each(min, max, func(tick Tick) bool {
		ticks = append(ticks, tick)
		return true
	})

	return ticks
}

// NumericLabel renders a value in its shortest exact decimal form.
func NumericLabel(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NoLabel is used for minor ticks that only draw a mark.
func NoLabel(value float64) string {
	return ``
}

// TimeLabel interprets tick values as Unix epoch seconds and formats them
// with the given Go time layout.  A nil location formats in UTC.
func TimeLabel(layout string, loc *time.Location) LabelFunc {
	if loc == nil {
		loc = time.UTC
	}

	return func(value float64) string {
		return EpochToTime(value).In(loc).Format(layout)
	}
}

// EpochToTime converts fractional Unix seconds to a time.Time.
func EpochToTime(epoch float64) time.Time {
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// TimeToEpoch converts a time.Time to fractional Unix seconds.
func TimeToEpoch(tm time.Time) float64 {
	return float64(tm.UnixNano()) / float64(time.Second)
}

// FixedStepTicker emits ticks every Step units, phase-anchored to multiples
// of Alignment.  The first tick is one step past the aligned floor of the
// range minimum.
type FixedStepTicker struct {
	Alignment float64
	Step      float64
	Labeler   LabelFunc
}

func NewFixedStepTicker(alignment float64, step float64, labeler LabelFunc) *FixedStepTicker {
	return &FixedStepTicker{
		Alignment: alignment,
		Step:      step,
		Labeler:   labeler,
	}
}

// NewStandardTicker returns a ticker labeling each tick with its numeric value.
func NewStandardTicker(alignment float64, step float64) *FixedStepTicker {
	return NewFixedStepTicker(alignment, step, NumericLabel)
}

// NewTimeTicker returns a ticker over epoch seconds whose labels are formatted
// with the given time layout (in UTC).
func NewTimeTicker(layout string, alignment float64, step float64) *FixedStepTicker {
	return NewFixedStepTicker(alignment, step, TimeLabel(layout, nil))
}

// NewUnlabeledTicker returns a ticker that only emits tick marks.
func NewUnlabeledTicker(alignment float64, step float64) *FixedStepTicker {
	return NewFixedStepTicker(alignment, step, NoLabel)
}

// Align snaps value down to the nearest multiple of the ticker's alignment.
func (self *FixedStepTicker) Align(value float64) float64 {
	return floorTo(value, self.Alignment)
}

// First returns the first tick value that would be emitted for a range
// starting at min.
func (self *FixedStepTicker) First(min float64) float64 {
	return self.Align(min) + self.Step
}

func (self *FixedStepTicker) Each(min float64, max float64, fn TickFunc) {
	if !(self.Step > 0) || math.IsInf(self.Step, 0) || !isFinite(min) || !isFinite(max) {
		return
	}

	labeler := self.Labeler

	if labeler == nil {
		labeler = NumericLabel
	}

	first := self.First(min)

	for i := 0; ; i++ {
		value := first + float64(i)*self.Step

		if value > max {
			return
		}

		if !fn(NewTick(value, labeler(value))) {
			return
		}
	}
}

// floorTo uses a floored modulo so negative values snap downward.  An
// alignment of zero is treated as one.
func floorTo(value float64, alignment float64) float64 {
	if alignment == 0 {
		alignment = 1
	}

	return value - mod(value, alignment)
}

func mod(value float64, alignment float64) float64 {
	return value - alignment*math.Floor(value/alignment)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
