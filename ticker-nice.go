package rplot

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

var DefaultNiceTickCount = 6

// NiceTicker places ticks on round values picked so that at most MaxTicks
// major ticks fall in the range.  A zero Base steps by 1 or 5 times a power
// of ten; any other Base steps by its powers alone.  It suits value axes
// whose magnitude is not known in advance.
type NiceTicker struct {
	MaxTicks int
	Base     int
	Minor    bool
	Labeler  LabelFunc
}

func NewNiceTicker(maxTicks int) *NiceTicker {
	return &NiceTicker{
		MaxTicks: maxTicks,
		Labeler:  NumericLabel,
	}
}

func (self *NiceTicker) Each(min float64, max float64, fn TickFunc) {
	if !isFinite(min) || !isFinite(max) || !(max > min) {
		return
	}

	n := self.MaxTicks

	if n <= 0 {
		n = DefaultNiceTickCount
	}

	labeler := self.Labeler

	if labeler == nil {
		labeler = NumericLabel
	}

	base := self.Base

	if base < 2 {
		base = 0
	}

	ls := scale.Linear{
		Min:  min,
		Max:  max,
		Base: base,
	}

	major, minor := ls.Ticks(scale.TickOptions{
		Max: n,
	})

	for _, value := range major {
		if value < min || value > max {
			continue
		}

		if !fn(NewTick(cleanZero(value), labeler(cleanZero(value)))) {
			return
		}
	}

	if self.Minor {
		for _, value := range minor {
			if value < min || value > max || contains(major, value) {
				continue
			}

			tick := NewTick(cleanZero(value), ``)
			tick.TickLength = math.Max(DefaultTickLength-1, MinimumTickLength)

			if !fn(tick) {
				return
			}
		}
	}
}

// avoids "-0" labels
func cleanZero(v float64) float64 {
	if v == 0 {
		return 0
	}

	return v
}

func contains(values []float64, v float64) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}

	return false
}
