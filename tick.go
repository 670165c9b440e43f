package rplot

import (
	"fmt"
)

var DefaultTickLength float64 = 5
var DefaultTickWidth float64 = 1

// Ticks on deeper label rows never get drawn shorter than this.
var MinimumTickLength float64 = 1

// A Tick is a single labeled position on an axis, expressed in the axis' own
// domain units (epoch seconds for time axes).
type Tick struct {
	Value      float64 `json:"value"`
	Label      string  `json:"label,omitempty"`
	Depth      int     `json:"depth"`
	TickLength float64 `json:"length"`
	TickWidth  float64 `json:"width"`
}

func NewTick(value float64, label string) Tick {
	return Tick{
		Value:      value,
		Label:      label,
		TickLength: DefaultTickLength,
		TickWidth:  DefaultTickWidth,
	}
}

func (self Tick) HasLabel() bool {
	return self.Label != ``
}

func (self Tick) String() string {
	return fmt.Sprintf("(%g, %q, depth=%d)", self.Value, self.Label, self.Depth)
}
