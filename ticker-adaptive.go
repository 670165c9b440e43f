package rplot

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Spans in seconds.  MONTH and YEAR are whole-week approximations; use
// CalendarThresholdTable for ticks on real month boundaries.
const (
	MINUTE float64 = 60
	HOUR           = MINUTE * 60
	DAY            = HOUR * 24
	WEEK           = DAY * 7
	MONTH          = WEEK * 4
	YEAR           = WEEK * 52
)

// Each label row below the first draws its tick marks this much shorter.
var DepthTickStep float64 = 1

var ErrEmptyThresholdTable = errors.New(`threshold table has no entries`)

// ThresholdEntry applies its Layers to any range narrower than Threshold
// (and wider than the previous entry's threshold).  Layer i emits its ticks
// on label row i.
type ThresholdEntry struct {
	Threshold float64
	Layers    []Ticker
}

// ThresholdTable is an immutable list of entries sorted by ascending
// threshold.
type ThresholdTable struct {
	entries []ThresholdEntry
}

func NewThresholdTable(entries ...ThresholdEntry) (ThresholdTable, error) {
	if len(entries) == 0 {
		return ThresholdTable{}, ErrEmptyThresholdTable
	}

	sorted := make([]ThresholdEntry, len(entries))

	for i, entry := range entries {
		if len(entry.Layers) == 0 {
			return ThresholdTable{}, fmt.Errorf("threshold %gs has no tickers", entry.Threshold)
		}

		layers := make([]Ticker, len(entry.Layers))

		for j, layer := range entry.Layers {
			if layer == nil {
				return ThresholdTable{}, fmt.Errorf("threshold %gs: ticker %d is nil", entry.Threshold, j)
			}

			layers[j] = layer
		}

		sorted[i] = ThresholdEntry{
			Threshold: entry.Threshold,
			Layers:    layers,
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	return ThresholdTable{
		entries: sorted,
	}, nil
}

func MustThresholdTable(entries ...ThresholdEntry) ThresholdTable {
	if table, err := NewThresholdTable(entries...); err == nil {
		return table
	} else {
		panic(err.Error())
	}
}

func (self ThresholdTable) Len() int {
	return len(self.entries)
}

// Thresholds returns the table's thresholds in ascending order.
func (self ThresholdTable) Thresholds() []float64 {
	out := make([]float64, len(self.entries))

	for i, entry := range self.entries {
		out[i] = entry.Threshold
	}

	return out
}

// Select returns the first entry whose threshold exceeds distance, or the
// last (coarsest) entry if none does.  It returns false only for an empty
// table.
func (self ThresholdTable) Select(distance float64) (ThresholdEntry, bool) {
	if len(self.entries) == 0 {
		return ThresholdEntry{}, false
	}

	for _, entry := range self.entries {
		if entry.Threshold > distance {
			return entry, true
		}
	}

	return self.entries[len(self.entries)-1], true
}

var defaultTable ThresholdTable
var defaultTableOnce sync.Once
var calendarTable ThresholdTable
var calendarTableOnce sync.Once

// DefaultThresholdTable returns the shared table spanning twenty seconds to
// ten years.  It is built on first use and never modified afterwards.
func DefaultThresholdTable() ThresholdTable {
	defaultTableOnce.Do(func() {
		defaultTable = MustThresholdTable(append(
			subDayEntries(),
			ThresholdEntry{3 * MONTH, []Ticker{NewTimeTicker(`January`, MONTH, MONTH)}},
			ThresholdEntry{YEAR, []Ticker{NewTimeTicker(`Jan 2006`, MONTH, MONTH)}},
			ThresholdEntry{5 * YEAR, []Ticker{NewTimeTicker(`Jan 2006`, 3*MONTH, 3*MONTH)}},
			ThresholdEntry{10 * YEAR, []Ticker{NewTimeTicker(`2006`, YEAR, YEAR)}},
		)...)
	})

	return defaultTable
}

// CalendarThresholdTable is DefaultThresholdTable with the month and year
// rows placed on real calendar boundaries.
func CalendarThresholdTable() ThresholdTable {
	calendarTableOnce.Do(func() {
		calendarTable = MustThresholdTable(append(
			subDayEntries(),
			ThresholdEntry{3 * MONTH, []Ticker{NewCalendarTicker(`January`, 1)}},
			ThresholdEntry{YEAR, []Ticker{NewCalendarTicker(`Jan 2006`, 1)}},
			ThresholdEntry{5 * YEAR, []Ticker{NewCalendarTicker(`Jan 2006`, 3)}},
			ThresholdEntry{10 * YEAR, []Ticker{NewCalendarTicker(`2006`, 12)}},
		)...)
	})

	return calendarTable
}

func subDayEntries() []ThresholdEntry {
	return []ThresholdEntry{
		{20, []Ticker{NewTimeTicker(`04:05`, 5, 5)}},
		{MINUTE, []Ticker{NewTimeTicker(`15:04:05`, 15, 15), NewUnlabeledTicker(5, 5)}},
		{5 * MINUTE, []Ticker{NewTimeTicker(`15:04`, MINUTE, MINUTE), NewUnlabeledTicker(15, 15)}},
		{15 * MINUTE, []Ticker{NewTimeTicker(`15:04`, 2*MINUTE, 2*MINUTE), NewUnlabeledTicker(MINUTE, MINUTE)}},
		{30 * MINUTE, []Ticker{NewTimeTicker(`15:04`, 5*MINUTE, 5*MINUTE), NewUnlabeledTicker(MINUTE, MINUTE)}},
		{HOUR, []Ticker{NewTimeTicker(`15:04`, 5*MINUTE, 5*MINUTE)}},
		{3 * HOUR, []Ticker{NewTimeTicker(`15:04`, 5*MINUTE, 5*MINUTE)}},
		{12 * HOUR, []Ticker{NewTimeTicker(`15:04`, HOUR, 2*HOUR)}},
		{36 * HOUR, []Ticker{NewTimeTicker(`15:04`, HOUR, 7*HOUR)}},
		{3 * DAY, []Ticker{NewTimeTicker(`Jan 02`, DAY, DAY)}},
		{7 * DAY, []Ticker{NewTimeTicker(`Monday`, HOUR, DAY), NewTimeTicker(`Jan 02`, HOUR, DAY)}},
		{2 * WEEK, []Ticker{NewTimeTicker(`Jan 02`, DAY, 3*DAY)}},
		{4 * WEEK, []Ticker{NewTimeTicker(`Jan 02`, WEEK, WEEK)}},
	}
}

// AdaptiveTimeTicker picks its tickers from a ThresholdTable based on the
// width of the range it is asked to cover, so the label density stays
// readable whether the axis spans seconds or years.
type AdaptiveTimeTicker struct {
	table ThresholdTable
}

func NewAdaptiveTimeTicker(table ThresholdTable) *AdaptiveTimeTicker {
	return &AdaptiveTimeTicker{
		table: table,
	}
}

// NewSmartTimeTicker returns an AdaptiveTimeTicker over DefaultThresholdTable.
func NewSmartTimeTicker() *AdaptiveTimeTicker {
	return NewAdaptiveTimeTicker(DefaultThresholdTable())
}

func (self *AdaptiveTimeTicker) Table() ThresholdTable {
	return self.table
}

// Layers returns the tickers that will be used for a range of the given width.
func (self *AdaptiveTimeTicker) Layers(distance float64) []Ticker {
	if entry, ok := self.table.Select(distance); ok {
		return entry.Layers
	}

	return nil
}

func (self *AdaptiveTimeTicker) Each(min float64, max float64, fn TickFunc) {
	distance := max - min
	entry, ok := self.table.Select(distance)

	if !ok {
		return
	}

	log.Debugf("range of %gs selects the %gs threshold (%d layers)", distance, entry.Threshold, len(entry.Layers))

	for depth, ticker := range entry.Layers {
		stopped := false
		count := 0

		ticker.Each(min, max, func(tick Tick) bool {
			tick.Depth += depth
			tick.TickLength = math.Max(tick.TickLength-float64(depth)*DepthTickStep, MinimumTickLength)
			count++

			if !fn(tick) {
				stopped = true
				return false
			}

			return true
		})

		log.Debugf("layer %d: %d ticks", depth, count)

		if stopped {
			return
		}
	}
}
