package rplot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

var ErrUnknownReducer = errors.New(`unknown reducer`)

// ReducerFunc collapses a set of values into one, e.g. when consolidating
// several points into a single pixel column.
type ReducerFunc func(values ...float64) float64

type statsUnary func(stats.Float64Data) (float64, error)

// statsFn adapts a stats package function, yielding NaN wherever it errors.
func statsFn(fn statsUnary) ReducerFunc {
	return func(values ...float64) float64 {
		if result, err := fn(stats.Float64Data(values)); err == nil {
			return result
		}

		return math.NaN()
	}
}

var First ReducerFunc = func(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return values[0]
}

var Last ReducerFunc = func(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return values[len(values)-1]
}

var Count ReducerFunc = func(values ...float64) float64 {
	return float64(len(values))
}

// Spread is the distance between the smallest and largest value.
var Spread ReducerFunc = func(values ...float64) float64 {
	return Maximum(values...) - Minimum(values...)
}

var GeometricMean = statsFn(stats.GeometricMean)
var HarmonicMean = statsFn(stats.HarmonicMean)
var InterQuartileRange = statsFn(stats.InterQuartileRange)
var Maximum = statsFn(stats.Max)
var Mean = statsFn(stats.Mean)
var Median = statsFn(stats.Median)
var MedianAbsoluteDeviation = statsFn(stats.MedianAbsoluteDeviation)
var Midhinge = statsFn(stats.Midhinge)
var Minimum = statsFn(stats.Min)
var PopulationVariance = statsFn(stats.PopulationVariance)
var SampleVariance = statsFn(stats.SampleVariance)
var StandardDeviation = statsFn(stats.StandardDeviation)
var StandardDeviationSample = statsFn(stats.StandardDeviationSample)
var Sum = statsFn(stats.Sum)
var Trimean = statsFn(stats.Trimean)

// Reduce applies reducer to values; an empty set always reduces to zero.
func Reduce(reducer ReducerFunc, values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return reducer(values...)
}

type reducerEntry struct {
	fn      ReducerFunc
	aliases []string
}

var reducers = map[string]reducerEntry{
	`count`:                     {Count, nil},
	`first`:                     {First, nil},
	`geometric-mean`:            {GeometricMean, []string{`gmean`}},
	`harmonic-mean`:             {HarmonicMean, []string{`hmean`}},
	`inter-quartile-range`:      {InterQuartileRange, []string{`iqr`}},
	`last`:                      {Last, nil},
	`maximum`:                   {Maximum, []string{`max`}},
	`mean`:                      {Mean, []string{`avg`, `average`}},
	`median`:                    {Median, nil},
	`median-absolute-deviation`: {MedianAbsoluteDeviation, []string{`mad`}},
	`midhinge`:                  {Midhinge, nil},
	`minimum`:                   {Minimum, []string{`min`}},
	`population-variance`:       {PopulationVariance, []string{`pvar`, `variance`, `var`}},
	`sample-variance`:           {SampleVariance, []string{`svar`}},
	`spread`:                    {Spread, []string{`range`}},
	`standard-deviation`:        {StandardDeviation, []string{`stddev`}},
	`standard-deviation-sample`: {StandardDeviationSample, []string{`stddevs`}},
	`sum`:                       {Sum, nil},
	`trimean`:                   {Trimean, nil},
}

var reducerAliases = func() map[string]string {
	aliases := make(map[string]string)

	for name, entry := range reducers {
		for _, alias := range entry.aliases {
			aliases[alias] = name
		}
	}

	return aliases
}()

// GetReducerName resolves an alias to its canonical reducer name, returning
// an empty string for anything unrecognized.
func GetReducerName(aliasOrName string) string {
	if _, ok := reducers[aliasOrName]; ok {
		return aliasOrName
	} else if name, ok := reducerAliases[aliasOrName]; ok {
		return name
	}

	return ``
}

func GetReducer(name string) (ReducerFunc, bool) {
	if entry, ok := reducers[GetReducerName(name)]; ok {
		return entry.fn, true
	}

	return nil, false
}

// ParseReducer is GetReducer for callers that want an error.
func ParseReducer(name string) (ReducerFunc, error) {
	if reducer, ok := GetReducer(name); ok {
		return reducer, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownReducer, name)
}

// ReducerNames lists the canonical reducer names in sorted order.
func ReducerNames() []string {
	names := make([]string, 0, len(reducers))

	for name := range reducers {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
