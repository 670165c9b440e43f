package rplot

import (
	"math"
	"time"
)

var DemoPointCount = 60

// DemoSources returns two hourly series starting an hour after start: the
// natural log of the sample index, and a sine wave shifted above zero.
func DemoSources(start time.Time) (DataSource, DataSource) {
	origin := TimeToEpoch(start)

	logCurve := SourceFunc(func(yield PointFunc) {
		for i := 1; i <= DemoPointCount; i++ {
			if !yield(Point{X: origin + float64(i)*HOUR, Y: math.Log(float64(i))}) {
				return
			}
		}
	})

	sineCurve := SourceFunc(func(yield PointFunc) {
		for i := 1; i <= DemoPointCount; i++ {
			if !yield(Point{X: origin + float64(i)*HOUR, Y: math.Sin(float64(i)/2) + 1}) {
				return
			}
		}
	})

	return logCurve, sineCurve
}

func NewDemoGraph(start time.Time) *Graph {
	logCurve, sineCurve := DemoSources(start)
	return NewGraph(DefaultWidth, DefaultHeight, `Happy Graph`, logCurve, sineCurve)
}
