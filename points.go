package rplot

import (
	"fmt"
	"sort"
	"time"
)

// Point is a single sample.  X is usually a Unix timestamp in (fractional)
// seconds; Y is the measured value.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (self Point) Time() time.Time {
	return EpochToTime(self.X)
}

func (self Point) String() string {
	return fmt.Sprintf("(%g, %f)", self.X, self.Y)
}

// PointSet is an in-memory DataSource.
type PointSet []Point

func (self PointSet) Each(fn PointFunc) {
	for _, point := range self {
		if !fn(point) {
			return
		}
	}
}

func (self PointSet) Xs() []float64 {
	output := make([]float64, len(self))

	for i, point := range self {
		output[i] = point.X
	}

	return output
}

func (self PointSet) Ys() []float64 {
	output := make([]float64, len(self))

	for i, point := range self {
		output[i] = point.Y
	}

	return output
}

func (self PointSet) Timestamps() []time.Time {
	output := make([]time.Time, len(self))

	for i, point := range self {
		output[i] = point.Time()
	}

	return output
}

func (self PointSet) First() *Point {
	if l := len(self); l == 0 {
		return nil
	} else {
		return &self[0]
	}
}

func (self PointSet) Last() *Point {
	if l := len(self); l == 0 {
		return nil
	} else {
		return &self[l-1]
	}
}

func (self PointSet) Bounds() (BoundingBox, bool) {
	return BoundsOf(self)
}

func (self PointSet) Len() int {
	return len(self)
}

func (self PointSet) Less(i, j int) bool {
	if l := self.Len(); i < l && j < l {
		return self[i].X < self[j].X
	}

	return false
}

func (self PointSet) Swap(i, j int) {
	if l := self.Len(); i < l && j < l {
		self[i], self[j] = self[j], self[i]
	}
}

// MakeBuckets splits x-ordered points into consecutive runs covering at most
// width units of x each.  Buckets are anchored at the newest point, so only
// the oldest bucket may be partial.
func MakeBuckets(points PointSet, width float64) []PointSet {
	pointsets := make([]PointSet, 0)

	if l := len(points); l > 0 {
		current := make(PointSet, 0)
		endOfBucket := points[l-1].X - width

		for i := (l - 1); i >= 0; i-- {
			current = append(current, points[i])

			if i > 0 {
				if x := points[i-1].X; x <= endOfBucket {
					pointsets = append(pointsets, finishBucket(current))
					current = make(PointSet, 0)
					endOfBucket = x - width
				}
			}
		}

		if len(current) > 0 {
			pointsets = append(pointsets, finishBucket(current))
		}

		// buckets were collected newest-first
		for i, j := 0, len(pointsets)-1; i < j; i, j = i+1, j-1 {
			pointsets[i], pointsets[j] = pointsets[j], pointsets[i]
		}
	}

	return pointsets
}

// MakeTimeBuckets is MakeBuckets for epoch-second x values.
func MakeTimeBuckets(points PointSet, duration time.Duration) []PointSet {
	return MakeBuckets(points, duration.Seconds())
}

func finishBucket(bucket PointSet) PointSet {
	sort.Sort(bucket)
	return bucket
}
