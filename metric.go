package rplot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/maputil"
	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/ghetzel/go-stockutil/typeutil"
)

// Separates a series name from its inline key=value tags, as in
// "cpu.load,host=alpha,core=0".
var InlineTagSeparator = `,`

// Metric is one plottable series: a base name, a set of tags telling series
// with the same name apart, and points whose x values are epoch seconds.
// Metadata carries presentation hints such as the series color and is never
// persisted.
type Metric struct {
	Metadata map[string]interface{}
	name     string
	tags     map[string]interface{}
	points   PointSet
}

// NewMetric parses any inline tags out of name.
func NewMetric(name string) *Metric {
	series := &Metric{
		Metadata: make(map[string]interface{}),
		points:   make(PointSet, 0),
	}

	series.SetName(name)

	return series
}

func (self *Metric) GetName() string {
	return self.name
}

// SetName replaces both the base name and the tags.
func (self *Metric) SetName(name string) {
	self.name, self.tags = SplitNameTags(name, InlineTagSeparator)
}

func (self *Metric) GetTags() map[string]interface{} {
	return self.tags
}

func (self *Metric) GetTag(key string) interface{} {
	return self.tags[key]
}

func (self *Metric) SetTag(key string, value interface{}) {
	self.tags[key] = value
}

// GetUniqueName is the name with every non-empty tag appended in key order.
// It identifies the series in storage and in query results.
func (self *Metric) GetUniqueName() string {
	var out strings.Builder
	keys := maputil.StringKeys(self.tags)
	sort.Strings(keys)

	out.WriteString(self.name)

	for _, key := range keys {
		if value := self.tags[key]; !typeutil.IsEmpty(value) {
			fmt.Fprintf(&out, "%s%s=%v", InlineTagSeparator, key, value)
		}
	}

	return out.String()
}

func (self *Metric) Points() PointSet {
	return self.points
}

func (self *Metric) Len() int {
	return len(self.points)
}

// Each walks the points in their stored order.  Graphs draw them in that
// order, so callers that append out of order should SortPoints first.
func (self *Metric) Each(fn PointFunc) {
	self.points.Each(fn)
}

// Bounds is the data-space box the series occupies, false when it is empty.
func (self *Metric) Bounds() (BoundingBox, bool) {
	return self.points.Bounds()
}

// SortPoints orders the points by time, keeping the relative order of
// points that share a timestamp.
func (self *Metric) SortPoints() *Metric {
	sort.Stable(self.points)
	return self
}

// Window returns a copy holding only the points with start <= time < end.
// A zero end leaves the window open on the right.
func (self *Metric) Window(start time.Time, end time.Time) *Metric {
	windowed := NewMetric(self.GetUniqueName())
	from := TimeToEpoch(start)

	for k, v := range self.Metadata {
		windowed.Metadata[k] = v
	}

	for _, point := range self.points {
		if point.X < from || (!end.IsZero() && point.X >= TimeToEpoch(end)) {
			continue
		}

		windowed.points = append(windowed.points, point)
	}

	return windowed
}

// Reset empties the series and returns what it held.
func (self *Metric) Reset() PointSet {
	held := self.points
	self.points = make(PointSet, 0)
	return held
}

func (self *Metric) PushPoint(point Point) *Metric {
	self.points = append(self.points, point)
	return self
}

func (self *Metric) Push(timestamp time.Time, value float64) *Metric {
	return self.PushPoint(Point{
		X: TimeToEpoch(timestamp),
		Y: value,
	})
}

func (self *Metric) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		`name`:        self.name,
		`unique_name`: self.GetUniqueName(),
	}

	if len(self.tags) > 0 {
		out[`tags`] = self.tags
	}

	if len(self.Metadata) > 0 {
		out[`metadata`] = self.Metadata
	}

	if len(self.points) > 0 {
		out[`points`] = self.points
	}

	return json.Marshal(out)
}

// Consolidate buckets the series into size-wide time slots, one point each.
func (self *Metric) Consolidate(size time.Duration, reducer ReducerFunc) *Metric {
	return ConsolidateMetric(self, size, reducer)
}

// SplitNameTags separates "name,key=value,..." into the name and its tags.
// Values are typed by content, so "2" becomes a number and "yes" a bool.
// Segments without an "=" are dropped.
func SplitNameTags(name string, sep string) (string, map[string]interface{}) {
	tags := make(map[string]interface{})
	parts := strings.Split(name, sep)

	for _, pair := range parts[1:] {
		if kv := strings.SplitN(pair, `=`, 2); len(kv) == 2 {
			tags[kv[0]] = stringutil.Autotype(kv[1])
		}
	}

	return parts[0], tags
}
