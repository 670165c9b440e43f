package rplot

import (
	"fmt"
	"reflect"
	"time"
)

// ConsolidatePoints reduces each width-wide bucket of points to a single
// point at the bucket's newest x.
func ConsolidatePoints(points PointSet, width float64, reducer ReducerFunc) PointSet {
	output := make(PointSet, 0)

	if !(width > 0) {
		return append(output, points...)
	}

	for _, bucket := range MakeBuckets(points, width) {
		output = append(output, Point{
			X: bucket.Last().X,
			Y: Reduce(reducer, bucket.Ys()...),
		})
	}

	return output
}

func ConsolidateMetric(inputMetric *Metric, bucketSize time.Duration, reducer ReducerFunc) *Metric {
	metric := NewMetric(inputMetric.GetUniqueName())

	for k, v := range inputMetric.Metadata {
		metric.Metadata[k] = v
	}

	metric.points = ConsolidatePoints(inputMetric.Points(), bucketSize.Seconds(), reducer)

	return metric
}

// MergeMetrics combines metrics into one series per group, with the points
// of each group sorted by time.  Grouping by "name" merges every metric with
// the same base name, grouping by a tag name merges metrics sharing that
// tag's value, and an empty groupBy merges only identical unique names.  Tags
// that differ between the merged metrics are dropped from the result.
func MergeMetrics(metrics []*Metric, groupBy string) []*Metric {
	output := make([]*Metric, 0)
	groups := make(map[string]*Metric)

	for _, input := range metrics {
		key := groupKey(input, groupBy)

		if current, ok := groups[key]; ok {
			for k, v := range current.tags {
				if other, ok := input.tags[k]; !ok || !reflect.DeepEqual(other, v) {
					delete(current.tags, k)
				}
			}

			current.points = append(current.points, input.points...)
		} else {
			current = NewMetric(input.GetName())

			for k, v := range input.tags {
				current.tags[k] = v
			}

			for k, v := range input.Metadata {
				current.Metadata[k] = v
			}

			current.points = append(current.points, input.points...)
			groups[key] = current
			output = append(output, current)
		}
	}

	for _, metric := range output {
		metric.SortPoints()
	}

	return output
}

func groupKey(metric *Metric, groupBy string) string {
	switch groupBy {
	case ``:
		return metric.GetUniqueName()
	case `name`:
		return metric.GetName()
	default:
		return fmt.Sprintf("%s=%v", groupBy, metric.GetTag(groupBy))
	}
}
