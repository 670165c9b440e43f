package rplot

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricNameParse(t *testing.T) {
	assert := require.New(t)

	metric := NewMetric(`rplot.test.naming`)
	assert.Equal(`rplot.test.naming`, metric.GetName())
	assert.Equal(`rplot.test.naming`, metric.GetUniqueName())
	assert.Empty(metric.GetTags())

	metric = NewMetric(`rplot.test.naming,key=value,zzyxx=3.14,enabled=true`)
	assert.Equal(`rplot.test.naming`, metric.GetName())
	assert.Equal(`rplot.test.naming,enabled=true,key=value,zzyxx=3.14`, metric.GetUniqueName())
	assert.Equal(map[string]interface{}{
		`enabled`: true,
		`key`:     `value`,
		`zzyxx`:   3.14,
	}, metric.GetTags())

	assert.Equal(`value`, metric.GetTag(`key`))
	assert.Nil(metric.GetTag(`missing`))

	metric.SetTag(`host`, `alpha`)
	assert.Equal(`rplot.test.naming,enabled=true,host=alpha,key=value,zzyxx=3.14`, metric.GetUniqueName())
}

func TestMetricIsDataSource(t *testing.T) {
	assert := require.New(t)

	metric := NewMetric(`rplot.test.source`)
	tm := time.Date(2006, 1, 2, 15, 4, 5, 0, mst)

	metric.Push(tm, 1.5)
	metric.PushPoint(Point{X: TimeToEpoch(tm) + 60, Y: 3})

	var source DataSource = metric
	points := CollectPoints(source)

	assert.Len(points, 2)
	assert.Equal(TimeToEpoch(tm), points[0].X)
	assert.Equal(1.5, points[0].Y)
	assert.True(tm.Equal(points[0].Time()))

	bounds, ok := BoundsOf(source)
	assert.True(ok)
	assert.Equal(float64(60), bounds.SpanX())

	old := metric.Reset()
	assert.Len(old, 2)
	assert.Empty(metric.Points())
}

func TestMetricSeriesHelpers(t *testing.T) {
	assert := require.New(t)

	start := time.Date(2006, 1, 2, 15, 4, 0, 0, time.UTC)
	metric := NewMetric(`rplot.test.series,host=alpha`)
	metric.Metadata[`color`] = `#00ff00`

	for _, minute := range []int{3, 1, 4, 1, 5} {
		metric.Push(start.Add(time.Duration(minute)*time.Minute), float64(minute))
	}

	assert.Equal(5, metric.Len())

	bounds, ok := metric.Bounds()
	assert.True(ok)
	assert.Equal(float64(240), bounds.SpanX())
	assert.Equal(float64(4), bounds.SpanY())

	assert.True(sort.IsSorted(metric.SortPoints().Points()))
	assert.Equal([]float64{1, 1, 3, 4, 5}, metric.Points().Ys())

	window := metric.Window(start.Add(time.Minute), start.Add(4*time.Minute))
	assert.Equal(`rplot.test.series,host=alpha`, window.GetUniqueName())
	assert.Equal(`#00ff00`, window.Metadata[`color`])
	assert.Equal([]float64{1, 1, 3}, window.Points().Ys())

	assert.Equal(5, metric.Window(start, time.Time{}).Len())

	_, ok = NewMetric(`rplot.test.empty`).Bounds()
	assert.False(ok)
}

func TestSplitNameTagsSkipsBareSegments(t *testing.T) {
	assert := require.New(t)

	name, tags := SplitNameTags(`rplot.test,lonely,host=alpha`, `,`)
	assert.Equal(`rplot.test`, name)
	assert.Equal(map[string]interface{}{`host`: `alpha`}, tags)
}

func TestMetricMarshalJSON(t *testing.T) {
	assert := require.New(t)

	metric := NewMetric(`rplot.test.json,host=alpha`)
	metric.Metadata[`color`] = `#ff0000`
	metric.PushPoint(Point{X: 10, Y: 2})

	data, err := json.Marshal(metric)
	assert.NoError(err)

	var out map[string]interface{}
	assert.NoError(json.Unmarshal(data, &out))

	assert.Equal(`rplot.test.json`, out[`name`])
	assert.Equal(`rplot.test.json,host=alpha`, out[`unique_name`])
	assert.Equal(map[string]interface{}{`host`: `alpha`}, out[`tags`])
	assert.Equal(map[string]interface{}{`color`: `#ff0000`}, out[`metadata`])
	assert.Equal([]interface{}{
		map[string]interface{}{`x`: float64(10), `y`: float64(2)},
	}, out[`points`])
}

func TestMetricSummarize(t *testing.T) {
	assert := require.New(t)

	metric := NewMetric(`rplot.test.metrics.summarize`)

	last1 := float64(1)
	last2 := float64(1)

	for i := 0; i < 30; i++ {
		metric.Push(time.Date(2006, 1, 2, 15, 4, i, 0, mst), float64(last1))
		tmp := last2
		last2 = (last1 + last2)
		last1 = tmp
	}

	summary := SummarizeMetric(metric, Count, First, Last, Sum, Median, Minimum, Maximum)
	assert.Len(summary, 7)
	assert.Equal(float64(30), summary[0])
	assert.Equal(float64(1), summary[1])
	assert.Equal(float64(832040), summary[2])
	assert.Equal(float64(2178308), summary[3])
	assert.Equal(float64(798.5), summary[4])
	assert.Equal(float64(1), summary[5])
	assert.Equal(float64(832040), summary[6])
}

func TestMetricConsolidation(t *testing.T) {
	assert := require.New(t)

	metric := NewMetric(`rplot.test.metrics.consolidate`)

	for i := 0; i < 100; i++ {
		metric.Push(time.Date(2006, 1, 2, 15, 4, i, 0, mst), float64(i))
	}

	type reducerValues struct {
		Reducer ReducerFunc
		Values  []float64
	}

	for _, rv := range []reducerValues{
		{
			Reducer: Sum,
			Values:  []float64{45, 735, 1635, 2535},
		}, {
			Reducer: Minimum,
			Values:  []float64{0, 10, 40, 70},
		}, {
			Reducer: Maximum,
			Values:  []float64{9, 39, 69, 99},
		}, {
			Reducer: Mean,
			Values:  []float64{4.5, 24.5, 54.5, 84.5},
		},
	} {
		consolidated := metric.Consolidate(30*time.Second, rv.Reducer)
		points := consolidated.Points()
		assert.Len(points, 4)
		assert.True(time.Date(2006, 1, 2, 15, 4, 9, 0, mst).Equal(points[0].Time()))
		assert.True(time.Date(2006, 1, 2, 15, 4, 39, 0, mst).Equal(points[1].Time()))
		assert.True(time.Date(2006, 1, 2, 15, 5, 9, 0, mst).Equal(points[2].Time()))
		assert.True(time.Date(2006, 1, 2, 15, 5, 39, 0, mst).Equal(points[3].Time()))
		assert.Equal(rv.Values, points.Ys())
	}
}

func TestConsolidatePointsZeroWidth(t *testing.T) {
	assert := require.New(t)

	points := PointSet{{1, 1}, {2, 2}}
	assert.Equal(points, ConsolidatePoints(points, 0, Sum))
}

func makeMergeInputs() []*Metric {
	metric0 := NewMetric(`rplot.test.metrics.merge,cool=beans,instance=1,class=onesies`)
	metric1 := NewMetric(`rplot.test.metrics.merge,cool=beans,instance=2,class=onesies`)
	metric2 := NewMetric(`rplot.test.metrics.merge,cool=beans,instance=3,class=twosies`)
	metric3 := NewMetric(`rplot.test.metrics.othermerge,instance=1,class=onesies,other=1`)
	metric4 := NewMetric(`rplot.test.metrics.othermerge,instance=2,class=twosies,other=2`)

	for i := 0; i < 35; i++ {
		metric0.Push(time.Date(2006, 1, 2, 15, 4, i, 0, mst), float64(i))
	}

	for i := 0; i < 100; i++ {
		metric1.Push(time.Date(2006, 1, 2, 15, 4, i, 0, mst), float64(i))
	}

	for i := 0; i < 100; i++ {
		metric2.Push(time.Date(2006, 1, 2, 15, 4, i, rand.Intn(100000), mst), float64(i))
	}

	for i := 0; i < 27; i++ {
		metric3.Push(time.Date(2006, 1, 2, 15, 4, i, rand.Intn(100000), mst), float64(i))
	}

	for i := 0; i < 28; i++ {
		metric4.Push(time.Date(2006, 1, 2, 15, 4, i, rand.Intn(100000), mst), float64(i))
	}

	return []*Metric{metric0, metric1, metric2, metric3, metric4}
}

func TestMetricMerge(t *testing.T) {
	assert := require.New(t)

	merged := MergeMetrics(makeMergeInputs(), `name`)

	assert.Len(merged, 2)
	merge1 := merged[0]
	merge2 := merged[1]

	assert.Equal(`rplot.test.metrics.merge`, merge1.GetName())
	assert.Equal(235, len(merge1.Points()))
	assert.True(sort.IsSorted(merge1.Points()))
	assert.Equal(map[string]interface{}{
		`cool`: `beans`,
	}, merge1.GetTags())

	assert.Equal(`rplot.test.metrics.othermerge`, merge2.GetName())
	assert.Equal(55, len(merge2.Points()))
	assert.True(sort.IsSorted(merge2.Points()))
	assert.Empty(merge2.GetTags())
}

func TestMetricMergeOnTags(t *testing.T) {
	assert := require.New(t)

	merged := MergeMetrics(makeMergeInputs(), `class`)

	assert.Len(merged, 2)
	merge1 := merged[0]
	merge2 := merged[1]

	assert.Equal(162, len(merge1.Points()))
	assert.True(sort.IsSorted(merge1.Points()))
	assert.Equal(map[string]interface{}{
		`class`: `onesies`,
	}, merge1.GetTags())

	assert.Equal(128, len(merge2.Points()))
	assert.True(sort.IsSorted(merge2.Points()))
	assert.Equal(map[string]interface{}{
		`class`: `twosies`,
	}, merge2.GetTags())
}

func TestMetricMergeUnique(t *testing.T) {
	assert := require.New(t)

	inputs := makeMergeInputs()
	merged := MergeMetrics(append(inputs, inputs[0]), ``)

	assert.Len(merged, 5)
	assert.Equal(70, len(merged[0].Points()))
}
