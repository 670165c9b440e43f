package rplot

// SummarizeMetric applies each reducer to the metric's values, in order.
func SummarizeMetric(metric *Metric, reducers ...ReducerFunc) []float64 {
	values := metric.Points().Ys()
	output := make([]float64, len(reducers))

	for i, reducer := range reducers {
		output[i] = Reduce(reducer, values...)
	}

	return output
}
