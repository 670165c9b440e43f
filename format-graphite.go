package rplot

import (
	"fmt"
	"strconv"
)

type GraphiteFormatter struct{}

func (self GraphiteFormatter) Format(metric *Metric, point Point) string {
	if name := metric.GetUniqueName(); name != `` {
		return fmt.Sprintf("%s %s %s",
			name,
			strconv.FormatFloat(point.Y, 'f', -1, 64),
			strconv.FormatFloat(point.X, 'f', -1, 64),
		)
	}

	return ``
}
