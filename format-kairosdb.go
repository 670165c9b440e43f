package rplot

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ghetzel/go-stockutil/maputil"
)

type KairosFormatter struct{}

func (self KairosFormatter) Format(metric *Metric, point Point) string {
	if name := metric.GetName(); name != `` {
		tags := ``

		if keys := maputil.StringKeys(metric.GetTags()); len(keys) > 0 {
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))

			for _, key := range keys {
				pairs = append(pairs, fmt.Sprintf("%s=%v", key, metric.GetTag(key)))
			}

			tags = ` ` + strings.Join(pairs, ` `)
		}

		return fmt.Sprintf("put %s %d %s%s",
			name,
			int64(math.Round(point.X*1000)),
			strconv.FormatFloat(point.Y, 'f', -1, 64),
			tags,
		)
	}

	return ``
}
