package rplot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KairosParser reads the KairosDB telnet protocol:
//
//	put <name> <epoch milliseconds> <value> [<tag>=<value> ..]
//
// Tags are folded into the returned name so it round-trips through NewMetric.
type KairosParser struct{}

func (self KairosParser) Parse(line string) (string, Point, error) {
	parts := strings.Fields(line)

	if len(parts) >= 4 && parts[0] == `put` {
		if epochMs, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			if value, err := strconv.ParseFloat(parts[3], 64); err == nil {
				tags := parts[4:]
				name := parts[1]

				if len(tags) > 0 {
					sort.Strings(tags)
					name = name + InlineTagSeparator + strings.Join(tags, InlineTagSeparator)
				}

				return name, Point{
					X: float64(epochMs) / 1000,
					Y: value,
				}, nil
			}
		}
	}

	return ``, Point{}, fmt.Errorf("%w: kairosdb %q", ErrMalformedLine, line)
}
