package rplot

import (
	"fmt"
	"strconv"
	"strings"
)

// GraphiteParser reads the Carbon plaintext protocol:
//
//	<name> <value> <epoch seconds>
type GraphiteParser struct{}

func (self GraphiteParser) Parse(line string) (string, Point, error) {
	parts := strings.Fields(line)

	if len(parts) == 3 {
		if epoch, err := strconv.ParseFloat(parts[2], 64); err == nil {
			if value, err := strconv.ParseFloat(parts[1], 64); err == nil {
				return parts[0], Point{
					X: epoch,
					Y: value,
				}, nil
			}
		}
	}

	return ``, Point{}, fmt.Errorf("%w: graphite %q", ErrMalformedLine, line)
}
