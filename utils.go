package rplot

import (
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/stringutil"
)

// ParseTimeString accepts an absolute time in any format stringutil
// understands, or a negative duration ("-6h") relative to now.  An empty
// string means now.
func ParseTimeString(timeval string) (time.Time, error) {
	return parseTimeRelativeTo(timeval, time.Now())
}

func parseTimeRelativeTo(timeval string, now time.Time) (time.Time, error) {
	if timeval == `` {
		return now, nil
	}

	if strings.HasPrefix(timeval, `-`) {
		if duration, err := time.ParseDuration(timeval); err == nil {
			return now.Add(duration), nil
		} else {
			return time.Time{}, err
		}
	}

	return stringutil.ConvertToTime(timeval)
}
