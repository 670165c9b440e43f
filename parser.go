package rplot

import "errors"

var ErrMalformedLine = errors.New(`malformed metric line`)

// A Parser decodes one line of a text ingestion protocol into the unique
// name of a series and a point on it.
type Parser interface {
	Parse(line string) (string, Point, error)
}

func GetParser(name string) (Parser, bool) {
	switch name {
	case `graphite`, `carbon`:
		return GraphiteParser{}, true
	case `kairosdb`:
		return KairosParser{}, true
	default:
		return nil, false
	}
}
