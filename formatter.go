package rplot

// A Formatter encodes one point of a metric as a line of a text protocol.
type Formatter interface {
	Format(metric *Metric, point Point) string
}

func GetFormatter(name string) (Formatter, bool) {
	switch name {
	case `graphite`, `carbon`:
		return GraphiteFormatter{}, true
	case `kairosdb`:
		return KairosFormatter{}, true
	default:
		return nil, false
	}
}
