package rplot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/httputil"
	"github.com/husobee/vestigo"
)

var DefaultMetricReducerFunc = `sum`

type Server struct {
	router  *vestigo.Router
	dataset *Dataset
}

type metricSummary struct {
	Name       string                 `json:"name"`
	Tags       map[string]interface{} `json:"tags,omitempty"`
	Statistics map[string]float64     `json:"statistics"`
}

// metricQuery holds the parameters shared by every metric endpoint.
type metricQuery struct {
	names    []string
	start    time.Time
	end      time.Time
	interval time.Duration
	groupBy  string
	reducers []string
}

func NewServer(dataset *Dataset) *Server {
	server := &Server{
		router:  vestigo.NewRouter(),
		dataset: dataset,
	}

	server.router.Get(`/metrics/list`, server.handleList)
	server.router.Get(`/metrics/:action/*`, server.handleMetrics)
	server.router.Get(`/demo`, server.handleDemo)

	return server
}

func (self *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	self.router.ServeHTTP(w, req)
}

func (self *Server) handleList(w http.ResponseWriter, req *http.Request) {
	names, err := self.dataset.GetNames(httputil.Q(req, `filter`, `**`))

	if err != nil {
		respond(w, err)
		return
	}

	metrics := make([]*Metric, len(names))
	palette := GetPalette(httputil.Q(req, `palette`))

	for i, name := range names {
		metrics[i] = NewMetric(name)

		if len(palette) > 0 {
			metrics[i].Metadata[`color`] = palette.Get(i)
		}
	}

	respond(w, metrics)
}

func (self *Server) handleMetrics(w http.ResponseWriter, req *http.Request) {
	query, err := parseMetricQuery(req)

	if err != nil {
		respond(w, err, http.StatusBadRequest)
		return
	}

	metrics, err := self.dataset.Range(query.start, query.end, query.names...)

	if err != nil {
		respond(w, err)
		return
	}

	metrics = MergeMetrics(metrics, query.groupBy)

	switch action := vestigo.Param(req, `action`); action {
	case `query`:
		if query.interval > 0 {
			reducer, err := ParseReducer(query.reducers[0])

			if err != nil {
				respond(w, err, http.StatusBadRequest)
				return
			}

			for i, metric := range metrics {
				metrics[i] = metric.Consolidate(query.interval, reducer)
			}
		}

		if palette := GetPalette(httputil.Q(req, `palette`)); len(palette) > 0 {
			for i, metric := range metrics {
				metric.Metadata[`color`] = palette.Get(i)
			}
		}

		respond(w, metrics)

	case `graph`:
		graph := NewMetricsGraph(metrics)

		if err := applyGraphOptions(graph, req); err != nil {
			respond(w, err, http.StatusBadRequest)
			return
		}

		if fn := httputil.Q(req, `fn`); fn != `` {
			if reducer, err := ParseReducer(fn); err == nil {
				graph.Options.Consolidate = reducer
			} else {
				respond(w, err, http.StatusBadRequest)
				return
			}
		}

		renderGraph(w, req, graph)

	case `summary`:
		reducers := make([]ReducerFunc, len(query.reducers))

		for i, name := range query.reducers {
			if reducer, err := ParseReducer(name); err == nil {
				reducers[i] = reducer
			} else {
				respond(w, err, http.StatusBadRequest)
				return
			}
		}

		summary := make([]metricSummary, 0, len(metrics))

		for _, metric := range metrics {
			metricStats := make(map[string]float64)

			for i, value := range SummarizeMetric(metric, reducers...) {
				key := strings.Replace(GetReducerName(query.reducers[i]), `-`, `_`, -1)
				metricStats[key] = value
			}

			summary = append(summary, metricSummary{
				Name:       metric.GetName(),
				Tags:       metric.GetTags(),
				Statistics: metricStats,
			})
		}

		respond(w, summary)

	default:
		respond(w, fmt.Errorf("unknown action %q", action), http.StatusNotFound)
	}
}

func (self *Server) handleDemo(w http.ResponseWriter, req *http.Request) {
	graph := NewDemoGraph(time.Now())

	if err := applyGraphOptions(graph, req); err != nil {
		respond(w, err, http.StatusBadRequest)
		return
	}

	renderGraph(w, req, graph)
}

func parseMetricQuery(req *http.Request) (*metricQuery, error) {
	query := &metricQuery{
		names:    strings.Split(vestigo.Param(req, `_name`), `;`),
		groupBy:  httputil.Q(req, `group`, `name`),
		reducers: strings.Split(httputil.Q(req, `fn`, DefaultMetricReducerFunc), `,`),
	}

	if v, err := ParseTimeString(httputil.Q(req, `from`, `-1h`)); err == nil {
		query.start = v
	} else {
		return nil, err
	}

	if v, err := ParseTimeString(httputil.Q(req, `to`)); err == nil {
		query.end = v
	} else {
		return nil, err
	}

	if v := httputil.Q(req, `interval`, `none`); v != `none` {
		if d, err := time.ParseDuration(v); err == nil {
			query.interval = d
		} else {
			return nil, err
		}
	}

	return query, nil
}

// applyGraphOptions copies size, title, y range, markers and palette from
// the query string onto graph.
func applyGraphOptions(graph *Graph, req *http.Request) error {
	graph.Options.Title = httputil.Q(req, `title`, graph.Options.Title)
	graph.Options.Width = int(httputil.QInt(req, `width`, int64(graph.Options.Width)))
	graph.Options.Height = int(httputil.QInt(req, `height`, int64(graph.Options.Height)))
	graph.Options.DPI = httputil.QFloat(req, `dpi`, DefaultDPI)
	graph.Options.MarkerRadius = httputil.QFloat(req, `markers`, 0)

	for _, bound := range []struct {
		param string
		dest  **float64
	}{
		{`ymin`, &graph.Options.YMin},
		{`ymax`, &graph.Options.YMax},
	} {
		if httputil.Q(req, bound.param) != `` {
			value := httputil.QFloat(req, bound.param)
			*bound.dest = &value
		}
	}

	if httputil.Q(req, `calendar`) == `true` {
		graph.XTickers = []Ticker{NewAdaptiveTimeTicker(CalendarThresholdTable())}
	}

	if name := httputil.Q(req, `palette`); name != `` {
		graph.Style.Series = SeriesStylesFor(name, httputil.QFloat(req, `stroke`, 1))
	}

	if min, max := graph.Options.YMin, graph.Options.YMax; min != nil && max != nil && *min > *max {
		return fmt.Errorf("%w: ymin %g is above ymax %g", ErrInvalidRange, *min, *max)
	}

	return nil
}

func renderGraph(w http.ResponseWriter, req *http.Request, graph *Graph) {
	format := RenderFormat(httputil.Q(req, `format`, string(RenderFormatPNG)))

	switch format {
	case RenderFormatPNG:
		w.Header().Set(`Content-Type`, `image/png`)
	case RenderFormatSVG:
		w.Header().Set(`Content-Type`, `image/svg+xml`)
	default:
		respond(w, fmt.Errorf("%w %q", ErrUnsupportedFormat, format), http.StatusBadRequest)
		return
	}

	if err := graph.RenderTo(w, format); errors.Is(err, ErrNoData) {
		respond(w, err, http.StatusNotFound)
	} else if err != nil {
		respond(w, err)
	}
}

func respond(w http.ResponseWriter, data interface{}, code ...int) {
	w.Header().Set(`Content-Type`, `application/json`)

	if err, ok := data.(error); ok {
		data = map[string]interface{}{
			`error`: err.Error(),
		}

		if len(code) == 0 || code[0] < 400 {
			code = []int{http.StatusInternalServerError}
		}
	}

	if output, err := json.MarshalIndent(data, ``, `  `); err == nil {
		if len(code) > 0 {
			w.WriteHeader(code[0])
		}

		w.Write(output)
	} else {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
