package rplot

import (
	"errors"
	"fmt"
	"io"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger(`rplot`)

var DefaultWidth = 400
var DefaultHeight = 200

// Degenerate (zero-span) axes are padded by this much on each side so a lone
// value is drawn in the middle of the plot.
var DegenerateSpanPadding float64 = 0.5

// Gap between the end of a y tick mark and its label, the baseline of the
// first x-axis label row below the plot, and the distance between stacked
// x-axis label rows.
var LabelGap float64 = 5
var XLabelBaseline float64 = 15
var LabelRowHeight float64 = 12

var ErrNoData = errors.New(`no data points to plot`)
var ErrInvalidRange = errors.New(`invalid axis range`)

type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

var DefaultMargins = Margins{
	Top:    30,
	Right:  20,
	Bottom: 30,
	Left:   80,
}

type GraphOptions struct {
	Title        string      `json:"title"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	DPI          float64     `json:"dpi"`
	YMin         *float64    `json:"ymin,omitempty"`
	YMax         *float64    `json:"ymax,omitempty"`
	Margins      Margins     `json:"margins"`
	MarkerRadius float64     `json:"marker_radius"`
	Consolidate  ReducerFunc `json:"-"`
}

// Graph plots one or more DataSources against shared axes.
type Graph struct {
	Sources  []DataSource
	XTickers []Ticker
	YTickers []Ticker
	Options  GraphOptions
	Style    GraphStyle
}

func NewGraph(width int, height int, title string, sources ...DataSource) *Graph {
	return &Graph{
		Sources: sources,
		Options: GraphOptions{
			Title:   title,
			Width:   width,
			Height:  height,
			Margins: DefaultMargins,
		},
		Style: DefaultStyle,
	}
}

// NewMetricsGraph plots each metric as its own series.
func NewMetricsGraph(metrics []*Metric) *Graph {
	sources := make([]DataSource, len(metrics))

	for i, metric := range metrics {
		sources[i] = metric
	}

	return NewGraph(0, 0, ``, sources...)
}

func (self *Graph) AddSource(source DataSource) *Graph {
	self.Sources = append(self.Sources, source)
	return self
}

// SetYRange pins the y axis, overriding whatever the data spans.
func (self *Graph) SetYRange(min float64, max float64) *Graph {
	self.Options.YMin = &min
	self.Options.YMax = &max
	return self
}

func (self *Graph) Size() (float64, float64) {
	width, height := self.Options.Width, self.Options.Height

	if width <= 0 {
		width = DefaultWidth
	}

	if height <= 0 {
		height = DefaultHeight
	}

	return float64(width), float64(height)
}

// PlotSize is the size of the data area: the canvas minus the label gutters.
func (self *Graph) PlotSize() (float64, float64) {
	width, height := self.Size()
	m := self.Options.Margins

	return width - m.Left - m.Right, height - m.Top - m.Bottom
}

// Bounds returns the union of every source's bounding box with the y
// override applied.  Degenerate spans are returned as-is.
func (self *Graph) Bounds() (BoundingBox, error) {
	bounds := EmptyBounds()
	found := false

	for _, source := range self.Sources {
		if b, ok := BoundsOf(source); ok {
			bounds = bounds.Union(b)
			found = true
		}
	}

	if !found {
		return BoundingBox{}, ErrNoData
	}

	if v := self.Options.YMin; v != nil {
		bounds.MinY = *v
	}

	if v := self.Options.YMax; v != nil {
		bounds.MaxY = *v
	}

	if bounds.MinY > bounds.MaxY {
		return BoundingBox{}, fmt.Errorf("%w: y minimum %g is above maximum %g", ErrInvalidRange, bounds.MinY, bounds.MaxY)
	}

	return bounds, nil
}

// Analyze computes the data bounds and the mapper for the plot area.  Any
// zero-span axis is widened by DegenerateSpanPadding on both sides.
func (self *Graph) Analyze() (*PlotAttributes, error) {
	bounds, err := self.Bounds()

	if err != nil {
		return nil, err
	}

	if bounds.IsDegenerate() {
		log.Warningf("degenerate bounds %v, padding by %g", bounds, DegenerateSpanPadding)
		bounds = bounds.Widen(DegenerateSpanPadding)

		if bounds.IsDegenerate() {
			return nil, fmt.Errorf("%w: cannot widen %v", ErrDegenerateRange, bounds)
		}
	}

	width, height := self.PlotSize()

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: plot area %gx%g leaves no room inside the margins", ErrInvalidRange, width, height)
	}

	return NewPlotAttributes(bounds, width, height), nil
}

func (self *Graph) xTickers() []Ticker {
	if len(self.XTickers) > 0 {
		return self.XTickers
	}

	return []Ticker{NewSmartTimeTicker()}
}

func (self *Graph) yTickers() []Ticker {
	if len(self.YTickers) > 0 {
		return self.YTickers
	}

	return []Ticker{NewNiceTicker(DefaultNiceTickCount)}
}

// XTicks collects the ticks of every x ticker that fall inside the mapper's
// x range.
func (self *Graph) XTicks(mapper *PlotAttributes) []Tick {
	return ticksWithin(self.xTickers(), mapper.MinX, mapper.MaxX)
}

// YTicks collects the ticks of every y ticker that fall inside the mapper's
// y range.  Without configured y tickers it falls back to evenly spaced
// gridline steps when no nice ticks fit.
func (self *Graph) YTicks(mapper *PlotAttributes) []Tick {
	ticks := ticksWithin(self.yTickers(), mapper.MinY, mapper.MaxY)

	if len(ticks) == 0 && len(self.YTickers) == 0 {
		fallback := NewStandardTicker(mapper.GridStepY(), mapper.GridStepY())
		ticks = ticksWithin([]Ticker{fallback}, mapper.MinY, mapper.MaxY)
	}

	return ticks
}

func ticksWithin(tickers []Ticker, min float64, max float64) []Tick {
	ticks := make([]Tick, 0)

	for _, ticker := range tickers {
		ticker.Each(min, max, func(tick Tick) bool {
			if tick.Value >= min && tick.Value <= max {
				ticks = append(ticks, tick)
			}

			return true
		})
	}

	return ticks
}

// Render draws the whole graph: frame and title, gridlines, every source,
// then the tick marks and labels in the left and bottom gutters.
func (self *Graph) Render(canvas Canvas) error {
	mapper, err := self.Analyze()

	if err != nil {
		return err
	}

	width, height := self.Size()
	margins := self.Options.Margins
	xticks := self.XTicks(mapper)
	yticks := self.YTicks(mapper)

	self.renderFrame(canvas, width, height)

	plot := canvas.Sub(margins.Left, margins.Top, mapper.Width, mapper.Height)
	plot.Rectangle(mapper.Width, mapper.Height, 0, 0, self.Style.Canvas)

	if err := self.renderGrid(plot, mapper, xticks, yticks); err != nil {
		return err
	}

	for i, source := range self.Sources {
		style := self.Style.GetSeriesStyle(i)

		if self.Options.MarkerRadius > 0 {
			style.MarkerRadius = self.Options.MarkerRadius
		}

		if err := RenderSource(plot, self.consolidate(source, mapper), mapper, style); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
	}

	border := self.Style.Border
	border.FillColor.A = 0
	plot.Rectangle(mapper.Width, mapper.Height, 0, 0, border)

	if err := self.renderYTicks(canvas.Sub(0, margins.Top, margins.Left, mapper.Height), mapper, yticks); err != nil {
		return err
	}

	return self.renderXTicks(canvas.Sub(margins.Left, margins.Top+mapper.Height, mapper.Width, margins.Bottom), mapper, xticks)
}

// RenderTo renders the graph as an image in the given format.
func (self *Graph) RenderTo(w io.Writer, format RenderFormat) error {
	width, height := self.Size()

	canvas, err := NewChartCanvas(format, int(width), int(height), self.Options.DPI, self.Style.Font)

	if err != nil {
		return err
	}

	if err := self.Render(canvas); err != nil {
		return err
	}

	return canvas.Save(w)
}

func (self *Graph) renderFrame(canvas Canvas, width float64, height float64) {
	canvas.Rectangle(width-1, height-1, 0, 0, self.Style.Background)
	canvas.Rectangle(width-3, height-3, 1, 1, self.Style.Frame)

	if title := self.Options.Title; title != `` {
		canvas.Text(width/2, 20, title, self.Style.Title)
	}
}

func (self *Graph) renderGrid(plot Canvas, mapper *PlotAttributes, xticks []Tick, yticks []Tick) error {
	for _, tick := range xticks {
		if px, err := mapper.PixelX(tick.Value); err == nil {
			plot.Polyline([]Pixel{{px, 0}, {px, mapper.Height}}, gridStyle(tick, self.Style.XAxisGridMajor, self.Style.XAxisGridMinor))
		} else {
			return err
		}
	}

	for _, tick := range yticks {
		if py, err := mapper.PixelY(tick.Value); err == nil {
			plot.Polyline([]Pixel{{0, py}, {mapper.Width, py}}, gridStyle(tick, self.Style.YAxisGridMajor, self.Style.YAxisGridMinor))
		} else {
			return err
		}
	}

	return nil
}

func (self *Graph) renderYTicks(gutter Canvas, mapper *PlotAttributes, ticks []Tick) error {
	right, _ := gutter.Size()

	for _, tick := range ticks {
		py, err := mapper.PixelY(tick.Value)

		if err != nil {
			return err
		}

		gutter.Polyline([]Pixel{{right, py}, {right - tick.TickLength, py}}, markStyle(tick, self.Style.YAxisTicks))

		if tick.HasLabel() {
			gutter.Text(right-tick.TickLength-LabelGap, py, tick.Label, self.Style.YAxisLabels)
		}
	}

	return nil
}

func (self *Graph) renderXTicks(gutter Canvas, mapper *PlotAttributes, ticks []Tick) error {
	for _, tick := range ticks {
		px, err := mapper.PixelX(tick.Value)

		if err != nil {
			return err
		}

		gutter.Polyline([]Pixel{{px, 0}, {px, tick.TickLength}}, markStyle(tick, self.Style.XAxisTicks))

		if tick.HasLabel() {
			gutter.Text(px, XLabelBaseline+LabelRowHeight*float64(tick.Depth), tick.Label, self.Style.XAxisLabels)
		}
	}

	return nil
}

// consolidate reduces a source to at most one point per plot pixel when a
// consolidation function is configured.
func (self *Graph) consolidate(source DataSource, mapper *PlotAttributes) DataSource {
	if self.Options.Consolidate == nil {
		return source
	}

	points := CollectPoints(source)

	if float64(len(points)) <= mapper.Width {
		return points
	}

	return ConsolidatePoints(points, mapper.RatioX(mapper.Width), self.Options.Consolidate)
}

func gridStyle(tick Tick, major DrawStyle, minor DrawStyle) DrawStyle {
	if tick.HasLabel() {
		return major
	}

	return minor
}

func markStyle(tick Tick, style DrawStyle) DrawStyle {
	if tick.TickWidth > 0 {
		style.StrokeWidth = tick.TickWidth
	}

	return style
}
