package rplot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart"
)

type RenderFormat string

const (
	RenderFormatPNG RenderFormat = `png`
	RenderFormatSVG RenderFormat = `svg`
)

var DefaultDPI float64 = 72.0
var DefaultFontSize float64 = 10

var ErrUnsupportedFormat = errors.New(`unsupported render format`)

// ChartCanvas draws onto a go-chart Renderer, which handles rasterization
// (PNG) or SVG output.
type ChartCanvas struct {
	renderer chart.Renderer
	font     *truetype.Font
	x        float64
	y        float64
	width    float64
	height   float64
}

func GetRendererProvider(format RenderFormat) (chart.RendererProvider, error) {
	switch format {
	case RenderFormatPNG:
		return chart.PNG, nil
	case RenderFormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// NewChartCanvas creates a width x height canvas in the given format.  A nil
// font falls back to go-chart's bundled default font.
func NewChartCanvas(format RenderFormat, width int, height int, dpi float64, font *truetype.Font) (*ChartCanvas, error) {
	provider, err := GetRendererProvider(format)

	if err != nil {
		return nil, err
	}

	renderer, err := provider(width, height)

	if err != nil {
		return nil, err
	}

	if dpi <= 0 {
		dpi = DefaultDPI
	}

	renderer.SetDPI(dpi)

	if font == nil {
		if f, err := chart.GetDefaultFont(); err == nil {
			font = f
		} else {
			return nil, err
		}
	}

	return &ChartCanvas{
		renderer: renderer,
		font:     font,
		width:    float64(width),
		height:   float64(height),
	}, nil
}

func (self *ChartCanvas) Save(w io.Writer) error {
	return self.renderer.Save(w)
}

func (self *ChartCanvas) Size() (float64, float64) {
	return self.width, self.height
}

func (self *ChartCanvas) Sub(x float64, y float64, width float64, height float64) Canvas {
	return &ChartCanvas{
		renderer: self.renderer,
		font:     self.font,
		x:        self.x + x,
		y:        self.y + y,
		width:    width,
		height:   height,
	}
}

func (self *ChartCanvas) Rectangle(width float64, height float64, x float64, y float64, style DrawStyle) {
	self.path([]Pixel{
		{x, y},
		{x + width, y},
		{x + width, y + height},
		{x, y + height},
	}, true, style)
}

func (self *ChartCanvas) Polyline(points []Pixel, style DrawStyle) {
	style.FillColor.A = 0
	self.path(points, false, style)
}

func (self *ChartCanvas) Polygon(points []Pixel, style DrawStyle) {
	self.path(points, true, style)
}

func (self *ChartCanvas) Circle(radius float64, x float64, y float64, style DrawStyle) {
	self.apply(style)
	self.renderer.Circle(radius, self.px(x), self.py(y))
}

func (self *ChartCanvas) Text(x float64, y float64, text string, style DrawStyle) {
	if text == `` {
		return
	}

	font := style.Font

	if font == nil {
		font = self.font
	}

	size := style.FontSize

	if size <= 0 {
		size = DefaultFontSize
	}

	self.renderer.SetFont(font)
	self.renderer.SetFontSize(size)
	self.renderer.SetFontColor(style.FontColor)

	box := self.renderer.MeasureText(text)

	switch style.Anchor {
	case AnchorMiddle:
		x -= float64(box.Width()) / 2
	case AnchorEnd:
		x -= float64(box.Width())
	}

	switch style.Baseline {
	case BaselineMiddle:
		y += float64(box.Height()) / 2
	case BaselineHanging:
		y += float64(box.Height())
	}

	self.renderer.Text(text, self.px(x), self.py(y))
}

func (self *ChartCanvas) path(points []Pixel, closed bool, style DrawStyle) {
	if len(points) == 0 {
		return
	}

	stroke := style.ShouldStroke()
	fill := closed && style.ShouldFill()

	if !stroke && !fill {
		return
	}

	self.apply(style)
	self.renderer.MoveTo(self.px(points[0].X), self.py(points[0].Y))

	for _, point := range points[1:] {
		self.renderer.LineTo(self.px(point.X), self.py(point.Y))
	}

	if closed {
		self.renderer.Close()
	}

	switch {
	case stroke && fill:
		self.renderer.FillStroke()
	case fill:
		self.renderer.Fill()
	default:
		self.renderer.Stroke()
	}
}

func (self *ChartCanvas) apply(style DrawStyle) {
	self.renderer.SetStrokeColor(style.StrokeColor)
	self.renderer.SetFillColor(style.FillColor)
	self.renderer.SetStrokeWidth(style.StrokeWidth)
	self.renderer.SetStrokeDashArray(style.StrokeDashArray)
}

func (self *ChartCanvas) px(x float64) int {
	return int(math.Round(self.x + x))
}

func (self *ChartCanvas) py(y float64) int {
	return int(math.Round(self.y + y))
}
