package rplot

import (
	"strings"

	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

// Pixel is a position in pixel space: origin top-left, y growing downward.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineMiddle
	BaselineHanging
)

// DrawStyle is passed through to the canvas untouched; only the canvas
// interprets colors, strokes and fonts.
type DrawStyle struct {
	chart.Style
	Anchor   TextAnchor
	Baseline TextBaseline
}

func (self DrawStyle) ShouldStroke() bool {
	return self.StrokeColor.A > 0 && self.StrokeWidth > 0
}

func (self DrawStyle) ShouldFill() bool {
	return self.FillColor.A > 0
}

// A Canvas accepts drawing primitives in already-transformed pixel
// coordinates, relative to its own origin.
type Canvas interface {
	Size() (width float64, height float64)
	Rectangle(width float64, height float64, x float64, y float64, style DrawStyle)
	Polyline(points []Pixel, style DrawStyle)
	Polygon(points []Pixel, style DrawStyle)
	Circle(radius float64, x float64, y float64, style DrawStyle)
	Text(x float64, y float64, text string, style DrawStyle)

	// Sub returns a canvas whose origin is at (x, y) on this one.
	Sub(x float64, y float64, width float64, height float64) Canvas
}

// SeriesStyle describes how a single DataSource is drawn.  StrokeColor and
// StrokeWidth draw the line, FillColor the area beneath it, and DotColor the
// optional point markers.
type SeriesStyle struct {
	chart.Style
	MarkerRadius float64
}

func (self SeriesStyle) ShouldFill() bool {
	return self.FillColor.A > 0
}

func (self SeriesStyle) FillStyle() DrawStyle {
	return DrawStyle{
		Style: chart.Style{
			Show:      true,
			FillColor: self.FillColor,
		},
	}
}

func (self SeriesStyle) LineStyle() DrawStyle {
	width := self.StrokeWidth

	if width <= 0 {
		width = 1
	}

	return DrawStyle{
		Style: chart.Style{
			Show:            true,
			StrokeColor:     self.StrokeColor,
			StrokeWidth:     width,
			StrokeDashArray: self.StrokeDashArray,
		},
	}
}

func (self SeriesStyle) MarkerStyle() DrawStyle {
	color := self.DotColor

	if color.A == 0 {
		color = self.StrokeColor
	}

	return DrawStyle{
		Style: chart.Style{
			Show:        true,
			FillColor:   color,
			StrokeColor: color,
			StrokeWidth: 1,
		},
	}
}

func solid(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, `#`))
}
