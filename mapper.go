package rplot

import (
	"errors"
	"fmt"
	"math"
)

var ErrDegenerateRange = errors.New(`axis span is zero`)

// BoundingBox is a rectangle in data space.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// EmptyBounds returns a box that any included point will replace entirely.
func EmptyBounds() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MaxX: math.Inf(-1),
		MinY: math.Inf(1),
		MaxY: math.Inf(-1),
	}
}

func (self BoundingBox) IsEmpty() bool {
	return self.MinX > self.MaxX || self.MinY > self.MaxY
}

func (self BoundingBox) SpanX() float64 {
	return self.MaxX - self.MinX
}

func (self BoundingBox) SpanY() float64 {
	return self.MaxY - self.MinY
}

func (self BoundingBox) IsDegenerate() bool {
	return self.SpanX() == 0 || self.SpanY() == 0
}

func (self BoundingBox) Contains(point Point) bool {
	return point.X >= self.MinX && point.X <= self.MaxX && point.Y >= self.MinY && point.Y <= self.MaxY
}

func (self BoundingBox) Include(point Point) BoundingBox {
	self.MinX = math.Min(self.MinX, point.X)
	self.MaxX = math.Max(self.MaxX, point.X)
	self.MinY = math.Min(self.MinY, point.Y)
	self.MaxY = math.Max(self.MaxY, point.Y)
	return self
}

func (self BoundingBox) Union(other BoundingBox) BoundingBox {
	if other.IsEmpty() {
		return self
	} else if self.IsEmpty() {
		return other
	}

	return BoundingBox{
		MinX: math.Min(self.MinX, other.MinX),
		MaxX: math.Max(self.MaxX, other.MaxX),
		MinY: math.Min(self.MinY, other.MinY),
		MaxY: math.Max(self.MaxY, other.MaxY),
	}
}

// Widen pads any zero-width axis on both sides, leaving the original value
// centered.  The pad grows with the magnitude of the value so that it is never
// lost to float rounding.  Non-degenerate axes are untouched.
func (self BoundingBox) Widen(pad float64) BoundingBox {
	if self.SpanX() == 0 {
		self.MinX, self.MaxX = widenAxis(self.MinX, self.MaxX, pad)
	}

	if self.SpanY() == 0 {
		self.MinY, self.MaxY = widenAxis(self.MinY, self.MaxY, pad)
	}

	return self
}

// Fraction of an axis value's magnitude used as the minimum widening pad.
var RelativeSpanPadding float64 = 1e-9

func widenAxis(min float64, max float64, pad float64) (float64, float64) {
	pad = math.Max(pad, math.Max(math.Abs(min), math.Abs(max))*RelativeSpanPadding)
	min, max = min-pad, max+pad

	if max-min <= 0 {
		min = math.Nextafter(min, math.Inf(-1))
		max = math.Nextafter(max, math.Inf(1))
	}

	return min, max
}

func (self BoundingBox) String() string {
	return fmt.Sprintf("x=[%g, %g] y=[%g, %g]", self.MinX, self.MaxX, self.MinY, self.MaxY)
}

// PlotAttributes maps data space onto a width x height pixel area.  Pixel y
// grows downward, so larger data values end up nearer the top.  It is not
// modified during rendering and may be shared between render passes.
type PlotAttributes struct {
	BoundingBox
	Width  float64
	Height float64
}

func NewPlotAttributes(bounds BoundingBox, width float64, height float64) *PlotAttributes {
	return &PlotAttributes{
		BoundingBox: bounds,
		Width:       width,
		Height:      height,
	}
}

func (self *PlotAttributes) SetBounds(minX float64, maxX float64, minY float64, maxY float64) {
	self.BoundingBox = BoundingBox{
		MinX: minX,
		MaxX: maxX,
		MinY: minY,
		MaxY: maxY,
	}
}

// RatioX is the number of data units covered by one pixel of the given width.
func (self *PlotAttributes) RatioX(width float64) float64 {
	return self.SpanX() / width
}

func (self *PlotAttributes) RatioY(height float64) float64 {
	return self.SpanY() / height
}

// GridStepX and GridStepY are coarse gridline spacings (30 columns, 5 rows)
// for when no ticker is available.
func (self *PlotAttributes) GridStepX() float64 {
	return self.SpanX() / 30
}

func (self *PlotAttributes) GridStepY() float64 {
	return self.SpanY() / 5
}

// Translate maps (x, y) into a zero-origin width x height view.  A zero
// span on either axis returns ErrDegenerateRange rather than producing NaN or
// infinite coordinates.
func (self *PlotAttributes) Translate(x float64, y float64, width float64, height float64) (float64, float64, error) {
	if self.SpanX() == 0 {
		return 0, 0, fmt.Errorf("x %w (%g)", ErrDegenerateRange, self.MinX)
	} else if self.SpanY() == 0 {
		return 0, 0, fmt.Errorf("y %w (%g)", ErrDegenerateRange, self.MinY)
	}

	px := (x - self.MinX) / self.SpanX() * width
	py := height - (y-self.MinY)/self.SpanY()*height

	return px, py, nil
}

// ToPixel translates using the mapper's own Width and Height.
func (self *PlotAttributes) ToPixel(x float64, y float64) (float64, float64, error) {
	return self.Translate(x, y, self.Width, self.Height)
}

// PixelX maps only the x axis; it fails only when the x span is zero.
func (self *PlotAttributes) PixelX(x float64) (float64, error) {
	if self.SpanX() == 0 {
		return 0, fmt.Errorf("x %w (%g)", ErrDegenerateRange, self.MinX)
	}

	return (x - self.MinX) / self.SpanX() * self.Width, nil
}

// PixelY maps only the y axis; it fails only when the y span is zero.
func (self *PlotAttributes) PixelY(y float64) (float64, error) {
	if self.SpanY() == 0 {
		return 0, fmt.Errorf("y %w (%g)", ErrDegenerateRange, self.MinY)
	}

	return self.Height - (y-self.MinY)/self.SpanY()*self.Height, nil
}
