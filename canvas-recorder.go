package rplot

type DrawKind string

const (
	DrawRectangle DrawKind = `rectangle`
	DrawPolyline  DrawKind = `polyline`
	DrawPolygon   DrawKind = `polygon`
	DrawCircle    DrawKind = `circle`
	DrawText      DrawKind = `text`
)

// DrawOp is one recorded primitive.  Coordinates are absolute, with every
// enclosing sub-canvas offset already applied.
type DrawOp struct {
	Kind   DrawKind  `json:"kind"`
	Points []Pixel   `json:"points,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Radius float64   `json:"radius,omitempty"`
	Text   string    `json:"text,omitempty"`
	Style  DrawStyle `json:"-"`
}

type drawLog struct {
	ops []DrawOp
}

// RecordingCanvas keeps every primitive it is given instead of drawing it.
type RecordingCanvas struct {
	log    *drawLog
	x      float64
	y      float64
	width  float64
	height float64
}

func NewRecordingCanvas(width float64, height float64) *RecordingCanvas {
	return &RecordingCanvas{
		log:    &drawLog{},
		width:  width,
		height: height,
	}
}

// Ops returns everything drawn on this canvas and any of its sub-canvases.
func (self *RecordingCanvas) Ops() []DrawOp {
	return self.log.ops
}

// OpsOf filters Ops by kind.
func (self *RecordingCanvas) OpsOf(kind DrawKind) []DrawOp {
	out := make([]DrawOp, 0)

	for _, op := range self.log.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}

	return out
}

func (self *RecordingCanvas) Size() (float64, float64) {
	return self.width, self.height
}

func (self *RecordingCanvas) Sub(x float64, y float64, width float64, height float64) Canvas {
	return &RecordingCanvas{
		log:    self.log,
		x:      self.x + x,
		y:      self.y + y,
		width:  width,
		height: height,
	}
}

func (self *RecordingCanvas) Rectangle(width float64, height float64, x float64, y float64, style DrawStyle) {
	self.record(DrawOp{
		Kind:   DrawRectangle,
		X:      self.x + x,
		Y:      self.y + y,
		Width:  width,
		Height: height,
		Style:  style,
	})
}

func (self *RecordingCanvas) Polyline(points []Pixel, style DrawStyle) {
	self.record(DrawOp{
		Kind:   DrawPolyline,
		Points: self.offset(points),
		Style:  style,
	})
}

func (self *RecordingCanvas) Polygon(points []Pixel, style DrawStyle) {
	self.record(DrawOp{
		Kind:   DrawPolygon,
		Points: self.offset(points),
		Style:  style,
	})
}

func (self *RecordingCanvas) Circle(radius float64, x float64, y float64, style DrawStyle) {
	self.record(DrawOp{
		Kind:   DrawCircle,
		X:      self.x + x,
		Y:      self.y + y,
		Radius: radius,
		Style:  style,
	})
}

func (self *RecordingCanvas) Text(x float64, y float64, text string, style DrawStyle) {
	self.record(DrawOp{
		Kind:  DrawText,
		X:     self.x + x,
		Y:     self.y + y,
		Text:  text,
		Style: style,
	})
}

func (self *RecordingCanvas) offset(points []Pixel) []Pixel {
	out := make([]Pixel, len(points))

	for i, point := range points {
		out[i] = Pixel{self.x + point.X, self.y + point.Y}
	}

	return out
}

func (self *RecordingCanvas) record(op DrawOp) {
	self.log.ops = append(self.log.ops, op)
}
