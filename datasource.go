package rplot

// PointFunc receives each point produced by a DataSource.  Returning false
// stops the traversal.
type PointFunc func(point Point) bool

// A DataSource yields a finite sequence of points.  Every call to Each starts
// a fresh traversal from the beginning.  Points are drawn in the order they
// are yielded, so line charts expect them sorted by x.
type DataSource interface {
	Each(fn PointFunc)
}

// SourceFunc adapts a generator to a DataSource.  The function is invoked
// again for every traversal.
type SourceFunc func(yield PointFunc)

func (self SourceFunc) Each(fn PointFunc) {
	self(fn)
}

func CollectPoints(source DataSource) PointSet {
	points := make(PointSet, 0)

	source.Each(func(point Point) bool {
		points = append(points, point)
		return true
	})

	return points
}

func CountPoints(source DataSource) int {
	count := 0

	source.Each(func(Point) bool {
		count++
		return true
	})

	return count
}

// BoundsOf returns the smallest box containing every point of source, and
// false if the source has no points.
func BoundsOf(source DataSource) (BoundingBox, bool) {
	bounds := EmptyBounds()
	found := false

	source.Each(func(point Point) bool {
		bounds = bounds.Include(point)
		found = true
		return true
	})

	return bounds, found
}

// RenderSource draws source onto canvas through mapper: a fill polygon closed
// against the bottom edge, the line through every point, and optionally a
// marker at each point.  A source with no points draws nothing.
func RenderSource(canvas Canvas, source DataSource, mapper *PlotAttributes, style SeriesStyle) error {
	pixels := make([]Pixel, 0)
	var err error

	source.Each(func(point Point) bool {
		var px, py float64

		if px, py, err = mapper.ToPixel(point.X, point.Y); err == nil {
			pixels = append(pixels, Pixel{px, py})
			return true
		}

		return false
	})

	if err != nil {
		return err
	} else if len(pixels) == 0 {
		return nil
	}

	if style.ShouldFill() {
		polygon := make([]Pixel, 0, len(pixels)+2)
		polygon = append(polygon, Pixel{0, mapper.Height})
		polygon = append(polygon, pixels...)
		polygon = append(polygon, Pixel{mapper.Width, mapper.Height})

		canvas.Polygon(polygon, style.FillStyle())
	}

	canvas.Polyline(pixels, style.LineStyle())

	if style.MarkerRadius > 0 {
		markerStyle := style.MarkerStyle()

		for _, pixel := range pixels {
			canvas.Circle(style.MarkerRadius, pixel.X, pixel.Y, markerStyle)
		}
	}

	return nil
}
