package rplot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRendererProvider(t *testing.T) {
	assert := require.New(t)

	_, err := GetRendererProvider(RenderFormatPNG)
	assert.NoError(err)

	_, err = GetRendererProvider(RenderFormatSVG)
	assert.NoError(err)

	_, err = GetRendererProvider(`bmp`)
	assert.ErrorIs(err, ErrUnsupportedFormat)
}

func TestChartCanvasSub(t *testing.T) {
	assert := require.New(t)

	canvas, err := NewChartCanvas(RenderFormatSVG, 100, 50, 0, nil)
	assert.NoError(err)

	width, height := canvas.Size()
	assert.Equal(100.0, width)
	assert.Equal(50.0, height)

	sub := canvas.Sub(10, 5, 20, 30)
	width, height = sub.Size()
	assert.Equal(20.0, width)
	assert.Equal(30.0, height)

	sub.Rectangle(20, 30, 0, 0, box(`000000`, `ffffff`))
	sub.Polyline([]Pixel{{0, 0}, {20, 30}}, stroke(`ff0000`, 1))
	sub.Text(10, 15, `label`, label(10, AnchorMiddle, BaselineMiddle))

	var out bytes.Buffer
	assert.NoError(canvas.Save(&out))
	assert.Contains(out.String(), `<svg`)
	assert.Contains(out.String(), `label`)
}

func TestSeriesStyleDefaults(t *testing.T) {
	assert := require.New(t)

	style := SeriesStyle{}
	style.StrokeColor = solid(`#123456`)

	assert.Equal(1.0, style.LineStyle().StrokeWidth)
	assert.False(style.ShouldFill())
	assert.Equal(style.StrokeColor, style.MarkerStyle().FillColor)
}
