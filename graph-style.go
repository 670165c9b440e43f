package rplot

import (
	"io/ioutil"

	"github.com/ghetzel/go-stockutil/pathutil"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart"
)

type GraphStyle struct {
	Background     DrawStyle
	Frame          DrawStyle
	Title          DrawStyle
	Canvas         DrawStyle
	Border         DrawStyle
	XAxisTicks     DrawStyle
	XAxisLabels    DrawStyle
	XAxisGridMajor DrawStyle
	XAxisGridMinor DrawStyle
	YAxisTicks     DrawStyle
	YAxisLabels    DrawStyle
	YAxisGridMajor DrawStyle
	YAxisGridMinor DrawStyle
	Series         []SeriesStyle
	Font           *truetype.Font
}

func (self *GraphStyle) GetSeriesStyle(i int) SeriesStyle {
	if len(self.Series) == 0 {
		return SeriesStyle{}
	} else {
		return self.Series[i%len(self.Series)]
	}
}

// LoadFont reads a TrueType font from disk for use as GraphStyle.Font.
func LoadFont(filename string) (*truetype.Font, error) {
	if expanded, err := pathutil.ExpandUser(filename); err == nil {
		if data, err := ioutil.ReadFile(expanded); err == nil {
			return truetype.Parse(data)
		} else {
			return nil, err
		}
	} else {
		return nil, err
	}
}

func stroke(hex string, width float64) DrawStyle {
	return DrawStyle{
		Style: chart.Style{
			Show:        true,
			StrokeColor: solid(hex),
			StrokeWidth: width,
		},
	}
}

func box(strokeHex string, fillHex string) DrawStyle {
	style := stroke(strokeHex, 1)
	style.FillColor = solid(fillHex)
	return style
}

func label(size float64, anchor TextAnchor, baseline TextBaseline) DrawStyle {
	return DrawStyle{
		Style: chart.Style{
			Show:      true,
			FontSize:  size,
			FontColor: solid(`000000`),
		},
		Anchor:   anchor,
		Baseline: baseline,
	}
}

var DefaultStyle = GraphStyle{
	Background:     box(`808080`, `ffffff`),
	Frame:          box(`000000`, `e8f8f8`),
	Title:          label(16, AnchorMiddle, BaselineAlphabetic),
	Canvas:         box(`ffffff`, `ffffff`),
	Border:         stroke(`000000`, 1),
	XAxisTicks:     stroke(`000000`, 1),
	XAxisLabels:    label(10, AnchorMiddle, BaselineAlphabetic),
	XAxisGridMajor: stroke(`c8cece`, 1),
	XAxisGridMinor: stroke(`e4e8e8`, 1),
	YAxisTicks:     stroke(`000000`, 1),
	YAxisLabels:    label(10, AnchorEnd, BaselineMiddle),
	YAxisGridMajor: stroke(`c8cece`, 1),
	YAxisGridMinor: stroke(`e4e8e8`, 1),
	Series: MakeSimplePalette(func(style *SeriesStyle) {
		style.StrokeWidth = 1
	}, PaletteRPlot...),
}
