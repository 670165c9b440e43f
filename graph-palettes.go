package rplot

import (
	"strings"
)

type Palette []string

func (self Palette) Get(index int) string {
	if len(self) == 0 {
		return ``
	}

	return `#` + strings.TrimPrefix(self[index%len(self)], `#`)
}

// MakeSimplePalette builds one series style per color: the line in the
// color itself and the area beneath it in a translucent tint of it.
func MakeSimplePalette(each func(style *SeriesStyle), colors ...string) []SeriesStyle {
	styles := make([]SeriesStyle, len(colors))

	for i, color := range colors {
		style := styles[i]

		style.Show = true
		style.StrokeColor = solid(color)
		style.FillColor = solid(color).WithAlpha(64)

		if each != nil {
			each(&style)
		}

		styles[i] = style
	}

	return styles
}

// GetPalette resolves a palette by name, or treats the value as a
// comma-separated list of hex colors.
func GetPalette(name string) Palette {
	switch name {
	case ``:
		return nil
	case `rplot`:
		return PaletteRPlot
	case `spectrum14`:
		return PaletteSpectrum14
	case `spectrum2000`:
		return PaletteSpectrum2000
	case `classic9`:
		return PaletteClassic9
	case `munin`:
		return PaletteMunin
	default:
		return Palette(strings.Split(name, `,`))
	}
}

// SeriesStylesFor builds line styles for a named palette, or returns the
// defaults when name is empty.
func SeriesStylesFor(name string, strokeWidth float64) []SeriesStyle {
	if palette := GetPalette(name); len(palette) > 0 {
		return MakeSimplePalette(func(style *SeriesStyle) {
			style.StrokeWidth = strokeWidth
		}, palette...)
	}

	return DefaultStyle.Series
}

var PaletteRPlot = Palette{
	`ff0000`, `008000`, `0000cd`, `ff8c00`, `8b008b`, `008b8b`,
}

var PaletteSpectrum14 = Palette{
	`387aa3`, `649eb9`, `9dc2d3`, `a888c2`, `d8aad6`,
	`e7cbe6`, `a1d05d`, `bbe468`, `d2ed82`, `716c49`,
	`92875a`, `b2a470`, `dc8f70`, `ecb796`,
}

var PaletteSpectrum2000 = Palette{
	`57306f`, `514c76`, `646583`, `738394`, `6b9c7d`,
	`84b665`, `a7ca50`, `bfe746`, `e2f528`, `fff726`,
	`ecdd00`, `d4b11d`, `de8800`, `de4800`, `c91515`,
	`9a0000`, `7b0429`, `580839`, `31082b`,
}

var PaletteClassic9 = Palette{
	`2f254a`, `491d37`, `7c2626`, `963b20`, `7d5836`,
	`c5a32f`, `ddcb53`, `a2b73c`, `848f39`, `4a6860`,
	`423d4f`,
}

var PaletteMunin = Palette{
	`00cc00`, `0066b3`, `ff8000`, `ffcc00`, `330099`,
	`990099`, `ccff00`, `ff0000`, `808080`, `008f00`,
	`00487d`, `b35a00`, `b38f00`, `6b006b`, `8fb300`,
	`b30000`, `bebebe`, `80ff80`, `80c9ff`, `ffc080`,
	`ffe680`, `aa80ff`, `ee00cc`, `ff8080`, `666600`,
	`ffbfff`, `00ffcc`, `cc6699`, `999900`,
}
