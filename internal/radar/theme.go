package radar

import "image/color"

// Theme holds the styles used by RenderTheme and Tooltip.Draw.
type Theme struct {
	Ring    Style
	Polygon Style
	Marker  Style
	Label   TextStyle
	Title   TextStyle

	TooltipBox  Style
	TooltipText TextStyle
}

var (
	ringGray   = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	seriesBlue = color.NRGBA{R: 0, G: 102, B: 153, A: 200}
	black      = color.NRGBA{A: 255}
)

// DefaultTheme is a light theme: gray rings and a translucent blue series.
func DefaultTheme() Theme {
	return Theme{
		Ring:    Style{Stroke: ringGray, StrokeWidth: 1},
		Polygon: Style{Stroke: seriesBlue, StrokeWidth: 2, Fill: color.NRGBA{R: 0, G: 102, B: 153, A: 80}},
		Marker:  Style{Stroke: seriesBlue, StrokeWidth: 2, Fill: color.NRGBA{R: 0, G: 102, B: 153, A: 80}},
		Label:   TextStyle{Color: black, Size: 12},
		Title:   TextStyle{Color: black, Size: 16, Anchor: Anchor{H: AlignCenter, V: AlignMiddle}},

		TooltipBox:  Style{Fill: color.NRGBA{R: 255, G: 255, B: 255, A: 220}},
		TooltipText: TextStyle{Color: black, Size: 12, Anchor: Anchor{H: AlignCenter, V: AlignMiddle}},
	}
}

// WithAccent returns a copy of t with the series drawn in c. The polygon
// keeps its translucent fill.
func (t Theme) WithAccent(c color.NRGBA) Theme {
	stroke := c
	stroke.A = t.Polygon.Stroke.A
	fill := c
	fill.A = t.Polygon.Fill.A
	t.Polygon.Stroke, t.Polygon.Fill = stroke, fill
	t.Marker.Stroke, t.Marker.Fill = stroke, fill
	return t
}
