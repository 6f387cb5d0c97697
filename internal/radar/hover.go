package radar

import (
	"fmt"
	"math"
)

// HitRadius is the pointer distance under which a vertex counts as hovered.
const HitRadius = 10.0

const (
	tooltipHeight  = 22.0
	tooltipPadding = 12.0
	tooltipRise    = 14.0
	tooltipRadius  = 5.0
	cornerSteps    = 4
)

// Cursor is the pointer affordance a caller should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// HitTest returns the first vertex, in data order, closer than HitRadius to p.
func (c *Chart) HitTest(values []float64, p Point) (int, bool) {
	n := len(values)
	for i, v := range values {
		if dist(c.Vertex(i, n, v), p) < HitRadius {
			return i, true
		}
	}
	return -1, false
}

// Tooltip describes the hover box of one vertex.
type Tooltip struct {
	Index  int
	Label  string
	Value  float64
	Text   string
	Vertex Point
	// At is the box center.
	At Point
}

// HoverState is the outcome of a hover test for one frame.
type HoverState struct {
	Tooltip *Tooltip
	Cursor  Cursor
}

// FormatValue renders a value the way tooltips and value lists show it.
func FormatValue(label string, v float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%s: %.2f", label, v)
	}
	return fmt.Sprintf("%s: %.2f %s", label, v, unit)
}

// Hover tests the pointer against the series as drawn at progress. The
// tooltip carries the unscaled value.
func (c *Chart) Hover(series Series, progress float64, pointer Point, unit string) HoverState {
	drawn := series.Scaled(progress)
	i, ok := c.HitTest(drawn, pointer)
	if !ok {
		return HoverState{Cursor: CursorDefault}
	}
	e := series[i]
	v := c.Vertex(i, len(drawn), drawn[i])
	return HoverState{
		Cursor: CursorPointer,
		Tooltip: &Tooltip{
			Index:  i,
			Label:  e.Label,
			Value:  e.Value,
			Text:   FormatValue(e.Label, e.Value, unit),
			Vertex: v,
			At:     Point{X: v.X, Y: v.Y - tooltipRise},
		},
	}
}

// Draw paints the tooltip box and its text.
func (tt *Tooltip) Draw(s Surface, t Theme) {
	w, _ := s.MeasureText(tt.Text, t.TooltipText.Size)
	w += tooltipPadding
	x0, x1 := tt.At.X-w/2, tt.At.X+w/2
	y0, y1 := tt.At.Y-tooltipHeight/2, tt.At.Y+tooltipHeight/2
	s.Polygon(roundedRect(x0, y0, x1, y1, tooltipRadius), t.TooltipBox)
	ts := t.TooltipText
	ts.Anchor = Anchor{H: AlignCenter, V: AlignMiddle}
	s.Text(tt.Text, tt.At, ts)
}

// roundedRect outlines a rectangle clockwise from its top edge, each
// corner approximated by cornerSteps segments. r is capped at half the
// shorter side.
func roundedRect(x0, y0, x1, y1, r float64) []Point {
	r = math.Max(0, math.Min(r, math.Min(x1-x0, y1-y0)/2))
	corners := []struct {
		c     Point
		start float64
	}{
		{Point{X: x1 - r, Y: y0 + r}, -math.Pi / 2},
		{Point{X: x1 - r, Y: y1 - r}, 0},
		{Point{X: x0 + r, Y: y1 - r}, math.Pi / 2},
		{Point{X: x0 + r, Y: y0 + r}, math.Pi},
	}
	pts := make([]Point, 0, 4*(cornerSteps+1))
	for _, k := range corners {
		for i := 0; i <= cornerSteps; i++ {
			pts = append(pts, Polar(k.c, r, k.start+math.Pi/2*float64(i)/cornerSteps))
		}
	}
	return pts
}
