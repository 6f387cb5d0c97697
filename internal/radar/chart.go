// Package radar maps a series of labelled values onto a radar chart and
// draws it onto a Surface.
package radar

import (
	"errors"
	"fmt"
)

const (
	// Rings is the number of concentric reference rings.
	Rings = 5
	// LabelOffset is the gap between the outer ring and the label anchors.
	LabelOffset = 25.0
	// TitleOffset is the gap between the top of the outer ring and the title.
	TitleOffset = 30.0
	// MarkerDiameter is the size of the dot drawn on each vertex.
	MarkerDiameter = 5.0
	// DefaultMaxValue is the MaxValue of a chart built with New.
	DefaultMaxValue = 10.0
)

// ErrLengthMismatch is returned when values and labels differ in length.
var ErrLengthMismatch = errors.New("radar: values and labels differ in length")

// Chart is a radar chart placed on a surface. MaxValue is the value that
// reaches the outer ring; larger values are drawn beyond it.
type Chart struct {
	X, Y     float64
	Diameter float64
	MaxValue float64
}

// New returns a chart centered on (x, y).
func New(x, y, diameter float64) *Chart {
	return &Chart{X: x, Y: y, Diameter: diameter, MaxValue: DefaultMaxValue}
}

// Center returns the chart center.
func (c *Chart) Center() Point { return Point{X: c.X, Y: c.Y} }

// Radius maps a value to its distance from the center.
func (c *Chart) Radius(v float64) float64 {
	return LinearMap(v, 0, c.MaxValue, 0, c.Diameter/2)
}

// Vertex is the screen position of value v on spoke i out of n.
func (c *Chart) Vertex(i, n int, v float64) Point {
	return Polar(c.Center(), c.Radius(v), Angle(i, n))
}

// Label is a placed axis label.
type Label struct {
	Text   string
	At     Point
	Anchor Anchor
}

// Layout is the geometry of one render call.
type Layout struct {
	Rings    []float64
	Vertices []Point
	Labels   []Label
	Title    *Label
}

// Layout computes the geometry for values and labels without drawing.
func (c *Chart) Layout(values []float64, labels []string, title string) (Layout, error) {
	if len(values) != len(labels) {
		return Layout{}, fmt.Errorf("%w: %d values, %d labels", ErrLengthMismatch, len(values), len(labels))
	}
	n := len(values)
	if n == 0 {
		return Layout{}, nil
	}
	l := Layout{
		Rings:    make([]float64, Rings),
		Vertices: make([]Point, n),
		Labels:   make([]Label, n),
	}
	outer := c.Diameter / 2
	for k := 1; k <= Rings; k++ {
		l.Rings[k-1] = outer * float64(k) / Rings
	}
	for i := 0; i < n; i++ {
		l.Vertices[i] = c.Vertex(i, n, values[i])
		l.Labels[i] = Label{
			Text:   labels[i],
			At:     Polar(c.Center(), outer+LabelOffset, Angle(i, n)),
			Anchor: AnchorFor(Bearing(i, n)),
		}
	}
	if title != "" {
		l.Title = &Label{
			Text:   title,
			At:     Point{X: c.X, Y: c.Y - outer - TitleOffset},
			Anchor: Anchor{H: AlignCenter, V: AlignMiddle},
		}
	}
	return l, nil
}

// Render draws the chart with DefaultTheme.
func (c *Chart) Render(s Surface, values []float64, labels []string, title string) error {
	return c.RenderTheme(s, DefaultTheme(), values, labels, title)
}

// RenderTheme draws rings, polygon, vertex markers, labels and title in
// that order. Empty input draws nothing.
func (c *Chart) RenderTheme(s Surface, t Theme, values []float64, labels []string, title string) error {
	l, err := c.Layout(values, labels, title)
	if err != nil {
		return err
	}
	if len(l.Vertices) == 0 {
		return nil
	}
	center := c.Center()
	for _, r := range l.Rings {
		s.Circle(center, r, Style{Stroke: t.Ring.Stroke, StrokeWidth: t.Ring.StrokeWidth})
	}
	s.Polygon(l.Vertices, t.Polygon)
	for _, v := range l.Vertices {
		s.Circle(v, MarkerDiameter/2, t.Marker)
	}
	for _, lb := range l.Labels {
		ts := t.Label
		ts.Anchor = lb.Anchor
		s.Text(lb.Text, lb.At, ts)
	}
	if l.Title != nil {
		ts := t.Title
		ts.Anchor = l.Title.Anchor
		s.Text(l.Title.Text, l.Title.At, ts)
	}
	return nil
}

// RenderSeries draws a series scaled by an animation progress.
func (c *Chart) RenderSeries(s Surface, t Theme, series Series, progress float64, title string) error {
	return c.RenderTheme(s, t, series.Scaled(progress), series.Labels(), title)
}
