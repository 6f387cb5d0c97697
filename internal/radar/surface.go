package radar

import "image/color"

// Point is a position on a drawing surface.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// HAlign is the horizontal anchor of a text run relative to its position.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "unknown"
}

// VAlign is the vertical anchor of a text run relative to its position.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

func (a VAlign) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "unknown"
}

// Anchor couples both text anchors.
type Anchor struct {
	H HAlign
	V VAlign
}

// Style is passed with every shape primitive. A color with zero alpha
// disables that part, so Style{} draws nothing.
type Style struct {
	Stroke      color.NRGBA
	StrokeWidth float64
	Fill        color.NRGBA
}

func (s Style) HasStroke() bool { return s.StrokeWidth > 0 && s.Stroke.A > 0 }
func (s Style) HasFill() bool   { return s.Fill.A > 0 }

// TextStyle is passed with every text primitive.
type TextStyle struct {
	Color  color.NRGBA
	Size   float64
	Anchor Anchor
}

// Surface is the drawing target of a chart. Implementations must not keep
// style between calls: everything a primitive needs comes with it.
type Surface interface {
	Circle(center Point, radius float64, st Style)
	// Polygon draws a closed shape through pts in order.
	Polygon(pts []Point, st Style)
	Line(a, b Point, st Style)
	Text(s string, at Point, ts TextStyle)
	MeasureText(s string, size float64) (w, h float64)
}

// AnchorOffset returns the translation from the anchor point to the top-left
// corner of a w x h text box.
func AnchorOffset(a Anchor, w, h float64) Point {
	var p Point
	switch a.H {
	case AlignCenter:
		p.X = -w / 2
	case AlignRight:
		p.X = -w
	}
	switch a.V {
	case AlignMiddle:
		p.Y = -h / 2
	case AlignBottom:
		p.Y = -h
	}
	return p
}
