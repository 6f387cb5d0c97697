// Package export renders radar charts to PNG or SVG files through the
// go-chart renderers.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"radarview/internal/radar"
)

// ErrUnknownFormat is returned for anything other than png or svg.
var ErrUnknownFormat = errors.New("unknown export format")

type Format int

const (
	PNG Format = iota
	SVG
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case SVG:
		return "svg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "png" or "svg" in any case, with or without a dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// circleSegments approximates circles; the renderers only fill paths.
const circleSegments = 48

var white = drawing.Color{R: 255, G: 255, B: 255, A: 255}

// Surface adapts a go-chart renderer to radar.Surface.
type Surface struct {
	r chart.Renderer
}

// NewSurface wraps r and loads the default go-chart font into it.
func NewSurface(r chart.Renderer) (*Surface, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)
	return &Surface{r: r}, nil
}

func col(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func px(v float64) int { return int(math.Round(v)) }

func (s *Surface) path(pts []radar.Point) {
	s.r.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, p := range pts[1:] {
		s.r.LineTo(px(p.X), px(p.Y))
	}
	s.r.Close()
}

func (s *Surface) paint(pts []radar.Point, st radar.Style) {
	if len(pts) == 0 || (!st.HasFill() && !st.HasStroke()) {
		return
	}
	s.r.SetFillColor(drawing.ColorTransparent)
	s.r.SetStrokeColor(drawing.ColorTransparent)
	if st.HasFill() {
		s.r.SetFillColor(col(st.Fill))
	}
	if st.HasStroke() {
		w := st.StrokeWidth
		if w <= 0 {
			w = 1
		}
		s.r.SetStrokeColor(col(st.Stroke))
		s.r.SetStrokeWidth(w)
	}
	s.path(pts)
	switch {
	case st.HasFill() && st.HasStroke():
		s.r.FillStroke()
	case st.HasFill():
		s.r.Fill()
	default:
		s.r.Stroke()
	}
}

func (s *Surface) Circle(center radar.Point, r float64, st radar.Style) {
	pts := make([]radar.Point, circleSegments)
	for i := range pts {
		pts[i] = radar.Polar(center, r, 2*math.Pi*float64(i)/circleSegments)
	}
	s.paint(pts, st)
}

func (s *Surface) Polygon(pts []radar.Point, st radar.Style) {
	if len(pts) < 3 {
		// a lone vertex still shows its stroke as a line
		st.Fill = color.NRGBA{}
	}
	s.paint(pts, st)
}

func (s *Surface) Line(a, b radar.Point, st radar.Style) {
	if !st.HasStroke() {
		return
	}
	s.r.SetStrokeColor(col(st.Stroke))
	s.r.SetStrokeWidth(math.Max(st.StrokeWidth, 1))
	s.r.MoveTo(px(a.X), px(a.Y))
	s.r.LineTo(px(b.X), px(b.Y))
	s.r.Stroke()
}

func (s *Surface) MeasureText(str string, size float64) (float64, float64) {
	s.r.SetFontSize(size)
	b := s.r.MeasureText(str)
	return float64(b.Width()), float64(b.Height())
}

// Text draws at the baseline, so the top-left corner from the anchor is
// shifted down by the text height.
func (s *Surface) Text(str string, at radar.Point, ts radar.TextStyle) {
	if str == "" {
		return
	}
	w, h := s.MeasureText(str, ts.Size)
	tl := at.Add(radar.AnchorOffset(ts.Anchor, w, h))
	s.r.SetFontColor(col(ts.Color))
	s.r.Text(str, px(tl.X), px(tl.Y+h))
}

// Write renders a width x height image in format f with a white
// background and whatever draw puts on it.
func Write(w io.Writer, f Format, width, height int, draw func(radar.Surface) error) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid export size %dx%d", width, height)
	}
	var provider chart.RendererProvider
	switch f {
	case PNG:
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create %s renderer: %w", f, err)
	}
	s, err := NewSurface(r)
	if err != nil {
		return err
	}
	r.SetFillColor(white)
	r.SetStrokeColor(drawing.ColorTransparent)
	s.path([]radar.Point{{X: 0, Y: 0}, {X: float64(width), Y: 0}, {X: float64(width), Y: float64(height)}, {X: 0, Y: float64(height)}})
	r.Fill()

	if err := draw(s); err != nil {
		return err
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}
	return nil
}

// ChartOptions size and style an exported chart.
type ChartOptions struct {
	Width    int
	Height   int
	Theme    radar.Theme
	MaxValue float64
	// Diameter is the preferred chart diameter; it shrinks to fit.
	Diameter float64
	Title    string
}

// fitDiameter leaves room for labels and the title, never going below 20.
func fitDiameter(width, height int, preferred float64) float64 {
	d := math.Min(float64(width), float64(height)) - 2*(radar.LabelOffset+radar.TitleOffset)
	if preferred > 0 {
		d = math.Min(d, preferred)
	}
	return math.Max(d, 20)
}

// Chart renders series centered in an o.Width x o.Height image.
func Chart(w io.Writer, f Format, series radar.Series, o ChartOptions) error {
	d := fitDiameter(o.Width, o.Height, o.Diameter)
	ch := radar.New(float64(o.Width)/2, float64(o.Height)/2+radar.TitleOffset/2, d)
	if o.MaxValue > 0 {
		ch.MaxValue = o.MaxValue
	}
	return Write(w, f, o.Width, o.Height, func(s radar.Surface) error {
		return ch.RenderSeries(s, o.Theme, series, 1, o.Title)
	})
}
