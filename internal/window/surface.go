package window

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"radarview/internal/radar"
)

// baseFontSize is the pixel size of basicfont.Face7x13; other sizes scale it.
const baseFontSize = 13.0

var (
	face = text.NewGoXFace(basicfont.Face7x13)

	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 white image used as the source for filled paths.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// surface draws radar shapes onto an ebiten image.
type surface struct {
	dst *ebiten.Image
}

func (s surface) fill(p *vector.Path, c color.NRGBA) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	s.dst.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func width(st radar.Style) float32 {
	if st.StrokeWidth <= 0 {
		return 1
	}
	return float32(st.StrokeWidth)
}

func (s surface) Circle(center radar.Point, r float64, st radar.Style) {
	if st.HasFill() {
		vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(r), st.Fill, true)
	}
	if st.HasStroke() {
		vector.StrokeCircle(s.dst, float32(center.X), float32(center.Y), float32(r), width(st), st.Stroke, true)
	}
}

func (s surface) Polygon(pts []radar.Point, st radar.Style) {
	if len(pts) == 0 {
		return
	}
	if st.HasFill() && len(pts) >= 3 {
		var p vector.Path
		p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, q := range pts[1:] {
			p.LineTo(float32(q.X), float32(q.Y))
		}
		p.Close()
		s.fill(&p, st.Fill)
	}
	if st.HasStroke() {
		for i := range pts {
			s.Line(pts[i], pts[(i+1)%len(pts)], st)
		}
	}
}

func (s surface) Line(a, b radar.Point, st radar.Style) {
	if !st.HasStroke() {
		return
	}
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width(st), st.Stroke, true)
}

func scale(size float64) float64 {
	if size <= 0 {
		return 1
	}
	return size / baseFontSize
}

func (s surface) MeasureText(str string, size float64) (float64, float64) {
	w, h := text.Measure(str, face, 0)
	k := scale(size)
	return w * k, h * k
}

var (
	primary   = map[radar.HAlign]text.Align{radar.AlignLeft: text.AlignStart, radar.AlignCenter: text.AlignCenter, radar.AlignRight: text.AlignEnd}
	secondary = map[radar.VAlign]text.Align{radar.AlignTop: text.AlignStart, radar.AlignMiddle: text.AlignCenter, radar.AlignBottom: text.AlignEnd}
)

func (s surface) Text(str string, at radar.Point, ts radar.TextStyle) {
	k := scale(ts.Size)
	op := &text.DrawOptions{}
	op.PrimaryAlign = primary[ts.Anchor.H]
	op.SecondaryAlign = secondary[ts.Anchor.V]
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(ts.Color)
	text.Draw(s.dst, str, face, op)
}
