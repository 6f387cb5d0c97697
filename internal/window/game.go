// Package window shows a radar chart in a desktop window.
package window

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"radarview/internal/dataset"
	"radarview/internal/logging"
	"radarview/internal/radar"
)

// Options describe what the window shows. Zero values fall back to the
// screen time dashboard layout.
type Options struct {
	Width     int
	Height    int
	PageTitle string
	Title     string
	Series    radar.Series
	MaxValue  float64
	Diameter  float64
	Unit      string
	Theme     *radar.Theme

	// Table and Query let [ and ] re-query Series on the Filter column.
	Table  *dataset.Table
	Query  dataset.Query
	Filter string
}

var (
	gradientTop    = color.NRGBA{R: 220, G: 240, B: 255, A: 255}
	gradientBottom = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	panelFill      = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	panelStroke    = color.NRGBA{R: 200, G: 215, B: 230, A: 255}
	listText       = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	helpText       = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
)

const (
	pageTitleSize = 24
	listLineStep  = 20
	maxStep       = 1.0
)

// input is what one frame of Update reads from the keyboard and mouse.
type input struct {
	replay, plus, minus, quit bool
	prev, next                bool
	cursor                    radar.Point
}

type Game struct {
	opts  Options
	theme radar.Theme
	chart *radar.Chart
	anim  *radar.Animation
	hover radar.HoverState

	query  dataset.Query
	filter *dataset.Filter
	status string

	cursor    radar.Cursor
	setCursor func(ebiten.CursorShapeType)
	bg        *ebiten.Image
}

func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Diameter <= 0 {
		opts.Diameter = 250
	}
	if opts.PageTitle == "" {
		opts.PageTitle = "radarview"
	}
	g := &Game{
		opts:      opts,
		theme:     radar.DefaultTheme(),
		anim:      radar.NewAnimation(),
		setCursor: ebiten.SetCursorShape,
	}
	if opts.Theme != nil {
		g.theme = *opts.Theme
	}
	g.query = opts.Query
	if opts.Table != nil && opts.Filter != "" {
		g.initFilter()
	}
	g.chart = radar.New(float64(opts.Width)*0.4, float64(opts.Height)/2+20, opts.Diameter)
	if opts.MaxValue > 0 {
		g.chart.MaxValue = opts.MaxValue
	}
	return g
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	return g.step(input{
		replay: inpututil.IsKeyJustPressed(ebiten.KeyR),
		plus:   inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd),
		minus:  inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract),
		quit:   inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		prev:   inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft),
		next:   inpututil.IsKeyJustPressed(ebiten.KeyBracketRight),
		cursor: radar.Point{X: float64(x), Y: float64(y)},
	})
}

func (g *Game) step(in input) error {
	if in.quit {
		return ebiten.Termination
	}
	if in.replay {
		g.anim.Reset()
	}
	if in.plus {
		g.chart.MaxValue += maxStep
		logging.Debug().Add(logging.MaxValue(g.chart.MaxValue)).Msg("scale changed")
	}
	if in.minus && g.chart.MaxValue > maxStep {
		g.chart.MaxValue -= maxStep
		logging.Debug().Add(logging.MaxValue(g.chart.MaxValue)).Msg("scale changed")
	}
	switch {
	case in.next:
		g.stepFilter(1)
	case in.prev:
		g.stepFilter(-1)
	}
	g.anim.Advance()
	g.hover = g.chart.Hover(g.opts.Series, g.anim.Progress(), in.cursor, g.opts.Unit)
	if g.hover.Cursor != g.cursor {
		g.cursor = g.hover.Cursor
		if g.cursor == radar.CursorPointer {
			g.setCursor(ebiten.CursorShapePointer)
		} else {
			g.setCursor(ebiten.CursorShapeDefault)
		}
	}
	return nil
}

// initFilter selects the configured where value, or the first value of
// the column when the table lacks it.
func (g *Game) initFilter() {
	cur := ""
	for k, v := range g.query.Where {
		if strings.EqualFold(strings.TrimSpace(k), g.opts.Filter) {
			cur = v
		}
	}
	f, err := dataset.NewFilter(g.opts.Table, g.opts.Filter, cur)
	if err != nil {
		logging.Warn().Add(logging.Err(err)).Msg("filter disabled")
		return
	}
	g.filter = f
	if !strings.EqualFold(cur, f.Value()) {
		g.stepFilter(0)
	} else {
		g.query = f.Apply(g.query)
		g.status = f.Column + "=" + f.Value()
	}
}

// stepFilter moves the filter and replaces the series with the new
// aggregate. A value with no rows leaves the chart empty.
func (g *Game) stepFilter(delta int) {
	if g.filter == nil {
		return
	}
	v := g.filter.Step(delta)
	g.query = g.filter.Apply(g.query)
	logging.Debug().Add(logging.Filter(g.filter.Column, v)).Msg("filter changed")
	s, err := dataset.Aggregate(g.opts.Table, g.query)
	g.status = g.filter.Column + "=" + v
	if err != nil {
		g.status += ": " + err.Error()
		s = nil
	}
	g.opts.Series = s
	g.anim.Reset()
}

// gradientAt blends the background from light blue at the top to white.
func gradientAt(y, h int) color.NRGBA {
	if h <= 1 {
		return gradientTop
	}
	t := float64(y) / float64(h-1)
	lerp := func(a, b uint8) uint8 { return uint8(radar.LinearMap(t, 0, 1, float64(a), float64(b)) + 0.5) }
	return color.NRGBA{
		R: lerp(gradientTop.R, gradientBottom.R),
		G: lerp(gradientTop.G, gradientBottom.G),
		B: lerp(gradientTop.B, gradientBottom.B),
		A: 255,
	}
}

func (g *Game) background() *ebiten.Image {
	w, h := g.opts.Width, g.opts.Height
	if g.bg != nil {
		return g.bg
	}
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		c := gradientAt(y, h)
		for x := 0; x < w; x++ {
			i := 4 * (y*w + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	g.bg = ebiten.NewImage(w, h)
	g.bg.WritePixels(pix)
	return g.bg
}

// panelRect bounds the chart, its labels and title.
func (g *Game) panelRect() (x, y, w, h float64) {
	r := g.chart.Diameter/2 + radar.LabelOffset + 40
	top := g.chart.Diameter/2 + radar.TitleOffset + 20
	return g.chart.X - r, g.chart.Y - top, 2 * r, top + r - 10
}

// valueLines lists each entry for the side panel.
func (g *Game) valueLines() []string {
	out := make([]string, len(g.opts.Series))
	for i, e := range g.opts.Series {
		out[i] = radar.FormatValue(e.Label, e.Value, g.opts.Unit)
	}
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.background(), nil)
	s := surface{dst: screen}

	s.Text(g.opts.PageTitle, radar.Point{X: float64(g.opts.Width) / 2, Y: 30}, radar.TextStyle{
		Color: g.theme.Title.Color, Size: pageTitleSize, Anchor: radar.Anchor{H: radar.AlignCenter, V: radar.AlignMiddle},
	})

	px, py, pw, ph := g.panelRect()
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), panelFill, true)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 1, panelStroke, true)

	if err := g.chart.RenderSeries(s, g.theme, g.opts.Series, g.anim.Progress(), g.opts.Title); err != nil {
		s.Text("render error: "+err.Error(), radar.Point{X: px + 10, Y: py + 10}, radar.TextStyle{Color: listText, Size: 12})
		return
	}

	lx := px + pw + 30
	ly := py + 20
	ts := radar.TextStyle{Color: listText, Size: 13}
	for i, line := range g.valueLines() {
		s.Text(line, radar.Point{X: lx, Y: ly + float64(i*listLineStep)}, ts)
	}
	help := fmt.Sprintf("max %g   R replay   +/- scale   Esc quit", g.chart.MaxValue)
	if g.filter != nil {
		help = g.status + "   [/] filter   " + help
	}
	s.Text(help, radar.Point{X: lx, Y: float64(g.opts.Height) - 30}, radar.TextStyle{Color: helpText, Size: 12})

	if g.hover.Tooltip != nil {
		g.hover.Tooltip.Draw(s, g.theme)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it closes.
func Run(opts Options) error {
	g := New(opts)
	ebiten.SetWindowTitle(g.opts.PageTitle)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetTPS(60)
	logging.Info().Add(logging.Entries(len(g.opts.Series))).Msg("window opened")
	return ebiten.RunGame(g)
}
