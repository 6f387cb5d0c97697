// Package braille draws radar charts into terminal cells using braille
// glyphs, 2x4 dots per cell.
package braille

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radarview/internal/radar"
)

// Canvas is a radar.Surface addressed in dots: x in [0, 2*w), y in [0, 4*h).
type Canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]color.NRGBA
	text [][]rune
	tfg  [][]color.NRGBA
}

func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{w: w, h: h}
	c.m = make([][]uint8, h)
	c.fg = make([][]color.NRGBA, h)
	c.text = make([][]rune, h)
	c.tfg = make([][]color.NRGBA, h)
	for i := 0; i < h; i++ {
		c.m[i] = make([]uint8, w)
		c.fg[i] = make([]color.NRGBA, w)
		c.text[i] = make([]rune, w)
		c.tfg[i] = make([]color.NRGBA, w)
	}
	return c
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.w * 2, c.h * 4 }

// CellOf maps a cell to the dot at its center, the inverse used for mouse input.
func CellOf(cx, cy int) radar.Point {
	return radar.Point{X: float64(cx*2) + 0.5, Y: float64(cy*4) + 1.5}
}

// setPixel sets a dot at micro coords (2x4 per cell)
func (c *Canvas) setPixel(mx, my int, col color.NRGBA) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.m[cy][cx] |= bit
	c.fg[cy][cx] = col
}

// line draws on the dot grid using Bresenham, after clipping to the canvas.
func (c *Canvas) line(x0, y0, x1, y1 int, col color.NRGBA) {
	x0, y0, x1, y1, ok := c.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(x, y, xmax, ymax float64) int {
	code := 0
	switch {
	case x < 0:
		code |= outLeft
	case x > xmax:
		code |= outRight
	}
	switch {
	case y < 0:
		code |= outTop
	case y > ymax:
		code |= outBottom
	}
	return code
}

// clip cuts a segment to the dot rectangle (Cohen-Sutherland). ok is
// false when nothing of it is visible.
func (c *Canvas) clip(ix0, iy0, ix1, iy1 int) (int, int, int, int, bool) {
	xmax, ymax := float64(2*c.w-1), float64(4*c.h-1)
	x0, y0, x1, y1 := float64(ix0), float64(iy0), float64(ix1), float64(iy1)
	c0, c1 := outcode(x0, y0, xmax, ymax), outcode(x1, y1, xmax, ymax)
	for c0|c1 != 0 {
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}
		out := c0
		if out == 0 {
			out = c1
		}
		var x, y float64
		switch {
		case out&outBottom != 0:
			x, y = x0+(x1-x0)*(ymax-y0)/(y1-y0), ymax
		case out&outTop != 0:
			x, y = x0+(x1-x0)*(0-y0)/(y1-y0), 0
		case out&outRight != 0:
			x, y = xmax, y0+(y1-y0)*(xmax-x0)/(x1-x0)
		default:
			x, y = 0, y0+(y1-y0)*(0-x0)/(x1-x0)
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, xmax, ymax)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, xmax, ymax)
		}
	}
	r := func(v float64) int { return int(math.Round(v)) }
	return r(x0), r(y0), r(x1), r(y1), true
}

// fill uses the even-odd rule per dot row. Translucent fills only set
// every other dot so outlines drawn later stay readable.
func (c *Canvas) fill(pts [][2]int, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	dither := col.A < 160
	hMic := c.h * 4
	var xs []int
	for y := 0; y < hMic; y++ {
		xs = xs[:0]
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a[1] == b[1] {
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (y >= y0 && y < y1) || (y >= y1 && y < y0) {
				t := float64(y-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= min(xs[i+1], 2*c.w-1); x++ {
				if dither && (x+y)%2 != 0 {
					continue
				}
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxDot bounds coordinates so far off-canvas geometry stays in int range.
const maxDot = 1 << 20

// dot rounds p to the dot grid. ok is false for NaN or infinite coordinates.
func dot(p radar.Point) ([2]int, bool) {
	if !finite(p.X) || !finite(p.Y) {
		return [2]int{}, false
	}
	clamp := func(v float64) int { return int(math.Round(math.Max(-maxDot, math.Min(maxDot, v)))) }
	return [2]int{clamp(p.X), clamp(p.Y)}, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func circlePoints(center radar.Point, r float64) [][2]int {
	n := int(2 * math.Pi * min(r, maxDot) / 2)
	n = max(12, min(n, 720))
	out := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		if p, ok := dot(radar.Polar(center, r, a)); ok {
			out = append(out, p)
		}
	}
	return out
}

func (c *Canvas) outline(pts [][2]int, col color.NRGBA) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		c.setPixel(pts[0][0], pts[0][1], col)
		return
	}
	for i := 0; i < len(pts); i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		c.line(a[0], a[1], b[0], b[1], col)
	}
}

func (c *Canvas) Circle(center radar.Point, r float64, st radar.Style) {
	if !finite(r) {
		return
	}
	if r < 1 {
		if p, ok := dot(center); ok && (st.HasFill() || st.HasStroke()) {
			c.setPixel(p[0], p[1], pick(st))
		}
		return
	}
	pts := circlePoints(center, r)
	if st.HasFill() {
		c.fill(pts, st.Fill)
	}
	if st.HasStroke() {
		c.outline(pts, st.Stroke)
	}
}

func (c *Canvas) Polygon(pts []radar.Point, st radar.Style) {
	if len(pts) == 0 {
		return
	}
	ip := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if d, ok := dot(p); ok {
			ip = append(ip, d)
		}
	}
	if len(ip) == 0 {
		return
	}
	if st.HasFill() {
		c.fill(ip, st.Fill)
	}
	if st.HasStroke() {
		c.outline(ip, st.Stroke)
	}
}

func (c *Canvas) Line(a, b radar.Point, st radar.Style) {
	if !st.HasStroke() {
		return
	}
	p, ok1 := dot(a)
	q, ok2 := dot(b)
	if !ok1 || !ok2 {
		return
	}
	c.line(p[0], p[1], q[0], q[1], st.Stroke)
}

// MeasureText ignores size: the terminal has one font size. One cell is
// two dots wide and four high.
func (c *Canvas) MeasureText(s string, size float64) (float64, float64) {
	return float64(lipgloss.Width(s) * 2), 4
}

// Text writes runes into cells starting at the cell holding the anchored
// top-left corner. Text hides any dots under it.
func (c *Canvas) Text(s string, at radar.Point, ts radar.TextStyle) {
	w, h := c.MeasureText(s, ts.Size)
	tl := at.Add(radar.AnchorOffset(ts.Anchor, w, h))
	if !finite(tl.X) || !finite(tl.Y) {
		return
	}
	cx := int(math.Round(tl.X / 2))
	cy := int(math.Round(tl.Y / 4))
	if cy < 0 || cy >= c.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= c.w {
			continue
		}
		c.text[cy][x] = r
		c.tfg[cy][x] = ts.Color
	}
}

// Rune returns what the cell shows.
func (c *Canvas) Rune(cx, cy int) rune {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return ' '
	}
	if r := c.text[cy][cx]; r != 0 {
		return r
	}
	if mask := c.m[cy][cx]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

// Plain returns the rows without color.
func (c *Canvas) Plain() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			row[x] = c.Rune(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// Lines returns the rows with runs of equal color rendered through lipgloss.
// A zero color leaves the terminal default.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		var run []rune
		var runCol color.NRGBA
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol.A == 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(hex(runCol)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			r := c.Rune(x, y)
			col := color.NRGBA{}
			switch {
			case c.text[y][x] != 0:
				col = c.tfg[y][x]
			case c.m[y][x] != 0:
				col = c.fg[y][x]
			}
			if r == ' ' {
				col = color.NRGBA{}
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// String joins the colored rows.
func (c *Canvas) String() string { return strings.Join(c.Lines(), "\n") }

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func pick(st radar.Style) color.NRGBA {
	if st.HasStroke() {
		return st.Stroke
	}
	return st.Fill
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
