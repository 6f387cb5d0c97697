package braille

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"radarview/internal/radar"
)

var ink = radar.Style{Stroke: color.NRGBA{A: 255}, StrokeWidth: 1}

func TestSetPixelBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '⠁'},
		{0, 3, '⡀'},
		{1, 0, '⠈'},
		{1, 3, '⢀'},
	}
	for _, tt := range tests {
		c := New(1, 1)
		c.setPixel(tt.x, tt.y, ink.Stroke)
		if got := c.Rune(0, 0); got != tt.want {
			t.Errorf("setPixel(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	t.Parallel()

	c := New(2, 2)
	c.setPixel(-1, 0, ink.Stroke)
	c.setPixel(4, 0, ink.Stroke)
	c.setPixel(0, 8, ink.Stroke)
	for _, row := range c.Plain() {
		if strings.TrimSpace(row) != "" {
			t.Fatalf("canvas not empty: %q", c.Plain())
		}
	}
}

func TestHorizontalLine(t *testing.T) {
	t.Parallel()

	c := New(4, 1)
	c.Line(radar.Point{X: 0, Y: 0}, radar.Point{X: 7, Y: 0}, ink)
	if got := c.Plain()[0]; got != "⠉⠉⠉⠉" {
		t.Errorf("row = %q", got)
	}
}

func TestLineWithoutStrokeDrawsNothing(t *testing.T) {
	t.Parallel()

	c := New(4, 1)
	c.Line(radar.Point{}, radar.Point{X: 7}, radar.Style{})
	if got := c.Plain()[0]; got != "    " {
		t.Errorf("row = %q", got)
	}
}

func TestSolidFillCoversInterior(t *testing.T) {
	t.Parallel()

	c := New(4, 2)
	sq := []radar.Point{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 8}, {X: 0, Y: 8}}
	c.Polygon(sq, radar.Style{Fill: color.NRGBA{A: 255}})
	for y, row := range c.Plain() {
		for x, r := range row {
			if r != '⣿' {
				t.Fatalf("cell (%d,%d) = %q, want full", x, y, r)
			}
		}
	}
}

func TestTranslucentFillIsDithered(t *testing.T) {
	t.Parallel()

	c := New(4, 2)
	sq := []radar.Point{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 7}, {X: 0, Y: 7}}
	c.Polygon(sq, radar.Style{Fill: color.NRGBA{A: 80}})
	if r := c.Rune(1, 0); r == '⣿' || r == ' ' {
		t.Errorf("cell = %q, want a partial pattern", r)
	}
}

func TestTextAnchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		anchor radar.Anchor
		wantX  int
	}{
		{"left", radar.Anchor{H: radar.AlignLeft, V: radar.AlignTop}, 10},
		{"center", radar.Anchor{H: radar.AlignCenter, V: radar.AlignTop}, 9},
		{"right", radar.Anchor{H: radar.AlignRight, V: radar.AlignTop}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(20, 3)
			c.Text("ab", radar.Point{X: 20, Y: 4}, radar.TextStyle{Anchor: tt.anchor})
			row := []rune(c.Plain()[1])
			if string(row[tt.wantX:tt.wantX+2]) != "ab" {
				t.Errorf("row = %q, want ab at %d", string(row), tt.wantX)
			}
		})
	}
}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	c := New(60, 40)
	w, h := c.Dots()
	ch := radar.New(float64(w)/2, float64(h)/2, 60)
	err := ch.Render(c, []float64{2, 4, 6, 8}, []string{"A", "B", "C", "D"}, "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := strings.Join(c.Plain(), "\n")
	for _, want := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if len(c.Lines()) != 40 {
		t.Errorf("lines = %d, want 40", len(c.Lines()))
	}
}

func TestRenderExtremeValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []float64
	}{
		{"huge", []float64{1e9, 2, 3}},
		{"dot range overflow", []float64{1e300, -1e300, 3}},
		{"positive infinity", []float64{math.Inf(1), 2, 3}},
		{"negative infinity", []float64{math.Inf(-1), 2, 3}},
		{"nan", []float64{math.NaN(), 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := New(60, 20)
			ch := radar.New(60, 40, 40)
			done := make(chan error, 1)
			go func() { done <- ch.Render(c, tc.values, []string{"A", "B", "C"}, "") }()
			select {
			case err := <-done:
				if err != nil {
					t.Fatalf("Render: %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("render did not finish")
			}
			if out := strings.Join(c.Plain(), "\n"); !strings.Contains(out, "B") {
				t.Errorf("labels missing:\n%s", out)
			}
		})
	}
}

func TestLineClippedToCanvas(t *testing.T) {
	t.Parallel()

	c := New(4, 1)
	c.Line(radar.Point{X: -1e7, Y: 1}, radar.Point{X: 1e7, Y: 1}, ink)
	for x := 0; x < 4; x++ {
		if c.m[0][x] != 0x12 {
			t.Errorf("cell %d mask = %#x, want 0x12", x, c.m[0][x])
		}
	}
	c = New(4, 1)
	c.Line(radar.Point{X: -10, Y: -10}, radar.Point{X: -1, Y: 50}, ink)
	if got := strings.Join(c.Plain(), ""); strings.TrimSpace(got) != "" {
		t.Errorf("off-canvas line drew %q", got)
	}
}

func TestMeasureText(t *testing.T) {
	t.Parallel()

	w, h := New(1, 1).MeasureText("abc", 12)
	if w != 6 || h != 4 {
		t.Errorf("MeasureText = %v x %v, want 6 x 4", w, h)
	}
}
