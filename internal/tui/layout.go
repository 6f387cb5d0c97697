package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"radarview/internal/radar"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// area is the chart region in cells, relative to the terminal.
type area struct {
	x, y, w, h int
}

func (a area) contains(cx, cy int) bool {
	return cx >= a.x && cx < a.x+a.w && cy >= a.y && cy < a.y+a.h
}

// chartArea must match the View layout.
func (m Model) chartArea() area {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	a := area{y: headerHeight, h: contentHeight, w: contentWidth}
	if m.showSidebar {
		a.x = sidebarWidth + 1
		a.w = contentWidth - sidebarWidth - 1
	}
	a.w = max(10, a.w)
	return a
}

// chart places the radar in the middle of a w x h cell canvas. Diameter
// is in dots and leaves room for the widest label on both sides; a
// configured diameter is used when it fits.
func (m Model) chart(w, h int) *radar.Chart {
	dw, dh := float64(w*2), float64(h*4)
	labelW := 0
	for _, e := range m.series {
		labelW = max(labelW, lipgloss.Width(e.Label))
	}
	d := math.Min(dw-2*(radar.LabelOffset+float64(labelW*2)), dh-2*(radar.LabelOffset+4))
	if m.opts.Diameter > 0 {
		d = math.Min(d, m.opts.Diameter)
	}
	d = math.Max(d, 8)
	c := radar.New(dw/2, dh/2, d)
	c.MaxValue = m.maxValue
	return c
}
