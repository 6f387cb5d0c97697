package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radarview/internal/braille"
	"radarview/internal/radar"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	a := m.chartArea()
	contentWidth := max(10, m.width)

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, a.h-2)
	}

	// Header
	head := " radarview ─ terminal radar chart viewer "
	if m.opts.Title != "" {
		head = " radarview ─ " + m.opts.Title + " "
	}
	header := titleStyle.Render(head)
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var chartView string
	if m.showValues {
		// Render values table centered in the chart area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(a.w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(a.h-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		chartView = lipgloss.Place(a.w, a.h, lipgloss.Center, lipgloss.Center, box)
	} else {
		chartView = lipgloss.NewStyle().Width(a.w).Height(a.h).Render(m.renderChart(a.w, a.h))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", chartView)
	} else {
		body = chartView
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// hovered value and cursor at bottom-right
	info := ""
	if m.hovering {
		info = fmt.Sprintf("  cursor=%s  ", m.hover.Cursor)
		if m.hover.Tooltip != nil {
			info = fmt.Sprintf("  %s  cursor=%s  ", m.hover.Tooltip.Text, m.hover.Cursor)
		}
		info = dimStyle.Render(info)
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(info))
	right := lipgloss.Place(spacerW+lipgloss.Width(info), 1, lipgloss.Right, lipgloss.Center, info)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderChart draws the series into a braille canvas. The title lives in
// the header, where it cannot collide with the top label.
func (m Model) renderChart(w, h int) string {
	if len(m.series) == 0 {
		msg := "no data: press Tab to pick a dataset"
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	}
	cv := braille.New(w, h)
	c := m.chart(w, h)
	if err := c.RenderSeries(cv, m.theme, m.series, m.anim.Progress(), ""); err != nil {
		return "render error: " + err.Error()
	}
	if tt := m.hover.Tooltip; tt != nil {
		ts := m.theme.TooltipText
		ts.Anchor = radar.Anchor{H: radar.AlignCenter, V: radar.AlignMiddle}
		cv.Text(" "+tt.Text+" ", tt.At, ts)
	}
	return cv.String()
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"Tab datasets",
		"Enter open",
		"a values",
		"r replay",
		"[/] filter",
		"+/- max",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
