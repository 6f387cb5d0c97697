package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"radarview/internal/braille"
	"radarview/internal/logging"
	"radarview/internal/radar"
)

// maxStep is the amount +/- change the scale ceiling by.
const maxStep = 1.0

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.chartArea().h-2)
		}
	case frameMsg:
		if m.anim.Advance() {
			m.rehover()
			return m, frameTick()
		}
		m.ticking = false
		m.rehover()
		return m, nil
	case reloadMsg:
		if m.selPath == "" {
			return m, m.watchCmd()
		}
		logging.Debug().Add(logging.Path(m.selPath)).Msg("dataset changed")
		cmd := m.loadPath(m.selPath)
		return m, tea.Batch(cmd, m.watchCmd())
	case watchErrMsg:
		logging.Warn().Add(logging.Path(m.selPath)).Add(logging.Err(msg.err)).Msg("watch error")
		m.status = "watch error: " + msg.err.Error()
		return m, m.watchCmd()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			m.maxValue += maxStep
			m.status = fmt.Sprintf("max: %g", m.maxValue)
			m.afterScale()
		case "-", "_":
			if m.maxValue > maxStep {
				m.maxValue -= maxStep
				m.status = fmt.Sprintf("max: %g", m.maxValue)
				m.afterScale()
			}
		case "r":
			m.status = "replay"
			cmd := m.restart()
			return m, cmd
		case "]":
			cmd := m.stepFilter(1)
			return m, cmd
		case "[":
			cmd := m.stepFilter(-1)
			return m, cmd
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.chartArea().h-2)
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showValues = !m.showValues
			if m.showValues {
				m.refreshValues()
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					cmd := m.loadPath(it.path)
					return m, cmd
				}
			}
		}
		if m.showValues {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	case tea.MouseMsg:
		a := m.chartArea()
		if a.contains(msg.X, msg.Y) && !m.showValues {
			m.hovering = true
			m.hoverCellX = msg.X - a.x
			m.hoverCellY = msg.Y - a.y
			m.rehover()
		} else {
			m.hovering = false
			m.hover = radar.HoverState{}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// rehover recomputes the tooltip; vertices move while animating and when
// the scale changes.
func (m *Model) rehover() {
	if !m.hovering {
		return
	}
	a := m.chartArea()
	c := m.chart(a.w, a.h)
	m.hover = c.Hover(m.series, m.anim.Progress(), braille.CellOf(m.hoverCellX, m.hoverCellY), m.opts.Unit)
}

func (m *Model) afterScale() {
	logging.Debug().Add(logging.MaxValue(m.maxValue)).Msg("scale changed")
	m.rehover()
	if m.showValues {
		m.refreshValues()
	}
}
