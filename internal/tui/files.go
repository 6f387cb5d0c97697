package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"radarview/internal/dataset"
	"radarview/internal/logging"
	"radarview/internal/radar"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

type (
	frameMsg    time.Time
	reloadMsg   struct{}
	watchErrMsg struct{ err error }
)

const frameRate = time.Second / 60

func frameTick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// watchCmd waits for the next change of the current dataset or a watcher error.
func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changed, errs := m.watcher.Changed(), m.watcher.Errors()
	return func() tea.Msg {
		select {
		case _, ok := <-changed:
			if !ok {
				return nil
			}
			return reloadMsg{}
		case err := <-errs:
			return watchErrMsg{err: err}
		}
	}
}

// restart replays the animation, starting the frame loop if it is idle.
func (m *Model) restart() tea.Cmd {
	m.anim.Reset()
	if m.ticking || len(m.series) == 0 {
		return nil
	}
	m.ticking = true
	return frameTick()
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !dataset.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a dataset, aggregates it and starts watching it.
func (m *Model) loadPath(p string) tea.Cmd {
	start := time.Now()
	t, err := dataset.Load(context.Background(), p, m.opts.Load)
	if err != nil {
		m.status = "load error: " + err.Error()
		logging.Warn().Add(logging.Path(p)).Add(logging.Err(err)).Msg("load failed")
		return nil
	}
	m.table = t
	m.resetFilter(t)
	s, err := dataset.Aggregate(t, m.query)
	if err != nil {
		m.status = "query error: " + err.Error()
		logging.Warn().Add(logging.Path(p)).Add(logging.Err(err)).Msg("query failed")
		return nil
	}
	m.series = s
	m.hover, m.hovering = radar.HoverState{}, false
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  rows=%d entries=%d", len(t.Rows), len(s))
	if m.filter != nil {
		m.status += "  " + m.filter.Column + "=" + m.filter.Value()
	}
	logging.Info().Add(logging.Path(p)).Add(logging.Rows(len(t.Rows))).Add(logging.Entries(len(s))).
		Add(logging.Duration(time.Since(start))).Msg("dataset loaded")

	var cmds []tea.Cmd
	if abs, _ := filepath.Abs(p); m.watcher == nil || m.watcher.Path() != abs {
		if m.watcher != nil {
			_ = m.watcher.Close()
			m.watcher = nil
		}
		w, err := dataset.Watch(p)
		if err != nil {
			logging.Warn().Add(logging.Path(p)).Add(logging.Err(err)).Msg("watch failed")
		} else {
			m.watcher = w
			cmds = append(cmds, m.watchCmd())
		}
	}
	m.selPath = p
	if m.showValues {
		m.refreshValues()
	}
	cmds = append(cmds, m.restart())
	return tea.Batch(cmds...)
}

// resetFilter rebuilds the filter for a freshly loaded table, keeping the
// selected value when the table still has it.
func (m *Model) resetFilter(t *dataset.Table) {
	m.filter = nil
	if m.opts.Filter == "" {
		return
	}
	cur := ""
	for k, v := range m.query.Where {
		if strings.EqualFold(strings.TrimSpace(k), m.opts.Filter) {
			cur = v
		}
	}
	f, err := dataset.NewFilter(t, m.opts.Filter, cur)
	if err != nil {
		logging.Warn().Add(logging.Err(err)).Msg("filter disabled")
		return
	}
	m.filter = f
	m.query = f.Apply(m.query)
}

// stepFilter selects the next or previous filter value and re-queries the
// loaded table.
func (m *Model) stepFilter(delta int) tea.Cmd {
	if m.filter == nil || m.table == nil {
		m.status = "no filter column"
		return nil
	}
	v := m.filter.Step(delta)
	m.query = m.filter.Apply(m.query)
	m.hover, m.hovering = radar.HoverState{}, false
	logging.Debug().Add(logging.Filter(m.filter.Column, v)).Msg("filter changed")
	s, err := dataset.Aggregate(m.table, m.query)
	if err != nil {
		m.series = nil
		m.status = fmt.Sprintf("%s=%s: %v", m.filter.Column, v, err)
		return nil
	}
	m.series = s
	m.status = fmt.Sprintf("%s=%s  entries=%d", m.filter.Column, v, len(s))
	if m.showValues {
		m.refreshValues()
	}
	return m.restart()
}
