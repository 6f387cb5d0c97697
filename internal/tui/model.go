package tui

import (
	"context"
	"image/color"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"radarview/internal/dataset"
	"radarview/internal/radar"
)

// Options configure the viewer. Zero values fall back to defaults.
type Options struct {
	Path     string
	Dir      string
	Query    dataset.Query
	Load     dataset.Options
	Title    string
	Unit     string
	MaxValue float64
	Theme    *radar.Theme

	// Filter is the column [ and ] cycle through; empty disables it.
	Filter string
	// Diameter is the preferred chart diameter in dots, shrunk to fit.
	Diameter float64
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	opts     Options
	table    *dataset.Table
	query    dataset.Query
	filter   *dataset.Filter
	series   radar.Series
	maxValue float64
	theme    radar.Theme
	watcher  *dataset.Watcher

	anim    radar.Animation
	ticking bool

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hover      radar.HoverState

	// values table
	showValues bool
	tbl        table.Model
}

var black = color.NRGBA{A: 255}

// terminalTheme swaps black text, unreadable on dark terminals, for the
// app foreground.
func terminalTheme(t radar.Theme) radar.Theme {
	light := color.NRGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 255}
	for _, ts := range []*radar.TextStyle{&t.Label, &t.Title, &t.TooltipText} {
		if ts.Color == black {
			ts.Color = light
		}
	}
	return t
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "radarview ready",
		opts:        opts,
		query:       opts.Query,
		anim:        *radar.NewAnimation(),
	}
	m.maxValue = opts.MaxValue
	if m.maxValue <= 0 {
		m.maxValue = radar.DefaultMaxValue
	}
	if opts.Theme != nil {
		m.theme = terminalTheme(*opts.Theme)
	} else {
		m.theme = terminalTheme(radar.DefaultTheme())
	}
	m.cwd = opts.Dir
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if opts.Path != "" {
		m.loadPath(opts.Path)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	var tick tea.Cmd
	if m.ticking {
		tick = frameTick()
	}
	return tea.Batch(tick, m.watchCmd())
}

// Series returns the series currently shown.
func (m Model) Series() radar.Series { return m.series }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Close stops the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// Run starts the viewer full screen with mouse motion reporting.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		_ = fm.Close()
	} else {
		_ = m.Close()
	}
	return err
}
