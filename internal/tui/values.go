package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshValues rebuilds the values table from the current series
func (m *Model) refreshValues() {
	if len(m.series) == 0 {
		m.showValues = false
		m.status = "no values for current dataset"
		return
	}
	labelTitle, valueTitle := "label", "value"
	if m.opts.Query.Label != "" {
		labelTitle = m.opts.Query.Label
	}
	if m.opts.Query.Value != "" {
		valueTitle = m.opts.Query.Value
	}
	labelW := len(labelTitle) + 2
	for _, e := range m.series {
		labelW = max(labelW, len(e.Label)+2)
	}
	labelW = min(labelW, 24)
	tcols := []table.Column{
		{Title: "#", Width: 4},
		{Title: labelTitle, Width: labelW},
		{Title: valueTitle, Width: max(10, len(valueTitle)+2)},
		{Title: "% of max", Width: 9},
	}
	trows := make([]table.Row, 0, len(m.series))
	for i, e := range m.series {
		trows = append(trows, table.Row{
			strconv.Itoa(i + 1),
			e.Label,
			strconv.FormatFloat(e.Value, 'f', 2, 64),
			fmt.Sprintf("%.0f%%", 100*e.Value/m.maxValue),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
