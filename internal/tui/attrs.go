package tui

import (
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

const maxPropColumns = 6

// refreshAttrs rebuilds the table from the loaded records
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	// If there are no rows, disable attributes view to avoid rendering panics
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no records loaded"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	maxColW := 24
	for _, c := range cols {
		w := min(maxColW, max(len(c)+2, 6))
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists one row per record: position, value, projected
// state and the first few property columns.
func (m *Model) buildAttributes() ([]string, [][]string) {
	seen := map[string]bool{}
	var props []string
	for _, r := range m.records {
		for k := range r.Properties {
			if !seen[k] {
				seen[k] = true
				props = append(props, k)
			}
		}
	}
	sort.Strings(props)
	if len(props) > maxPropColumns {
		props = props[:maxPropColumns]
	}

	cols := append([]string{"#", "label", "lon", "lat", "value", "radius", "shown"}, props...)
	rows := make([][]string, 0, len(m.records))
	for i, r := range m.records {
		shown, radius := "no", ""
		if i < len(m.elems) {
			if !m.elems[i].Skip {
				shown = "yes"
			}
			radius = fmt.Sprintf("%.1f", m.ctrl.IndexToRadius(i))
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			r.Label,
			fmt.Sprintf("%.4f", r.Longitude),
			fmt.Sprintf("%.4f", r.Latitude),
			formatValue(r.Value),
			radius,
			shown,
		}
		for _, k := range props {
			row = append(row, r.Properties[k])
		}
		rows = append(rows, row)
	}
	return cols, rows
}
