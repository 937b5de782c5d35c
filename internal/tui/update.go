package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"bubblemap/internal/bubblemap"
	"bubblemap/internal/geom"
	"bubblemap/internal/scale"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		if m.showSidebar {
			_, _, _, h := m.mapArea()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case growMsg:
		if m.growing {
			m.growing = false
			m.refreshElements()
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				g, err := geom.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.setOutline(g, "")
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showOutline = !m.showOutline
			m.status = fmt.Sprintf("outline: %v", m.showOutline)
		case "2":
			m.showBubbles = !m.showBubbles
			m.status = fmt.Sprintf("bubbles: %v", m.showBubbles)
		case "l":
			all := m.showOutline && m.showBubbles
			m.showOutline = !all
			m.showBubbles = !all
			m.status = fmt.Sprintf("layers: outline=%v bubbles=%v", m.showOutline, m.showBubbles)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.relayout()
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.relayout()
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.panX, m.panY = 0, 0
			m.relayout()
			m.status = "view reset"
		case "n":
			m.cycleProjection(1)
		case "N":
			m.cycleProjection(-1)
		case "r":
			if len(m.parsed) > 0 {
				m.growing = true
				m.refreshElements()
				return m, grow()
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			m.relayout()
			if m.showSidebar {
				m.refreshDir()
				_, _, _, h := m.mapArea()
				m.l.SetSize(sidebarWidth-2, h-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.loadPath(it.path)
				}
			}
		case "up":
			m.panY -= 1
			m.relayout()
		case "down":
			m.panY += 1
			m.relayout()
		case "left":
			m.panX -= 2
			m.relayout()
		case "right":
			m.panX += 2
			m.relayout()
		}
	case tea.MouseMsg:
		originX, originY, mapWidth, mapHeight := m.mapArea()
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.zoom < 64 {
				m.zoom *= 1.1
				m.relayout()
			}
		case tea.MouseButtonWheelDown:
			if m.zoom > 0.05 {
				m.zoom /= 1.1
				m.relayout()
			}
		}
		cx, cy := msg.X, msg.Y
		if cx >= originX && cx < originX+mapWidth && cy >= originY && cy < originY+mapHeight {
			m.hovering = true
			m.hoverCellX = cx - originX
			m.hoverCellY = cy - originY
			// centre of the cell in braille dots
			dx := float64(m.hoverCellX*2) + 1
			dy := float64(m.hoverCellY*4) + 2
			m.hoverLon, m.hoverLat, m.hoverHasGeo = m.proj.Invert(dx, dy)
			m.hoverIdx = -1
			if i := bubblemap.Nearest(dx, dy, m.elems); i >= 0 {
				e := m.elems[i]
				if math.Hypot(e.X-dx, e.Y-dy) <= e.Radius+2 {
					m.hoverIdx = i
				}
			}
		} else {
			m.hovering = false
			m.hoverHasGeo = false
			m.hoverIdx = -1
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

func (m *Model) cycleProjection(step int) {
	if len(m.projNames) == 0 {
		return
	}
	m.projIdx = (m.projIdx + step + len(m.projNames)) % len(m.projNames)
	name := m.projNames[m.projIdx]
	m.proj.SetProjection(scale.Name(name))
	m.status = "projection: " + name
	if m.fitted != nil && !m.fit(m.fitted) {
		// fit left the error in the status line
		m.status += " (" + name + ")"
	}
	m.refreshElements()
}

// inspect opens a popup for the hovered bubble, or the one nearest the
// map centre.
func (m *Model) inspect() {
	idx := m.hoverIdx
	if idx < 0 {
		idx = bubblemap.Nearest(float64(m.mapW), float64(m.mapH*2), m.elems)
	}
	if idx < 0 || idx >= len(m.records) {
		m.inspectPopup = "no bubble nearby"
		m.status = m.inspectPopup
		return
	}
	e := m.elems[idx]
	r := m.records[idx]
	label := r.Label
	if label == "" {
		label = fmt.Sprintf("record %d", idx+1)
	}
	meta := []string{
		titleStyle.Render(label),
		fmt.Sprintf("lon=%.5f lat=%.5f", r.Longitude, r.Latitude),
		fmt.Sprintf("value: %s", formatValue(r.Value)),
		fmt.Sprintf("radius: %.1f", e.Radius),
		fmt.Sprintf("projection: %s", m.projNames[m.projIdx]),
	}
	keys := make([]string, 0, len(r.Properties))
	for k := range r.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		meta = append(meta, fmt.Sprintf("%s: %s", k, r.Properties[k]))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect: " + label
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%g", v)
}
