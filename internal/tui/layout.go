package tui

import "bubblemap/internal/scale"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapArea returns the map origin and size in cells; View lays out the
// same way.
func (m Model) mapArea() (originX, originY, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = max(10, contentWidth-sw-1)
	originX = sw
	if m.showSidebar {
		originX++
	}
	return originX, headerHeight, max(8, w), max(4, contentHeight)
}

// viewRect is the drawable rectangle in braille dots (2x4 per cell).
// Zoom grows it about the centre and pan shifts it, so both reach the
// projection as an ordinary layout change.
func (m Model) viewRect() scale.DrawableRect {
	w := float64(m.mapW * 2)
	h := float64(m.mapH * 4)
	cx := w/2 + float64(m.panX*2)
	cy := h/2 + float64(m.panY*4)
	hw := w * m.zoom / 2
	hh := h * m.zoom / 2
	return scale.DrawableRect{Left: cx - hw, Top: cy - hh, Right: cx + hw, Bottom: cy + hh}
}

func (m *Model) relayout() {
	_, _, m.mapW, m.mapH = m.mapArea()
	if m.width == 0 || m.height == 0 {
		return
	}
	m.proj.OnLayout(m.viewRect())
	m.refreshElements()
}
