package tui

import (
	"math"
	"strings"

	"bubblemap/internal/geoproj"
)

// renderMap draws the outline and bubbles into a w x h cell braille
// canvas using the projection's current layout.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	// segments longer than this are wraps across the map edge, not edges
	maxJump := int(float64(max(w*2, h*4)) / 2 * max(1, m.zoom))

	if m.showOutline {
		for _, line := range m.shapes.Lines {
			var prev *[2]int
			for _, p := range geoproj.Densify(line) {
				x, y, ok := m.proj.Project(p[0], p[1])
				if !ok {
					prev = nil
					continue
				}
				cur := [2]int{int(math.Floor(x)), int(math.Floor(y))}
				if prev != nil && abs(cur[0]-prev[0]) < maxJump && abs(cur[1]-prev[1]) < maxJump {
					br.drawLineMicro(prev[0], prev[1], cur[0], cur[1])
				} else {
					br.setPixel(cur[0], cur[1])
				}
				prev = &cur
			}
		}
		for _, p := range m.shapes.Points {
			if x, y, ok := m.proj.Project(p[0], p[1]); ok {
				br.setPixel(int(math.Floor(x)), int(math.Floor(y)))
			}
		}
	}

	if m.showBubbles {
		for _, e := range m.elems {
			if e.Skip {
				continue
			}
			br.drawCircleMicro(int(math.Floor(e.X)), int(math.Floor(e.Y)), int(math.Round(e.Radius)), e.Color)
		}
	}

	// Hover highlight: an orange ring on the hovered bubble's centre cell
	if m.hovering && m.hoverIdx >= 0 && m.hoverIdx < len(m.elems) {
		e := m.elems[m.hoverIdx]
		br.markCell(int(math.Floor(e.X/2)), int(math.Floor(e.Y/4)), '◯', hoverColor)
	}
	return strings.Join(br.toStyledLines(), "\n")
}
