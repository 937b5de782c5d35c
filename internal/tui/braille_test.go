package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubblemap/internal/bubblemap"
)

func TestBrailleMarkCellKeepsOtherColours(t *testing.T) {
	b := newBrailleBuf(4, 2)
	b.drawCircleMicro(1, 1, 0, "#ff0000")
	b.setColored(6, 1, "#00ff00")
	b.markCell(1, 0, '◯', hoverColor)

	assert.Equal(t, "#ff0000", b.col[0][0])
	assert.Equal(t, "#00ff00", b.col[0][3])
	assert.Equal(t, hoverColor, b.col[0][1])
	assert.Equal(t, '◯', b.cell(1, 0))
	assert.Equal(t, rune(0x2800+0x10), b.cell(0, 0))

	b.markCell(-1, 0, '◯', hoverColor)
	b.markCell(4, 0, '◯', hoverColor)
	assert.Equal(t, ' ', b.cell(2, 0))
	require.Len(t, b.toStyledLines(), 2)
}

func TestHoverRingFollowsBubble(t *testing.T) {
	m := send(t, newModel(t), tea.WindowSizeMsg{Width: 80, Height: 24})
	m.hovering = true
	m.hoverIdx = 0

	m.elems = []bubblemap.Element{{X: 20, Y: 20, Radius: 3, Color: "#ff0000"}}
	assert.Contains(t, m.renderMap(m.mapW, m.mapH), "◯")

	// a centre just off the left edge is not pulled into column 0
	m.elems = []bubblemap.Element{{X: -1, Y: 20, Radius: 3, Color: "#ff0000"}}
	assert.False(t, strings.Contains(m.renderMap(m.mapW, m.mapH), "◯"))
}
