package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h int        // in cells
	m    [][]uint8  // per-cell 8-bit mask
	col  [][]string // per-cell foreground, "" for the default
	over [][]rune   // per-cell glyph drawn instead of the dots, 0 for none
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	over := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
		over[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col, over: over}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// setColored sets a micro-pixel and paints its cell.
func (b *brailleBuf) setColored(mx, my int, color string) {
	b.setPixel(mx, my)
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy < b.h && cx < b.w {
		b.col[cy][cx] = color
	}
}

// markCell replaces a whole cell with glyph r in color.
func (b *brailleBuf) markCell(cx, cy int, r rune, color string) {
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	b.over[cy][cx] = r
	b.col[cy][cx] = color
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircleMicro draws a circle outline with the midpoint algorithm. A
// radius under one dot sets the centre only.
func (b *brailleBuf) drawCircleMicro(cx, cy, r int, color string) {
	if r < 1 {
		b.setColored(cx, cy, color)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{cx + x, cy + y}, {cx + y, cy + x}, {cx - y, cy + x}, {cx - x, cy + y},
			{cx - x, cy - y}, {cx - y, cy - x}, {cx + y, cy - x}, {cx + x, cy - y},
		} {
			b.setColored(p[0], p[1], color)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// toStyledLines renders the buffer row by row, wrapping painted cells in
// their colour. Runs of one colour share an escape sequence.
func (b *brailleBuf) toStyledLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		x := 0
		for x < b.w {
			c := b.col[y][x]
			run := []rune{}
			for x < b.w && b.col[y][x] == c {
				run = append(run, b.cell(x, y))
				x++
			}
			if c == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(run)))
			}
		}
		out[y] = sb.String()
	}
	return out
}

func (b *brailleBuf) cell(x, y int) rune {
	if r := b.over[y][x]; r != 0 {
		return r
	}
	return cellRune(b.m[y][x])
}

func cellRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
