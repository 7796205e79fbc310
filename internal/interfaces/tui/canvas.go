package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	ch    rune
	style *lipgloss.Style
}

// Canvas is a cell grid the draw pass paints into; Render flushes it to one
// frame string. Later writes overdraw earlier ones, so paint back-to-front.
type Canvas struct {
	w, h  int
	cells [][]cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{w: w, h: h, cells: make([][]cell, h)}
	for i := range c.cells {
		row := make([]cell, w)
		for j := range row {
			row[j].ch = ' '
		}
		c.cells[i] = row
	}
	return c
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// SetText paints a string at (y, x), clipping at the edges. Text starting
// left of column zero is trimmed rather than wrapped.
func (c *Canvas) SetText(y, x int, text string, style *lipgloss.Style) {
	if y < 0 || y >= c.h || x >= c.w {
		return
	}
	runes := []rune(text)
	if x < 0 {
		if -x >= len(runes) {
			return
		}
		runes = runes[-x:]
		x = 0
	}
	for i, r := range runes {
		if x+i >= c.w {
			break
		}
		c.cells[y][x+i] = cell{ch: r, style: style}
	}
}

// SetLines paints a multi-line sprite with its top-left corner at (y, x).
func (c *Canvas) SetLines(y, x int, lines []string, style *lipgloss.Style) {
	for i, line := range lines {
		c.SetText(y+i, x, line, style)
	}
}

// SetRune paints a single cell.
func (c *Canvas) SetRune(y, x int, r rune, style *lipgloss.Style) {
	if y < 0 || y >= c.h || x < 0 || x >= c.w {
		return
	}
	c.cells[y][x] = cell{ch: r, style: style}
}

// Row returns the unstyled text of one row, for tests.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[y] {
		b.WriteRune(cl.ch)
	}
	return b.String()
}

// Render flushes the grid to a frame, styling each run of same-styled cells
// in one go to keep the escape-sequence volume down.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for _, cl := range row {
			if cl.style != runStyle {
				flush()
				runStyle = cl.style
			}
			run = append(run, cl.ch)
		}
		flush()
	}
	return b.String()
}
