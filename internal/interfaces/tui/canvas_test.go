package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetText_Clipping(t *testing.T) {
	tests := []struct {
		name string
		y, x int
		text string
		row  int
		want string
	}{
		{"in bounds", 1, 2, "fish", 1, "  fish    "},
		{"clipped left", 0, -2, "><>~~", 0, ">~~       "},
		{"fully left of canvas", 0, -9, "><>", 0, "          "},
		{"clipped right", 2, 7, "whale", 2, "       wha"},
		{"off the right edge", 2, 10, "x", 2, "          "},
		{"row below canvas", 9, 0, "x", 3, "          "},
		{"negative row", -1, 0, "x", 0, "          "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 4)
			c.SetText(tt.y, tt.x, tt.text, nil)
			assert.Equal(t, tt.want, c.Row(tt.row))
		})
	}
}

func TestSetText_WideRunes(t *testing.T) {
	c := NewCanvas(6, 1)
	c.SetText(0, -1, "≋≋≋", nil)
	assert.Equal(t, "≋≋    ", c.Row(0))
}

func TestSetLines(t *testing.T) {
	c := NewCanvas(8, 4)
	c.SetLines(1, 3, []string{" _ ", "(o)"}, nil)
	assert.Equal(t, "    _   ", c.Row(1))
	assert.Equal(t, "   (o)  ", c.Row(2))
}

func TestSetRune(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetRune(1, 2, '*', nil)
	c.SetRune(5, 5, '!', nil)
	c.SetRune(-1, 0, '!', nil)
	assert.Equal(t, "  * ", c.Row(1))
}

func TestRow_OutOfRange(t *testing.T) {
	c := NewCanvas(3, 2)
	assert.Equal(t, "", c.Row(-1))
	assert.Equal(t, "", c.Row(2))
}

func TestRender_UnstyledGrid(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetText(0, 0, "ab", nil)
	c.SetText(1, 1, "cd", nil)
	assert.Equal(t, "ab  \n cd ", c.Render())
}

func TestRender_GroupsStyledRuns(t *testing.T) {
	c := NewCanvas(6, 1)
	c.SetText(0, 0, "~~~", &styleWave)
	c.SetText(0, 3, "...", nil)

	out := c.Render()
	styled := styleWave.Render("~~~")
	assert.True(t, strings.HasPrefix(out, styled), "styled run rendered as one unit")
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestRender_LaterWritesOverdraw(t *testing.T) {
	c := NewCanvas(5, 1)
	c.SetText(0, 0, "aaaaa", nil)
	c.SetText(0, 1, "bbb", nil)
	assert.Equal(t, "abbba", c.Row(0))
}
