package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/escape-room/parameter"
)

// gridCanvas records runes the way a screen would, dropping writes outside its size
type gridCanvas struct {
	w, h  int
	cells [][]rune
}

func newGridCanvas(w, h int) *gridCanvas {
	g := &gridCanvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range g.cells {
		g.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return g
}

func (g *gridCanvas) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = primary
}

func (g *gridCanvas) Size() (int, int) { return g.w, g.h }

func (g *gridCanvas) row(y int) string { return string(g.cells[y]) }

func (g *gridCanvas) text() string {
	var sb strings.Builder
	for y := range g.cells {
		sb.WriteString(g.row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestRender_StartScreen(t *testing.T) {
	room, ctl := newHarness(t)
	g := newGridCanvas(120, 40)
	renderFrame(g, room, ctl)

	assert.Contains(t, g.row(0), "[start]")
	assert.Contains(t, g.text(), "press Enter to begin")
}

func TestRender_PlayingFrame(t *testing.T) {
	room, ctl := newHarness(t)
	room.Start()
	room.ToggleLight()
	room.PressKey('9')
	room.Tick(0)

	g := newGridCanvas(120, 40)
	renderFrame(g, room, ctl)
	out := g.text()

	assert.Contains(t, g.row(0), "stars ...")
	assert.Contains(t, out, "keypad  [9___]  idle")
	assert.Contains(t, out, "room.phase")
	assert.Contains(t, out, "light on")

	// character at the centre facing +Z
	col, row, ok := cell(room.Bounds(), 0, 0)
	assert.True(t, ok)
	assert.Equal(t, 'v', g.cells[mapTop+row][mapLeft+col])

	// lit beam runs down the west wall
	assert.Equal(t, '!', g.cells[mapTop][mapLeft-1])
	assert.Contains(t, out, "~")
}

func TestRender_KeypadOutcomeAndSolved(t *testing.T) {
	room, ctl := newHarness(t)
	room.Start()

	g := newGridCanvas(120, 40)
	renderFrame(g, room, ctl)
	assert.Contains(t, g.text(), "solved  -")

	room.Tracker().CompleteChallenge(parameter.ChallengeEquation)
	room.PressKey('1')
	room.SubmitKeypad()

	g = newGridCanvas(120, 40)
	renderFrame(g, room, ctl)
	out := g.text()
	assert.Contains(t, out, "keypad  [1___]  processing  denied")
	assert.Contains(t, out, "solved  "+parameter.ChallengeEquation)
}

func TestRender_SmallScreenDoesNotPanic(t *testing.T) {
	room, ctl := newHarness(t)
	room.Start()
	g := newGridCanvas(10, 3)
	assert.NotPanics(t, func() { renderFrame(g, room, ctl) })
}

func TestFacingGlyph(t *testing.T) {
	assert.Equal(t, 'v', facingGlyph(0))
	assert.Equal(t, '>', facingGlyph(1.5708))
	assert.Equal(t, '^', facingGlyph(3.1416))
	assert.Equal(t, '<', facingGlyph(-1.5708))
}
