package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/escape-room/engine"
	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/system"
)

// canvas is the subset of tcell.Screen the renderer draws through
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// Top-down map geometry in cells
const (
	mapLeft = 1
	mapTop  = 2
	mapCols = 31
	mapRows = 15
	hudLeft = mapLeft + mapCols + 3
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHero   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCamera = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleLaser  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleLight  = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleStar   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

func drawText(c canvas, x, y int, style tcell.Style, s string) int {
	w, h := c.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range s {
		if x >= w {
			break
		}
		if x >= 0 {
			c.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

// cell maps a room-space x/z onto the map grid, ok is false outside the room box
func cell(b physics.Bounds, x, z float64) (col, row int, ok bool) {
	if x < b.MinX || x > b.MaxX || z < b.MinZ || z > b.MaxZ {
		return 0, 0, false
	}
	col = int(math.Round((x - b.MinX) / (b.MaxX - b.MinX) * (mapCols - 1)))
	row = int(math.Round((z - b.MinZ) / (b.MaxZ - b.MinZ) * (mapRows - 1)))
	return col, row, true
}

func plot(c canvas, b physics.Bounds, x, z float64, r rune, style tcell.Style) {
	if col, row, ok := cell(b, x, z); ok {
		c.SetContent(mapLeft+col, mapTop+row, r, nil, style)
	}
}

// facingGlyph picks an arrow for a yaw measured from +Z toward +X, screen down is +Z
func facingGlyph(facing float64) rune {
	arrows := []rune{'v', '>', '^', '<'}
	f := physics.NormalizeFacing(facing)
	i := int(math.Round(f/(math.Pi/2))) & 3
	return arrows[i]
}

func stars(n int) string {
	return strings.Repeat("*", n) + strings.Repeat(".", max(0, parameter.MaxStars-n))
}

// renderFrame draws the whole screen for one tick
func renderFrame(c canvas, room *engine.Room, ctl *controls) {
	drawText(c, 0, 0, styleText, fmt.Sprintf("ESCAPE ROOM  [%s]  stars %s  focus: %s  view: %s",
		room.Phase(), stars(room.Stars()), ctl.focus, room.ViewMode()))

	switch room.Phase() {
	case engine.PhaseStart:
		drawText(c, mapLeft, mapTop, styleAlert, "press Enter to begin")
		drawHelp(c, mapTop+2)
		return
	case engine.PhaseSuccess:
		drawText(c, hudLeft, 0, styleAlert, "  ESCAPED! press r to play again")
	}

	drawMap(c, room)
	drawHUD(c, room, ctl)
}

func drawMap(c canvas, room *engine.Room) {
	b := room.Bounds()

	for col := -1; col <= mapCols; col++ {
		c.SetContent(mapLeft+col, mapTop-1, '-', nil, styleWall)
		c.SetContent(mapLeft+col, mapTop+mapRows, '-', nil, styleWall)
	}
	for row := 0; row < mapRows; row++ {
		west := '|'
		if room.Light().On() {
			west = '!'
		}
		c.SetContent(mapLeft-1, mapTop+row, west, nil, styleWall)
		c.SetContent(mapLeft+mapCols, mapTop+row, '|', nil, styleWall)
	}

	// chalkboard sits on the north wall
	for x := -parameter.ChalkboardMaxX; x <= parameter.ChalkboardMaxX; x += 0.2 {
		plot(c, b, x, b.MinZ, '=', styleDim)
	}

	if room.Beam().Powered() {
		for _, p := range room.Beam().Points(0) {
			plot(c, b, b.MinX, p.Z(), '~', styleLaser)
		}
	}

	if fl := room.Flashlight(); fl.On() {
		ch := room.Character()
		sin, cos := math.Sincos(ch.Facing)
		for _, p := range fl.BeamPoints(8) {
			d := p.X() / 2
			plot(c, b, ch.Position.X()+sin*d, ch.Position.Z()+cos*d, '.', styleLight)
		}
	}

	cam := room.Camera()
	plot(c, b, cam.Position.X(), cam.Position.Z(), 'c', styleCamera)

	ch := room.Character()
	plot(c, b, ch.Position.X(), ch.Position.Z(), facingGlyph(ch.Facing), styleHero)
}

func drawHUD(c canvas, room *engine.Room, ctl *controls) {
	y := mapTop - 1
	line := func(style tcell.Style, format string, args ...any) {
		drawText(c, hudLeft, y, style, fmt.Sprintf(format, args...))
		y++
	}

	ch := room.Character()
	line(styleText, "character  x %+.2f  z %+.2f", ch.Position.X(), ch.Position.Z())
	cam := room.Camera()
	line(styleText, "camera     %+.2f %+.2f %+.2f", cam.Position.X(), cam.Position.Y(), cam.Position.Z())
	line(styleText, "light %s   flashlight %s", onOff(room.Light().On()), onOff(room.Flashlight().On()))
	y++

	kp := room.Keypad()
	if kp.State() == system.KeypadProcessing {
		line(styleStar, "keypad  [%s]  %s  %s", kp.Display(), kp.State(), kp.LastOutcome())
	} else {
		line(styleStar, "keypad  [%s]  %s", kp.Display(), kp.State())
	}

	beam := room.Beam()
	ctrl := beam.Control()
	drag := ""
	if beam.Dragging() {
		drag = " dragging"
	}
	line(styleLaser, "beam    control y %.2f z %+.2f  pointer y %.2f z %+.2f%s",
		ctrl.Y(), ctrl.Z(), ctl.pointerY, ctl.pointerZ, drag)

	var order strings.Builder
	for i, g := range room.Order().Glyphs() {
		mark := " "
		if i == ctl.glyph {
			mark = ">"
		}
		fmt.Fprintf(&order, "%s%s:%+.2f ", mark, strings.TrimPrefix(g.ID, "equation"), g.X)
	}
	line(styleText, "board   %s", order.String())
	if room.Order().InOrder() {
		line(styleAlert, "        in order")
	} else {
		y++
	}

	solved := room.Tracker().Completed()
	if len(solved) == 0 {
		solved = []string{"-"}
	}
	line(styleStar, "solved  %s", strings.Join(solved, " "))

	if ctl.message != "" {
		line(styleAlert, "%s  (tick %d)", ctl.message, ctl.messageTick)
	} else {
		y++
	}
	y++

	for _, e := range room.Status().Snapshot() {
		line(styleDim, "%-18s %s", e.Key, e.Value)
	}

	drawHelp(c, max(y+1, mapTop+mapRows+2))
}

func drawHelp(c canvas, y int) {
	for i, s := range []string{
		"Tab focus  l light  f flashlight  v view  r restart  q/Esc quit",
		"walk: arrows/wasd   chalkboard: 1-5 select, left/right move",
		"laser: arrows aim, space grab/release   keypad: 0-9 . Enter",
	} {
		drawText(c, mapLeft, y+i, styleDim, s)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
