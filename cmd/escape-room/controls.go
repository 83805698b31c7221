package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/escape-room/engine"
	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/vmath"
)

// focus is which prop the keyboard is driving
type focus int

const (
	focusWalk focus = iota
	focusChalkboard
	focusLaser
	focusKeypad
	focusCount
)

func (f focus) String() string {
	switch f {
	case focusWalk:
		return "walk"
	case focusChalkboard:
		return "chalkboard"
	case focusLaser:
		return "laser"
	case focusKeypad:
		return "keypad"
	default:
		return "?"
	}
}

const (
	// walkHoldTicks keeps a tapped direction pressed, terminals have no key-up
	walkHoldTicks = 8
	glyphStep     = 0.05
	pointerStep   = 0.1
	pointerOffset = 2.0
)

// controls maps terminal keys onto room actions
type controls struct {
	room  *engine.Room
	focus focus
	hold  int

	glyph    int
	pointerY float64
	pointerZ float64

	message string
	// messageTick is the room tick the message's event was raised on
	messageTick int64
	token       event.Token
}

func newControls(room *engine.Room) *controls {
	c := &controls{
		room:     room,
		pointerY: parameter.LaserRestY,
		pointerZ: parameter.LaserRestZ,
	}
	c.token = room.Bus().Subscribe(c.onEvent,
		event.EventKeypadOutcome,
		event.EventChallengeCompleted,
		event.EventRoomCompleted,
	)
	return c
}

func (c *controls) close() {
	c.room.Bus().Unsubscribe(c.token)
}

func (c *controls) onEvent(ev event.GameEvent) {
	// the escape banner outranks the events that led to it
	if c.room.Phase() == engine.PhaseSuccess && ev.Type != event.EventRoomCompleted {
		return
	}
	switch p := ev.Payload.(type) {
	case *event.KeypadOutcomePayload:
		c.message = "ACCESS " + strings.ToUpper(p.Outcome.String())
	case *event.ChallengeCompletedPayload:
		c.message = fmt.Sprintf("%s solved (%d/%d)", p.ChallengeID, p.Stars, parameter.MaxStars)
	case *event.StarsChangedPayload:
		if ev.Type == event.EventRoomCompleted {
			c.message = "all challenges complete"
		}
	default:
		return
	}
	c.messageTick = ev.Frame
}

// tick counts down a held walk direction and releases it, called after each room tick
func (c *controls) tick() {
	if c.hold == 0 {
		return
	}
	c.hold--
	if c.hold == 0 {
		c.room.SetInput(physics.Input{})
	}
}

// handleKey applies one key press, false requests exit
func (c *controls) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		c.setFocus((c.focus + 1) % focusCount)
		return true
	}

	if c.room.Phase() == engine.PhaseStart {
		if key == tcell.KeyEnter || (key == tcell.KeyRune && r == ' ') {
			c.room.Start()
		}
		return !(key == tcell.KeyRune && r == 'q')
	}

	if key == tcell.KeyRune {
		switch r {
		case 'q':
			return false
		case 'l':
			c.room.ToggleLight()
			return true
		case 'f':
			c.room.ToggleFlashlight()
			return true
		case 'r':
			c.restart()
			return true
		case 'v':
			if c.room.ViewMode() == engine.ViewFollow {
				c.room.SetViewMode(engine.ViewFree)
			} else {
				c.room.SetViewMode(engine.ViewFollow)
			}
			c.hold = 0
			return true
		}
	}

	switch c.focus {
	case focusWalk:
		c.walk(key, r)
	case focusChalkboard:
		c.chalkboard(key, r)
	case focusLaser:
		c.laser(key, r)
	case focusKeypad:
		c.keypad(key, r)
	}
	return true
}

func (c *controls) setFocus(f focus) {
	if c.focus == focusLaser && f != focusLaser {
		c.room.EndBeamDrag()
	}
	if c.hold > 0 {
		c.hold = 0
		c.room.SetInput(physics.Input{})
	}
	c.focus = f
}

func (c *controls) restart() {
	c.room.Restart()
	c.hold = 0
	c.pointerY = parameter.LaserRestY
	c.pointerZ = parameter.LaserRestZ
	c.message = ""
	c.messageTick = 0
}

func (c *controls) walk(key tcell.Key, r rune) {
	var in physics.Input
	switch {
	case key == tcell.KeyUp || (key == tcell.KeyRune && r == 'w'):
		in.Z = -1
	case key == tcell.KeyDown || (key == tcell.KeyRune && r == 's'):
		in.Z = 1
	case key == tcell.KeyLeft || (key == tcell.KeyRune && r == 'a'):
		in.X = -1
	case key == tcell.KeyRight || (key == tcell.KeyRune && r == 'd'):
		in.X = 1
	default:
		return
	}
	c.room.SetInput(in)
	c.hold = walkHoldTicks
}

func (c *controls) chalkboard(key tcell.Key, r rune) {
	ids := c.room.Order().IDs()
	switch {
	case key == tcell.KeyRune && r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(ids) {
			c.glyph = i
		}
	case key == tcell.KeyLeft && c.glyph < len(ids):
		c.room.NudgeGlyph(ids[c.glyph], -glyphStep)
	case key == tcell.KeyRight && c.glyph < len(ids):
		c.room.NudgeGlyph(ids[c.glyph], glyphStep)
	}
}

// pointerPoint solves the drag plane for x at the pointer's y and z
func (c *controls) pointerPoint() vmath.Vec3 {
	pl := c.room.Beam().Plane()
	n := pl.Normal
	x := -(pl.Constant + n.Y()*c.pointerY + n.Z()*c.pointerZ) / n.X()
	return vmath.Vec3{x, c.pointerY, c.pointerZ}
}

func (c *controls) pointerRay() vmath.Ray {
	return vmath.RayThrough(c.pointerPoint(), c.room.Beam().Plane(), pointerOffset)
}

func (c *controls) laser(key tcell.Key, r rune) {
	switch {
	case key == tcell.KeyUp:
		c.pointerY = vmath.Clamp(c.pointerY+pointerStep, parameter.LaserMinY, parameter.LaserMaxY)
	case key == tcell.KeyDown:
		c.pointerY = vmath.Clamp(c.pointerY-pointerStep, parameter.LaserMinY, parameter.LaserMaxY)
	case key == tcell.KeyLeft:
		c.pointerZ = vmath.Clamp(c.pointerZ-pointerStep, parameter.LaserMinZ, parameter.LaserMaxZ)
	case key == tcell.KeyRight:
		c.pointerZ = vmath.Clamp(c.pointerZ+pointerStep, parameter.LaserMinZ, parameter.LaserMaxZ)
	case key == tcell.KeyRune && r == ' ':
		if c.room.Beam().Dragging() {
			c.room.EndBeamDrag()
		} else if c.room.BeginBeamDrag(c.pointerRay()) {
			p := c.pointerPoint()
			log.Printf("beam grabbed at (%.2f, %.2f, %.2f)", p.X(), p.Y(), p.Z())
		} else {
			c.message = "the beam is dark"
			c.messageTick = c.room.Ticks()
		}
		return
	default:
		return
	}
	if c.room.Beam().Dragging() {
		c.room.DragBeam(c.pointerRay())
	}
}

func (c *controls) keypad(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEnter:
		c.room.SubmitKeypad()
	case tcell.KeyRune:
		c.room.PressKey(r)
	}
}
