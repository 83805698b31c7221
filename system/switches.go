package system

import (
	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/vmath"
)

// Switch is a two-state toggle that reports changes to an optional callback and bus
type Switch struct {
	on       bool
	initial  bool
	evType   event.EventType
	bus      *event.Bus
	onChange func(bool)
}

// NewSwitch creates a switch in state initial that publishes evType on bus when set
func NewSwitch(initial bool, evType event.EventType, bus *event.Bus, onChange func(bool)) *Switch {
	return &Switch{
		on:       initial,
		initial:  initial,
		evType:   evType,
		bus:      bus,
		onChange: onChange,
	}
}

// NewLightSwitch creates the wall switch, off at start, powering beam on change
func NewLightSwitch(bus *event.Bus, beam *Beam) *Switch {
	var onChange func(bool)
	if beam != nil {
		onChange = beam.SetPowered
	}
	return NewSwitch(false, event.EventLightToggled, bus, onChange)
}

// Toggle flips the switch and returns the new state
func (s *Switch) Toggle() bool {
	s.Set(!s.on)
	return s.on
}

// Set forces the state, no-op when unchanged
func (s *Switch) Set(on bool) {
	if s.on == on {
		return
	}
	s.on = on
	if s.onChange != nil {
		s.onChange(on)
	}
	if s.bus != nil && s.evType != event.EventNone {
		s.bus.Emit(s.evType, &event.ToggledPayload{On: on})
	}
}

// On reports the current state
func (s *Switch) On() bool {
	return s.on
}

// Reset returns to the initial state, notifying if that is a change
func (s *Switch) Reset() {
	s.Set(s.initial)
}

// Flashlight is a handheld toggle whose beam droops along a parabola
type Flashlight struct {
	*Switch
	Lens    vmath.Vec3
	Gravity float64
	Length  float64
}

// NewFlashlight creates an off flashlight with its lens at the local origin
func NewFlashlight(bus *event.Bus) *Flashlight {
	return &Flashlight{
		Switch:  NewSwitch(false, event.EventFlashlightToggled, bus, nil),
		Lens:    vmath.Vec3{0, 0, parameter.FlashlightLensZ},
		Gravity: parameter.FlashlightGravity,
		Length:  parameter.FlashlightBeamLength,
	}
}

// BeamPoints samples n points of y = lens.y - g*x²/(2*length) for x in [0, length]
// Returns nil while off, n < 2 selects the default sample count
func (f *Flashlight) BeamPoints(n int) []vmath.Vec3 {
	if !f.On() {
		return nil
	}
	if n < 2 {
		n = parameter.FlashlightSamples
	}
	points := make([]vmath.Vec3, n)
	last := float64(n - 1)
	for i := range points {
		x := f.Length * float64(i) / last
		y := f.Lens.Y() - (f.Gravity*x*x)/(2*f.Length)
		points[i] = vmath.Vec3{f.Lens.X() + x, y, f.Lens.Z()}
	}
	return points
}
