package engine

import (
	"sort"
	"time"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/vmath"
)

// System is one stage of the room tick
type System interface {
	Name() string
	Priority() int
	Update(dt time.Duration)
}

func sortSystems(systems []System) {
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].Priority() < systems[j].Priority()
	})
}

// movementSystem applies captured input to whichever agent the view drives
type movementSystem struct {
	room *Room
}

func (s *movementSystem) Name() string  { return "movement" }
func (s *movementSystem) Priority() int { return parameter.PriorityMovement }

func (s *movementSystem) Update(dt time.Duration) {
	r := s.room
	if r.phase != PhasePlaying {
		return
	}
	switch r.view {
	case ViewFollow:
		r.character = r.charCtl.Step(r.character, r.input, dt)
	case ViewFree:
		r.freeCam = r.camCtl.Step(r.freeCam, r.input, dt)
	}
}

// cameraSystem eases the follow camera behind the character
type cameraSystem struct {
	room *Room
}

func (s *cameraSystem) Name() string  { return "camera" }
func (s *cameraSystem) Priority() int { return parameter.PriorityCamera }

func (s *cameraSystem) Update(time.Duration) {
	if s.room.view == ViewFollow {
		s.room.follow.Update(s.room.character)
	}
}

// schedulerSystem fires due delayed tasks
type schedulerSystem struct {
	room *Room
}

func (s *schedulerSystem) Name() string  { return "scheduler" }
func (s *schedulerSystem) Priority() int { return parameter.PriorityScheduler }

func (s *schedulerSystem) Update(time.Duration) {
	s.room.sched.Run()
}

// statusSystem publishes the room's observable state
type statusSystem struct {
	room *Room
}

func (s *statusSystem) Name() string  { return "status" }
func (s *statusSystem) Priority() int { return parameter.PriorityStatus }

func (s *statusSystem) Update(time.Duration) {
	r := s.room
	m := r.metrics
	m.ticks.Store(r.ticks)
	m.stars.Store(int64(r.tracker.Stars()))
	m.phase.Store(r.phase.String())
	m.charX.Set(r.character.Position.X())
	m.charZ.Set(r.character.Position.Z())
	m.charFacing.Set(physics.NormalizeFacing(r.character.Facing))
	m.keypad.Store(r.keypad.Display())
	m.beamLit.Store(r.light.On())
	m.flashlight.Store(r.flashlight.On())
	m.pending.Store(int64(r.sched.Pending()))
	m.equation.Store(r.order.Solved())
}

// freeLookAt is the aim point for the first-person camera, which always faces -Z
func freeLookAt(p vmath.Vec3) vmath.Vec3 {
	return p.Add(vmath.Vec3{0, 0, -1})
}
