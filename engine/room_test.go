package engine

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/escape-room/clock"
	"github.com/lixenwraith/escape-room/config"
	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/system"
	"github.com/lixenwraith/escape-room/vmath"
)

var quiet = log.New(io.Discard, "", 0)

func newTestRoom(t *testing.T) (*Room, *clock.ManualTimeProvider) {
	t.Helper()
	tp := clock.NewManualTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r := MustNewRoom(nil, WithLogger(quiet), WithTimeProvider(tp))
	t.Cleanup(r.Close)
	return r, tp
}

func tickN(r *Room, n int) {
	for i := 0; i < n; i++ {
		r.Tick(parameter.FrameUpdateInterval)
	}
}

func bentBeamRay(r *Room) vmath.Ray {
	target := vmath.Vec3{-parameter.LaserPlaneConstant - parameter.LaserPlaneNY*0.8, 0.8, 0.5}
	return vmath.RayThrough(target, r.Beam().Plane(), 2)
}

func TestNewRoom_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Room.Width = -1
	_, err := NewRoom(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))

	assert.Panics(t, func() { MustNewRoom(cfg) })
}

func TestRoom_SystemOrder(t *testing.T) {
	r, _ := newTestRoom(t)
	assert.Equal(t, []string{"movement", "camera", "scheduler", "status"}, r.Systems())
}

func TestRoom_InputIgnoredBeforeStart(t *testing.T) {
	r, _ := newTestRoom(t)
	require.Equal(t, PhaseStart, r.Phase())

	r.SetInput(physics.Input{X: 1})
	tickN(r, 10)
	assert.Equal(t, vmath.Vec3{}, r.Character().Position)
	assert.False(t, r.ToggleLight())
	assert.False(t, r.PressKey('1'))
}

func TestRoom_CharacterWalksToWall(t *testing.T) {
	r, _ := newTestRoom(t)
	require.True(t, r.Start())
	assert.False(t, r.Start())

	r.SetInput(physics.Input{X: 5})
	assert.Equal(t, physics.Input{X: 1}, r.Input())
	tickN(r, 200)

	c := r.Character()
	assert.InDelta(t, 2.5, c.Position.X(), 1e-9)
	assert.Equal(t, 0.0, c.Position.Z())
	assert.InDelta(t, math.Pi/2, c.Facing, 1e-5)

	cam := r.Camera()
	assert.InDelta(t, 0.5, cam.Position.X(), 1e-3)
	assert.InDelta(t, 1.6, cam.Position.Y(), 1e-9)
	assert.InDelta(t, 0, cam.Position.Z(), 1e-3)
	assert.True(t, vmath.V3ApproxEqual(vmath.Vec3{2.5, 1.2, 0}, cam.LookAt, 1e-9))

	// release keeps facing
	r.SetInput(physics.Input{})
	facing := r.Character().Facing
	tickN(r, 5)
	assert.Equal(t, facing, r.Character().Facing)
}

func TestRoom_FreeView(t *testing.T) {
	r, _ := newTestRoom(t)
	r.Start()
	r.SetViewMode(ViewFree)
	r.SetInput(physics.Input{Z: -1})

	// capped to MaxTickDelta: 5 u/s * 0.1 s
	r.Tick(time.Second)
	cam := r.Camera()
	assert.True(t, vmath.V3ApproxEqual(vmath.Vec3{0, 1.6, 1.5}, cam.Position, 1e-9), "pos %v", cam.Position)
	assert.Equal(t, vmath.Vec3{}, r.Character().Position)

	for i := 0; i < 6; i++ {
		r.Tick(10 * time.Second)
	}
	assert.InDelta(t, -1.5, r.Camera().Position.Z(), 1e-9)
	for i := 0; i < 10; i++ {
		r.Tick(time.Second)
	}
	assert.InDelta(t, -2.5, r.Camera().Position.Z(), 1e-9)

	r.SetViewMode(ViewFollow)
	assert.Equal(t, physics.Input{}, r.Input())
}

func TestRoom_FullRunReachesSuccess(t *testing.T) {
	r, tp := newTestRoom(t)

	var completed int
	var phases []string
	r.Bus().Subscribe(func(ev event.GameEvent) {
		switch p := ev.Payload.(type) {
		case *event.PhaseChangedPayload:
			phases = append(phases, p.To)
		case *event.StarsChangedPayload:
			if ev.Type == event.EventRoomCompleted {
				completed++
			}
		}
	}, event.EventRoomCompleted, event.EventPhaseChanged)

	require.True(t, r.Start())

	assert.False(t, r.BeginBeamDrag(bentBeamRay(r)), "beam is dark until the light is on")
	assert.True(t, r.ToggleLight())
	require.True(t, r.BeginBeamDrag(bentBeamRay(r)))
	r.EndBeamDrag()
	assert.Equal(t, 1, r.Stars())

	require.True(t, r.NudgeGlyph("equation3", -0.15))
	assert.Equal(t, 2, r.Stars())

	for _, c := range "9.8" {
		require.True(t, r.PressKey(c))
	}
	outcome, ok := r.SubmitKeypad()
	require.True(t, ok)
	assert.Equal(t, event.OutcomeGranted, outcome)

	assert.Equal(t, 3, r.Stars())
	assert.Equal(t, PhaseSuccess, r.Phase())
	assert.Equal(t, 1, completed)
	assert.False(t, r.PressKey('1'))

	// the keypad still clears while the success screen is up
	tp.Advance(parameter.KeypadResetDelay)
	r.Tick(parameter.FrameUpdateInterval)
	assert.Equal(t, system.KeypadIdle, r.Keypad().State())

	r.Restart()
	assert.Equal(t, PhasePlaying, r.Phase())
	assert.Equal(t, 0, r.Stars())
	assert.False(t, r.Light().On())
	assert.False(t, r.Beam().Powered())
	assert.False(t, r.Order().Solved())
	assert.Equal(t, vmath.Vec3{parameter.LaserWallX, parameter.LaserRestY, parameter.LaserRestZ}, r.Beam().Control())
	assert.Equal(t, []string{"playing", "success", "playing"}, phases)
}

func TestRoom_StatusMetrics(t *testing.T) {
	r, _ := newTestRoom(t)
	r.Start()
	r.ToggleFlashlight()
	r.PressKey('7')
	r.Tick(parameter.FrameUpdateInterval)

	got := make(map[string]string)
	for _, e := range r.Status().Snapshot() {
		got[e.Key] = e.Value
	}
	assert.Equal(t, "1", got[parameter.StatusTicks])
	assert.Equal(t, "0", got[parameter.StatusStars])
	assert.Equal(t, "playing", got[parameter.StatusPhase])
	assert.Equal(t, "7___", got[parameter.StatusKeypadDisplay])
	assert.Equal(t, "false", got[parameter.StatusBeamLit])
	assert.Equal(t, "true", got[parameter.StatusFlashlightOn])
	assert.Equal(t, "0.00", got[parameter.StatusCharacterX])
	assert.Equal(t, "0", got[parameter.StatusPendingTasks])
}

func TestRoom_CloseCancelsKeypadReset(t *testing.T) {
	r, tp := newTestRoom(t)
	r.Start()
	r.PressKey('1')
	r.SubmitKeypad()
	require.Equal(t, system.KeypadProcessing, r.Keypad().State())

	r.Close()
	ticks := r.Ticks()
	tp.Advance(time.Minute)
	r.Tick(parameter.FrameUpdateInterval)

	assert.Equal(t, ticks, r.Ticks())
	assert.Equal(t, system.KeypadProcessing, r.Keypad().State())
	assert.False(t, r.Start())
	r.Close()
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to RoomPhase
		ok       bool
	}{
		{PhaseStart, PhasePlaying, true},
		{PhaseStart, PhaseSuccess, false},
		{PhasePlaying, PhaseSuccess, true},
		{PhasePlaying, PhaseStart, false},
		{PhaseSuccess, PhasePlaying, true},
		{PhaseSuccess, PhaseSuccess, false},
	}
	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}
