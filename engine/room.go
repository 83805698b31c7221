package engine

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/escape-room/challenge"
	"github.com/lixenwraith/escape-room/clock"
	"github.com/lixenwraith/escape-room/config"
	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/status"
	"github.com/lixenwraith/escape-room/system"
	"github.com/lixenwraith/escape-room/vmath"
)

// ViewMode selects which agent the planar input drives
type ViewMode int

const (
	// ViewFollow walks the character with the camera trailing behind
	ViewFollow ViewMode = iota
	// ViewFree flies the first-person camera directly
	ViewFree
)

func (v ViewMode) String() string {
	if v == ViewFree {
		return "free"
	}
	return "follow"
}

// CameraView is what the renderer needs to place the eye
type CameraView struct {
	Position vmath.Vec3
	LookAt   vmath.Vec3
}

// Room owns every interactive piece of one escape room and advances them per tick
// Not safe for concurrent use: input, puzzle actions, and Tick share one goroutine
type Room struct {
	cfg    *config.RoomConfig
	logger *log.Logger
	bus    *event.Bus
	tp     clock.TimeProvider
	sched  *clock.Scheduler
	reg    *status.Registry

	tracker    *challenge.Tracker
	trackerSub *challenge.Subscription

	bounds  physics.Bounds
	charCtl *physics.Controller
	camCtl  *physics.Controller

	character physics.Agent
	freeCam   physics.Agent
	follow    *system.FollowCamera

	order      *system.OrderChecker
	beam       *system.Beam
	light      *system.Switch
	flashlight *system.Flashlight
	keypad     *system.Keypad

	input   physics.Input
	view    ViewMode
	phase   RoomPhase
	ticks   int64
	closed  bool
	systems []System
	metrics roomMetrics
}

type roomMetrics struct {
	ticks      *atomic.Int64
	stars      *atomic.Int64
	pending    *atomic.Int64
	phase      *status.AtomicString
	keypad     *status.AtomicString
	charX      *status.AtomicFloat
	charZ      *status.AtomicFloat
	charFacing *status.AtomicFloat
	beamLit    *atomic.Bool
	flashlight *atomic.Bool
	equation   *atomic.Bool
}

// Option configures a Room
type Option func(*Room)

// WithLogger routes room and component logs, nil discards
func WithLogger(l *log.Logger) Option {
	return func(r *Room) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		r.logger = l
	}
}

// WithBus publishes room events on bus instead of a private one
func WithBus(bus *event.Bus) Option {
	return func(r *Room) {
		if bus != nil {
			r.bus = bus
		}
	}
}

// WithTimeProvider drives delayed tasks from tp
func WithTimeProvider(tp clock.TimeProvider) Option {
	return func(r *Room) {
		if tp != nil {
			r.tp = tp
		}
	}
}

// WithStatus writes metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(r *Room) {
		if reg != nil {
			r.reg = reg
		}
	}
}

// NewRoom builds a room in PhaseStart, nil cfg selects config.Default
func NewRoom(cfg *config.RoomConfig, opts ...Option) (*Room, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new room: %w", err)
	}
	bounds := cfg.Bounds()
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("new room: %w: %v", config.ErrInvalid, err)
	}

	r := &Room{
		cfg:    cfg,
		logger: log.Default(),
		bus:    event.NewBus(),
		tp:     clock.NewRealTimeProvider(),
		reg:    status.NewRegistry(),
		bounds: bounds,
		phase:  PhaseStart,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.sched = clock.NewScheduler(r.tp)
	r.tracker = challenge.New(challenge.WithLogger(r.logger), challenge.WithBus(r.bus))
	r.trackerSub = r.tracker.Subscribe(r.onStars)

	r.charCtl = physics.NewController(cfg.CharacterMovement(), bounds)
	r.camCtl = physics.NewController(cfg.CameraMovement(), bounds)
	r.follow = system.NewFollowCamera(cfg.FollowSettings(), cameraStart())

	r.order = system.NewOrderChecker(parameter.ChallengeEquation, r.tracker, system.EquationLayout(),
		system.WithOrderLogger(r.logger))
	r.beam = system.NewBeam(parameter.ChallengeLaser, r.tracker,
		system.WithBeamLogger(r.logger), system.WithBeamSamples(cfg.Beam.Samples))
	r.light = system.NewLightSwitch(r.bus, r.beam)
	r.flashlight = system.NewFlashlight(r.bus)
	r.keypad = system.NewKeypad(parameter.ChallengeKeypad, r.tracker, r.sched,
		system.WithKeypadLogger(r.logger),
		system.WithKeypadBus(r.bus),
		system.WithCode(cfg.Keypad.Code),
		system.WithCapacity(cfg.Keypad.Capacity),
		system.WithResetDelay(cfg.ResetDelay()),
	)

	r.resetAgents()
	r.bindMetrics()

	r.systems = []System{
		&statusSystem{room: r},
		&schedulerSystem{room: r},
		&cameraSystem{room: r},
		&movementSystem{room: r},
	}
	sortSystems(r.systems)
	return r, nil
}

// MustNewRoom panics on an invalid config
func MustNewRoom(cfg *config.RoomConfig, opts ...Option) *Room {
	r, err := NewRoom(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func cameraStart() vmath.Vec3 {
	return vmath.Vec3{parameter.CameraStartX, parameter.CameraStartY, parameter.CameraStartZ}
}

func (r *Room) resetAgents() {
	r.character = r.charCtl.Constrain(physics.Agent{
		Position: vmath.Vec3{parameter.CharacterStartX, parameter.RoomFloorY, parameter.CharacterStartZ},
	})
	r.freeCam = r.camCtl.Constrain(physics.Agent{Position: cameraStart()})
	r.follow.Reset()
	r.input = physics.Input{}
}

func (r *Room) bindMetrics() {
	r.metrics = roomMetrics{
		ticks:      r.reg.Ints.Get(parameter.StatusTicks),
		stars:      r.reg.Ints.Get(parameter.StatusStars),
		pending:    r.reg.Ints.Get(parameter.StatusPendingTasks),
		phase:      r.reg.Strings.Get(parameter.StatusPhase),
		keypad:     r.reg.Strings.Get(parameter.StatusKeypadDisplay),
		charX:      r.reg.Floats.Get(parameter.StatusCharacterX),
		charZ:      r.reg.Floats.Get(parameter.StatusCharacterZ),
		charFacing: r.reg.Floats.Get(parameter.StatusCharacterFace),
		beamLit:    r.reg.Bools.Get(parameter.StatusBeamLit),
		flashlight: r.reg.Bools.Get(parameter.StatusFlashlightOn),
		equation:   r.reg.Bools.Get(parameter.StatusEquationSolved),
	}
}

// onStars gates the success screen on a full star count
func (r *Room) onStars(u challenge.Update) {
	if u.Stars < r.tracker.MaxStars() || r.phase != PhasePlaying {
		return
	}
	if r.transition(PhaseSuccess) {
		r.bus.Emit(event.EventRoomCompleted, &event.StarsChangedPayload{Stars: u.Stars, Episode: u.Episode})
	}
}

func (r *Room) transition(to RoomPhase) bool {
	from := r.phase
	if !CanTransition(from, to) {
		return false
	}
	r.phase = to
	r.logger.Printf("room phase %s -> %s", from, to)
	r.bus.Emit(event.EventPhaseChanged, &event.PhaseChangedPayload{From: from.String(), To: to.String()})
	return true
}

// Start leaves the start screen, false when not on it
func (r *Room) Start() bool {
	if r.closed {
		return false
	}
	return r.transition(PhasePlaying)
}

// Restart resets every challenge, agent, and puzzle and resumes play
// From the start screen the room stays there
func (r *Room) Restart() {
	if r.closed {
		return
	}
	r.tracker.Reset()
	r.order.Reset()
	r.beam.Reset()
	r.keypad.Reset()
	r.light.Reset()
	r.flashlight.Reset()
	r.resetAgents()
	if r.phase == PhaseSuccess {
		r.transition(PhasePlaying)
	}
	r.logger.Printf("room restarted, episode %s", r.tracker.Episode())
}

// Close cancels pending work and detaches from the tracker, the room is inert afterwards
func (r *Room) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.keypad.Close()
	r.sched.Close()
	r.trackerSub.Unsubscribe()
	r.tracker.Dispose()
}

// SetInput captures the planar input applied on the next ticks, {0,0} releases
func (r *Room) SetInput(in physics.Input) {
	r.input = in.Clamped()
}

// Input returns the captured input
func (r *Room) Input() physics.Input {
	return r.input
}

// SetViewMode switches the driven agent, input is released on change
func (r *Room) SetViewMode(v ViewMode) {
	if v == r.view {
		return
	}
	r.view = v
	r.input = physics.Input{}
	if v == ViewFollow {
		r.follow.Snap(r.character)
	}
}

// ViewMode returns the active view
func (r *Room) ViewMode() ViewMode {
	return r.view
}

// Tick advances the room by dt, capped at parameter.MaxTickDelta
func (r *Room) Tick(dt time.Duration) {
	if r.closed {
		return
	}
	dt = max(0, min(dt, parameter.MaxTickDelta))
	r.ticks++
	r.bus.SetFrame(r.ticks)
	for _, s := range r.systems {
		s.Update(dt)
	}
}

// Systems returns system names in execution order
func (r *Room) Systems() []string {
	names := make([]string, len(r.systems))
	for i, s := range r.systems {
		names[i] = s.Name()
	}
	return names
}

// playing gates puzzle interaction to the play screen
func (r *Room) playing() bool {
	return !r.closed && r.phase == PhasePlaying
}

// ToggleLight flips the wall switch, which powers the beam
func (r *Room) ToggleLight() bool {
	if !r.playing() {
		return r.light.On()
	}
	return r.light.Toggle()
}

// ToggleFlashlight flips the flashlight
func (r *Room) ToggleFlashlight() bool {
	if !r.playing() {
		return r.flashlight.On()
	}
	return r.flashlight.Toggle()
}

// PressKey forwards one keypad button
func (r *Room) PressKey(c rune) bool {
	return r.playing() && r.keypad.Press(c)
}

// SubmitKeypad presses the keypad's enter button
func (r *Room) SubmitKeypad() (event.KeypadOutcome, bool) {
	if !r.playing() {
		return event.OutcomeDenied, false
	}
	return r.keypad.Submit()
}

// DragGlyph moves a chalkboard glyph to where ray meets the board
func (r *Room) DragGlyph(id string, ray vmath.Ray) bool {
	return r.playing() && r.order.Drag(id, ray)
}

// NudgeGlyph slides a chalkboard glyph by dx
func (r *Room) NudgeGlyph(id string, dx float64) bool {
	return r.playing() && r.order.Nudge(id, dx)
}

// BeginBeamDrag grabs the laser beam
func (r *Room) BeginBeamDrag(ray vmath.Ray) bool {
	return r.playing() && r.beam.BeginDrag(ray)
}

// DragBeam moves the grabbed beam
func (r *Room) DragBeam(ray vmath.Ray) bool {
	return r.playing() && r.beam.DragMove(ray)
}

// EndBeamDrag releases the beam
func (r *Room) EndBeamDrag() {
	r.beam.EndDrag()
}

// Phase returns the current screen
func (r *Room) Phase() RoomPhase { return r.phase }

// Ticks returns the number of ticks run
func (r *Room) Ticks() int64 { return r.ticks }

// Stars returns the tracker's star count
func (r *Room) Stars() int { return r.tracker.Stars() }

// Character returns the character agent
func (r *Room) Character() physics.Agent { return r.character }

// Bounds returns the room box
func (r *Room) Bounds() physics.Bounds { return r.bounds }

// Camera returns the eye for the active view
func (r *Room) Camera() CameraView {
	if r.view == ViewFree {
		return CameraView{Position: r.freeCam.Position, LookAt: freeLookAt(r.freeCam.Position)}
	}
	return CameraView{Position: r.follow.Position, LookAt: r.follow.LookAt}
}

// Tracker exposes the challenge tracker for subscription
func (r *Room) Tracker() *challenge.Tracker { return r.tracker }

// Bus exposes the room's event bus
func (r *Room) Bus() *event.Bus { return r.bus }

// Status exposes the metric registry
func (r *Room) Status() *status.Registry { return r.reg }

// Order exposes the chalkboard checker for rendering
func (r *Room) Order() *system.OrderChecker { return r.order }

// Beam exposes the laser for rendering
func (r *Room) Beam() *system.Beam { return r.beam }

// Keypad exposes the keypad for rendering
func (r *Room) Keypad() *system.Keypad { return r.keypad }

// Light exposes the wall switch
func (r *Room) Light() *system.Switch { return r.light }

// Flashlight exposes the flashlight
func (r *Room) Flashlight() *system.Flashlight { return r.flashlight }

// Config returns the validated configuration
func (r *Room) Config() *config.RoomConfig { return r.cfg }
