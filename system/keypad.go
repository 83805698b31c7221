package system

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/lixenwraith/escape-room/clock"
	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
)

// KeypadState is the keypad's input mode
type KeypadState int

const (
	KeypadIdle KeypadState = iota
	KeypadProcessing
)

func (s KeypadState) String() string {
	switch s {
	case KeypadIdle:
		return "idle"
	case KeypadProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Keypad is the security keypad: collect up to capacity characters, submit,
// show the outcome, then clear itself after a delay
type Keypad struct {
	challengeID string
	completer   Completer
	sched       *clock.Scheduler
	bus         *event.Bus
	logger      *log.Logger

	code     string
	capacity int
	delay    time.Duration

	buffer  []rune
	state   KeypadState
	outcome event.KeypadOutcome
	pending *clock.Task
	closed  bool

	onOutcome func(event.KeypadOutcome)
}

// KeypadOption configures a Keypad
type KeypadOption func(*Keypad)

// WithKeypadLogger routes outcome logs, nil discards
func WithKeypadLogger(l *log.Logger) KeypadOption {
	return func(k *Keypad) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		k.logger = l
	}
}

// WithKeypadBus publishes outcomes and clears on bus
func WithKeypadBus(bus *event.Bus) KeypadOption {
	return func(k *Keypad) { k.bus = bus }
}

// WithCode replaces the access code
func WithCode(code string) KeypadOption {
	return func(k *Keypad) { k.code = code }
}

// WithCapacity replaces the buffer capacity, non-positive values are ignored
func WithCapacity(n int) KeypadOption {
	return func(k *Keypad) {
		if n > 0 {
			k.capacity = n
		}
	}
}

// WithResetDelay replaces the post-submit delay
func WithResetDelay(d time.Duration) KeypadOption {
	return func(k *Keypad) {
		if d >= 0 {
			k.delay = d
		}
	}
}

// OnOutcome registers a callback run synchronously on every submit
func OnOutcome(fn func(event.KeypadOutcome)) KeypadOption {
	return func(k *Keypad) { k.onOutcome = fn }
}

// NewKeypad creates an idle keypad whose delayed reset runs on sched
func NewKeypad(challengeID string, completer Completer, sched *clock.Scheduler, opts ...KeypadOption) *Keypad {
	k := &Keypad{
		challengeID: challengeID,
		completer:   completerOrNop(completer),
		sched:       sched,
		logger:      log.Default(),
		code:        parameter.KeypadCode,
		capacity:    parameter.KeypadCapacity,
		delay:       parameter.KeypadResetDelay,
		state:       KeypadIdle,
	}
	for _, opt := range opts {
		opt(k)
	}
	k.buffer = make([]rune, 0, k.capacity)
	return k
}

// IsKeypadRune reports whether r is a keypad button
func IsKeypadRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// Press appends r, ignored while processing, when full, after close, or for non-keypad runes
func (k *Keypad) Press(r rune) bool {
	if k.closed || k.state == KeypadProcessing || len(k.buffer) >= k.capacity || !IsKeypadRune(r) {
		return false
	}
	k.buffer = append(k.buffer, r)
	return true
}

// Submit compares the buffer to the code and schedules the reset
// Ignored while processing or after close
func (k *Keypad) Submit() (event.KeypadOutcome, bool) {
	if k.closed || k.state == KeypadProcessing {
		return k.outcome, false
	}

	entered := string(k.buffer)
	k.state = KeypadProcessing
	k.outcome = event.OutcomeDenied
	if entered == k.code {
		k.outcome = event.OutcomeGranted
	}
	k.logger.Printf("keypad %s: %q", k.outcome, entered)

	if k.outcome == event.OutcomeGranted {
		k.completer.CompleteChallenge(k.challengeID)
	}
	if k.onOutcome != nil {
		k.onOutcome(k.outcome)
	}
	if k.bus != nil {
		k.bus.Emit(event.EventKeypadOutcome, &event.KeypadOutcomePayload{Entered: entered, Outcome: k.outcome})
	}

	k.schedule()
	return k.outcome, true
}

func (k *Keypad) schedule() {
	if k.sched == nil {
		k.clear()
		return
	}
	var task *clock.Task
	task = k.sched.After(k.delay, func() {
		// stale task from before a restart or close
		if k.closed || k.pending != task {
			return
		}
		k.clear()
	})
	k.pending = task
	if task == nil {
		k.clear()
	}
}

func (k *Keypad) clear() {
	k.pending = nil
	k.buffer = k.buffer[:0]
	k.state = KeypadIdle
	if k.bus != nil {
		k.bus.Emit(event.EventKeypadCleared, nil)
	}
}

// Display returns the buffer padded with placeholders to capacity
func (k *Keypad) Display() string {
	var sb strings.Builder
	sb.Grow(k.capacity)
	sb.WriteString(string(k.buffer))
	for i := len(k.buffer); i < k.capacity; i++ {
		sb.WriteRune(parameter.KeypadPlaceholder)
	}
	return sb.String()
}

// Entered returns the raw buffer
func (k *Keypad) Entered() string {
	return string(k.buffer)
}

// State returns the current mode
func (k *Keypad) State() KeypadState {
	return k.state
}

// LastOutcome returns the most recent submit result
func (k *Keypad) LastOutcome() event.KeypadOutcome {
	return k.outcome
}

// Reset cancels any pending clear and returns to idle with an empty buffer
func (k *Keypad) Reset() {
	if k.pending != nil {
		k.pending.Cancel()
		k.pending = nil
	}
	k.buffer = k.buffer[:0]
	k.state = KeypadIdle
	k.outcome = event.OutcomeDenied
}

// Close cancels the pending clear and freezes the keypad
func (k *Keypad) Close() {
	if k.pending != nil {
		k.pending.Cancel()
		k.pending = nil
	}
	k.closed = true
}
