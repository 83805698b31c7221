package challenge

import (
	"io"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/escape-room/event"
	"github.com/lixenwraith/escape-room/parameter"
)

// Update is what subscribers receive after every tracker transition
// ChallengeID is empty for resets
type Update struct {
	Stars       int
	ChallengeID string
	Episode     string
}

// Listener observes tracker transitions, called synchronously on the mutating goroutine
type Listener func(Update)

// Subscription is the token returned by Subscribe
type Subscription struct {
	id      uint64
	tracker *Tracker
}

// Unsubscribe detaches the listener, safe to call more than once
func (s *Subscription) Unsubscribe() {
	if s == nil || s.tracker == nil {
		return
	}
	s.tracker.Unsubscribe(s)
}

// Tracker records completed challenges and the derived star count for one room
//
// Invariants:
//   - stars == min(maxStars, len(completed))
//   - each id contributes at most one star per episode
//   - stars never decrease between resets
type Tracker struct {
	mu        sync.Mutex
	completed map[string]struct{}
	stars     int
	maxStars  int
	episode   string

	listeners map[uint64]Listener
	nextID    uint64
	disposed  bool

	bus    *event.Bus
	logger *log.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithBus mirrors every transition onto bus
func WithBus(bus *event.Bus) Option {
	return func(t *Tracker) { t.bus = bus }
}

// WithLogger routes completion logs, nil discards
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		t.logger = l
	}
}

// WithMaxStars overrides the star cap
func WithMaxStars(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxStars = n
		}
	}
}

// New creates a tracker with an empty completed set and a fresh episode
func New(opts ...Option) *Tracker {
	t := &Tracker{
		completed: make(map[string]struct{}),
		maxStars:  parameter.MaxStars,
		episode:   uuid.NewString(),
		listeners: make(map[uint64]Listener),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CompleteChallenge awards a star for an unseen non-empty id and returns the star count
// Empty, duplicate, and post-dispose calls are silent no-ops
func (t *Tracker) CompleteChallenge(id string) int {
	t.mu.Lock()
	if t.disposed || id == "" {
		stars := t.stars
		t.mu.Unlock()
		return stars
	}
	if _, done := t.completed[id]; done {
		stars := t.stars
		t.mu.Unlock()
		return stars
	}

	t.completed[id] = struct{}{}
	t.stars = min(t.maxStars, t.stars+1)
	u := Update{Stars: t.stars, ChallengeID: id, Episode: t.episode}
	listeners := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Printf("challenge completed: %s, total stars: %d", id, u.Stars)
	t.broadcast(listeners, u)

	if t.bus != nil {
		t.bus.Emit(event.EventChallengeCompleted, &event.ChallengeCompletedPayload{
			ChallengeID: id,
			Stars:       u.Stars,
			Episode:     u.Episode,
		})
		t.bus.Emit(event.EventStarsChanged, &event.StarsChangedPayload{Stars: u.Stars, Episode: u.Episode})
	}
	return u.Stars
}

// Reset clears the completed set, zeroes stars, starts a new episode, and broadcasts
func (t *Tracker) Reset() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	previous := t.episode
	t.completed = make(map[string]struct{})
	t.stars = 0
	t.episode = uuid.NewString()
	u := Update{Stars: 0, Episode: t.episode}
	listeners := t.snapshotLocked()
	t.mu.Unlock()

	t.logger.Printf("challenges reset, episode %s", u.Episode)
	t.broadcast(listeners, u)

	if t.bus != nil {
		t.bus.Emit(event.EventChallengesReset, &event.ChallengesResetPayload{PreviousEpisode: previous, Episode: u.Episode})
		t.bus.Emit(event.EventStarsChanged, &event.StarsChangedPayload{Stars: 0, Episode: u.Episode})
	}
}

// Subscribe registers l for every later transition
// Returns nil after Dispose
func (t *Tracker) Subscribe(l Listener) *Subscription {
	if l == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return nil
	}
	t.nextID++
	t.listeners[t.nextID] = l
	return &Subscription{id: t.nextID, tracker: t}
}

// Unsubscribe removes a listener, unknown or nil subscriptions are ignored
func (t *Tracker) Unsubscribe(s *Subscription) {
	if s == nil || s.tracker != t {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.listeners, s.id)
}

// Dispose drops all listeners and freezes the tracker
func (t *Tracker) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disposed = true
	t.listeners = make(map[uint64]Listener)
}

// Stars returns the current star count
func (t *Tracker) Stars() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stars
}

// MaxStars returns the star cap
func (t *Tracker) MaxStars() int {
	return t.maxStars
}

// IsCompleted reports whether id already awarded its star this episode
func (t *Tracker) IsCompleted(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.completed[id]
	return ok
}

// Completed returns completed ids in sorted order
func (t *Tracker) Completed() []string {
	t.mu.Lock()
	ids := make([]string, 0, len(t.completed))
	for id := range t.completed {
		ids = append(ids, id)
	}
	t.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Episode returns the current episode identifier
func (t *Tracker) Episode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.episode
}

// ListenerCount returns the number of live subscriptions
func (t *Tracker) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

func (t *Tracker) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(t.listeners))
	for _, l := range t.listeners {
		out = append(out, l)
	}
	return out
}

func (t *Tracker) broadcast(listeners []Listener, u Update) {
	for _, l := range listeners {
		l(u)
	}
}
