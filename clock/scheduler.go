package clock

import (
	"sort"
	"sync"
	"time"
)

// Task is a handle to one scheduled callback
type Task struct {
	id       uint64
	deadline time.Time
	fn       func()
	sched    *Scheduler
}

// Cancel removes the task if it has not fired, reports whether it was still pending
func (t *Task) Cancel() bool {
	if t == nil || t.sched == nil {
		return false
	}
	return t.sched.cancel(t.id)
}

// Deadline returns when the task becomes due
func (t *Task) Deadline() time.Time {
	return t.deadline
}

// Scheduler runs delayed callbacks on the tick goroutine
// Nothing fires by itself: Run is called once per tick and executes every due task
// in deadline order, ties broken by scheduling order
type Scheduler struct {
	mu     sync.Mutex
	tp     TimeProvider
	tasks  []*Task
	nextID uint64
	closed bool
}

// NewScheduler creates a scheduler reading time from tp, nil selects the wall clock
func NewScheduler(tp TimeProvider) *Scheduler {
	if tp == nil {
		tp = NewRealTimeProvider()
	}
	return &Scheduler{tp: tp}
}

// Now returns the scheduler's notion of current time
func (s *Scheduler) Now() time.Time {
	return s.tp.Now()
}

// After schedules fn to run on the first Run at or after now+d
// Returns nil when fn is nil or the scheduler is closed
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if fn == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.nextID++
	t := &Task{
		id:       s.nextID,
		deadline: s.tp.Now().Add(d),
		fn:       fn,
		sched:    s,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Run executes all due tasks and returns how many fired
// Callbacks run outside the lock and may schedule or cancel other tasks
func (s *Scheduler) Run() int {
	now := s.tp.Now()

	s.mu.Lock()
	var due []*Task
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	clear(s.tasks[len(remaining):])
	s.tasks = remaining
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of tasks not yet fired or cancelled
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close drops every pending task and rejects new ones
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.tasks = nil
}

func (s *Scheduler) cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
