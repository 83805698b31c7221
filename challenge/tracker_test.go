package challenge

import (
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/escape-room/event"
)

func newQuiet(opts ...Option) *Tracker {
	return New(append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)...)
}

func TestTracker_DuplicateCompletion(t *testing.T) {
	tr := newQuiet()
	assert.Equal(t, 1, tr.CompleteChallenge("a"))
	assert.Equal(t, 1, tr.CompleteChallenge("a"))
	assert.Equal(t, 1, tr.Stars())
	assert.Equal(t, []string{"a"}, tr.Completed())
}

func TestTracker_EmptyIDIgnored(t *testing.T) {
	tr := newQuiet()
	var calls int
	tr.Subscribe(func(Update) { calls++ })

	assert.Equal(t, 0, tr.CompleteChallenge(""))
	assert.Equal(t, 0, calls)
}

func TestTracker_StarsCapped(t *testing.T) {
	tr := newQuiet()
	ids := []string{"a", "b", "c", "d", "b", ""}
	for _, id := range ids {
		tr.CompleteChallenge(id)
	}
	assert.Equal(t, 3, tr.Stars())
	assert.Len(t, tr.Completed(), 4)
	assert.True(t, tr.IsCompleted("d"))
}

func TestTracker_StarsNeverDecrease(t *testing.T) {
	tr := newQuiet()
	prev := 0
	for _, id := range []string{"x", "x", "y", "", "z", "w", "y"} {
		got := tr.CompleteChallenge(id)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := newQuiet()
	tr.CompleteChallenge("a")
	tr.CompleteChallenge("b")
	before := tr.Episode()

	var got []Update
	tr.Subscribe(func(u Update) { got = append(got, u) })

	tr.Reset()
	assert.Equal(t, 0, tr.Stars())
	assert.Empty(t, tr.Completed())
	assert.NotEqual(t, before, tr.Episode())
	require.Len(t, got, 1)
	assert.Equal(t, Update{Stars: 0, Episode: tr.Episode()}, got[0])

	assert.Equal(t, 1, tr.CompleteChallenge("a"))
}

func TestTracker_SubscribeUnsubscribe(t *testing.T) {
	tr := newQuiet()
	var a, b []int
	subA := tr.Subscribe(func(u Update) { a = append(a, u.Stars) })
	tr.Subscribe(func(u Update) { b = append(b, u.Stars) })
	require.NotNil(t, subA)
	assert.Equal(t, 2, tr.ListenerCount())

	tr.CompleteChallenge("one")
	subA.Unsubscribe()
	subA.Unsubscribe()
	tr.CompleteChallenge("two")

	assert.Equal(t, []int{1}, a)
	assert.Equal(t, []int{1, 2}, b)
	assert.Equal(t, 1, tr.ListenerCount())

	// duplicate does not notify
	tr.CompleteChallenge("two")
	assert.Equal(t, []int{1, 2}, b)
}

func TestTracker_ListenerMayReenter(t *testing.T) {
	tr := newQuiet()
	var seen []int
	tr.Subscribe(func(u Update) {
		seen = append(seen, tr.Stars())
	})
	tr.CompleteChallenge("a")
	assert.Equal(t, []int{1}, seen)
}

func TestTracker_Dispose(t *testing.T) {
	tr := newQuiet()
	var calls int
	tr.Subscribe(func(Update) { calls++ })
	tr.Dispose()

	assert.Equal(t, 0, tr.CompleteChallenge("a"))
	tr.Reset()
	assert.Nil(t, tr.Subscribe(func(Update) {}))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, tr.ListenerCount())
}

func TestTracker_MirrorsToBus(t *testing.T) {
	bus := event.NewBus()
	tr := newQuiet(WithBus(bus))

	var types []event.EventType
	var completed *event.ChallengeCompletedPayload
	bus.Subscribe(func(ev event.GameEvent) {
		types = append(types, ev.Type)
		if p, ok := ev.Payload.(*event.ChallengeCompletedPayload); ok {
			completed = p
		}
	})

	tr.CompleteChallenge("keypad-challenge")
	require.NotNil(t, completed)
	assert.Equal(t, "keypad-challenge", completed.ChallengeID)
	assert.Equal(t, 1, completed.Stars)
	assert.Equal(t, tr.Episode(), completed.Episode)

	tr.Reset()
	assert.Equal(t, []event.EventType{
		event.EventChallengeCompleted,
		event.EventStarsChanged,
		event.EventChallengesReset,
		event.EventStarsChanged,
	}, types)
}

func TestTracker_Concurrent(t *testing.T) {
	tr := newQuiet(WithMaxStars(100))
	var wg sync.WaitGroup
	ids := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range ids {
				tr.CompleteChallenge(id)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(ids), tr.Stars())
}
