package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_FilteredDelivery(t *testing.T) {
	b := NewBus()

	var stars, all []GameEvent
	b.Subscribe(func(ev GameEvent) { stars = append(stars, ev) }, EventStarsChanged)
	b.Subscribe(func(ev GameEvent) { all = append(all, ev) })

	b.Emit(EventStarsChanged, &StarsChangedPayload{Stars: 1})
	b.Emit(EventLightToggled, &ToggledPayload{On: true})

	require.Len(t, stars, 1)
	assert.Equal(t, 1, stars[0].Payload.(*StarsChangedPayload).Stars)
	assert.Len(t, all, 2)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()
	count := 0
	tok := b.Subscribe(func(GameEvent) { count++ })

	b.Emit(EventKeypadCleared, nil)
	assert.True(t, b.Unsubscribe(tok))
	assert.False(t, b.Unsubscribe(tok), "second unsubscribe is a no-op")
	b.Emit(EventKeypadCleared, nil)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, b.HandlerCount())
}

func TestBus_UnsubscribeDuringDelivery(t *testing.T) {
	b := NewBus()
	var tok Token
	first, second := 0, 0
	tok = b.Subscribe(func(GameEvent) {
		first++
		b.Unsubscribe(tok)
	})
	b.Subscribe(func(GameEvent) { second++ })

	b.Emit(EventStarsChanged, &StarsChangedPayload{})
	b.Emit(EventStarsChanged, &StarsChangedPayload{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second, "snapshot keeps the remaining handler intact")
}

func TestBus_ReentrantPublish(t *testing.T) {
	b := NewBus()
	var seen []EventType
	b.Subscribe(func(ev GameEvent) {
		seen = append(seen, ev.Type)
		if ev.Type == EventStarsChanged {
			b.Emit(EventRoomCompleted, &StarsChangedPayload{Stars: 3})
		}
	})

	b.Emit(EventStarsChanged, &StarsChangedPayload{Stars: 3})
	assert.Equal(t, []EventType{EventStarsChanged, EventRoomCompleted}, seen)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, "EventKeypadOutcome", EventKeypadOutcome.String())
	assert.Equal(t, "EventUnknown", EventType(999).String())

	et, ok := GetEventType("EventLightToggled")
	require.True(t, ok)
	assert.Equal(t, EventLightToggled, et)

	assert.True(t, CheckPayload(EventKeypadOutcome, &KeypadOutcomePayload{}))
	assert.False(t, CheckPayload(EventKeypadOutcome, &ToggledPayload{}))
	assert.False(t, CheckPayload(EventKeypadOutcome, nil))
	assert.True(t, CheckPayload(EventKeypadCleared, nil))
	assert.Nil(t, PayloadType(EventKeypadCleared))
}

func TestKeypadOutcomeString(t *testing.T) {
	assert.Equal(t, "granted", OutcomeGranted.String())
	assert.Equal(t, "denied", OutcomeDenied.String())
}

func TestBus_EmitStampsFrame(t *testing.T) {
	b := NewBus()
	var got []int64
	b.Subscribe(func(ev GameEvent) { got = append(got, ev.Frame) })

	b.Emit(EventKeypadCleared, nil)
	b.SetFrame(42)
	b.Emit(EventKeypadCleared, nil)
	b.Publish(GameEvent{Type: EventKeypadCleared, Frame: 7})

	assert.Equal(t, []int64{0, 42, 7}, got)
	assert.Equal(t, int64(42), b.Frame())
}
