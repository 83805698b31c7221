package event

// EventType represents the type of room event
type EventType int

const (
	// EventNone is never published, used as the zero value
	EventNone EventType = iota

	// === Challenge Event ===

	// EventChallengeCompleted signals a newly completed challenge id
	// Trigger: challenge.Tracker.CompleteChallenge with an unseen id
	// Consumer: Room (logging), harness HUD | Payload: *ChallengeCompletedPayload
	EventChallengeCompleted

	// EventStarsChanged carries the star count after any tracker transition
	// Trigger: completion or reset
	// Consumer: star display, success gating | Payload: *StarsChangedPayload
	EventStarsChanged

	// EventChallengesReset signals a cleared tracker and a new episode
	// Trigger: challenge.Tracker.Reset
	// Consumer: Room (puzzle reset) | Payload: *ChallengesResetPayload
	EventChallengesReset

	// === Keypad Event ===

	// EventKeypadOutcome reports the result of a submitted code
	// Trigger: system.Keypad.Submit
	// Consumer: logging, HUD | Payload: *KeypadOutcomePayload
	EventKeypadOutcome

	// EventKeypadCleared signals the delayed buffer reset
	// Trigger: keypad reset task | Payload: nil
	EventKeypadCleared

	// === Prop Event ===

	// EventLightToggled reports the wall switch state, the laser is powered while lit
	// Trigger: system.Switch.Toggle | Payload: *ToggledPayload
	EventLightToggled

	// EventFlashlightToggled reports the flashlight state
	// Trigger: system.Flashlight.Toggle | Payload: *ToggledPayload
	EventFlashlightToggled

	// === Room Event ===

	// EventPhaseChanged reports a room phase transition
	// Trigger: Room.Start, success gating, Room.Restart | Payload: *PhaseChangedPayload
	EventPhaseChanged

	// EventRoomCompleted signals that every star was collected
	// Trigger: stars reached MaxStars
	// Consumer: success screen | Payload: *StarsChangedPayload
	EventRoomCompleted
)
