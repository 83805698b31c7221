package event

// ChallengeCompletedPayload names the challenge that just awarded a star
type ChallengeCompletedPayload struct {
	ChallengeID string
	Stars       int
	Episode     string
}

// StarsChangedPayload is the tracker state after a transition
type StarsChangedPayload struct {
	Stars   int
	Episode string
}

// ChallengesResetPayload names the episode that starts with the reset
type ChallengesResetPayload struct {
	PreviousEpisode string
	Episode         string
}

// KeypadOutcome is the business result of a submitted code
type KeypadOutcome int

const (
	OutcomeDenied KeypadOutcome = iota
	OutcomeGranted
)

func (o KeypadOutcome) String() string {
	if o == OutcomeGranted {
		return "granted"
	}
	return "denied"
}

// KeypadOutcomePayload carries the submitted buffer and its outcome
type KeypadOutcomePayload struct {
	Entered string
	Outcome KeypadOutcome
}

// ToggledPayload carries a prop's new on/off state
type ToggledPayload struct {
	On bool
}

// PhaseChangedPayload carries phase names to keep this package free of engine imports
type PhaseChangedPayload struct {
	From string
	To   string
}
