// Package system holds the room's interactive pieces: the follow camera, puzzle checkers,
// the keypad, and the light switches. Every piece is driven from the tick goroutine
package system

// Completer receives challenge completions, satisfied by *challenge.Tracker
type Completer interface {
	CompleteChallenge(id string) int
}

type nopCompleter struct{}

func (nopCompleter) CompleteChallenge(string) int { return 0 }

func completerOrNop(c Completer) Completer {
	if c == nil {
		return nopCompleter{}
	}
	return c
}
