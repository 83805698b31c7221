package system

import (
	"io"
	"log"
)

type recordingCompleter struct {
	calls []string
}

func (r *recordingCompleter) CompleteChallenge(id string) int {
	r.calls = append(r.calls, id)
	return len(r.calls)
}

var quiet = log.New(io.Discard, "", 0)
