package wordfetch

import (
	"fmt"
	"time"

	"github.com/javiermolinar/moments/internal/word"
)

// Status is the outcome of the most recent fetch attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a read-only snapshot of the controller's fetch state.
type State struct {
	Status    Status
	Word      *word.Record // nil until the first fetch completes
	LastFetch time.Time    // time of the last successful fetch, or creation time
	LastError string
	Language  string // language fetches are currently issued for
	Seq       uint64 // sequence number of the last applied result
}

// HasWord reports whether a word is available to show.
func (s State) HasWord() bool {
	return s.Word != nil
}

// Loading reports whether Status is StatusLoading.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

func (s State) clone() State {
	if s.Word != nil {
		w := s.Word.Clone()
		s.Word = &w
	}
	return s
}
