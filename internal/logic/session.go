package logic

import (
	"errors"
	"fmt"
)

// State is a stage of one login-to-report session.
type State string

const (
	StateLogin   State = "login"
	StateLoading State = "loading"
	StateReport  State = "report"
	StateError   State = "error"
)

type Event string

const (
	EventSubmit     Event = "submit"
	EventLoaded     Event = "loaded"
	EventNotFound   Event = "notFound"
	EventLoadFailed Event = "loadFailed"
	EventBack       Event = "back"
)

var ErrInvalidTransition = errors.New("invalid transition")

var transitions = map[State]map[Event]State{
	StateLogin: {
		EventSubmit: StateLoading,
	},
	StateLoading: {
		EventLoaded:     StateReport,
		EventNotFound:   StateError,
		EventLoadFailed: StateError,
	},
	StateReport: {
		EventBack: StateLogin,
	},
	StateError: {
		EventBack: StateLogin,
	},
}

// Transition returns the state reached from s on e. On an invalid pair it
// returns s unchanged with an error wrapping ErrInvalidTransition.
func Transition(s State, e Event) (State, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}

// SlideCursor tracks the visible slide. Moves past either end are no-ops.
type SlideCursor struct {
	pos   int
	total int
}

func NewSlideCursor(total int) *SlideCursor {
	if total < 0 {
		total = 0
	}
	return &SlideCursor{total: total}
}

func (c *SlideCursor) Pos() int   { return c.pos }
func (c *SlideCursor) Total() int { return c.total }

func (c *SlideCursor) Next() bool {
	if c.pos+1 >= c.total {
		return false
	}
	c.pos++
	return true
}

func (c *SlideCursor) Prev() bool {
	if c.pos == 0 {
		return false
	}
	c.pos--
	return true
}

// GoTo jumps to i when it is a valid index.
func (c *SlideCursor) GoTo(i int) bool {
	if i < 0 || i >= c.total {
		return false
	}
	c.pos = i
	return true
}

func (c *SlideCursor) AtStart() bool { return c.pos == 0 }
func (c *SlideCursor) AtEnd() bool   { return c.total == 0 || c.pos == c.total-1 }
