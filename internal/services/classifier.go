package services

import (
	"time"

	"github.com/astrelina/helia/internal/models"
)

type TemporalState string

const (
	StateElapsed  TemporalState = "elapsed"
	StateUpcoming TemporalState = "upcoming"
)

// EventOrigin distinguishes how an elapsed medication event got there: a
// schedule that has since come due reads differently in an audit trail than
// a dose logged directly in the past.
type EventOrigin string

const (
	OriginScheduled EventOrigin = "scheduled"
	OriginLogged    EventOrigin = "logged"
)

type Classification struct {
	State  TemporalState
	Origin EventOrigin
}

// Classify computes the display state of an event against wall-clock time.
// The boundary is inclusive: an event starting exactly now is already due.
// The result is never cached; the clock advances independently of any
// store mutation, so callers re-classify on every read.
func Classify(event models.Event, now time.Time) Classification {
	state := StateUpcoming
	if !event.Start.After(now) {
		state = StateElapsed
	}

	origin := OriginLogged
	if event.IsFuture {
		origin = OriginScheduled
	}

	return Classification{State: state, Origin: origin}
}
