// Package streak holds the pure state transition for consecutive-day counting
package streak

import "time"

// State is a participant's streak position after some event
type State struct {
	Longest int
	Current int

	// LastDay is the calendar date of the most recent counted event,
	// at midnight in the reference zone. Zero until the first event
	LastDay time.Time
}

// sameDay compares two instants at calendar-day granularity
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Advance returns the state after counting an event on day.
// A first-ever event starts a streak of 1. An event exactly one calendar
// day after LastDay extends the streak. Anything else, including a second
// event on the same day as LastDay or an event older than it, resets the
// current streak to 1 and leaves the longest untouched. The same-day
// reset is long-standing observed behavior; callers rely on it
func Advance(prior State, day time.Time) State {
	next := State{Longest: prior.Longest, LastDay: day}
	if !prior.LastDay.IsZero() && sameDay(day, prior.LastDay.AddDate(0, 0, 1)) {
		next.Current = prior.Current + 1
	} else {
		next.Current = 1
	}
	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	return next
}
