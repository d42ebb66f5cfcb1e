// Package domain defines the types and interfaces for the check-in ledger
package domain

import (
	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/core/streak"
)

// Event is a validated check-in headed for the ledger
type Event struct {
	ID      snowflake.ID
	ActorID int64
}

// Member is one membership feed entry
type Member struct {
	ActorID int64
	Name    string
}

// Participant is the persisted per-actor state
type Participant struct {
	ActorID int64
	Name    string
	Count   int64
	Streak  streak.State
}

// Outcome classifies what Record did with an event
type Outcome int

// The zero Outcome is invalid so an errored Record cannot read as accepted
const (
	// Accepted means the event was new and counters were advanced
	Accepted Outcome = iota + 1

	// Duplicate means the event id was already in history; nothing changed
	Duplicate

	// UnknownActor means the author has no participant row; nothing changed
	UnknownActor
)

// String implements fmt.Stringer for log fields
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Duplicate:
		return "duplicate"
	case UnknownActor:
		return "unknown_actor"
	default:
		return "invalid"
	}
}
