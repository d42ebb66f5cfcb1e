// Package checkin decides whether an inbound message counts as a daily check-in
package checkin

import (
	"time"

	"eueoeo/internal/core/snowflake"
)

// DefaultToken is the exact content a check-in message must carry
const DefaultToken = "으어어"

// Message is the minimal view of an inbound event the validator needs
type Message struct {
	ID        snowflake.ID
	AuthorID  int64
	AuthorBot bool
	Content   string
	Edited    bool
}

// Rules holds the validation policy for a channel
type Rules struct {
	// Token must match Content byte for byte, no trimming
	Token string

	// Location is the reference zone used to resolve the message date
	Location *time.Location

	// FreePassMonth/FreePassDay mark an annual date (any year) on which
	// any non-bot, unedited message counts regardless of content
	FreePassMonth time.Month
	FreePassDay   int
}

// DefaultRules returns the observed production policy: exact token,
// UTC+9 reference zone, free pass on April 1
func DefaultRules() Rules {
	return Rules{
		Token:         DefaultToken,
		Location:      time.FixedZone("UTC+9", 9*3600),
		FreePassMonth: time.April,
		FreePassDay:   1,
	}
}

// Valid reports whether the message counts as a check-in.
// Bot and edited rejections apply before the free-pass date rule,
// which in turn bypasses only the content comparison
func (r Rules) Valid(m Message) bool {
	if m.AuthorBot || m.Edited {
		return false
	}
	_, month, day := m.ID.Date(r.Location)
	if month == r.FreePassMonth && day == r.FreePassDay {
		return true
	}
	return m.Content == r.Token
}
