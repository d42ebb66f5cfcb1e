// Package domain defines the types and interfaces for the backfill service
package domain

import (
	"time"

	"eueoeo/internal/core/snowflake"
)

// SourceMessage is the raw message view the backfill source returns
type SourceMessage struct {
	ID        snowflake.ID
	AuthorID  int64
	AuthorBot bool
	Content   string
	Edited    bool
}

// Checkpoint is the persisted backfill position for one channel
type Checkpoint struct {
	ChannelID int64
	EventID   snowflake.ID
	RunID     string
	UpdatedAt time.Time
}

// RunReport summarizes one catch-up pass
type RunReport struct {
	RunID    string
	Pages    int
	Seen     int
	Accepted int
	Skipped  int
	Cursor   snowflake.ID
}
