package domain

import (
	"context"

	"eueoeo/internal/core/snowflake"
)

// RecorderPort applies events and membership to the ledger
type RecorderPort interface {
	Record(ctx context.Context, ev Event) (Outcome, error)
	UpsertParticipant(ctx context.Context, m Member) error
	SyncMembers(ctx context.Context, ms []Member) error
}

// ReaderPort exposes the ledger positions other services need
type ReaderPort interface {
	LatestEventID(ctx context.Context) (snowflake.ID, bool, error)
}
