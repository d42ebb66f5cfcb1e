package domain

import (
	"context"

	"eueoeo/internal/core/snowflake"
)

// SourcePort pages messages out of the channel history in id order
type SourcePort interface {
	// ListAfter returns up to limit messages strictly after the given id.
	// Order is not guaranteed; the caller sorts
	ListAfter(ctx context.Context, after snowflake.ID, limit int) ([]SourceMessage, error)

	// Head returns the id of the newest message, false when the channel is empty
	Head(ctx context.Context) (snowflake.ID, bool, error)
}

// RunnerPort drives the catch-up loop and accepts live events
type RunnerPort interface {
	Run(ctx context.Context) (RunReport, error)
	Submit(ctx context.Context, msg SourceMessage) error
}
