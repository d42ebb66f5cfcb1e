// Package repo persists the backfill cursor checkpoint
package repo

import (
	"context"
	"strings"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/services/backfill/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the cursor checkpoint repository
type Storage interface {
	GetCursor(ctx context.Context, channelID int64) (snowflake.ID, bool, error)
	PutCursor(ctx context.Context, cp domain.Checkpoint) error
}

// GetCursor implements Storage
func (s *pg) GetCursor(ctx context.Context, channelID int64) (snowflake.ID, bool, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		SELECT event_id FROM ingest_cursor WHERE channel_id = $1`,
		channelID,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return 0, false, nil
		}
		return 0, false, perr.FromPostgres(err, "get cursor")
	}
	return snowflake.ID(id), true, nil
}

// PutCursor implements Storage
func (s *pg) PutCursor(ctx context.Context, cp domain.Checkpoint) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO ingest_cursor (channel_id, event_id, run_id, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (channel_id) DO UPDATE
		SET event_id = EXCLUDED.event_id, run_id = EXCLUDED.run_id, updated_at = now()`,
		cp.ChannelID, int64(cp.EventID), cp.RunID,
	)
	return perr.FromPostgres(err, "put cursor")
}
