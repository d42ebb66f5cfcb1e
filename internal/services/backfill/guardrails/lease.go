package guardrails

import (
	"context"
	"errors"

	"eueoeo/internal/modkit"
	"eueoeo/internal/platform/store"
)

// ErrLeaseHeld signals another worker is already backfilling the channel.
var ErrLeaseHeld = errors.New("backfill: channel lease already held")

// MakeChannelLease returns a function that claims a per-channel run lease
// in Postgres and runs do while holding it. Two ingest processes pointed at
// the same channel would otherwise interleave pages and fight over the
// cursor row. The lease row is deleted when the run finishes; a crashed
// holder leaves a stale row that the operator clears by hand.
// It assumes the ingest_run_leases table exists.
func MakeChannelLease(
	deps modkit.Deps,
) func(ctx context.Context, channelID int64, do func(context.Context) error) error {
	return func(ctx context.Context, channelID int64, do func(context.Context) error) error {
		var claimed bool
		err := deps.PG.Tx(ctx, func(q store.RowQuerier) error {
			rows, err := q.Query(ctx, `
				insert into ingest_run_leases (channel_id)
				values ($1)
				on conflict (channel_id) do nothing
				returning true
			`, channelID)
			if err != nil {
				return err
			}
			defer rows.Close()
			if rows.Next() {
				claimed = true
			}
			return nil
		})
		if err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld // clean skip
		}

		defer func() {
			// release on a fresh context so shutdown cancellation cannot strand the lease
			_, _ = deps.PG.Exec(context.WithoutCancel(ctx),
				`delete from ingest_run_leases where channel_id = $1`, channelID)
		}()
		return do(ctx)
	}
}
