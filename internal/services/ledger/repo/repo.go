// Package repo provides the ledger repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/core/streak"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/platform/store"
	ptime "eueoeo/internal/platform/time"
	"eueoeo/internal/services/ledger/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the ledger repository
type Storage interface {
	InsertHistory(ctx context.Context, ev domain.Event) error
	ParticipantForUpdate(ctx context.Context, actorID int64) (domain.Participant, error)
	ApplyCheckin(ctx context.Context, actorID int64, st streak.State) error
	UpsertParticipant(ctx context.Context, m domain.Member) error
	UpsertMembers(ctx context.Context, ms []domain.Member) error
	LatestEventID(ctx context.Context) (snowflake.ID, bool, error)
}

// InsertHistory implements Storage
// a unique violation on event_id maps to ErrorCodeDuplicateKey for the service
func (s *pg) InsertHistory(ctx context.Context, ev domain.Event) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO checkin_history (event_id, actor_id)
		VALUES ($1, $2)`,
		int64(ev.ID), ev.ActorID,
	)
	return perr.FromPostgres(err, "insert history")
}

// ParticipantForUpdate implements Storage
// the row lock serializes concurrent Record calls for the same actor
func (s *pg) ParticipantForUpdate(ctx context.Context, actorID int64) (domain.Participant, error) {
	var (
		p    domain.Participant
		last *time.Time
	)
	err := s.q.QueryRow(ctx, `
		SELECT actor_id, name, checkin_count, longest_streak, current_streak, last_date
		FROM participants
		WHERE actor_id = $1
		FOR UPDATE`,
		actorID,
	).Scan(&p.ActorID, &p.Name, &p.Count, &p.Streak.Longest, &p.Streak.Current, &last)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Participant{}, perr.NotFoundf("participant %d not enrolled", actorID)
		}
		return domain.Participant{}, perr.FromPostgres(err, "select participant")
	}
	if last != nil {
		p.Streak.LastDay = *last
	}
	return p, nil
}

// ApplyCheckin implements Storage
// the update must hit exactly the row locked by ParticipantForUpdate
func (s *pg) ApplyCheckin(ctx context.Context, actorID int64, st streak.State) error {
	err := store.ExecOne(ctx, s.q, `
		UPDATE participants
		SET checkin_count  = checkin_count + 1,
		    longest_streak = $2,
		    current_streak = $3,
		    last_date      = $4
		WHERE actor_id = $1`,
		actorID, st.Longest, st.Current, ptime.Ptr(st.LastDay),
	)
	return perr.FromPostgres(err, "apply checkin")
}

// UpsertParticipant implements Storage
// only the display name changes on conflict; counters are never touched here
func (s *pg) UpsertParticipant(ctx context.Context, m domain.Member) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO participants (actor_id, name)
		VALUES ($1, $2)
		ON CONFLICT (actor_id) DO UPDATE SET name = EXCLUDED.name`,
		m.ActorID, m.Name,
	)
	return perr.FromPostgres(err, "upsert participant")
}

// UpsertMembers implements Storage
func (s *pg) UpsertMembers(ctx context.Context, ms []domain.Member) error {
	if len(ms) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO participants (actor_id, name) VALUES `)

	args := make([]any, 0, len(ms)*2)
	for i, m := range ms {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "($%d,$%d)", i*2+1, i*2+2)
		args = append(args, m.ActorID, m.Name)
	}
	sb.WriteString(` ON CONFLICT (actor_id) DO UPDATE SET name = EXCLUDED.name`)

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgres(err, "upsert members")
}

// LatestEventID implements Storage
func (s *pg) LatestEventID(ctx context.Context) (snowflake.ID, bool, error) {
	id, err := store.Scalar[*int64](ctx, s.q, `SELECT MAX(event_id) FROM checkin_history`)
	if err != nil {
		return 0, false, perr.FromPostgres(err, "latest event id")
	}
	if id == nil {
		return 0, false, nil
	}
	return snowflake.ID(*id), true, nil
}
