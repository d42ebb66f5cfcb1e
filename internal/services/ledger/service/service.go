// Package service implements the transactional check-in ledger
package service

import (
	"context"
	stderrs "errors"
	"time"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/core/streak"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/platform/logger"
	"eueoeo/internal/services/ledger/domain"
	"eueoeo/internal/services/ledger/repo"
)

// sentinels used to roll the Record tx back without surfacing an error
var (
	errDuplicateEvent = stderrs.New("ledger: duplicate event")
	errUnknownActor   = stderrs.New("ledger: unknown actor")
)

// Config for the ledger service
type Config struct {
	// Location resolves an event id to its civil date
	Location *time.Location
}

// Service implements domain.RecorderPort and domain.ReaderPort
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	loc    *time.Location
}

// New constructs a ledger service bound to a Postgres tx runner
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{tx: tx, binder: binder, loc: loc}
}

// Record applies one validated event inside a single transaction.
// The history insert and the participant read-modify-write either both
// land or neither does; Duplicate and UnknownActor roll the tx back and
// come back as outcomes, not errors
func (s *Service) Record(ctx context.Context, ev domain.Event) (domain.Outcome, error) {
	day := civilDay(ev.ID, s.loc)

	err := s.tx.Tx(ctx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)

		if err := st.InsertHistory(ctx, ev); err != nil {
			if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
				return errDuplicateEvent
			}
			return err
		}

		p, err := st.ParticipantForUpdate(ctx, ev.ActorID)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				return errUnknownActor
			}
			return err
		}

		return st.ApplyCheckin(ctx, ev.ActorID, streak.Advance(p.Streak, day))
	})

	switch {
	case err == nil:
		return domain.Accepted, nil
	case stderrs.Is(err, errDuplicateEvent):
		return domain.Duplicate, nil
	case stderrs.Is(err, errUnknownActor):
		logger.C(ctx).Warn().
			Int64("actor_id", ev.ActorID).
			Int64("event_id", int64(ev.ID)).
			Msg("check-in from actor without a participant row")
		return domain.UnknownActor, nil
	default:
		return 0, err
	}
}

// UpsertParticipant implements domain.RecorderPort
func (s *Service) UpsertParticipant(ctx context.Context, m domain.Member) error {
	return s.binder.Bind(s.tx).UpsertParticipant(ctx, m)
}

// SyncMembers implements domain.RecorderPort
func (s *Service) SyncMembers(ctx context.Context, ms []domain.Member) error {
	if len(ms) == 0 {
		return nil
	}
	return s.tx.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).UpsertMembers(ctx, ms)
	})
}

// LatestEventID implements domain.ReaderPort
func (s *Service) LatestEventID(ctx context.Context) (snowflake.ID, bool, error) {
	return s.binder.Bind(s.tx).LatestEventID(ctx)
}

// civilDay resolves id to midnight of its calendar date in loc
func civilDay(id snowflake.ID, loc *time.Location) time.Time {
	y, m, d := id.Date(loc)
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
