// Package service implements the catch-up ingestion loop
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"eueoeo/internal/core/checkin"
	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/platform/logger"
	"eueoeo/internal/services/backfill/domain"
	"eueoeo/internal/services/backfill/repo"
	ledgerdom "eueoeo/internal/services/ledger/domain"
)

// Config for the backfill service
type Config struct {
	// ChannelID scopes the cursor checkpoint
	ChannelID int64

	// PageSize is the source page size, default 100
	PageSize int

	// Seed is an operator supplied starting cursor for a cold channel, 0 when unset
	Seed snowflake.ID

	// Rules decide which source messages count as check-ins
	Rules checkin.Rules
}

// Service implements domain.RunnerPort
type Service struct {
	tx       repokit.TxRunner
	binder   repokit.Binder[repo.Storage]
	src      domain.SourcePort
	recorder ledgerdom.RecorderPort
	reader   ledgerdom.ReaderPort
	cfg      Config
}

// New constructs a backfill service
func New(
	tx repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	src domain.SourcePort,
	recorder ledgerdom.RecorderPort,
	reader ledgerdom.ReaderPort,
	cfg Config,
) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Service{tx: tx, binder: binder, src: src, recorder: recorder, reader: reader, cfg: cfg}
}

// Run walks the source from the resume cursor to the channel head.
// The cursor is checkpointed only after a page fully applied, so a failed
// page is re-fetched on the next run. Cancellation lands between pages
func (s *Service) Run(ctx context.Context) (domain.RunReport, error) {
	report := domain.RunReport{RunID: uuid.NewString()}
	log := logger.C(ctx).With().
		Str("run_id", report.RunID).
		Int64("channel_id", s.cfg.ChannelID).
		Logger()

	cursor, err := s.resumeCursor(ctx)
	if err != nil {
		return report, err
	}
	report.Cursor = cursor

	head, ok, err := s.src.Head(ctx)
	if err != nil {
		return report, perr.Wrap(err, perr.ErrorCodeUnavailable, "source head")
	}
	if !ok || head <= cursor {
		log.Info().Int64("cursor", int64(cursor)).Msg("nothing to backfill")
		return report, nil
	}

	log.Info().
		Int64("cursor", int64(cursor)).
		Int64("head", int64(head)).
		Msg("backfill starting")

	for cursor < head {
		if ctx.Err() != nil {
			log.Info().Int64("cursor", int64(cursor)).Msg("backfill interrupted, cursor checkpointed")
			return report, nil
		}

		page, err := s.src.ListAfter(ctx, cursor, s.cfg.PageSize)
		if err != nil {
			return report, perr.Wrap(err, perr.ErrorCodeUnavailable, "source page")
		}
		if len(page) == 0 {
			break
		}

		sort.Slice(page, func(i, j int) bool { return page[i].ID < page[j].ID })

		// a fetched page always drains; the loop top is the only stop point
		apply := context.WithoutCancel(ctx)
		for _, msg := range page {
			report.Seen++
			if !s.cfg.Rules.Valid(toCheckin(msg)) {
				report.Skipped++
				continue
			}
			out, err := s.recorder.Record(apply, ledgerdom.Event{ID: msg.ID, ActorID: msg.AuthorID})
			if err != nil {
				// cursor for this page stays unpersisted; the page retries next run
				return report, err
			}
			if out == ledgerdom.Accepted {
				report.Accepted++
			} else {
				report.Skipped++
			}
		}

		// the cursor advances past invalid and skipped events too
		cursor = page[len(page)-1].ID
		if err := s.checkpoint(ctx, cursor, report.RunID); err != nil {
			return report, err
		}
		report.Cursor = cursor
		report.Pages++

		if len(page) < s.cfg.PageSize {
			break
		}
	}

	log.Info().
		Int("pages", report.Pages).
		Int("seen", report.Seen).
		Int("accepted", report.Accepted).
		Int("skipped", report.Skipped).
		Int64("cursor", int64(report.Cursor)).
		Msg("backfill done")
	return report, nil
}

// Submit validates and records a single live event.
// The cursor is not touched; resume positions derive from history
func (s *Service) Submit(ctx context.Context, msg domain.SourceMessage) error {
	if !s.cfg.Rules.Valid(toCheckin(msg)) {
		return nil
	}
	_, err := s.recorder.Record(ctx, ledgerdom.Event{ID: msg.ID, ActorID: msg.AuthorID})
	return err
}

// resumeCursor picks the furthest of checkpoint, ledger history, and operator seed
func (s *Service) resumeCursor(ctx context.Context) (snowflake.ID, error) {
	var (
		cursor snowflake.ID
		found  bool
	)

	persisted, ok, err := s.binder.Bind(s.tx).GetCursor(ctx, s.cfg.ChannelID)
	if err != nil {
		return 0, err
	}
	if ok {
		cursor, found = persisted, true
	}

	latest, ok, err := s.reader.LatestEventID(ctx)
	if err != nil {
		return 0, err
	}
	if ok && latest > cursor {
		cursor, found = latest, true
	}

	if s.cfg.Seed > cursor {
		cursor, found = s.cfg.Seed, true
	}

	if !found {
		return 0, perr.InvalidArgf("cold start: no cursor, no history, and no seed for channel %d", s.cfg.ChannelID)
	}
	return cursor, nil
}

func (s *Service) checkpoint(ctx context.Context, cursor snowflake.ID, runID string) error {
	// shutdown cancellation must not lose a fully applied page
	ctx = context.WithoutCancel(ctx)
	return s.tx.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).PutCursor(ctx, domain.Checkpoint{
			ChannelID: s.cfg.ChannelID,
			EventID:   cursor,
			RunID:     runID,
		})
	})
}

func toCheckin(m domain.SourceMessage) checkin.Message {
	return checkin.Message{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		AuthorBot: m.AuthorBot,
		Content:   m.Content,
		Edited:    m.Edited,
	}
}
