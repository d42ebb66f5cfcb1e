// Package repo provides the statistics repository implementation
package repo

import (
	"context"
	"errors"
	"time"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/platform/store"
	"eueoeo/internal/services/api/stats/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

// ParticipantRow is the raw participant record the detail view needs
type ParticipantRow struct {
	Name     string
	Count    int64
	Longest  int
	Current  int
	LastDate *time.Time
}

// Repo defines the statistics read queries
type Repo interface {
	TotalRanking(ctx context.Context) ([]domain.TotalRow, error)
	CurrentStreaks(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.StreakRow, error)
	LongestStreaks(ctx context.Context) ([]domain.StreakRow, error)
	CountsByRange(ctx context.Context, begin, end snowflake.ID) ([]domain.YearlyRow, error)
	Participant(ctx context.Context, actorID int64) (ParticipantRow, error)
	EventIDsByRange(ctx context.Context, actorID int64, begin, end snowflake.ID) ([]snowflake.ID, error)
}

// TotalRanking implements Repo
func (s *pg) TotalRanking(ctx context.Context) ([]domain.TotalRow, error) {
	rows, err := store.Many(ctx, s.q, func(r store.Row) (domain.TotalRow, error) {
		var row domain.TotalRow
		err := r.Scan(&row.Name, &row.Count)
		return row, err
	}, `
		SELECT name, checkin_count
		FROM participants
		WHERE checkin_count > 0
		ORDER BY checkin_count DESC, name ASC`)
	return rows, perr.FromPostgres(err, "total ranking")
}

// CurrentStreaks implements Repo
// only participants whose last check-in falls inside the window still hold a live streak
func (s *pg) CurrentStreaks(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.StreakRow, error) {
	rows, err := store.Many(ctx, s.q, scanStreak, `
		SELECT name, current_streak
		FROM participants
		WHERE current_streak > 0
		  AND last_date >= $1 AND last_date < $2
		ORDER BY current_streak DESC, name ASC`,
		windowStart, windowEnd)
	return rows, perr.FromPostgres(err, "current streaks")
}

// LongestStreaks implements Repo
func (s *pg) LongestStreaks(ctx context.Context) ([]domain.StreakRow, error) {
	rows, err := store.Many(ctx, s.q, scanStreak, `
		SELECT name, longest_streak
		FROM participants
		WHERE longest_streak > 0
		ORDER BY longest_streak DESC, name ASC`)
	return rows, perr.FromPostgres(err, "longest streaks")
}

func scanStreak(r store.Row) (domain.StreakRow, error) {
	var row domain.StreakRow
	err := r.Scan(&row.Name, &row.Days)
	return row, err
}

// CountsByRange implements Repo
// the id range selects history rows by time without touching a timestamp column
func (s *pg) CountsByRange(ctx context.Context, begin, end snowflake.ID) ([]domain.YearlyRow, error) {
	rows, err := store.Many(ctx, s.q, func(r store.Row) (domain.YearlyRow, error) {
		var row domain.YearlyRow
		err := r.Scan(&row.Name, &row.Count)
		return row, err
	}, `
		SELECT p.name, COUNT(*) AS cnt
		FROM checkin_history h
		JOIN participants p ON p.actor_id = h.actor_id
		WHERE h.event_id >= $1 AND h.event_id < $2
		GROUP BY p.name
		ORDER BY cnt DESC, p.name ASC`,
		int64(begin), int64(end))
	return rows, perr.FromPostgres(err, "counts by range")
}

// Participant implements Repo
func (s *pg) Participant(ctx context.Context, actorID int64) (ParticipantRow, error) {
	row, err := store.One(ctx, s.q, func(r store.Row) (ParticipantRow, error) {
		var p ParticipantRow
		err := r.Scan(&p.Name, &p.Count, &p.Longest, &p.Current, &p.LastDate)
		return p, err
	}, `
		SELECT name, checkin_count, longest_streak, current_streak, last_date
		FROM participants
		WHERE actor_id = $1`,
		actorID)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return ParticipantRow{}, perr.NotFoundf("participant %d not found", actorID)
		}
		return ParticipantRow{}, perr.FromPostgres(err, "participant")
	}
	return row, nil
}

// EventIDsByRange implements Repo
func (s *pg) EventIDsByRange(ctx context.Context, actorID int64, begin, end snowflake.ID) ([]snowflake.ID, error) {
	rows, err := store.Many(ctx, s.q, func(r store.Row) (snowflake.ID, error) {
		var id int64
		err := r.Scan(&id)
		return snowflake.ID(id), err
	}, `
		SELECT event_id
		FROM checkin_history
		WHERE actor_id = $1 AND event_id >= $2 AND event_id < $3
		ORDER BY event_id ASC`,
		actorID, int64(begin), int64(end))
	return rows, perr.FromPostgres(err, "event ids by range")
}
