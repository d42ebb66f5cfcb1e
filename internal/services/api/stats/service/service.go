// Package service contains the statistics workflows
package service

import (
	"context"
	"time"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/modkit/repokit"
	perr "eueoeo/internal/platform/errors"
	"eueoeo/internal/services/api/stats/domain"
	"eueoeo/internal/services/api/stats/repo"
)

// missingDaysThreshold is the cut between listing dates and counting them
const missingDaysThreshold = 10

// Config for the stats service
type Config struct {
	// Location is the reference zone all calendar math happens in
	Location *time.Location

	// Now is the clock seam, nil means time.Now
	Now func() time.Time
}

// Service implements domain.ServicePort
type Service struct {
	store repo.Repo
	loc   *time.Location
	now   func() time.Time
}

// New constructs a stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Service {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{store: binder.Bind(db), loc: loc, now: now}
}

// TotalRanking implements domain.ServicePort
func (s *Service) TotalRanking(ctx context.Context) ([]domain.TotalRow, error) {
	return s.store.TotalRanking(ctx)
}

// StreakRanking implements domain.ServicePort.
// A current streak only counts while it can still be extended: the last
// check-in must fall on yesterday or today in the reference zone
func (s *Service) StreakRanking(ctx context.Context, in domain.StreaksInput) ([]domain.StreakRow, error) {
	switch in.Basis {
	case "longest":
		return s.store.LongestStreaks(ctx)
	case "current", "":
		today := s.today()
		return s.store.CurrentStreaks(ctx, today.AddDate(0, 0, -1), today.AddDate(0, 0, 1))
	default:
		return nil, perr.InvalidArgf("unknown streak basis %q", in.Basis)
	}
}

// Yearly implements domain.ServicePort
func (s *Service) Yearly(ctx context.Context, in domain.YearlyInput) (domain.YearlyReport, error) {
	year, days := s.resolveYear(in.Year)
	begin, end := s.yearRange(year)

	rows, err := s.store.CountsByRange(ctx, begin, end)
	if err != nil {
		return domain.YearlyReport{}, err
	}
	return domain.YearlyReport{Year: year, Days: days, Rows: rows}, nil
}

// ParticipantDetail implements domain.ServicePort
func (s *Service) ParticipantDetail(ctx context.Context, in domain.ParticipantInput) (domain.ParticipantDetail, error) {
	p, err := s.store.Participant(ctx, in.ActorID)
	if err != nil {
		return domain.ParticipantDetail{}, err
	}

	year, days := s.resolveYear(in.Year)
	begin, end := s.yearRange(year)

	ids, err := s.store.EventIDsByRange(ctx, in.ActorID, begin, end)
	if err != nil {
		return domain.ParticipantDetail{}, err
	}

	missing := s.missingDays(ids, begin, days)

	out := domain.ParticipantDetail{
		Name:         p.Name,
		Total:        p.Count,
		Longest:      p.Longest,
		Current:      p.Current,
		Year:         year,
		YearCount:    int64(len(ids)),
		YearPercent:  percent(len(ids), days),
		MissingCount: len(missing),
	}
	if len(missing) < missingDaysThreshold {
		out.MissingDays = make([]string, 0, len(missing))
		for _, d := range missing {
			out.MissingDays = append(out.MissingDays, d.Format("2006-01-02"))
		}
	}
	return out, nil
}

// resolveYear returns the effective year and its day count.
// A past year counts its full calendar; the current year counts
// from January 1 through today inclusive; a future year has no
// elapsed days yet
func (s *Service) resolveYear(want *int) (year, days int) {
	today := s.today()
	year = today.Year()
	if want != nil && *want != 0 {
		year = *want
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	switch {
	case year < today.Year():
		next := time.Date(year+1, time.January, 1, 0, 0, 0, 0, s.loc)
		return year, int(next.Sub(jan1).Hours() / 24)
	case year > today.Year():
		return year, 0
	default:
		return year, int(today.Sub(jan1).Hours()/24) + 1
	}
}

// yearRange returns the [begin, end) snowflake window for the year
func (s *Service) yearRange(year int) (begin, end snowflake.ID) {
	begin = snowflake.FromTime(time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc))
	end = snowflake.FromTime(time.Date(year+1, time.January, 1, 0, 0, 0, 0, s.loc))
	return begin, end
}

// missingDays walks the day windows of the year against the sorted event
// ids and collects every window that holds no event
func (s *Service) missingDays(ids []snowflake.ID, begin snowflake.ID, days int) []time.Time {
	var out []time.Time
	i := 0
	for d := 0; d < days; d++ {
		dayStart := begin.AddDuration(time.Duration(d) * 24 * time.Hour)
		dayEnd := begin.AddDuration(time.Duration(d+1) * 24 * time.Hour)

		for i < len(ids) && ids[i] < dayStart {
			i++
		}
		if i < len(ids) && ids[i] < dayEnd {
			continue
		}
		out = append(out, dayStart.Time(s.loc))
	}
	return out
}

func (s *Service) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func percent(count, days int) float64 {
	if days <= 0 {
		return 0
	}
	return float64(count) / float64(days) * 100
}
