package domain

import "context"

// ServicePort is the read surface the HTTP layer mounts
type ServicePort interface {
	TotalRanking(ctx context.Context) ([]TotalRow, error)
	StreakRanking(ctx context.Context, in StreaksInput) ([]StreakRow, error)
	Yearly(ctx context.Context, in YearlyInput) (YearlyReport, error)
	ParticipantDetail(ctx context.Context, in ParticipantInput) (ParticipantDetail, error)
}
