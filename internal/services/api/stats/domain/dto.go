// Package domain holds DTOs for the statistics service
package domain

// TotalRow is one line of the all-time completion ranking
type TotalRow struct {
	Name  string `json:"name" example:"yun"`
	Count int64  `json:"count" example:"365"`
}

// StreaksInput selects the streak ranking basis
type StreaksInput struct {
	Basis string `json:"basis" validate:"required,oneof=current longest" example:"current"`
}

// StreakRow is one line of the streak ranking
type StreakRow struct {
	Name string `json:"name" example:"yun"`
	Days int    `json:"days" example:"12"`
}

// YearlyInput optionally pins the year; nil means the current year
type YearlyInput struct {
	Year *int `json:"year,omitempty" validate:"omitempty,min=2015,max=2100" example:"2024"`
}

// YearlyRow is one participant's completion count for the year
type YearlyRow struct {
	Name  string `json:"name" example:"yun"`
	Count int64  `json:"count" example:"200"`
}

// YearlyReport is the resolved yearly ranking
type YearlyReport struct {
	Year int         `json:"year" example:"2024"`
	Days int         `json:"days" example:"366"`
	Rows []YearlyRow `json:"rows"`
}

// ParticipantInput identifies one participant
type ParticipantInput struct {
	ActorID int64 `json:"actor_id" validate:"required" example:"123456789012345678"`
	Year    *int  `json:"year,omitempty" validate:"omitempty,min=2015,max=2100" example:"2024"`
}

// ParticipantDetail is the per-participant breakdown
type ParticipantDetail struct {
	Name        string  `json:"name" example:"yun"`
	Total       int64   `json:"total" example:"812"`
	Longest     int     `json:"longest_streak" example:"45"`
	Current     int     `json:"current_streak" example:"3"`
	Year        int     `json:"year" example:"2024"`
	YearCount   int64   `json:"year_count" example:"200"`
	YearPercent float64 `json:"year_percent" example:"54.6"`

	// MissingDays lists the exact dates only when fewer than the
	// reporting threshold are missing; MissingCount is always set
	MissingCount int      `json:"missing_count" example:"3"`
	MissingDays  []string `json:"missing_days,omitempty" example:"2024-03-02"`
}
