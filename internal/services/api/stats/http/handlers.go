// Package http provides the HTTP transport for statistics
package http

import (
	stdhttp "net/http"

	"eueoeo/internal/modkit/httpkit"
	"eueoeo/internal/services/api/stats/domain"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// all-time completion ranking
	httpkit.Get(r, "/total", h.total)

	// streak ranking by basis
	httpkit.PostJSON[domain.StreaksInput](r, "/streaks", h.streaks)

	// per-year completion counts
	httpkit.PostJSON[domain.YearlyInput](r, "/yearly", h.yearly)

	// single participant breakdown
	httpkit.PostJSON[domain.ParticipantInput](r, "/participant", h.participant)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) total(r *stdhttp.Request) (any, error) {
	return h.svc.TotalRanking(r.Context())
}

func (h *handlers) streaks(r *stdhttp.Request, in domain.StreaksInput) (any, error) {
	return h.svc.StreakRanking(r.Context(), in)
}

func (h *handlers) yearly(r *stdhttp.Request, in domain.YearlyInput) (any, error) {
	return h.svc.Yearly(r.Context(), in)
}

func (h *handlers) participant(r *stdhttp.Request, in domain.ParticipantInput) (any, error) {
	return h.svc.ParticipantDetail(r.Context(), in)
}
