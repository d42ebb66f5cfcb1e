// Package module wires the backfill service
package module

import (
	"eueoeo/internal/core/checkin"
	"eueoeo/internal/modkit"
	"eueoeo/internal/modkit/httpkit"
	"eueoeo/internal/services/backfill/domain"
	"eueoeo/internal/services/backfill/repo"
	"eueoeo/internal/services/backfill/service"
	ledgerdom "eueoeo/internal/services/ledger/domain"
)

// Ports exposed by the backfill module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the backfill service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a backfill module.
// The source adapter and the ledger ports are injected by the binary
func New(
	deps modkit.Deps,
	src domain.SourcePort,
	recorder ledgerdom.RecorderPort,
	reader ledgerdom.ReaderPort,
	rules checkin.Rules,
) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), src, recorder, reader, service.Config{
		ChannelID: opts.ChannelID,
		PageSize:  opts.PageSize,
		Seed:      opts.Seed,
		Rules:     rules,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "backfill" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; backfill has no HTTP surface
func (m *Module) MountRoutes(r httpkit.Router) {}
