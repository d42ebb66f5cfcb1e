// Package module wires the ledger service
package module

import (
	"time"

	"eueoeo/internal/modkit"
	"eueoeo/internal/modkit/httpkit"
	"eueoeo/internal/services/ledger/domain"
	"eueoeo/internal/services/ledger/repo"
	"eueoeo/internal/services/ledger/service"
)

// Ports exposed by the ledger module
type Ports struct {
	Recorder domain.RecorderPort
	Reader   domain.ReaderPort
}

// Module implements the ledger service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new ledger module
func New(deps modkit.Deps, loc *time.Location) *Module {
	svc := service.New(deps.PG, repo.NewPG(), service.Config{Location: loc})

	m := &Module{deps: deps}
	m.ports = Ports{
		Recorder: svc,
		Reader:   svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "ledger" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the ledger has no HTTP surface
func (m *Module) MountRoutes(r httpkit.Router) {}
