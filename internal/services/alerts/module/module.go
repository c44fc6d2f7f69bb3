// Package module implements the alerts service module
package module

import (
	"groundwatch/internal/modkit"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/services/alerts/domain"
	"groundwatch/internal/services/alerts/repo"
	"groundwatch/internal/services/alerts/service"
)

// Ports exposed by the alerts module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements the alerts service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new alerts module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer: svc,
		Query:  svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "alerts" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
