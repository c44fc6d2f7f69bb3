// Package module implements the measurements service module
package module

import (
	"groundwatch/internal/modkit"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/services/measurements/domain"
	"groundwatch/internal/services/measurements/repo"
	"groundwatch/internal/services/measurements/service"
)

// Ports exposed by the measurements module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements the measurements service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new measurements module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader: svc,
		Writer: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "measurements" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
