// Package module implements the imagery module
package module

import (
	"groundwatch/internal/modkit"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/services/imagery/domain"
	"groundwatch/internal/services/imagery/service"
)

// Ports exposed by the imagery module
type Ports struct {
	Catalog domain.CatalogPort
}

// Module implements the imagery module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new imagery module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(service.Config{
		BaseURL:    opts.BaseURL,
		Collection: opts.Collection,
		Timeout:    opts.Timeout,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Catalog: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "imagery" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
