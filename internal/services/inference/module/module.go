// Package module implements the inference module
package module

import (
	"groundwatch/internal/modkit"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/services/inference/domain"
	"groundwatch/internal/services/inference/service"
)

// Ports exposed by the inference module
type Ports struct {
	Segmenter domain.SegmenterPort
}

// Module implements the inference module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new inference module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(service.Config{
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Segmenter: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "inference" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(phttp.Router) {}
