// Package module implements the pipeline module
package module

import (
	"groundwatch/internal/modkit"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/services/pipeline/domain"
	"groundwatch/internal/services/pipeline/service"
)

// Ports exposed by the pipeline module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new pipeline module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("pipeline"),
	}, opts...)...)

	// guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("pipeline module: expected WithPorts(pipeline/domain.Ports)")
	}
	if ports.Catalog == nil || ports.Segmenter == nil {
		panic("pipeline module: Ports missing Catalog or Segmenter")
	}
	if ports.History == nil || ports.Measurements == nil || ports.Alerts == nil {
		panic("pipeline module: Ports missing store ports")
	}

	// merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.MaxAgeDays != 0 {
		cfg.MaxAgeDays = overrides.MaxAgeDays
	}
	// bool overrides win (default false if the caller didn't set them)
	cfg.ForceAlert = cfg.ForceAlert || overrides.ForceAlert
	cfg.DryRun = cfg.DryRun || overrides.DryRun

	runner := service.New(ports, service.Config{
		Region:       cfg.Region,
		PixelSizeM:   cfg.PixelSizeM,
		MaxAgeDays:   cfg.MaxAgeDays,
		CloudCeiling: cfg.CloudCeiling,
		Thresholds:   cfg.Thresholds,
		ModelVersion: cfg.ModelVersion,
		Confidence:   cfg.Confidence,
		ForceAlert:   cfg.ForceAlert,
		DryRun:       cfg.DryRun,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pipeline" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ phttp.Router) {}
