package modkit

import (
	phttp "groundwatch/internal/platform/net/http"
)

// Module is the common surface for modules that can mount routes and expose
// ports. Runner modules implement MountRoutes as a no-op
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
