// Package api provides the read-only monitor HTTP API
package api

import (
	"time"

	"groundwatch/internal/platform/config"
	"groundwatch/internal/platform/logger"
	phttp "groundwatch/internal/platform/net/http"
	"groundwatch/internal/platform/net/middleware"
	"groundwatch/internal/platform/store"

	"groundwatch/internal/modkit"
	"groundwatch/internal/modkit/module"

	alertsmod "groundwatch/internal/services/alerts/module"
	"groundwatch/internal/services/api/monitor"
	measmod "groundwatch/internal/services/measurements/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the monitor API onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	measurements := measmod.New(deps)
	alerts := alertsmod.New(deps)

	mods := []module.Module{measurements, alerts}
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}

	r.Use(middleware.Defaults()...)
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"*"},
	}))
	r.Use(middleware.AccessLog(middleware.AccessLogOptions{Slow: 2 * time.Second}))

	r.Route("/v1", func(v1 phttp.Router) {
		monitor.Register(v1, monitor.Options{
			Config:       opt.Config,
			Store:        opt.Store,
			Measurements: measurements.Ports().(measmod.Ports).Reader,
			Alerts:       alerts.Ports().(alertsmod.Ports).Query,
		})
	})
}
