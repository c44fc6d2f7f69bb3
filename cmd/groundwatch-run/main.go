package main

import (
	"context"
	"flag"
	"os"

	"groundwatch/internal/modkit"
	"groundwatch/internal/modkit/module"
	"groundwatch/internal/modkit/repokit"
	"groundwatch/internal/platform/config"
	"groundwatch/internal/platform/logger"
	"groundwatch/internal/platform/store"

	alertsmod "groundwatch/internal/services/alerts/module"
	imgmod "groundwatch/internal/services/imagery/module"
	infmod "groundwatch/internal/services/inference/module"
	measmod "groundwatch/internal/services/measurements/module"
	pipedom "groundwatch/internal/services/pipeline/domain"
	pipemod "groundwatch/internal/services/pipeline/module"
)

func main() {
	config.LoadDotenv()
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	var (
		daysBack   = flag.Int("days-back", 30, "imagery search window in days")
		forceAlert = flag.Bool("force-alert", false, "dispatch an alert regardless of thresholds")
		dryRun     = flag.Bool("dry-run", false, "compute but do not write measurement or alert")
	)
	flag.Parse()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "groundwatch-run",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// dependency modules first
	img := imgmod.New(deps)
	inf := infmod.New(deps)
	meas := measmod.New(deps)
	al := alertsmod.New(deps)

	pm := pipemod.New(
		deps,
		pipemod.Options{
			MaxAgeDays: *daysBack,
			ForceAlert: *forceAlert,
			DryRun:     *dryRun,
		},
		modkit.WithPorts(pipedom.Ports{
			Catalog:      module.MustPortsOf[imgmod.Ports](img).Catalog,
			Segmenter:    module.MustPortsOf[infmod.Ports](inf).Segmenter,
			History:      module.MustPortsOf[measmod.Ports](meas).Reader,
			Measurements: module.MustPortsOf[measmod.Ports](meas).Writer,
			Alerts:       module.MustPortsOf[alertsmod.Ports](al).Writer,
		}),
	)

	module.Register(img.Name(), img.Ports())
	module.Register(inf.Name(), inf.Ports())
	module.Register(meas.Name(), meas.Ports())
	module.Register(al.Name(), al.Ports())
	module.Register(pm.Name(), pm.Ports())

	ports := pm.Ports().(pipemod.Ports)
	rep := ports.Runner.Run(context.Background())
	os.Exit(rep.Outcome.ExitCode())
}
