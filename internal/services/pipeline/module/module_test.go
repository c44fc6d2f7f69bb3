package module

import (
	"context"
	"testing"

	"groundwatch/internal/core/area"
	"groundwatch/internal/core/geo"
	"groundwatch/internal/core/raster"
	"groundwatch/internal/modkit"
	"groundwatch/internal/platform/testkit"

	alertsdom "groundwatch/internal/services/alerts/domain"
	measdom "groundwatch/internal/services/measurements/domain"
	"groundwatch/internal/services/pipeline/domain"
	"groundwatch/internal/services/pipeline/service"
)

type stubCatalog struct{}

func (stubCatalog) FetchLatest(context.Context, geo.Region, int, float64) (raster.Sample, error) {
	return raster.Sample{}, nil
}
func (stubCatalog) Download(context.Context, raster.Sample) (string, error) { return "", nil }
func (stubCatalog) Decode(string) (int, int, []uint16, []uint16, []uint16, error) {
	return 0, 0, nil, nil, nil, nil
}

type stubSegmenter struct{}

func (stubSegmenter) Segment(context.Context, raster.Raster) (area.Mask, error) {
	return area.Mask{}, nil
}

type stubHistory struct{}

func (stubHistory) Latest(context.Context, string) (*measdom.Measurement, error) { return nil, nil }
func (stubHistory) List(
	context.Context, string, measdom.AfterKey, int,
) ([]measdom.Measurement, measdom.AfterKey, error) {
	return nil, measdom.AfterKey{}, nil
}

type stubMeasWriter struct{}

func (stubMeasWriter) Insert(context.Context, measdom.Measurement) (string, error) { return "", nil }

type stubAlertWriter struct{}

func (stubAlertWriter) Insert(context.Context, alertsdom.Alert) (string, error) { return "", nil }

func stubPorts() domain.Ports {
	return domain.Ports{
		Catalog:      stubCatalog{},
		Segmenter:    stubSegmenter{},
		History:      stubHistory{},
		Measurements: stubMeasWriter{},
		Alerts:       stubAlertWriter{},
	}
}

func TestNewOverridesWinOverEnv(t *testing.T) {
	t.Setenv("GW_PIPELINE_DAYS_BACK", "7")
	t.Setenv("GW_PIPELINE_FORCE_ALERT", "0")
	t.Setenv("GW_PIPELINE_DRY_RUN", "0")

	m := New(modkit.Deps{}, Options{
		MaxAgeDays: 45,
		ForceAlert: true,
		DryRun:     true,
	}, modkit.WithPorts(stubPorts()))

	runner := m.Ports().(Ports).Runner.(*service.Service)
	if runner.Cfg.MaxAgeDays != 45 {
		t.Fatalf("max age: got %d, want the override", runner.Cfg.MaxAgeDays)
	}
	if !runner.Cfg.ForceAlert || !runner.Cfg.DryRun {
		t.Fatalf("bool overrides lost: %+v", runner.Cfg)
	}
}

func TestNewFallsBackToEnv(t *testing.T) {
	t.Setenv("GW_PIPELINE_DAYS_BACK", "7")
	t.Setenv("GW_PIPELINE_DRY_RUN", "1")

	m := New(modkit.Deps{}, Options{}, modkit.WithPorts(stubPorts()))

	runner := m.Ports().(Ports).Runner.(*service.Service)
	if runner.Cfg.MaxAgeDays != 7 {
		t.Fatalf("max age: got %d, want env value", runner.Cfg.MaxAgeDays)
	}
	if !runner.Cfg.DryRun {
		t.Fatal("env dry run must stick without an override")
	}
	if runner.Cfg.Region.ID != "chingola-zambia" {
		t.Fatalf("region default: got %q", runner.Cfg.Region.ID)
	}
}

func TestNewGuardsPorts(t *testing.T) {
	testkit.MustPanic(t, func() {
		New(modkit.Deps{}, Options{})
	})

	p := stubPorts()
	p.Alerts = nil
	testkit.MustPanic(t, func() {
		New(modkit.Deps{}, Options{}, modkit.WithPorts(p))
	})
}
