package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"groundwatch/internal/core/area"
	"groundwatch/internal/core/change"
	"groundwatch/internal/core/geo"
	"groundwatch/internal/core/raster"
	perr "groundwatch/internal/platform/errors"

	alertsdom "groundwatch/internal/services/alerts/domain"
	measdom "groundwatch/internal/services/measurements/domain"
	"groundwatch/internal/services/pipeline/domain"

	"github.com/paulmach/orb"
)

// fakes

type fakeCatalog struct {
	fetchErr    error
	downloadErr error
	decodeErr   error
	sample      raster.Sample
	width       int
	height      int

	artifact string // set by Download for cleanup assertions
}

func (f *fakeCatalog) FetchLatest(context.Context, geo.Region, int, float64) (raster.Sample, error) {
	if f.fetchErr != nil {
		return raster.Sample{}, f.fetchErr
	}
	return f.sample, nil
}

func (f *fakeCatalog) Download(context.Context, raster.Sample) (string, error) {
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	tmp, err := os.CreateTemp("", "groundwatch-test-artifact-*")
	if err != nil {
		return "", err
	}
	_ = tmp.Close()
	f.artifact = tmp.Name()
	return tmp.Name(), nil
}

func (f *fakeCatalog) Decode(string) (int, int, []uint16, []uint16, []uint16, error) {
	if f.decodeErr != nil {
		return 0, 0, nil, nil, nil, f.decodeErr
	}
	n := f.width * f.height
	return f.width, f.height, make([]uint16, n), make([]uint16, n), make([]uint16, n), nil
}

type fakeSegmenter struct {
	err      error
	positive int
}

func (f *fakeSegmenter) Segment(_ context.Context, r raster.Raster) (area.Mask, error) {
	if f.err != nil {
		return area.Mask{}, f.err
	}
	cells := make([]uint8, r.Width*r.Height)
	for i := 0; i < f.positive && i < len(cells); i++ {
		cells[i] = 1
	}
	return area.Mask{Width: r.Width, Height: r.Height, Cells: cells}, nil
}

type fakeHistory struct {
	err  error
	prev *measdom.Measurement
}

func (f *fakeHistory) Latest(context.Context, string) (*measdom.Measurement, error) {
	return f.prev, f.err
}

func (f *fakeHistory) List(
	context.Context, string, measdom.AfterKey, int,
) ([]measdom.Measurement, measdom.AfterKey, error) {
	return nil, measdom.AfterKey{}, nil
}

type fakeMeasWriter struct {
	err      error
	inserted []measdom.Measurement
}

func (f *fakeMeasWriter) Insert(_ context.Context, m measdom.Measurement) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	m.ID = "meas-1"
	f.inserted = append(f.inserted, m)
	return m.ID, nil
}

type fakeAlertWriter struct {
	err      error
	inserted []alertsdom.Alert
}

func (f *fakeAlertWriter) Insert(_ context.Context, a alertsdom.Alert) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	a.ID = "alert-1"
	f.inserted = append(f.inserted, a)
	return a.ID, nil
}

// harness

type harness struct {
	catalog   *fakeCatalog
	segmenter *fakeSegmenter
	history   *fakeHistory
	meas      *fakeMeasWriter
	alerts    *fakeAlertWriter
	svc       *Service
}

func newHarness(mutate ...func(*harness)) *harness {
	h := &harness{
		catalog: &fakeCatalog{
			sample: raster.Sample{
				SourceURL:   "https://catalog.test/scene.png",
				CaptureDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
				CloudCover:  12.3,
			},
			width:  100,
			height: 100,
		},
		segmenter: &fakeSegmenter{positive: 10000}, // 96.04 ha at 9.8m
		history:   &fakeHistory{},
		meas:      &fakeMeasWriter{},
		alerts:    &fakeAlertWriter{},
	}
	for _, m := range mutate {
		m(h)
	}
	h.svc = New(domain.Ports{
		Catalog:      h.catalog,
		Segmenter:    h.segmenter,
		History:      h.history,
		Measurements: h.meas,
		Alerts:       h.alerts,
	}, Config{
		Region: geo.Region{
			ID:     "chingola-zambia",
			Name:   "Chingola, Zambia",
			Centre: orb.Point{27.85, -12.5},
			Bounds: orb.Bound{Min: orb.Point{27.82, -12.52}, Max: orb.Point{27.88, -12.48}},
		},
	})
	return h
}

func withPrev(areaHa float64) func(*harness) {
	return func(h *harness) {
		h.history.prev = &measdom.Measurement{
			AreaHa:      areaHa,
			CaptureDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		}
	}
}

func mustBeGone(t *testing.T, path string) {
	t.Helper()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		_ = os.Remove(path)
		t.Fatalf("artifact %s was not cleaned up", path)
	}
}

// tests

func TestRunEndToEndHighSeverityAlert(t *testing.T) {
	h := newHarness(withPrev(90.00))

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeDone {
		t.Fatalf("outcome: got %s (err %v)", rep.Outcome, rep.Err)
	}
	if rep.Outcome.ExitCode() != 0 {
		t.Fatal("done must exit 0")
	}
	if rep.AreaHa != 96.04 {
		t.Fatalf("area: got %v, want 96.04", rep.AreaHa)
	}
	if rep.Severity != change.SeverityHigh {
		t.Fatalf("severity: got %s, want high", rep.Severity)
	}
	if !rep.GateOpen {
		t.Fatal("gate must open, both thresholds exceeded")
	}

	if len(h.meas.inserted) != 1 {
		t.Fatalf("measurements inserted: got %d, want 1", len(h.meas.inserted))
	}
	m := h.meas.inserted[0]
	if m.RegionID != "chingola-zambia" || m.AreaHa != 96.04 {
		t.Fatalf("bad measurement: %+v", m)
	}
	if m.ModelVersion != "1.0" || m.Confidence != 0.95 {
		t.Fatalf("model metadata: %+v", m)
	}
	if m.Notes != "Automated detection from satellite imagery. Cloud cover: 12.3%" {
		t.Fatalf("notes: %q", m.Notes)
	}

	if len(h.alerts.inserted) != 1 {
		t.Fatalf("alerts inserted: got %d, want 1", len(h.alerts.inserted))
	}
	a := h.alerts.inserted[0]
	if a.Severity != change.SeverityHigh {
		t.Fatalf("alert severity: got %s", a.Severity)
	}
	if a.Latitude != -12.5 || a.Longitude != 27.85 {
		t.Fatalf("alert location: %+v", a)
	}

	mustBeGone(t, h.catalog.artifact)
}

func TestRunFirstRunAlwaysAlerts(t *testing.T) {
	h := newHarness() // no history

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeDone {
		t.Fatalf("outcome: got %s (err %v)", rep.Outcome, rep.Err)
	}
	if !rep.Comparison.IsFirstRun {
		t.Fatal("expected first run")
	}
	if !rep.GateOpen {
		t.Fatal("first run must open the gate")
	}
	if len(h.meas.inserted) != 1 || len(h.alerts.inserted) != 1 {
		t.Fatalf("inserted: meas=%d alerts=%d", len(h.meas.inserted), len(h.alerts.inserted))
	}
}

func TestRunClosedGatePersistsMeasurementOnly(t *testing.T) {
	// 0.1 ha and ~0.1% over prior: both thresholds closed
	h := newHarness(withPrev(96.04))
	h.segmenter.positive = 10000 // identical area, change 0

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeDone {
		t.Fatalf("outcome: got %s (err %v)", rep.Outcome, rep.Err)
	}
	if rep.GateOpen {
		t.Fatal("gate must stay closed")
	}
	if len(h.meas.inserted) != 1 {
		t.Fatal("measurement must persist even with a closed gate")
	}
	if len(h.alerts.inserted) != 0 {
		t.Fatal("no alert may be written with a closed gate")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunAcquireFailureNothingPersisted(t *testing.T) {
	h := newHarness(func(h *harness) {
		h.catalog.fetchErr = perr.Acquisitionf("no imagery")
	})

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeFailed {
		t.Fatalf("outcome: got %s", rep.Outcome)
	}
	if rep.FailedStage != domain.StageAcquire {
		t.Fatalf("stage: got %s", rep.FailedStage)
	}
	if rep.Outcome.ExitCode() == 0 {
		t.Fatal("failed run must exit non-zero")
	}
	if len(h.meas.inserted) != 0 || len(h.alerts.inserted) != 0 {
		t.Fatal("nothing may persist on failure before the measurement stage")
	}
}

func TestRunInferFailureNothingPersisted(t *testing.T) {
	h := newHarness(func(h *harness) {
		h.segmenter.err = perr.Inferencef("model server returned 500")
	})

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeFailed || rep.FailedStage != domain.StageInfer {
		t.Fatalf("got %s at %s", rep.Outcome, rep.FailedStage)
	}
	if len(h.meas.inserted) != 0 {
		t.Fatal("nothing may persist on inference failure")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunHistoryLookupFailureIsFatal(t *testing.T) {
	h := newHarness(func(h *harness) {
		h.history.err = errors.New("connection refused")
	})

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeFailed || rep.FailedStage != domain.StageAnalyze {
		t.Fatalf("got %s at %s", rep.Outcome, rep.FailedStage)
	}
	if !perr.IsCode(rep.Err, perr.ErrorCodeHistoryLookup) {
		t.Fatalf("err code: got %v", perr.CodeOf(rep.Err))
	}
	if len(h.meas.inserted) != 0 {
		t.Fatal("nothing may persist on history lookup failure")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunPersistFailureIsFatal(t *testing.T) {
	h := newHarness(func(h *harness) {
		h.meas.err = errors.New("insert failed")
	})

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeFailed || rep.FailedStage != domain.StagePersistMeasurement {
		t.Fatalf("got %s at %s", rep.Outcome, rep.FailedStage)
	}
	if !perr.IsCode(rep.Err, perr.ErrorCodePersistMeasurement) {
		t.Fatalf("err code: got %v", perr.CodeOf(rep.Err))
	}
	if len(h.alerts.inserted) != 0 {
		t.Fatal("no alert may follow a failed measurement insert")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunDispatchFailureIsPartialSuccess(t *testing.T) {
	h := newHarness(withPrev(90.00), func(h *harness) {
		h.alerts.err = errors.New("insert failed")
	})

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomePartialSuccess {
		t.Fatalf("outcome: got %s", rep.Outcome)
	}
	if rep.FailedStage != domain.StageDispatch {
		t.Fatalf("stage: got %s", rep.FailedStage)
	}
	if !perr.IsCode(rep.Err, perr.ErrorCodeDispatch) {
		t.Fatalf("err code: got %v", perr.CodeOf(rep.Err))
	}
	// partial success keeps the measurement and still exits 0
	if len(h.meas.inserted) != 1 {
		t.Fatal("measurement must survive a dispatch failure")
	}
	if rep.Outcome.ExitCode() != 0 {
		t.Fatal("partial success must exit 0")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	h := newHarness(withPrev(90.00))
	h.svc.Cfg.DryRun = true

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeDone {
		t.Fatalf("outcome: got %s (err %v)", rep.Outcome, rep.Err)
	}
	if !rep.GateOpen {
		t.Fatal("dry run still reports the gate decision")
	}
	if len(h.meas.inserted) != 0 || len(h.alerts.inserted) != 0 {
		t.Fatal("dry run must not write")
	}
	mustBeGone(t, h.catalog.artifact)
}

func TestRunForceAlertOpensClosedGate(t *testing.T) {
	h := newHarness(withPrev(96.04))
	h.svc.Cfg.ForceAlert = true

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeDone {
		t.Fatalf("outcome: got %s (err %v)", rep.Outcome, rep.Err)
	}
	if !rep.GateOpen {
		t.Fatal("force flag must open the gate")
	}
	if len(h.alerts.inserted) != 1 {
		t.Fatal("forced run must dispatch an alert")
	}
}

func TestRunInvalidRegionFailsAtInit(t *testing.T) {
	h := newHarness()
	h.svc.Cfg.Region.ID = ""

	rep := h.svc.Run(context.Background())

	if rep.Outcome != domain.OutcomeFailed || rep.FailedStage != domain.StageInit {
		t.Fatalf("got %s at %s", rep.Outcome, rep.FailedStage)
	}
}
