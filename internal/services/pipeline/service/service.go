// Package service implements the pipeline run orchestrator.
// Stages run strictly in sequence, terminal on failure, no retries and no
// cancellation mid-run; the decision logic itself lives in internal/core
package service

import (
	"context"
	"fmt"
	"os"

	"groundwatch/internal/core/area"
	"groundwatch/internal/core/change"
	"groundwatch/internal/core/geo"
	"groundwatch/internal/core/raster"
	perr "groundwatch/internal/platform/errors"
	"groundwatch/internal/platform/logger"

	alertsdom "groundwatch/internal/services/alerts/domain"
	measdom "groundwatch/internal/services/measurements/domain"
	"groundwatch/internal/services/pipeline/domain"

	"github.com/google/uuid"
)

// Config for the pipeline service
type Config struct {
	Region       geo.Region
	PixelSizeM   float64
	MaxAgeDays   int
	CloudCeiling float64
	Thresholds   change.Thresholds
	ModelVersion string
	Confidence   float64
	ForceAlert   bool
	DryRun       bool
}

// Service implements domain.RunnerPort
type Service struct {
	Ports domain.Ports
	Cfg   Config
}

// New constructs a new pipeline service
func New(ports domain.Ports, cfg Config) *Service {
	if cfg.PixelSizeM <= 0 {
		cfg.PixelSizeM = 9.8
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 30
	}
	if cfg.CloudCeiling <= 0 {
		cfg.CloudCeiling = 20
	}
	if cfg.Thresholds == (change.Thresholds{}) {
		cfg.Thresholds = change.DefaultThresholds()
	}
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "1.0"
	}
	if cfg.Confidence <= 0 {
		cfg.Confidence = 0.95
	}
	return &Service{Ports: ports, Cfg: cfg}
}

// Run executes one pipeline pass for the configured region.
// Any failure before the measurement insert yields Failed with nothing
// persisted; a dispatch failure yields PartialSuccess with the measurement
// kept; the downloaded artifact is released on every exit path
func (s *Service) Run(ctx context.Context) domain.RunReport {
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	rep := domain.RunReport{RunID: runID, DryRun: s.Cfg.DryRun}

	fail := func(stage domain.Stage, err error) domain.RunReport {
		log.Error().Err(err).Str("stage", string(stage)).Msg("stage failed")
		rep.Outcome = domain.OutcomeFailed
		rep.FailedStage = stage
		rep.Err = err
		return rep
	}

	// Init
	if err := s.Cfg.Region.Validate(); err != nil {
		return fail(domain.StageInit, err)
	}
	log.Info().
		Str("region", s.Cfg.Region.ID).
		Int("max_age_days", s.Cfg.MaxAgeDays).
		Float64("cloud_ceiling", s.Cfg.CloudCeiling).
		Bool("dry_run", s.Cfg.DryRun).
		Msg("run started")

	// Acquire
	sample, err := s.Ports.Catalog.FetchLatest(ctx, s.Cfg.Region, s.Cfg.MaxAgeDays, s.Cfg.CloudCeiling)
	if err != nil {
		return fail(domain.StageAcquire, err)
	}
	log.Info().
		Str("capture_date", sample.CaptureDate.Format("2006-01-02")).
		Float64("cloud_cover", sample.CloudCover).
		Msg("scene selected")

	path, err := s.Ports.Catalog.Download(ctx, sample)
	if err != nil {
		return fail(domain.StageAcquire, err)
	}
	// Cleanup: the transient artifact is released regardless of exit path
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn().Err(rmErr).Str("stage", string(domain.StageCleanup)).Msg("artifact cleanup failed")
		} else {
			log.Debug().Str("stage", string(domain.StageCleanup)).Msg("artifact removed")
		}
	}()
	log.Info().Str("artifact", path).Msg("scene downloaded")

	// Infer
	w, h, rCh, gCh, bCh, err := s.Ports.Catalog.Decode(path)
	if err != nil {
		return fail(domain.StageInfer, err)
	}
	rast, err := raster.NormalizeRGB(w, h, rCh, gCh, bCh)
	if err != nil {
		return fail(domain.StageInfer, perr.Wrapf(err, perr.ErrorCodeInference, "normalize raster"))
	}
	mask, err := s.Ports.Segmenter.Segment(ctx, rast)
	if err != nil {
		return fail(domain.StageInfer, err)
	}
	log.Info().Int("width", mask.Width).Int("height", mask.Height).Msg("mask received")

	// Estimate (pure, total)
	rep.AreaHa = area.Hectares(mask, s.Cfg.PixelSizeM)
	log.Info().Float64("area_ha", rep.AreaHa).Msg("area estimated")

	// Analyze: a missing prior row is a valid first run; a lookup failure is fatal
	prevRow, err := s.Ports.History.Latest(ctx, s.Cfg.Region.ID)
	if err != nil {
		return fail(domain.StageAnalyze,
			perr.Wrapf(err, perr.ErrorCodeHistoryLookup, "latest measurement for %s", s.Cfg.Region.ID))
	}
	var prev *change.PreviousMeasurement
	if prevRow != nil {
		prev = &change.PreviousMeasurement{AreaHa: prevRow.AreaHa, CaptureDate: prevRow.CaptureDate}
	}
	rep.Comparison = change.Compare(rep.AreaHa, prev)
	log.Info().
		Bool("first_run", rep.Comparison.IsFirstRun).
		Float64("change_ha", rep.Comparison.ChangeHa).
		Float64("change_percent", rep.Comparison.ChangePercent).
		Msg("history compared")

	// PersistMeasurement: always, before the gate; exactly once per run
	if !s.Cfg.DryRun {
		id, err := s.Ports.Measurements.Insert(ctx, measdom.Measurement{
			RegionID:     s.Cfg.Region.ID,
			CaptureDate:  sample.CaptureDate,
			AreaHa:       rep.AreaHa,
			ModelVersion: s.Cfg.ModelVersion,
			Confidence:   s.Cfg.Confidence,
			Notes:        fmt.Sprintf("Automated detection from satellite imagery. Cloud cover: %.1f%%", sample.CloudCover),
		})
		if err != nil {
			return fail(domain.StagePersistMeasurement,
				perr.Wrapf(err, perr.ErrorCodePersistMeasurement, "insert measurement"))
		}
		rep.MeasurementID = id
		log.Info().Str("measurement_id", id).Msg("measurement persisted")
	} else {
		log.Info().Msg("dry run, measurement insert skipped")
	}

	// Gate
	rep.GateOpen = change.EvaluateGate(s.Cfg.ForceAlert, rep.Comparison, s.Cfg.Thresholds)
	notice := change.BuildNotice(rep.Comparison, rep.AreaHa)
	rep.Severity = notice.Severity
	if !rep.GateOpen {
		log.Info().Str("severity", string(notice.Severity)).Msg("gate closed, no alert")
		rep.Outcome = domain.OutcomeDone
		log.Info().Str("outcome", string(rep.Outcome)).Msg("run finished")
		return rep
	}

	// Dispatch: failure downgrades to PartialSuccess, the measurement stays
	if !s.Cfg.DryRun {
		id, err := s.Ports.Alerts.Insert(ctx, alertsdom.Alert{
			Type:          alertsdom.TypeMiningDetected,
			Severity:      notice.Severity,
			Title:         notice.Title,
			Message:       notice.Message,
			RegionID:      s.Cfg.Region.ID,
			RegionName:    s.Cfg.Region.Name,
			Latitude:      s.Cfg.Region.Lat(),
			Longitude:     s.Cfg.Region.Lon(),
			AreaChangeHa:  rep.Comparison.ChangeHa,
			ChangePercent: rep.Comparison.ChangePercent,
			CaptureDate:   sample.CaptureDate,
		})
		if err != nil {
			wrapped := perr.Wrapf(err, perr.ErrorCodeDispatch, "insert alert")
			log.Error().Err(wrapped).Str("stage", string(domain.StageDispatch)).
				Msg("alert dispatch failed, measurement kept")
			rep.Outcome = domain.OutcomePartialSuccess
			rep.FailedStage = domain.StageDispatch
			rep.Err = wrapped
			log.Info().Str("outcome", string(rep.Outcome)).Msg("run finished")
			return rep
		}
		rep.AlertID = id
		log.Info().
			Str("alert_id", id).
			Str("severity", string(notice.Severity)).
			Bool("requires_action", notice.RequiresAction).
			Msg("alert dispatched")
	} else {
		log.Info().Str("severity", string(notice.Severity)).Msg("dry run, alert insert skipped")
	}

	rep.Outcome = domain.OutcomeDone
	log.Info().Str("outcome", string(rep.Outcome)).Msg("run finished")
	return rep
}
