// Package domain holds the pipeline run types and ports
package domain

import (
	"groundwatch/internal/core/change"
)

// Stage names the steps of a run in execution order
type Stage string

const (
	StageInit               Stage = "init"
	StageAcquire            Stage = "acquire"
	StageInfer              Stage = "infer"
	StageEstimate           Stage = "estimate"
	StageAnalyze            Stage = "analyze"
	StagePersistMeasurement Stage = "persist_measurement"
	StageDispatch           Stage = "dispatch"
	StageCleanup            Stage = "cleanup"
)

// Outcome is the terminal state of a run
type Outcome string

const (
	// OutcomeDone is a fully successful run, alert dispatched or gate closed
	OutcomeDone Outcome = "done"

	// OutcomePartialSuccess means the measurement persisted but the alert
	// insert failed; accepted and logged, not fatal
	OutcomePartialSuccess Outcome = "partial_success"

	// OutcomeFailed means a stage aborted before anything was persisted
	OutcomeFailed Outcome = "failed"
)

// ExitCode maps an outcome to the process exit contract:
// 0 for Done and PartialSuccess, 1 for Failed
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeDone, OutcomePartialSuccess:
		return 0
	default:
		return 1
	}
}

// RunReport is the single result surfaced to the caller
type RunReport struct {
	RunID   string
	Outcome Outcome

	// FailedStage is set when Outcome != Done
	FailedStage Stage
	Err         error

	AreaHa     float64
	Comparison change.ComparisonResult
	GateOpen   bool
	Severity   change.Severity

	// ids are empty on dry runs and closed gates
	MeasurementID string
	AlertID       string

	DryRun bool
}
