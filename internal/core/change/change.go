// Package change holds the pure comparison, severity, and gate logic
// between the current area estimate and the most recent measurement
package change

import "time"

// PreviousMeasurement is the slice of history the comparison needs
type PreviousMeasurement struct {
	AreaHa      float64
	CaptureDate time.Time
}

// ComparisonResult captures the delta between a run and the prior measurement
type ComparisonResult struct {
	IsFirstRun     bool
	PreviousAreaHa float64

	// ChangeHa is signed, current minus previous
	ChangeHa float64

	// ChangePercent is signed; 0 when PreviousAreaHa == 0, never NaN/Inf
	ChangePercent float64

	// PreviousDate is nil on a first run
	PreviousDate *time.Time
}

// Compare produces the comparison against prev, nil prev meaning no history.
// A new region's first run is a normal outcome, not an error
func Compare(currentAreaHa float64, prev *PreviousMeasurement) ComparisonResult {
	if prev == nil {
		return ComparisonResult{IsFirstRun: true}
	}
	cmp := ComparisonResult{
		PreviousAreaHa: prev.AreaHa,
		ChangeHa:       currentAreaHa - prev.AreaHa,
	}
	if prev.AreaHa > 0 {
		cmp.ChangePercent = cmp.ChangeHa / prev.AreaHa * 100
	}
	d := prev.CaptureDate
	cmp.PreviousDate = &d
	return cmp
}

// Severity tiers a change by absolute hectare magnitude
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities, low < medium < high < critical
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// RequiresAction reports whether the tier demands follow up
func (s Severity) RequiresAction() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// ClassifySeverity tiers |changeHa|, most severe threshold first
func ClassifySeverity(changeHa float64) Severity {
	abs := changeHa
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 10:
		return SeverityCritical
	case abs > 5:
		return SeverityHigh
	case abs > 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Thresholds configure the alert gate
type Thresholds struct {
	Ha      float64
	Percent float64
}

// DefaultThresholds mirror the operational defaults
func DefaultThresholds() Thresholds {
	return Thresholds{Ha: 0.5, Percent: 2.0}
}

// EvaluateGate decides whether a run's change warrants an alert.
// Logical OR, any single trigger is sufficient; a first run always fires
func EvaluateGate(force bool, cmp ComparisonResult, t Thresholds) bool {
	if force || cmp.IsFirstRun {
		return true
	}
	absHa := cmp.ChangeHa
	if absHa < 0 {
		absHa = -absHa
	}
	absPct := cmp.ChangePercent
	if absPct < 0 {
		absPct = -absPct
	}
	return absHa >= t.Ha || absPct >= t.Percent
}
