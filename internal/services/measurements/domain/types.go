// Package domain holds the measurement entity and ports
package domain

import "time"

// Measurement is one persisted area estimate for a region and capture date.
// Rows are append-only: inserted exactly once per successful run, never
// updated or deleted
type Measurement struct {
	ID           string
	RegionID     string
	CaptureDate  time.Time
	AreaHa       float64
	ModelVersion string
	Confidence   float64
	Notes        string
	CreatedAt    time.Time
}

// AfterKey is the keyset cursor for history listings
type AfterKey struct {
	CaptureDate time.Time
	ID          string
}
