// Package domain holds the alert entity and ports
package domain

import (
	"time"

	"groundwatch/internal/core/change"
)

// TypeMiningDetected is the only alert type this pipeline emits
const TypeMiningDetected = "mining_detected"

// StatusUnread is the initial status of every alert; downstream consumers
// may update it, this core never does
const StatusUnread = "unread"

// Alert is one persisted, severity-classified notification.
// Created at most once per run, never mutated here
type Alert struct {
	ID             string
	Type           string
	Severity       change.Severity
	Title          string
	Message        string
	RegionID       string
	RegionName     string
	Latitude       float64
	Longitude      float64
	AreaChangeHa   float64
	ChangePercent  float64
	CaptureDate    time.Time
	Status         string
	RequiresAction bool
	CreatedAt      time.Time
}

// AfterKey is the keyset cursor for alert listings
type AfterKey struct {
	CreatedAt time.Time
	ID        string
}
