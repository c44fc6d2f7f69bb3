package monitor

import (
	"time"

	alertsdom "groundwatch/internal/services/alerts/domain"
	measdom "groundwatch/internal/services/measurements/domain"
)

type measurementWire struct {
	ID           string    `json:"id"`
	RegionID     string    `json:"region_id"`
	CaptureDate  string    `json:"capture_date"`
	AreaHa       float64   `json:"area_ha"`
	ModelVersion string    `json:"model_version"`
	Confidence   float64   `json:"confidence"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toMeasurementWire(m measdom.Measurement) measurementWire {
	return measurementWire{
		ID:           m.ID,
		RegionID:     m.RegionID,
		CaptureDate:  m.CaptureDate.Format("2006-01-02"),
		AreaHa:       m.AreaHa,
		ModelVersion: m.ModelVersion,
		Confidence:   m.Confidence,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

type alertWire struct {
	ID             string    `json:"id"`
	Type           string    `json:"alert_type"`
	Severity       string    `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RegionID       string    `json:"region_id"`
	RegionName     string    `json:"region_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AreaChangeHa   float64   `json:"area_change_ha"`
	ChangePercent  float64   `json:"change_percent"`
	CaptureDate    string    `json:"capture_date"`
	Status         string    `json:"status"`
	RequiresAction bool      `json:"requires_action"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAlertWire(a alertsdom.Alert) alertWire {
	return alertWire{
		ID:             a.ID,
		Type:           a.Type,
		Severity:       string(a.Severity),
		Title:          a.Title,
		Message:        a.Message,
		RegionID:       a.RegionID,
		RegionName:     a.RegionName,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		AreaChangeHa:   a.AreaChangeHa,
		ChangePercent:  a.ChangePercent,
		CaptureDate:    a.CaptureDate.Format("2006-01-02"),
		Status:         a.Status,
		RequiresAction: a.RequiresAction,
		CreatedAt:      a.CreatedAt,
	}
}
