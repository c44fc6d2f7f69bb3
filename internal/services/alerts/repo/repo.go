// Package repo provides the alerts repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"groundwatch/internal/modkit/repokit"
	"groundwatch/internal/services/alerts/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the alerts repository
type Storage interface {
	Insert(ctx context.Context, a domain.Alert) error
	List(
		ctx context.Context,
		regionID string,
		after domain.AfterKey,
		limit int,
	) ([]domain.Alert, domain.AfterKey, error)
}

const alertCols = `id::text, alert_type, severity, title, message,
	region_id, region_name, latitude, longitude,
	area_change_ha, change_percent, capture_date,
	status, requires_action, created_at`

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, a domain.Alert) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO alerts
			(id, alert_type, severity, title, message,
			region_id, region_name, latitude, longitude,
			area_change_ha, change_percent, capture_date,
			status, requires_action, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		a.ID, a.Type, a.Severity, a.Title, a.Message,
		a.RegionID, a.RegionName, a.Latitude, a.Longitude,
		a.AreaChangeHa, a.ChangePercent, a.CaptureDate,
		a.Status, a.RequiresAction, a.CreatedAt,
	)
	return err
}

// List implements Storage, newest first, keyset on (created_at, id)
func (s *pg) List(
	ctx context.Context,
	regionID string,
	after domain.AfterKey,
	limit int,
) ([]domain.Alert, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT " + alertCols + "\nFROM alerts\nWHERE 1=1\n")
	if regionID != "" {
		sb.WriteString("  AND region_id = " + arg(regionID) + "\n")
	}
	if after.ID != "" {
		sb.WriteString("  AND (created_at, id) < (" +
			arg(after.CreatedAt) + ", " + arg(after.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY created_at DESC, id DESC\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.Alert, 0, limit)
	var last domain.AfterKey
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message,
			&a.RegionID, &a.RegionName, &a.Latitude, &a.Longitude,
			&a.AreaChangeHa, &a.ChangePercent, &a.CaptureDate,
			&a.Status, &a.RequiresAction, &a.CreatedAt,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, a)
		last = domain.AfterKey{CreatedAt: a.CreatedAt, ID: a.ID}
	}
	return out, last, rows.Err()
}
