// Package repo provides the measurements repository implementation
package repo

import (
	"context"
	"fmt"
	"strings"

	"groundwatch/internal/modkit/repokit"
	"groundwatch/internal/services/measurements/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the measurements repository
type Storage interface {
	Insert(ctx context.Context, m domain.Measurement) error
	Latest(ctx context.Context, regionID string) (*domain.Measurement, error)
	List(
		ctx context.Context,
		regionID string,
		after domain.AfterKey,
		limit int,
	) ([]domain.Measurement, domain.AfterKey, error)
}

const measurementCols = `id::text, region_id, capture_date, area_ha, model_version, confidence, notes, created_at`

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, m domain.Measurement) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO measurements
			(id, region_id, capture_date, area_ha, model_version, confidence, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.RegionID, m.CaptureDate, m.AreaHa,
		m.ModelVersion, m.Confidence, m.Notes, m.CreatedAt,
	)
	return err
}

// Latest implements Storage. No rows is not an error, it returns (nil, nil)
func (s *pg) Latest(ctx context.Context, regionID string) (*domain.Measurement, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+measurementCols+`
		FROM measurements
		WHERE region_id = $1
		ORDER BY capture_date DESC, created_at DESC
		LIMIT 1`, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var m domain.Measurement
	if err := scanMeasurement(rows, &m); err != nil {
		return nil, err
	}
	return &m, rows.Err()
}

// List implements Storage, newest first, keyset on (capture_date, id)
func (s *pg) List(
	ctx context.Context,
	regionID string,
	after domain.AfterKey,
	limit int,
) ([]domain.Measurement, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT ` + measurementCols + `
		FROM measurements
		WHERE region_id = ` + arg(regionID) + "\n")

	// keyset only when the cursor is set (avoid ""::uuid on first page)
	if after.ID != "" {
		sb.WriteString("  AND (capture_date, id) < (" +
			arg(after.CaptureDate) + ", " + arg(after.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY capture_date DESC, id DESC\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.Measurement, 0, limit)
	var last domain.AfterKey
	for rows.Next() {
		var m domain.Measurement
		if err := scanMeasurement(rows, &m); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, m)
		last = domain.AfterKey{CaptureDate: m.CaptureDate, ID: m.ID}
	}
	return out, last, rows.Err()
}

func scanMeasurement(r repokit.Row, m *domain.Measurement) error {
	return r.Scan(
		&m.ID, &m.RegionID, &m.CaptureDate, &m.AreaHa,
		&m.ModelVersion, &m.Confidence, &m.Notes, &m.CreatedAt,
	)
}
