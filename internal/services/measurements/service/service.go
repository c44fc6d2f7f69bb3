// Package service provides the measurements service implementation
package service

import (
	"context"
	"time"

	perr "groundwatch/internal/platform/errors"

	"groundwatch/internal/modkit/repokit"
	dom "groundwatch/internal/services/measurements/domain"
	"groundwatch/internal/services/measurements/repo"

	"github.com/google/uuid"
)

// Config for the measurements service
type Config struct {
	HardLimit int
}

// Service implements domain.ReaderPort and domain.WriterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new measurements service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg}
}

// Insert implements domain.WriterPort. Fills ID and CreatedAt when unset
func (s *Service) Insert(ctx context.Context, m dom.Measurement) (string, error) {
	if m.RegionID == "" {
		return "", perr.InvalidArgf("measurement region id must not be empty")
	}
	if m.AreaHa < 0 {
		return "", perr.InvalidArgf("measurement area must not be negative, got %v", m.AreaHa)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	st := repokit.MustBind(s.Binder, s.DB)
	if err := st.Insert(ctx, m); err != nil {
		return "", err
	}
	return m.ID, nil
}

// Latest implements domain.ReaderPort
func (s *Service) Latest(ctx context.Context, regionID string) (*dom.Measurement, error) {
	st := repokit.MustBind(s.Binder, s.DB)
	return st.Latest(ctx, regionID)
}

// List implements domain.ReaderPort
func (s *Service) List(
	ctx context.Context,
	regionID string,
	after dom.AfterKey,
	limit int,
) ([]dom.Measurement, dom.AfterKey, error) {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	st := repokit.MustBind(s.Binder, s.DB)
	return st.List(ctx, regionID, after, limit)
}
