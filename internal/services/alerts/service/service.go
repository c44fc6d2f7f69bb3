// Package service provides the alerts service implementation
package service

import (
	"context"
	"time"

	perr "groundwatch/internal/platform/errors"

	"groundwatch/internal/modkit/repokit"
	dom "groundwatch/internal/services/alerts/domain"
	"groundwatch/internal/services/alerts/repo"

	"github.com/google/uuid"
)

// Config for the alerts service
type Config struct {
	HardLimit int
}

// Service implements domain.WriterPort and domain.QueryPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new alerts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg}
}

// Insert implements domain.WriterPort. Fills ID, Status, and CreatedAt when
// unset and enforces requires_action = (severity in {high, critical})
func (s *Service) Insert(ctx context.Context, a dom.Alert) (string, error) {
	if a.RegionID == "" {
		return "", perr.InvalidArgf("alert region id must not be empty")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Type == "" {
		a.Type = dom.TypeMiningDetected
	}
	if a.Status == "" {
		a.Status = dom.StatusUnread
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.RequiresAction = a.Severity.RequiresAction()

	st := repokit.MustBind(s.Binder, s.DB)
	if err := st.Insert(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// List implements domain.QueryPort
func (s *Service) List(
	ctx context.Context,
	regionID string,
	after dom.AfterKey,
	limit int,
) ([]dom.Alert, dom.AfterKey, error) {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	st := repokit.MustBind(s.Binder, s.DB)
	return st.List(ctx, regionID, after, limit)
}
