package service

import (
	"context"
	"testing"

	"groundwatch/internal/core/change"
	"groundwatch/internal/modkit/repokit"
	perr "groundwatch/internal/platform/errors"
	dom "groundwatch/internal/services/alerts/domain"
	"groundwatch/internal/services/alerts/repo"
)

// nopDB satisfies repokit.TxRunner; the fake storage never touches it
type nopDB struct{}

func (nopDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (nopDB) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (nopDB) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (nopDB) Tx(_ context.Context, fn func(q repokit.Queryer) error) error     { return fn(nopDB{}) }

type fakeStorage struct {
	inserted  []dom.Alert
	lastLimit int
}

func (f *fakeStorage) Insert(_ context.Context, a dom.Alert) error {
	f.inserted = append(f.inserted, a)
	return nil
}

func (f *fakeStorage) List(
	_ context.Context, _ string, _ dom.AfterKey, limit int,
) ([]dom.Alert, dom.AfterKey, error) {
	f.lastLimit = limit
	return nil, dom.AfterKey{}, nil
}

func newService(fs *fakeStorage, cfg Config) *Service {
	binder := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return fs })
	return New(nopDB{}, binder, cfg)
}

func TestInsertFillsDefaults(t *testing.T) {
	fs := &fakeStorage{}
	svc := newService(fs, Config{})

	id, err := svc.Insert(context.Background(), dom.Alert{
		RegionID: "chingola-zambia",
		Severity: change.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("insert must return a generated id")
	}

	a := fs.inserted[0]
	if a.Type != dom.TypeMiningDetected {
		t.Fatalf("type: got %q", a.Type)
	}
	if a.Status != dom.StatusUnread {
		t.Fatalf("status: got %q", a.Status)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("created_at must be filled")
	}
}

func TestInsertDerivesRequiresAction(t *testing.T) {
	fs := &fakeStorage{}
	svc := newService(fs, Config{})

	// caller lies about requires_action, the severity decides
	_, err := svc.Insert(context.Background(), dom.Alert{
		RegionID:       "chingola-zambia",
		Severity:       change.SeverityLow,
		RequiresAction: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs.inserted[0].RequiresAction {
		t.Fatal("low severity must not require action")
	}

	_, err = svc.Insert(context.Background(), dom.Alert{
		RegionID: "chingola-zambia",
		Severity: change.SeverityHigh,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fs.inserted[1].RequiresAction {
		t.Fatal("high severity must require action")
	}
}

func TestInsertRejectsEmptyRegion(t *testing.T) {
	svc := newService(&fakeStorage{}, Config{})

	_, err := svc.Insert(context.Background(), dom.Alert{Severity: change.SeverityHigh})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestListClampsLimit(t *testing.T) {
	fs := &fakeStorage{}
	svc := newService(fs, Config{HardLimit: 25})

	if _, _, err := svc.List(context.Background(), "", dom.AfterKey{}, 1000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if fs.lastLimit != 25 {
		t.Fatalf("limit: got %d, want 25", fs.lastLimit)
	}
}
