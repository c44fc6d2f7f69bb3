//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"groundwatch/internal/core/change"
	"groundwatch/internal/platform/store"
	"groundwatch/internal/services/alerts/domain"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func openStore(t *testing.T, ctx context.Context, dsn string) *store.Store {
	t.Helper()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	migration, err := os.ReadFile("../../../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, stmt := range strings.Split(string(migration), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := st.PG.Exec(ctx, stmt); err != nil {
			t.Fatalf("apply migration: %v\n%s", err, stmt)
		}
	}
	return st
}

func mkAlert(region string, createdAt time.Time) domain.Alert {
	return domain.Alert{
		ID:             uuid.NewString(),
		Type:           domain.TypeMiningDetected,
		Severity:       change.SeverityHigh,
		Title:          "🚨 High Priority: Significant Mining Expansion",
		Message:        "Mining area INCREASED by 6.04 hectares (+6.7%). Current total: 96.04 ha. Field inspection recommended.",
		RegionID:       region,
		RegionName:     "Chingola, Zambia",
		Latitude:       -12.5,
		Longitude:      27.85,
		AreaChangeHa:   6.04,
		ChangePercent:  6.711111111111111,
		CaptureDate:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Status:         domain.StatusUnread,
		RequiresAction: true,
		CreatedAt:      createdAt,
	}
}

func TestInsertAndList_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	repo := NewPG().Bind(st.PG)

	base := time.Now().UTC().Truncate(time.Microsecond)
	a1 := mkAlert("chingola-zambia", base.Add(-2*time.Hour))
	a2 := mkAlert("chingola-zambia", base.Add(-1*time.Hour))
	a3 := mkAlert("kitwe-zambia", base)
	for _, a := range []domain.Alert{a1, a2, a3} {
		if err := repo.Insert(ctx, a); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	// empty region lists everything, newest first
	all, _, err := repo.List(ctx, "", domain.AfterKey{}, 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || all[0].ID != a3.ID || all[2].ID != a1.ID {
		t.Fatalf("list all: %+v", all)
	}

	got := all[1]
	if got.Severity != change.SeverityHigh || !got.RequiresAction {
		t.Fatalf("severity round trip: %+v", got)
	}
	if got.Latitude != -12.5 || got.Longitude != 27.85 {
		t.Fatalf("location round trip: %+v", got)
	}

	// region filter plus keyset pagination
	page, next, err := repo.List(ctx, "chingola-zambia", domain.AfterKey{}, 1)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page) != 1 || page[0].ID != a2.ID {
		t.Fatalf("page 1: %+v", page)
	}
	page, _, err = repo.List(ctx, "chingola-zambia", next, 1)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page) != 1 || page[0].ID != a1.ID {
		t.Fatalf("page 2: %+v", page)
	}
}

func TestInsertRejectsUnknownSeverity_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	repo := NewPG().Bind(st.PG)

	a := mkAlert("chingola-zambia", time.Now().UTC())
	a.Severity = change.Severity("apocalyptic")
	if err := repo.Insert(ctx, a); err == nil {
		t.Fatal("check constraint must reject unknown severity")
	}
}
