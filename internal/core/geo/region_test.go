package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func chingola() Region {
	return Region{
		ID:     "chingola-zambia",
		Name:   "Chingola, Zambia",
		Centre: orb.Point{27.85, -12.5},
		Bounds: orb.Bound{
			Min: orb.Point{27.82, -12.52},
			Max: orb.Point{27.88, -12.48},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := chingola().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsEmptyID(t *testing.T) {
	r := chingola()
	r.ID = ""
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestValidateRejectsDegenerateBounds(t *testing.T) {
	r := chingola()
	r.Bounds.Min[0] = r.Bounds.Max[0] // lon collapses
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for degenerate lon span")
	}

	r = chingola()
	r.Bounds.Min[1] = r.Bounds.Max[1] + 0.01 // lat inverted
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for inverted lat span")
	}
}

func TestCentreAccessors(t *testing.T) {
	r := chingola()
	if r.Lat() != -12.5 || r.Lon() != 27.85 {
		t.Fatalf("got lat=%v lon=%v", r.Lat(), r.Lon())
	}
}
