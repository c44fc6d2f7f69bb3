package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"groundwatch/internal/core/raster"
	perr "groundwatch/internal/platform/errors"
)

func testRaster() raster.Raster {
	n := 4
	return raster.Raster{
		Width:  2,
		Height: 2,
		R:      make([]float32, n),
		G:      make([]float32, n),
		B:      make([]float32, n),
	}
}

func TestSegment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/segment" || r.Method != http.MethodPost {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var req segmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body: %v", err)
		}
		if req.Width != 2 || req.Height != 2 || len(req.R) != 4 {
			t.Errorf("request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(segmentResponse{
			Width:  2,
			Height: 2,
			Mask:   []uint8{1, 0, 1, 1},
		})
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL})
	mask, err := s.Segment(context.Background(), testRaster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mask.Positive() != 3 {
		t.Fatalf("positive cells: got %d, want 3", mask.Positive())
	}
}

func TestSegmentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL})
	_, err := s.Segment(context.Background(), testRaster())
	if !perr.IsCode(err, perr.ErrorCodeInference) {
		t.Fatalf("got %v", err)
	}
}

func TestSegmentRejectsDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(segmentResponse{
			Width:  3,
			Height: 2,
			Mask:   make([]uint8, 6),
		})
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL})
	_, err := s.Segment(context.Background(), testRaster())
	if !perr.IsCode(err, perr.ErrorCodeInference) {
		t.Fatalf("got %v", err)
	}
}

func TestSegmentRejectsShortMask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(segmentResponse{
			Width:  2,
			Height: 2,
			Mask:   []uint8{1, 0},
		})
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL})
	_, err := s.Segment(context.Background(), testRaster())
	if err == nil {
		t.Fatal("expected error for short mask")
	}
}
