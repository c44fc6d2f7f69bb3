// Package service implements the model server client
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	perr "groundwatch/internal/platform/errors"

	"groundwatch/internal/core/area"
	"groundwatch/internal/core/raster"
)

// Config for the model server client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Service implements domain.SegmenterPort over HTTP
type Service struct {
	cfg    Config
	client *http.Client
}

// New constructs a new model server client
func New(cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type segmentRequest struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	R      []float32 `json:"r"`
	G      []float32 `json:"g"`
	B      []float32 `json:"b"`
}

type segmentResponse struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Mask   []uint8 `json:"mask"`
}

// Segment implements domain.SegmenterPort
func (s *Service) Segment(ctx context.Context, r raster.Raster) (area.Mask, error) {
	body, err := json.Marshal(segmentRequest{
		Width:  r.Width,
		Height: r.Height,
		R:      r.R,
		G:      r.G,
		B:      r.B,
	})
	if err != nil {
		return area.Mask{}, perr.Wrapf(err, perr.ErrorCodeInference, "encode raster")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/v1/segment", bytes.NewReader(body))
	if err != nil {
		return area.Mask{}, perr.Wrapf(err, perr.ErrorCodeInference, "model request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return area.Mask{}, perr.Wrapf(err, perr.ErrorCodeInference, "model invocation")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return area.Mask{}, perr.Inferencef("model server returned %d", resp.StatusCode)
	}

	var out segmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return area.Mask{}, perr.Wrapf(err, perr.ErrorCodeInference, "model payload")
	}

	// the mask must line up with the input grid cell for cell
	if out.Width != r.Width || out.Height != r.Height {
		return area.Mask{}, perr.Inferencef(
			"mask dimensions %dx%d do not match input %dx%d",
			out.Width, out.Height, r.Width, r.Height)
	}
	if len(out.Mask) != out.Width*out.Height {
		return area.Mask{}, perr.Inferencef(
			"mask length %d does not match %dx%d", len(out.Mask), out.Width, out.Height)
	}

	return area.Mask{Width: out.Width, Height: out.Height, Cells: out.Mask}, nil
}
