// Package service implements the imagery catalog client
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	perr "groundwatch/internal/platform/errors"

	"groundwatch/internal/core/geo"
	"groundwatch/internal/core/raster"

	// artifact formats served by the catalog
	_ "image/png"
)

// Config for the imagery catalog client
type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
}

// Service implements domain.CatalogPort over HTTP
type Service struct {
	cfg    Config
	client *http.Client
}

// New constructs a new imagery catalog client
func New(cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// sceneWire is the catalog's scene payload
type sceneWire struct {
	SourceURL   string  `json:"source_url"`
	CaptureDate string  `json:"capture_date"`
	CloudCover  float64 `json:"cloud_cover"`
}

// FetchLatest implements domain.CatalogPort.
// Absent imagery and transport failures both abort the run; the former
// carries a not found cause for logs
func (s *Service) FetchLatest(
	ctx context.Context,
	region geo.Region,
	maxAgeDays int,
	cloudCeiling float64,
) (raster.Sample, error) {
	q := url.Values{}
	q.Set("bbox", fmt.Sprintf("%v,%v,%v,%v",
		region.Bounds.Min.Lon(), region.Bounds.Min.Lat(),
		region.Bounds.Max.Lon(), region.Bounds.Max.Lat()))
	q.Set("max_age_days", fmt.Sprintf("%d", maxAgeDays))
	q.Set("cloud_ceiling", fmt.Sprintf("%v", cloudCeiling))
	if s.cfg.Collection != "" {
		q.Set("collection", s.cfg.Collection)
	}

	u := s.cfg.BaseURL + "/v1/scenes/latest?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return raster.Sample{}, perr.Wrapf(err, perr.ErrorCodeAcquisition, "catalog request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return raster.Sample{}, perr.Wrapf(err, perr.ErrorCodeAcquisition, "catalog query")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return raster.Sample{}, perr.Wrapf(perr.ErrNotFound, perr.ErrorCodeAcquisition,
			"no imagery for %s within %d days under %.1f%% cloud", region.ID, maxAgeDays, cloudCeiling)
	case resp.StatusCode != http.StatusOK:
		return raster.Sample{}, perr.Acquisitionf("catalog returned %d", resp.StatusCode)
	}

	var w sceneWire
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return raster.Sample{}, perr.Wrapf(err, perr.ErrorCodeAcquisition, "catalog payload")
	}
	capture, err := time.Parse("2006-01-02", w.CaptureDate)
	if err != nil {
		return raster.Sample{}, perr.Wrapf(err, perr.ErrorCodeAcquisition,
			"catalog capture_date %q", w.CaptureDate)
	}

	return raster.Sample{
		SourceURL:   w.SourceURL,
		CaptureDate: capture.UTC(),
		CloudCover:  w.CloudCover,
	}, nil
}

// Download implements domain.CatalogPort
func (s *Service) Download(ctx context.Context, sample raster.Sample) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sample.SourceURL, nil)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact download")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", perr.Acquisitionf("artifact download returned %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "groundwatch-scene-*.png")
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact temp file")
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact write")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact close")
	}
	return f.Name(), nil
}

// Decode implements domain.CatalogPort. The catalog serves 16-bit PNGs whose
// samples carry surface reflectance integers
func (s *Service) Decode(path string) (int, int, []uint16, []uint16, []uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, nil, nil, perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact open")
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, nil, nil, perr.Wrapf(err, perr.ErrorCodeAcquisition, "artifact decode")
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rr := make([]uint16, 0, w*h)
	gg := make([]uint16, 0, w*h)
	bb := make([]uint16, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			rr = append(rr, uint16(r16))
			gg = append(gg, uint16(g16))
			bb = append(bb, uint16(b16))
		}
	}
	return w, h, rr, gg, bb, nil
}
