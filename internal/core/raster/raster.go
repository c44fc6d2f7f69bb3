// Package raster holds the ephemeral imagery types flowing through a run
package raster

import (
	"time"

	perr "groundwatch/internal/platform/errors"
)

// Sample identifies one catalog scene selected for a run
type Sample struct {
	// SourceURL locates the downloadable artifact
	SourceURL string

	// CaptureDate is the calendar date of the scene, UTC midnight
	CaptureDate time.Time

	// CloudCover is percent cloud, 0..100
	CloudCover float64
}

// Raster is a 3-channel float grid normalized to [0,1], row-major
type Raster struct {
	Width  int
	Height int
	R      []float32
	G      []float32
	B      []float32
}

// ReflectanceScale is the divisor mapping Sentinel-2 surface reflectance
// integers into [0,1]
const ReflectanceScale = 10000.0

// NormalizeRGB converts raw reflectance channels into a [0,1] float raster.
// Values above the scale clamp to 1
func NormalizeRGB(width, height int, r, g, b []uint16) (Raster, error) {
	if width < 0 || height < 0 {
		return Raster{}, perr.InvalidArgf("raster dimensions %dx%d", width, height)
	}
	n := width * height
	if len(r) != n || len(g) != n || len(b) != n {
		return Raster{}, perr.InvalidArgf(
			"channel length mismatch: want %d, got r=%d g=%d b=%d", n, len(r), len(g), len(b))
	}
	out := Raster{
		Width:  width,
		Height: height,
		R:      normalize(r),
		G:      normalize(g),
		B:      normalize(b),
	}
	return out, nil
}

func normalize(ch []uint16) []float32 {
	out := make([]float32, len(ch))
	for i, v := range ch {
		f := float32(float64(v) / ReflectanceScale)
		if f > 1 {
			f = 1
		}
		out[i] = f
	}
	return out
}
