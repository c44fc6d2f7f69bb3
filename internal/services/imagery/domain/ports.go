// Package domain holds the imagery acquisition ports
package domain

import (
	"context"

	"groundwatch/internal/core/geo"
	"groundwatch/internal/core/raster"
)

// CatalogPort is the consumed imagery catalog interface
type CatalogPort interface {
	// FetchLatest selects the most recent scene for the region within
	// maxAgeDays whose cloud cover is at or below cloudCeiling percent
	FetchLatest(ctx context.Context, region geo.Region, maxAgeDays int, cloudCeiling float64) (raster.Sample, error)

	// Download fetches the scene artifact to a temp file and returns its path.
	// The caller owns removal
	Download(ctx context.Context, sample raster.Sample) (path string, err error)

	// Decode reads a downloaded artifact into raw 16-bit reflectance channels
	Decode(path string) (width, height int, r, g, b []uint16, err error)
}
