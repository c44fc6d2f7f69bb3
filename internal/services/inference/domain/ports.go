// Package domain holds the segmentation model port
package domain

import (
	"context"

	"groundwatch/internal/core/area"
	"groundwatch/internal/core/raster"
)

// SegmenterPort is the consumed model server interface.
// Input is a float-normalized 3-channel raster; the returned mask must
// match the input spatial dimensions
type SegmenterPort interface {
	Segment(ctx context.Context, r raster.Raster) (area.Mask, error)
}
