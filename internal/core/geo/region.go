// Package geo holds the immutable region geometry the pipeline watches
package geo

import (
	perr "groundwatch/internal/platform/errors"

	"github.com/paulmach/orb"
)

// Region is the fixed geographic area of interest.
// Loaded once at boot from config and never mutated
type Region struct {
	// ID is the slug used as the region key on persisted rows
	ID   string
	Name string

	// Centre is lon/lat of the representative point reported on alerts
	Centre orb.Point

	// Bounds is the lon/lat rectangle queried from the imagery catalog
	Bounds orb.Bound
}

// Lat returns the centre latitude
func (r Region) Lat() float64 { return r.Centre.Lat() }

// Lon returns the centre longitude
func (r Region) Lon() float64 { return r.Centre.Lon() }

// Validate rejects a region without an id or with a degenerate rectangle
func (r Region) Validate() error {
	if r.ID == "" {
		return perr.InvalidArgf("region id must not be empty")
	}
	if r.Bounds.Min.Lon() >= r.Bounds.Max.Lon() {
		return perr.InvalidArgf("region %q bounds degenerate: min lon %v >= max lon %v",
			r.ID, r.Bounds.Min.Lon(), r.Bounds.Max.Lon())
	}
	if r.Bounds.Min.Lat() >= r.Bounds.Max.Lat() {
		return perr.InvalidArgf("region %q bounds degenerate: min lat %v >= max lat %v",
			r.ID, r.Bounds.Min.Lat(), r.Bounds.Max.Lat())
	}
	return nil
}
