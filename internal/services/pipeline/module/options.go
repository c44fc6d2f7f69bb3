package module

import (
	"groundwatch/internal/core/change"
	"groundwatch/internal/core/geo"
	"groundwatch/internal/platform/config"

	"github.com/paulmach/orb"
)

// Options holds configuration settings for the pipeline module
type Options struct {
	Region       geo.Region
	PixelSizeM   float64
	MaxAgeDays   int
	CloudCeiling float64
	Thresholds   change.Thresholds
	ModelVersion string
	Confidence   float64
	ForceAlert   bool
	DryRun       bool
}

// FromConfig extracts Options from the given config.Conf.
// Region defaults describe the Chingola copper belt deployment
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("GW_PIPELINE_")
	return Options{
		Region: geo.Region{
			ID:   pf.MayString("REGION_ID", "chingola-zambia"),
			Name: pf.MayString("REGION_NAME", "Chingola, Zambia"),
			Centre: orb.Point{
				pf.MayFloat64("REGION_LON", 27.85),
				pf.MayFloat64("REGION_LAT", -12.5),
			},
			Bounds: orb.Bound{
				Min: orb.Point{
					pf.MayFloat64("REGION_MIN_LON", 27.82),
					pf.MayFloat64("REGION_MIN_LAT", -12.52),
				},
				Max: orb.Point{
					pf.MayFloat64("REGION_MAX_LON", 27.88),
					pf.MayFloat64("REGION_MAX_LAT", -12.48),
				},
			},
		},
		PixelSizeM:   pf.MayFloat64("PIXEL_SIZE_M", 9.8),
		MaxAgeDays:   pf.MayInt("DAYS_BACK", 30),
		CloudCeiling: pf.MayFloat64("CLOUD_CEILING", 20),
		Thresholds: change.Thresholds{
			Ha:      pf.MayFloat64("THRESHOLD_HA", 0.5),
			Percent: pf.MayFloat64("THRESHOLD_PERCENT", 2.0),
		},
		ModelVersion: pf.MayString("MODEL_VERSION", "1.0"),
		Confidence:   pf.MayFloat64("CONFIDENCE", 0.95),
		ForceAlert:   pf.MayBool("FORCE_ALERT", false),
		DryRun:       pf.MayBool("DRY_RUN", false),
	}
}
