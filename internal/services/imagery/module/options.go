package module

import (
	"time"

	"groundwatch/internal/platform/config"
)

// Options holds configuration settings for the imagery module
type Options struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	imf := cfg.Prefix("GW_IMAGERY_")
	return Options{
		BaseURL:    imf.MustString("BASE_URL"),
		Collection: imf.MayString("COLLECTION", "COPERNICUS/S2_SR_HARMONIZED"),
		Timeout:    imf.MayDuration("TIMEOUT", 60*time.Second),
	}
}
