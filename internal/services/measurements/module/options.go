package module

import "groundwatch/internal/platform/config"

// Options holds configuration settings for the measurements module
type Options struct {
	HardLimit int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("GW_MEASUREMENTS_")
	return Options{
		HardLimit: mf.MayInt("HARD_LIMIT", 100),
	}
}
