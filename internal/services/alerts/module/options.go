package module

import "groundwatch/internal/platform/config"

// Options holds configuration settings for the alerts module
type Options struct {
	HardLimit int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("GW_ALERTS_")
	return Options{
		HardLimit: af.MayInt("HARD_LIMIT", 100),
	}
}
