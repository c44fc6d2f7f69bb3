package module

import (
	"time"

	"groundwatch/internal/platform/config"
)

// Options holds configuration settings for the inference module
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("GW_MODEL_")
	return Options{
		BaseURL: mf.MustString("BASE_URL"),
		Timeout: mf.MayDuration("TIMEOUT", 120*time.Second),
	}
}
