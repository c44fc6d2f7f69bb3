// Package modkit provides module wiring and core deps
package modkit

import (
	"groundwatch/internal/modkit/repokit"
	"groundwatch/internal/platform/config"
	"groundwatch/internal/platform/logger"
)

// Deps holds core dependencies passed to modules.
// This is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// ZeroOK returns true when deps are safe to use with zero values in tests.
// Consumers should still nil check optional stores
func (d Deps) ZeroOK() bool { return true }
