// Package modkit provides module wiring and core deps
package modkit

import (
	"pathstats/internal/platform/config"
	"pathstats/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Metrics prometheus.Registerer // nil disables registration
}
