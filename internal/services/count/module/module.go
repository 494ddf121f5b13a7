// Package module provides the count module implementation
package module

import (
	"pathstats/internal/modkit"
	"pathstats/internal/platform/validate"

	"pathstats/internal/adapters/output/jsonout"
	"pathstats/internal/core/histogram"
	"pathstats/internal/services/count/domain"
	"pathstats/internal/services/count/ingest"
	"pathstats/internal/services/count/service"
)

// Ports defines the count module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the count module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the count module from deps.Cfg.
// It wires the log file source, the JSON writer and the service
func New(deps modkit.Deps) (*Module, error) {
	return NewWithOptions(deps, FromConfig(deps.Cfg))
}

// NewWithOptions constructs the count module from explicit options
func NewWithOptions(deps modkit.Deps, opts Options) (*Module, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}

	src := ingest.NewSource(opts.ReadBuffer)
	sink := jsonout.New(jsonout.Options{
		Indent:        opts.Indent,
		EscapeSlashes: opts.EscapeSlashes,
		EscapeUnicode: opts.EscapeUnicode,
	})

	svc := service.New(src, sink, service.Config{
		Workers: opts.Workers,
		Tally: histogram.TallyOptions{
			Window:      opts.Window(),
			SettleAfter: opts.SettleAfter,
		},
	}, service.NewMetrics(deps.Metrics))

	log := deps.Log.With().Str("module", "count").Logger()
	log.Debug().
		Int("workers", opts.Workers).
		Int("read_buffer", opts.ReadBuffer).
		Int("settle_after", opts.SettleAfter).
		Int("dense_slots", opts.Window().Slots()).
		Msg("count: module wired")

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{Runner: svc}
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return "count" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the validated options the module was built with
func (m *Module) Options() Options { return m.opts }
