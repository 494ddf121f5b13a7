package module

import (
	"pathstats/internal/adapters/logfile"
	"pathstats/internal/core/histogram"
	"pathstats/internal/platform/config"
)

// Options holds configuration options for the count module
type Options struct {
	Workers       int `env:"WORKERS" validate:"min=1,max=1024"`
	ReadBuffer    int `env:"READ_BUFFER" validate:"min=4096,max=268435456"`
	SettleAfter   int `env:"SETTLE_AFTER" validate:"min=0"`
	DenseFrom     int `env:"DENSE_FROM" validate:"year"`
	DenseTo       int `env:"DENSE_TO" validate:"year,gtefield=DenseFrom"`
	EscapeSlashes bool
	EscapeUnicode bool
	Indent        int `env:"INDENT" validate:"min=0,max=16"`
}

// FromConfig reads the count options from config with CORE_COUNT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_COUNT_")
	return Options{
		Workers:       c.MayInt("WORKERS", 4),
		ReadBuffer:    c.MaySize("READ_BUFFER", logfile.DefaultBufSize),
		SettleAfter:   c.MayInt("SETTLE_AFTER", 2000),
		DenseFrom:     c.MayInt("DENSE_FROM", histogram.DefaultWindow.FromYear),
		DenseTo:       c.MayInt("DENSE_TO", histogram.DefaultWindow.ToYear),
		EscapeSlashes: c.MayBool("ESCAPE_SLASHES", true),
		EscapeUnicode: c.MayBool("ESCAPE_UNICODE", true),
		Indent:        c.MayInt("INDENT", 4),
	}
}

// Window returns the dense date window, disabled when either bound is 0
func (o Options) Window() histogram.Window {
	if o.DenseFrom == 0 || o.DenseTo == 0 {
		return histogram.Window{}
	}
	return histogram.Window{FromYear: o.DenseFrom, ToYear: o.DenseTo}
}
