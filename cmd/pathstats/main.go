// Command pathstats counts access log lines per request path per day and writes
// the result as ordered JSON
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pathstats/internal/core/version"
	"pathstats/internal/modkit"
	"pathstats/internal/platform/config"
	perr "pathstats/internal/platform/errors"
	"pathstats/internal/platform/logger"
	phttp "pathstats/internal/platform/net/http"

	countdom "pathstats/internal/services/count/domain"
	countmod "pathstats/internal/services/count/module"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathstats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fWorkers = fs.Int("workers", 0, "parallel scan workers (overrides CORE_COUNT_WORKERS)")
		fDebug   = fs.String("debug-addr", "", "serve pprof and /metrics on this address while running (overrides CORE_DEBUG_ADDR)")
		fQuiet   = fs.Bool("quiet", false, "do not print the run summary")
		fVersion = fs.Bool("version", false, "print build info and exit")
	)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "usage: pathstats [flags] <input.log> <output.json>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return perr.ExitCode(perr.ErrorCodeInvalidArgument)
	}
	if *fVersion {
		_, _ = fmt.Fprintln(stdout, version.Info())
		return 0
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return perr.ExitCode(perr.ErrorCodeInvalidArgument)
	}

	// Surface flags to modules that read FromConfig
	if *fWorkers != 0 {
		mustSetEnv("CORE_COUNT_WORKERS", strconv.Itoa(*fWorkers))
	}
	mustSetEnv("CORE_DEBUG_ADDR", *fDebug)

	lo := logger.FromEnv()
	lo.StaticFields = map[string]string{"version": version.Info().Version}
	logger.Init(lo)
	l := logger.Get()
	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRun(ctx, uuid.NewString())

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := modkit.Deps{Cfg: root, Log: *l, Metrics: reg}
	cm, err := countmod.New(deps)
	if err != nil {
		return fail(ctx, stderr, err)
	}

	if addr := root.MayString("CORE_DEBUG_ADDR", ""); addr != "" {
		grace := root.MayDuration("CORE_DEBUG_SHUTDOWN", 2*time.Second)
		shutdown, err := startDebug(ctx, addr, grace, reg)
		if err != nil {
			return fail(ctx, stderr, err)
		}
		defer shutdown()
	}

	runner := modkit.MustPortsOf[countdom.RunnerPort](cm)
	sum, err := runner.Run(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return fail(ctx, stderr, err)
	}
	if !*fQuiet {
		writeSummary(stderr, sum, peakMemory())
	}
	return 0
}

// startDebug serves pprof and metrics in the background; the returned func stops it
func startDebug(ctx context.Context, addr string, grace time.Duration, g prometheus.Gatherer) (func(), error) {
	srv := phttp.NewServer(addr, func(r chi.Router) {
		phttp.MountProfiler(r, "/debug", true)
		phttp.MountMetrics(r, "/metrics", g)
	})
	if err := srv.Listen(); err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Run(ctx); err != nil {
			logger.C(ctx).Error().Err(err).Msg("debug server stopped")
		}
	}()
	return func() {
		sctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.C(ctx).Warn().Err(err).Msg("debug server shutdown")
		}
		<-done
	}, nil
}

// fail logs err with its code and returns the mapped exit status
func fail(ctx context.Context, stderr io.Writer, err error) int {
	code := perr.CodeOf(err)
	evt := logger.C(ctx).Error().Err(err).Str("code", code.String())
	if e, ok := perr.As(err); ok {
		if e.Field() != "" {
			evt = evt.Str("field", e.Field())
		}
		if e.Op() != "" {
			evt = evt.Str("op", e.Op())
		}
	}
	if cause := perr.Root(err); cause != err {
		evt = evt.AnErr("cause", cause)
	}
	evt.Msg("pathstats failed")
	_, _ = fmt.Fprintf(stderr, "pathstats: %v\n", err)
	return perr.ExitCode(code)
}
