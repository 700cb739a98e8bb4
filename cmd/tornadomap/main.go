// Command tornadomap fetches the SPC tornado dataset and census boundaries,
// cleans and geocodes the records, and renders a continental U.S. tornado
// map to PNG.
//
// One-shot usage:
//
//	tornadomap                    # all years, uniform markers
//	tornadomap -year 2011         # one year, uniform markers
//	tornadomap -mode severity     # EF2+ highlighted on top
//
// Interactive usage:
//
//	tornadomap -interactive
//
// reads years from stdin and re-renders the severity-split map for each;
// the output file repaints in place like a slider-driven figure.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/tornado-map/internal/adapter/census"
	httpadapter "github.com/couchcryptid/tornado-map/internal/adapter/http"
	"github.com/couchcryptid/tornado-map/internal/adapter/spc"
	"github.com/couchcryptid/tornado-map/internal/config"
	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/observability"
	"github.com/couchcryptid/tornado-map/internal/pipeline"
	"github.com/couchcryptid/tornado-map/internal/render"
)

func main() {
	year := flag.Int("year", 0, "restrict the map to one year (0 = all years)")
	mode := flag.String("mode", "all", "render mode: all or severity")
	interactive := flag.Bool("interactive", false, "read years from stdin and re-render on each")
	out := flag.String("out", "", "output PNG path (overrides OUTPUT_PATH)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.OutputPath = *out
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	renderMode, err := parseMode(*mode)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	dataset := spc.NewClient(cfg.TornadoDataURL, cfg.FetchTimeout, logger, metrics)
	boundaryClient := census.NewClient(cfg.BoundaryURLTemplate, domain.ContinentalViewport, cfg.FetchTimeout, logger, metrics)
	boundaries := census.NewCachedFetcher(boundaryClient, cfg.BoundaryCacheSize, metrics)
	renderer := render.NewRenderer(cfg.RenderWidth, cfg.RenderHeight, domain.ContinentalViewport)
	sink := pipeline.NewPNGSink(cfg.OutputPath, logger)

	p := pipeline.New(dataset, boundaries, renderer, sink, logger, metrics, cfg.BoundaryYear)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", "error", err)
		}
	}()

	// Fetch failures are fatal: a partial session would render a misleading map.
	if err := p.Prepare(ctx); err != nil {
		logger.Error("pipeline preparation failed", "error", err)
		os.Exit(1)
	}

	if *interactive {
		ctrl := pipeline.NewYearControl()
		// initial frame before any input arrives (0 = all years)
		ctrl.Set(*year)
		go readYears(ctx, ctrl, logger)
		if err := p.RunInteractive(ctx, ctrl); err != nil {
			logger.Error("interactive loop error", "error", err)
		}
	} else {
		opts := render.Options{Mode: renderMode, Year: *year}
		if err := p.RenderFrame(ctx, opts); err != nil {
			logger.Error("render failed", "error", err)
			metrics.PipelineRunning.Set(0)
			os.Exit(1)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown error", "error", err)
	}
	metrics.PipelineRunning.Set(0)
	logger.Info("shutdown complete")
}

func parseMode(s string) (render.Mode, error) {
	switch render.Mode(s) {
	case render.ModeAll, render.ModeSeverity:
		return render.Mode(s), nil
	default:
		return "", errors.New(`mode must be "all" or "severity"`)
	}
}

// readYears feeds stdin lines into the year control until EOF or shutdown.
func readYears(ctx context.Context, ctrl *pipeline.YearControl, logger *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		y, err := strconv.Atoi(line)
		if err != nil {
			logger.Warn("ignoring input, expected a year", "input", line)
			continue
		}
		ctrl.Set(y)
	}
}
