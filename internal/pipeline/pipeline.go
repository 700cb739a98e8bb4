// Package pipeline wires the load-clean-geocode-render stages together.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/observability"
	"github.com/couchcryptid/tornado-map/internal/render"
)

// DatasetFetcher loads the raw tornado records.
type DatasetFetcher interface {
	FetchTornadoes(ctx context.Context) ([]domain.TornadoRecord, error)
}

// BoundaryFetcher loads clipped boundary polygons for one level and year.
type BoundaryFetcher interface {
	FetchBoundaries(ctx context.Context, year int, level string) (domain.BoundarySet, error)
}

// MapRenderer produces a map image from the session's geodata.
type MapRenderer interface {
	Render(states, counties domain.BoundarySet, points domain.PointSet, opts render.Options) (image.Image, error)
}

// ArtifactSink persists a rendered map.
type ArtifactSink interface {
	Save(img image.Image, opts render.Options) error
}

// Pipeline orchestrates one visualization session: Prepare fetches and
// transforms everything once, then any number of RenderFrame calls reuse the
// in-memory tables. Nothing is persisted across sessions.
type Pipeline struct {
	dataset      DatasetFetcher
	boundaries   BoundaryFetcher
	renderer     MapRenderer
	sink         ArtifactSink
	logger       *slog.Logger
	metrics      *observability.Metrics
	boundaryYear int

	ready atomic.Bool

	mu       sync.Mutex
	prepared bool
	points   domain.PointSet
	states   domain.BoundarySet
	counties domain.BoundarySet
}

// New creates a Pipeline with the given stages and observability.
func New(dataset DatasetFetcher, boundaries BoundaryFetcher, renderer MapRenderer, sink ArtifactSink, logger *slog.Logger, metrics *observability.Metrics, boundaryYear int) *Pipeline {
	return &Pipeline{
		dataset:      dataset,
		boundaries:   boundaries,
		renderer:     renderer,
		sink:         sink,
		logger:       logger,
		metrics:      metrics,
		boundaryYear: boundaryYear,
	}
}

// CheckReadiness returns nil once at least one map has been rendered.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no map rendered yet")
	}
	return nil
}

// Prepare runs the load, clean, and geocode stages and fetches both boundary
// levels. Every failure here is fatal: a partial session would render a
// misleading map.
func (p *Pipeline) Prepare(ctx context.Context) (err error) {
	p.metrics.PipelineRunning.Set(1)
	defer func() {
		if err != nil {
			p.metrics.PipelineRunning.Set(0)
		}
	}()

	records, err := p.dataset.FetchTornadoes(ctx)
	if err != nil {
		return fmt.Errorf("load tornado dataset: %w", err)
	}

	excluded := domain.ExcludedPostalCodes()
	afterRegions := domain.FilterRegions(records, excluded)
	p.metrics.RecordsExcluded.WithLabelValues("region").Add(float64(len(records) - len(afterRegions)))

	cleaned := domain.FilterUnknownMagnitude(afterRegions)
	p.metrics.RecordsExcluded.WithLabelValues("unknown_magnitude").Add(float64(len(afterRegions) - len(cleaned)))

	// A magnitude outside the EF scale surviving the sentinel filter means
	// the upstream unknown-value encoding drifted.
	drifted := domain.OutOfRangeMagnitudes(cleaned)
	for _, r := range drifted {
		p.logger.Warn("magnitude outside EF range after cleaning",
			"state", r.State, "year", r.Year, "magnitude", r.Magnitude)
	}
	p.metrics.MagnitudeDrift.Add(float64(len(drifted)))

	points := domain.BuildGeometries(cleaned)
	invalid := 0
	for _, r := range points.Records {
		if !r.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		p.logger.Warn("records with unusable coordinates will not be drawn", "count", invalid)
	}
	p.metrics.InvalidPoints.Add(float64(invalid))

	states, err := p.boundaries.FetchBoundaries(ctx, p.boundaryYear, domain.LevelState)
	if err != nil {
		return fmt.Errorf("load state boundaries: %w", err)
	}
	counties, err := p.boundaries.FetchBoundaries(ctx, p.boundaryYear, domain.LevelCounty)
	if err != nil {
		return fmt.Errorf("load county boundaries: %w", err)
	}

	p.mu.Lock()
	p.points = points
	p.states = states
	p.counties = counties
	p.prepared = true
	p.mu.Unlock()

	p.logger.Info("session prepared",
		"records_fetched", len(records),
		"records_cleaned", len(cleaned),
		"states", len(states.Boundaries),
		"counties", len(counties.Boundaries),
	)
	return nil
}

// RenderFrame renders one map with the session data and writes it to the
// sink. Safe to call repeatedly; each call draws on a fresh canvas.
func (p *Pipeline) RenderFrame(ctx context.Context, opts render.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	prepared := p.prepared
	points, states, counties := p.points, p.states, p.counties
	p.mu.Unlock()
	if !prepared {
		return errors.New("pipeline not prepared")
	}

	start := time.Now()
	img, err := p.renderer.Render(states, counties, points, opts)
	if err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	if err := p.sink.Save(img, opts); err != nil {
		return fmt.Errorf("save map: %w", err)
	}

	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.metrics.RendersTotal.WithLabelValues(string(opts.Mode)).Inc()
	p.ready.Store(true)

	p.logger.Info("map rendered",
		"mode", opts.Mode,
		"year", opts.Year,
		"duration", time.Since(start),
	)
	return nil
}

// RunInteractive consumes year requests from the control and re-renders the
// severity-split map for each, render-to-completion, until the context is
// cancelled. A failed render is logged and the loop keeps serving requests.
func (p *Pipeline) RunInteractive(ctx context.Context, ctrl *YearControl) error {
	p.logger.Info("interactive mode started", "boundary_year", p.boundaryYear)
	defer p.metrics.PipelineRunning.Set(0)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("interactive mode stopping", "reason", ctx.Err())
			return nil
		case year := <-ctrl.Changes():
			opts := render.Options{Mode: render.ModeSeverity, Year: year}
			if err := p.RenderFrame(ctx, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.logger.Error("render failed", "year", year, "error", err)
			}
		}
	}
}
