// Package census fetches U.S. cartographic boundary polygons and clips them
// to the continental viewport.
package census

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/tornado-map/internal/domain"
	"github.com/couchcryptid/tornado-map/internal/observability"
)

// Boundary levels understood by the census cartographic boundary files.
const (
	LevelState  = domain.LevelState
	LevelCounty = domain.LevelCounty
)

// Client implements boundary fetching against a census-style GeoJSON
// provider. The URL template carries {year} and {level} placeholders.
type Client struct {
	urlTemplate string
	viewport    orb.Bound
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewClient creates a boundary client clipping to the given viewport.
func NewClient(urlTemplate string, viewport orb.Bound, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		urlTemplate: urlTemplate,
		viewport:    viewport,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchBoundaries retrieves the polygon collection for one level and
// reference year, drops excluded regions, and clips everything to the
// viewport. Fetch failures are fatal to the caller; there is no retry.
func (c *Client) FetchBoundaries(ctx context.Context, year int, level string) (domain.BoundarySet, error) {
	if level != LevelState && level != LevelCounty {
		return domain.BoundarySet{}, fmt.Errorf("unknown boundary level %q", level)
	}

	start := time.Now()
	fc, err := c.fetch(ctx, year, level)
	if err != nil {
		c.metrics.BoundaryFetches.WithLabelValues(level, "error").Inc()
		return domain.BoundarySet{}, err
	}
	c.metrics.BoundaryFetches.WithLabelValues(level, "success").Inc()
	c.metrics.FetchDuration.WithLabelValues("boundary").Observe(time.Since(start).Seconds())

	set := domain.BoundarySet{Level: level, Year: year}
	excludedFIPS := domain.ExcludedStateFIPS()
	excludedPostal := domain.ExcludedPostalCodes()
	excluded := 0
	for _, f := range fc.Features {
		b, ok := toBoundary(f, level, excludedFIPS, excludedPostal)
		if !ok {
			excluded++
			continue
		}
		set.Boundaries = append(set.Boundaries, b)
	}

	before := len(set.Boundaries)
	set = ClipToViewport(set, c.viewport)
	kept := len(set.Boundaries)
	c.metrics.BoundaryPolygons.WithLabelValues(level, "kept").Add(float64(kept))
	c.metrics.BoundaryPolygons.WithLabelValues(level, "dropped").Add(float64(before - kept))

	c.logger.Info("boundaries loaded",
		"level", level,
		"year", year,
		"kept", kept,
		"excluded_regions", excluded,
		"clipped_away", before-kept,
	)
	return set, nil
}

func (c *Client) fetch(ctx context.Context, year int, level string) (*geojson.FeatureCollection, error) {
	u := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{level}", level,
	).Replace(c.urlTemplate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create boundary request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s boundaries: %w", level, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s boundaries: status %d from %s", level, resp.StatusCode, u)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read boundary response: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode boundary geojson: %w", err)
	}
	return fc, nil
}

// toBoundary converts a GeoJSON feature into a domain boundary, reporting
// ok=false when the feature belongs to an excluded region. States and
// counties use different code vocabularies; both derive from the one
// canonical region table.
func toBoundary(f *geojson.Feature, level string, excludedFIPS, excludedPostal map[string]struct{}) (domain.Boundary, bool) {
	stateFIPS := f.Properties.MustString("STATEFP", f.Properties.MustString("STATE", ""))
	if _, skip := excludedFIPS[stateFIPS]; skip {
		return domain.Boundary{}, false
	}

	b := domain.Boundary{
		GeoID:    f.Properties.MustString("GEOID", ""),
		Name:     f.Properties.MustString("NAME", ""),
		Geometry: f.Geometry,
	}
	switch level {
	case LevelState:
		b.Code = f.Properties.MustString("STUSPS", "")
		if _, skip := excludedPostal[b.Code]; skip {
			return domain.Boundary{}, false
		}
	case LevelCounty:
		b.Code = b.GeoID // 5-digit state+county FIPS
	}
	return b, true
}

// ClipToViewport intersects every boundary with the viewport rectangle.
// Polygons entirely outside are dropped; straddling polygons are truncated.
// Clipping an already-clipped set is a no-op.
func ClipToViewport(set domain.BoundarySet, viewport orb.Bound) domain.BoundarySet {
	out := domain.BoundarySet{Level: set.Level, Year: set.Year}
	for _, b := range set.Boundaries {
		clipped := clip.Geometry(viewport, b.Geometry)
		if clipped == nil || emptyGeometry(clipped) {
			continue
		}
		b.Geometry = clipped
		out.Boundaries = append(out.Boundaries, b)
	}
	return out
}

func emptyGeometry(g orb.Geometry) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return len(geom) == 0
	case orb.MultiPolygon:
		return len(geom) == 0
	default:
		return false
	}
}
