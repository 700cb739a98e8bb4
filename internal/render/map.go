package render

import (
	"fmt"
	"image"

	"github.com/paulmach/orb"
	"golang.org/x/image/font/basicfont"

	"github.com/couchcryptid/tornado-map/internal/domain"
)

// Mode selects how tornado points are encoded.
type Mode string

const (
	// ModeAll plots every record as a uniform marker.
	ModeAll Mode = "all"
	// ModeSeverity splits records at the severity threshold and draws the
	// severe group on top of the minor group.
	ModeSeverity Mode = "severity"
)

// Options parameterize one map render.
type Options struct {
	Mode Mode
	Year int // 0 renders all years
}

// Color and stroke constants for the map layers.
const (
	colorBackground = "#f6f8fa"
	colorLand       = "#e9e6df"
	colorCounty     = "#c9c9c9"
	colorState      = "#5a5a5a"
	colorUniform    = "#2455a4"
	colorMinor      = "#5b8fd9"
	colorSevere     = "#c0392b"
	colorLabel      = "#333333"

	countyStroke = 0.6
	stateStroke  = 1.5

	uniformRadius = 2.0
	minorRadius   = 1.8
	severeRadius  = 3.0
)

// Renderer produces map images of a fixed size and viewport. Each Render
// call builds a fresh Context, so concurrent callers never share canvas
// state.
type Renderer struct {
	width    int
	height   int
	viewport orb.Bound
}

// NewRenderer creates a renderer for the given canvas size and viewport.
func NewRenderer(width, height int, viewport orb.Bound) *Renderer {
	return &Renderer{width: width, height: height, viewport: viewport}
}

// Render overlays boundaries and tornado points on a new canvas and returns
// the image. The year filter, when set, restricts records before any
// severity partitioning.
func (r *Renderer) Render(states, counties domain.BoundarySet, points domain.PointSet, opts Options) (image.Image, error) {
	switch opts.Mode {
	case ModeAll, ModeSeverity:
	default:
		return nil, fmt.Errorf("unknown render mode %q", opts.Mode)
	}

	c := NewContext(r.width, r.height, r.viewport)
	// land is filled once, before any strokes, so the county lines drawn
	// under the heavier state lines stay visible
	c.fillLand(states)
	c.strokeBoundaries(counties, colorCounty, countyStroke)
	c.strokeBoundaries(states, colorState, stateStroke)

	filtered := domain.FilterYear(points, opts.Year)
	switch opts.Mode {
	case ModeAll:
		c.drawPoints(filtered.Records, colorUniform, uniformRadius)
	case ModeSeverity:
		severe, minor := domain.SplitBySeverity(filtered.Records)
		// minor first so the severe group is never occluded
		c.drawPoints(minor, colorMinor, minorRadius)
		c.drawPoints(severe, colorSevere, severeRadius)
	}

	c.drawLabel(opts)
	return c.Image(), nil
}

// fillLand paints the interior of every polygon in the set with the land
// color, without stroking.
func (c *Context) fillLand(set domain.BoundarySet) {
	c.dc.SetHexColor(colorLand)
	for _, b := range set.Boundaries {
		forEachPolygon(b.Geometry, func(poly orb.Polygon) {
			c.tracePolygon(poly)
			c.dc.Fill()
		})
	}
}

// strokeBoundaries outlines every polygon in the set, without filling.
func (c *Context) strokeBoundaries(set domain.BoundarySet, hexColor string, width float64) {
	c.dc.SetHexColor(hexColor)
	c.dc.SetLineWidth(width)
	for _, b := range set.Boundaries {
		forEachPolygon(b.Geometry, func(poly orb.Polygon) {
			c.tracePolygon(poly)
			c.dc.Stroke()
		})
	}
}

func forEachPolygon(geom orb.Geometry, fn func(orb.Polygon)) {
	switch g := geom.(type) {
	case orb.Polygon:
		fn(g)
	case orb.MultiPolygon:
		for _, poly := range g {
			fn(poly)
		}
	}
}

// tracePolygon appends the polygon's rings to the current path.
func (c *Context) tracePolygon(poly orb.Polygon) {
	for _, ring := range poly {
		if len(ring) == 0 {
			continue
		}
		x, y := c.Project(ring[0])
		c.dc.MoveTo(x, y)
		for _, p := range ring[1:] {
			x, y = c.Project(p)
			c.dc.LineTo(x, y)
		}
		c.dc.ClosePath()
	}
}

// drawPoints renders markers for every valid record inside the viewport.
// Invalid geometries are best-effort: skipped, never fatal.
func (c *Context) drawPoints(records []domain.GeoRecord, hexColor string, radius float64) {
	c.dc.SetHexColor(hexColor)
	for _, r := range records {
		if !r.Valid || !c.viewport.Contains(r.Point) {
			continue
		}
		x, y := c.Project(r.Point)
		c.dc.DrawCircle(x, y, radius)
		c.dc.Fill()
	}
}

func (c *Context) drawLabel(opts Options) {
	label := "tornadoes, all years"
	if opts.Year != 0 {
		label = fmt.Sprintf("tornadoes, %d", opts.Year)
	}
	if opts.Mode == ModeSeverity {
		label += fmt.Sprintf(" (EF%d+ highlighted)", domain.SevereThreshold)
	}
	c.dc.SetFontFace(basicfont.Face7x13)
	c.dc.SetHexColor(colorLabel)
	c.dc.DrawString(label, 12, float64(c.height)-12)
}
