package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/tornado-map/internal/domain"
)

const (
	testWidth  = 400
	testHeight = 250
)

func record(state string, year, mag int, lon, lat float64) domain.GeoRecord {
	return domain.GeoRecord{
		TornadoRecord: domain.TornadoRecord{State: state, Year: year, Magnitude: mag, StartLon: lon, StartLat: lat},
		Point:         orb.Point{lon, lat},
		Valid:         true,
	}
}

func pointSet(records ...domain.GeoRecord) domain.PointSet {
	return domain.PointSet{CRS: domain.CRS, Records: records}
}

func pixelAt(t *testing.T, img image.Image, lon, lat float64) color.RGBA {
	t.Helper()
	c := NewContext(testWidth, testHeight, domain.ContinentalViewport)
	x, y := c.Project(orb.Point{lon, lat})
	return color.RGBAModel.Convert(img.At(int(x), int(y))).(color.RGBA)
}

func hex(t *testing.T, s string) color.RGBA {
	t.Helper()
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	require.NoError(t, err)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func TestRender_Dimensions(t *testing.T) {
	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)

	img, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, pointSet(), Options{Mode: ModeAll})

	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, testWidth, bounds.Dx())
	assert.Equal(t, testHeight, bounds.Dy())
}

func TestRender_UnknownModeRejected(t *testing.T) {
	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	_, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, pointSet(), Options{Mode: "choropleth"})
	require.Error(t, err)
}

func TestRender_SevereDrawnOnTopOfMinor(t *testing.T) {
	// Coincident points: an EF1 and an EF2 at the same coordinates. In
	// severity mode the EF2 marker must win the pixel.
	lon, lat := -98.0, 35.0
	points := pointSet(
		record("OK", 2011, 2, lon, lat),
		record("OK", 2011, 1, lon, lat),
	)

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, points, Options{Mode: ModeSeverity})
	require.NoError(t, err)

	assert.Equal(t, hex(t, colorSevere), pixelAt(t, img, lon, lat))
}

func TestRender_BoundaryMagnitudeTwoIsSevere(t *testing.T) {
	lon, lat := -95.0, 38.0
	points := pointSet(record("KS", 2011, 2, lon, lat))

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, points, Options{Mode: ModeSeverity, Year: 2011})
	require.NoError(t, err)

	assert.Equal(t, hex(t, colorSevere), pixelAt(t, img, lon, lat))
	assert.NotEqual(t, hex(t, colorMinor), pixelAt(t, img, lon, lat))
}

func TestRender_YearFilterExcludesOtherYears(t *testing.T) {
	lon, lat := -90.0, 33.0
	points := pointSet(record("MS", 2010, 4, lon, lat))

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, points, Options{Mode: ModeSeverity, Year: 2011})
	require.NoError(t, err)

	// nothing drawn there, so the pixel keeps the background color
	assert.Equal(t, hex(t, colorBackground), pixelAt(t, img, lon, lat))
}

func TestRender_UniformMode(t *testing.T) {
	lon, lat := -86.0, 34.0
	points := pointSet(record("AL", 2011, 0, lon, lat))

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, points, Options{Mode: ModeAll})
	require.NoError(t, err)

	assert.Equal(t, hex(t, colorUniform), pixelAt(t, img, lon, lat))
}

func TestRender_SkipsInvalidGeometry(t *testing.T) {
	bad := record("TX", 2011, 3, 0, 0)
	bad.Valid = false
	points := pointSet(bad)

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	_, err := r.Render(domain.BoundarySet{}, domain.BoundarySet{}, points, Options{Mode: ModeSeverity})
	require.NoError(t, err)
}

func TestRender_DrawsBoundaryFill(t *testing.T) {
	states := domain.BoundarySet{
		Level: "state",
		Boundaries: []domain.Boundary{{
			Code: "TX",
			Geometry: orb.Polygon{orb.Ring{
				{-104, 28}, {-94, 28}, {-94, 36}, {-104, 36}, {-104, 28},
			}},
		}},
	}

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(states, domain.BoundarySet{}, pointSet(), Options{Mode: ModeAll})
	require.NoError(t, err)

	// interior of the polygon carries the land fill
	assert.Equal(t, hex(t, colorLand), pixelAt(t, img, -99, 32))
}

func TestRender_CountyLinesVisibleInsideState(t *testing.T) {
	states := domain.BoundarySet{
		Level: domain.LevelState,
		Boundaries: []domain.Boundary{{
			Code: "KS",
			Geometry: orb.Polygon{orb.Ring{
				{-104, 28}, {-92, 28}, {-92, 38}, {-104, 38}, {-104, 28},
			}},
		}},
	}
	counties := domain.BoundarySet{
		Level: domain.LevelCounty,
		Boundaries: []domain.Boundary{{
			GeoID: "20001",
			Geometry: orb.Polygon{orb.Ring{
				{-100, 30}, {-96, 30}, {-96, 34}, {-100, 34}, {-100, 30},
			}},
		}},
	}

	r := NewRenderer(testWidth, testHeight, domain.ContinentalViewport)
	img, err := r.Render(states, counties, pointSet(), Options{Mode: ModeAll})
	require.NoError(t, err)

	land := hex(t, colorLand)

	// a pixel on the county's east edge, interior to the state, carries the
	// county stroke rather than being repainted by the state land fill
	edge := pixelAt(t, img, -96, 32)
	assert.NotEqual(t, land, edge)
	assert.Less(t, edge.R, land.R, "county stroke should darken the land fill")

	// the county interior stays land-colored
	assert.Equal(t, land, pixelAt(t, img, -98, 32))
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	c := NewContext(10, 8, domain.ContinentalViewport)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, c.Image()))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestProject_Corners(t *testing.T) {
	c := NewContext(testWidth, testHeight, domain.ContinentalViewport)

	x, y := c.Project(c.Viewport().Min) // southwest corner
	assert.InDelta(t, 0, x, 0.001)
	assert.InDelta(t, float64(testHeight), y, 0.001)

	x, y = c.Project(c.Viewport().Max) // northeast corner
	assert.InDelta(t, float64(testWidth), x, 0.001)
	assert.InDelta(t, 0, y, 0.001)
}
