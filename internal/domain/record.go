package domain

import "github.com/paulmach/orb"

// UnknownMagnitude is the SPC sentinel for tornadoes with no recorded
// EF rating.
const UnknownMagnitude = -9

// CRS identifies the coordinate reference system of every geometry in this
// package: plain longitude/latitude degrees on WGS-84.
const CRS = "EPSG:4326"

// ContinentalViewport is the fixed rendering rectangle covering the
// contiguous United States. Boundary polygons are clipped to it and points
// outside it are not drawn.
var ContinentalViewport = orb.Bound{
	Min: orb.Point{-125.0, 24.0},
	Max: orb.Point{-66.5, 50.0},
}

// TornadoRecord is one reported tornado from the SPC historical dataset
// (1950–present "actual tornadoes" CSV). Column names follow the upstream
// file; csvutil maps them by header. Records are immutable once loaded —
// cleaning produces filtered copies.
type TornadoRecord struct {
	Number     int     `csv:"om"`
	Year       int     `csv:"yr"`
	Month      int     `csv:"mo"`
	Day        int     `csv:"dy"`
	Date       string  `csv:"date"`
	State      string  `csv:"st"`  // two-letter postal code
	StateFIPS  int     `csv:"stf"` // numeric state FIPS
	Magnitude  int     `csv:"mag"` // EF scale 0–5, or UnknownMagnitude
	Injuries   int     `csv:"inj"`
	Fatalities int     `csv:"fat"`
	StartLat   float64 `csv:"slat"`
	StartLon   float64 `csv:"slon"`
	EndLat     float64 `csv:"elat"`
	EndLon     float64 `csv:"elon"`
	PathLength float64 `csv:"len"` // miles
	PathWidth  int     `csv:"wid"` // yards
}

// RequiredColumns lists the CSV headers the pipeline cannot run without.
// The loader validates them before decoding so a schema change in the
// upstream file fails fast with a named error instead of surfacing as a
// zero-filled field downstream.
var RequiredColumns = []string{"st", "yr", "slat", "slon", "mag"}

// GeoRecord is a TornadoRecord plus its derived start-point geometry.
// Point always equals orb.Point{StartLon, StartLat}; Valid is false when the
// source coordinates cannot describe a real location and the record should
// be treated as best-effort by the renderer.
type GeoRecord struct {
	TornadoRecord
	Point orb.Point
	Valid bool
}

// PointSet is a geospatially-aware collection of tornado records sharing one
// coordinate reference system.
type PointSet struct {
	CRS     string
	Records []GeoRecord
}

// Administrative levels a BoundarySet can carry.
const (
	LevelState  = "state"
	LevelCounty = "county"
)

// Boundary is one administrative polygon (a state or a county) from the
// census cartographic boundary files.
type Boundary struct {
	GeoID    string
	Code     string // postal abbreviation for states, 5-digit FIPS for counties
	Name     string
	Geometry orb.Geometry // Polygon or MultiPolygon
}

// BoundarySet groups the boundaries fetched for one level and reference year.
type BoundarySet struct {
	Level      string // "state" or "county"
	Year       int
	Boundaries []Boundary
}
