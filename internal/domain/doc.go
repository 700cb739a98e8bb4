// Package domain models the SPC historical tornado dataset and the census
// boundary geometry used to map it.
//
// # Data Source
//
// Tornado records come from the NOAA Storm Prediction Center (SPC) severe
// weather database, published as one CSV covering 1950 to the present at
// https://www.spc.noaa.gov/wcm/data/. One row is one reported tornado; the
// columns this pipeline depends on are:
//
//	st    two-letter state postal code, e.g. "TX"
//	yr    four-digit year
//	slat  touchdown latitude in decimal degrees
//	slon  touchdown longitude in decimal degrees
//	mag   Enhanced Fujita (EF) damage rating, 0–5
//
// Magnitude encoding:
//
//	-9 is the SPC sentinel for "not recorded" ([UnknownMagnitude]).
//	Ratings before 2007 use the original Fujita scale; the dataset carries
//	both under the same column and this pipeline treats them uniformly.
//
// # Region Codes
//
// The tornado data identifies states by postal abbreviation while the census
// county boundary files identify them by numeric FIPS prefix. The canonical
// [NonContinental] table carries both vocabularies for the four regions
// excluded from the continental map (Alaska, Hawaii, Puerto Rico, Virgin
// Islands) so the two exclusion sets cannot drift apart.
//
// # Geometry
//
// All geometry is plain longitude/latitude degrees on WGS-84 ([CRS],
// EPSG:4326), represented with paulmach/orb types. Points derive only from
// each record's own slon/slat pair; boundary polygons are clipped to
// [ContinentalViewport] before rendering.
//
// # Severity
//
// Maps split tornadoes at EF2 ([SevereThreshold]): the severe group (EF2+)
// is drawn on top of the minor group so it is never visually occluded.
package domain
