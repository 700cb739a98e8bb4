package domain

import "github.com/paulmach/orb"

// BuildGeometries derives a point geometry for every record, preserving
// positional correspondence: record i produces geometry i from record i's
// start coordinates and nothing else. Records with coordinates outside the
// valid longitude/latitude ranges (or the 0,0 null island placeholder used
// by some early dataset years) are kept but marked invalid so rendering can
// skip them instead of aborting the batch.
func BuildGeometries(records []TornadoRecord) PointSet {
	out := PointSet{
		CRS:     CRS,
		Records: make([]GeoRecord, len(records)),
	}
	for i, r := range records {
		out.Records[i] = GeoRecord{
			TornadoRecord: r,
			Point:         orb.Point{r.StartLon, r.StartLat},
			Valid:         validCoordinates(r.StartLon, r.StartLat),
		}
	}
	return out
}

// FilterYear returns the subset of a point set recorded in the given year.
// A zero year means no filtering.
func FilterYear(set PointSet, year int) PointSet {
	if year == 0 {
		return set
	}
	out := PointSet{CRS: set.CRS, Records: make([]GeoRecord, 0, len(set.Records))}
	for _, r := range set.Records {
		if r.Year == year {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

func validCoordinates(lon, lat float64) bool {
	if lon == 0 && lat == 0 {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
