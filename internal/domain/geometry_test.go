package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeometries_RoundTrip(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", StartLon: -98.44, StartLat: 31.02},
		{State: "OK", StartLon: -95.77, StartLat: 34.96},
	}

	set := BuildGeometries(records)

	require.Len(t, set.Records, 2)
	assert.Equal(t, "EPSG:4326", set.CRS)
	for i, r := range set.Records {
		// geometry derives from row i's coordinates and nothing else
		assert.Equal(t, orb.Point{records[i].StartLon, records[i].StartLat}, r.Point)
		assert.Equal(t, records[i].StartLon, r.Point.X())
		assert.Equal(t, records[i].StartLat, r.Point.Y())
		assert.True(t, r.Valid)
	}
}

func TestBuildGeometries_FlagsInvalidCoordinates(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", StartLon: -98.44, StartLat: 31.02},
		{State: "OK", StartLon: 0, StartLat: 0},       // unrecorded placeholder
		{State: "KS", StartLon: -985.1, StartLat: 38}, // corrupt longitude
		{State: "NE", StartLon: -97, StartLat: 94},    // corrupt latitude
	}

	set := BuildGeometries(records)

	require.Len(t, set.Records, 4)
	assert.True(t, set.Records[0].Valid)
	assert.False(t, set.Records[1].Valid)
	assert.False(t, set.Records[2].Valid)
	assert.False(t, set.Records[3].Valid)
}

func TestFilterYear(t *testing.T) {
	set := BuildGeometries([]TornadoRecord{
		{State: "TX", Year: 2011, StartLon: -98, StartLat: 31},
		{State: "OK", Year: 2013, StartLon: -95, StartLat: 35},
		{State: "KS", Year: 2011, StartLon: -97, StartLat: 38},
	})

	filtered := FilterYear(set, 2011)
	require.Len(t, filtered.Records, 2)
	assert.Equal(t, "TX", filtered.Records[0].State)
	assert.Equal(t, "KS", filtered.Records[1].State)
	assert.Equal(t, set.CRS, filtered.CRS)

	all := FilterYear(set, 0)
	assert.Len(t, all.Records, 3)
}
