package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity_Boundaries(t *testing.T) {
	assert.Equal(t, SeverityMinor, ClassifySeverity(0))
	assert.Equal(t, SeverityMinor, ClassifySeverity(1))
	assert.Equal(t, SeveritySevere, ClassifySeverity(2))
	assert.Equal(t, SeveritySevere, ClassifySeverity(5))
}

func TestSplitBySeverity_DisjointAndTotal(t *testing.T) {
	var records []GeoRecord
	for mag := 0; mag <= 5; mag++ {
		records = append(records, GeoRecord{TornadoRecord: TornadoRecord{Magnitude: mag}})
	}

	severe, minor := SplitBySeverity(records)

	assert.Len(t, severe, 4) // EF2–EF5
	assert.Len(t, minor, 2)  // EF0–EF1
	assert.Equal(t, len(records), len(severe)+len(minor))

	for _, r := range severe {
		assert.GreaterOrEqual(t, r.Magnitude, SevereThreshold)
	}
	for _, r := range minor {
		assert.Less(t, r.Magnitude, SevereThreshold)
	}
}

func TestSplitBySeverity_PreservesOrder(t *testing.T) {
	records := []GeoRecord{
		{TornadoRecord: TornadoRecord{State: "TX", Magnitude: 3}},
		{TornadoRecord: TornadoRecord{State: "OK", Magnitude: 1}},
		{TornadoRecord: TornadoRecord{State: "KS", Magnitude: 2}},
	}

	severe, minor := SplitBySeverity(records)

	assert.Equal(t, []string{"TX", "KS"}, []string{severe[0].State, severe[1].State})
	assert.Equal(t, "OK", minor[0].State)
}
