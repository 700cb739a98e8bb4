package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRegions(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", Year: 2023, Magnitude: 1},
		{State: "AK", Year: 2023, Magnitude: 3},
		{State: "HI", Year: 2022, Magnitude: 0},
		{State: "OK", Year: 2023, Magnitude: 2},
	}

	out := FilterRegions(records, ExcludedPostalCodes())

	require.Len(t, out, 2)
	assert.Equal(t, "TX", out[0].State)
	assert.Equal(t, "OK", out[1].State)
	// input untouched
	assert.Len(t, records, 4)
}

func TestFilterUnknownMagnitude(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", Magnitude: UnknownMagnitude},
		{State: "OK", Magnitude: 0},
		{State: "KS", Magnitude: 5},
	}

	out := FilterUnknownMagnitude(records)

	require.Len(t, out, 2)
	assert.Equal(t, "OK", out[0].State)
	assert.Equal(t, "KS", out[1].State)
}

func TestCleaner_Scenario(t *testing.T) {
	// The canonical cleaning scenario: one sentinel row, one excluded
	// region, one survivor.
	records := []TornadoRecord{
		{State: "TX", Year: 2023, Magnitude: UnknownMagnitude},
		{State: "AK", Year: 2023, Magnitude: 3},
		{State: "OK", Year: 2023, Magnitude: 2},
	}

	out := FilterUnknownMagnitude(FilterRegions(records, ExcludedPostalCodes()))

	require.Len(t, out, 1)
	assert.Equal(t, "OK", out[0].State)
	assert.Equal(t, 2023, out[0].Year)
	assert.Equal(t, 2, out[0].Magnitude)
}

func TestCleaner_OrderIndependent(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", Magnitude: UnknownMagnitude},
		{State: "AK", Magnitude: 3},
		{State: "PR", Magnitude: UnknownMagnitude},
		{State: "OK", Magnitude: 2},
		{State: "KS", Magnitude: 0},
	}
	excluded := ExcludedPostalCodes()

	regionFirst := FilterUnknownMagnitude(FilterRegions(records, excluded))
	magnitudeFirst := FilterRegions(FilterUnknownMagnitude(records), excluded)

	assert.Equal(t, regionFirst, magnitudeFirst)
}

func TestCleaner_MonotoneAndPostconditions(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", Magnitude: 4},
		{State: "AK", Magnitude: UnknownMagnitude},
		{State: "VI", Magnitude: 1},
		{State: "NE", Magnitude: UnknownMagnitude},
		{State: "IA", Magnitude: 0},
	}
	excluded := ExcludedPostalCodes()

	afterRegions := FilterRegions(records, excluded)
	assert.LessOrEqual(t, len(afterRegions), len(records))

	cleaned := FilterUnknownMagnitude(afterRegions)
	assert.LessOrEqual(t, len(cleaned), len(afterRegions))

	for _, r := range cleaned {
		assert.NotEqual(t, UnknownMagnitude, r.Magnitude)
		assert.NotContains(t, excluded, r.State)
	}
}

func TestOutOfRangeMagnitudes(t *testing.T) {
	records := []TornadoRecord{
		{State: "TX", Magnitude: 0},
		{State: "OK", Magnitude: 5},
		{State: "KS", Magnitude: 6},  // drifted encoding
		{State: "NE", Magnitude: -1}, // new sentinel?
	}

	out := OutOfRangeMagnitudes(records)

	require.Len(t, out, 2)
	assert.Equal(t, "KS", out[0].State)
	assert.Equal(t, "NE", out[1].State)
}

func TestExclusionVocabulariesStayInSync(t *testing.T) {
	postal := ExcludedPostalCodes()
	fips := ExcludedStateFIPS()

	assert.Len(t, postal, len(NonContinental))
	assert.Len(t, fips, len(NonContinental))
	for _, r := range NonContinental {
		assert.Contains(t, postal, r.Postal)
		assert.Contains(t, fips, r.FIPS)
	}
}
