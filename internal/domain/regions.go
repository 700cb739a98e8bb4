package domain

// Region pairs the two code vocabularies used for U.S. administrative areas:
// the postal abbreviation carried by the tornado dataset and the numeric
// state FIPS prefix carried by the county boundary files.
type Region struct {
	Postal string
	FIPS   string
	Name   string
}

// NonContinental is the canonical exclusion table. The record cleaner and
// the boundary loader both derive their exclusion sets from it, so adding a
// region here updates every vocabulary at once.
var NonContinental = []Region{
	{Postal: "AK", FIPS: "02", Name: "Alaska"},
	{Postal: "HI", FIPS: "15", Name: "Hawaii"},
	{Postal: "PR", FIPS: "72", Name: "Puerto Rico"},
	{Postal: "VI", FIPS: "78", Name: "Virgin Islands"},
}

// ExcludedPostalCodes returns the postal-code vocabulary of NonContinental.
func ExcludedPostalCodes() map[string]struct{} {
	out := make(map[string]struct{}, len(NonContinental))
	for _, r := range NonContinental {
		out[r.Postal] = struct{}{}
	}
	return out
}

// ExcludedStateFIPS returns the state-FIPS vocabulary of NonContinental.
func ExcludedStateFIPS() map[string]struct{} {
	out := make(map[string]struct{}, len(NonContinental))
	for _, r := range NonContinental {
		out[r.FIPS] = struct{}{}
	}
	return out
}
