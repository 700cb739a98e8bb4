package domain

// SevereThreshold is the EF magnitude at and above which a tornado is
// classified severe for map rendering. EF0–1 are minor.
const SevereThreshold = 2

// Severity is the two-level rendering classification.
type Severity string

const (
	SeverityMinor  Severity = "minor"
	SeveritySevere Severity = "severe"
)

// ClassifySeverity maps an EF magnitude to its rendering severity. The split
// is total: every magnitude is exactly one of severe or minor, with the
// boundary value SevereThreshold classified severe.
func ClassifySeverity(magnitude int) Severity {
	if magnitude >= SevereThreshold {
		return SeveritySevere
	}
	return SeverityMinor
}

// SplitBySeverity partitions records into disjoint (severe, minor) groups,
// preserving relative order within each group.
func SplitBySeverity(records []GeoRecord) (severe, minor []GeoRecord) {
	for _, r := range records {
		if ClassifySeverity(r.Magnitude) == SeveritySevere {
			severe = append(severe, r)
			continue
		}
		minor = append(minor, r)
	}
	return severe, minor
}
