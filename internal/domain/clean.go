package domain

// FilterRegions returns the records whose state postal code is not in the
// excluded set. The input slice is never mutated.
func FilterRegions(records []TornadoRecord, excluded map[string]struct{}) []TornadoRecord {
	out := make([]TornadoRecord, 0, len(records))
	for _, r := range records {
		if _, skip := excluded[r.State]; skip {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterUnknownMagnitude returns the records whose magnitude is not the
// UnknownMagnitude sentinel.
func FilterUnknownMagnitude(records []TornadoRecord) []TornadoRecord {
	out := make([]TornadoRecord, 0, len(records))
	for _, r := range records {
		if r.Magnitude == UnknownMagnitude {
			continue
		}
		out = append(out, r)
	}
	return out
}

// OutOfRangeMagnitudes returns any records whose magnitude falls outside the
// EF scale after sentinel filtering. A non-empty result means the upstream
// unknown-value encoding has drifted; callers log a warning per record.
func OutOfRangeMagnitudes(records []TornadoRecord) []TornadoRecord {
	var out []TornadoRecord
	for _, r := range records {
		if r.Magnitude < 0 || r.Magnitude > 5 {
			out = append(out, r)
		}
	}
	return out
}
