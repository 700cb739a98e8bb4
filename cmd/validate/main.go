// Command validate runs data integrity checks over a local copy of the SPC
// tornado CSV: schema presence, cleaning invariants, geometry round-trip,
// and severity partition rules. It exits non-zero if any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -csv data/1950-2023_actual_tornadoes.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/tornado-map/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the SPC tornado CSV")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	phases, err := run(*csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "validate:", err)
		os.Exit(1)
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(path string) ([]*phase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	schema := &phase{name: "schema"}
	records, err := decode(f, schema)
	if err != nil {
		return nil, err
	}

	return []*phase{
		schema,
		checkCleaning(records),
		checkGeometry(records),
		checkSeverity(),
		checkRegionTable(),
	}, nil
}

func decode(r io.Reader, schema *phase) ([]domain.TornadoRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	present := map[string]struct{}{}
	for _, h := range dec.Header() {
		present[h] = struct{}{}
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := present[col]; !ok {
			schema.errorf("missing required column %q", col)
		}
	}
	if !schema.passed() {
		return nil, nil
	}

	var records []domain.TornadoRecord
	skipped := 0
	for {
		var rec domain.TornadoRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		schema.errorf("%d rows failed to parse", skipped)
	}
	return records, nil
}

func checkCleaning(records []domain.TornadoRecord) *phase {
	p := &phase{name: "cleaning"}
	excluded := domain.ExcludedPostalCodes()

	regionFirst := domain.FilterUnknownMagnitude(domain.FilterRegions(records, excluded))
	magFirst := domain.FilterRegions(domain.FilterUnknownMagnitude(records), excluded)

	if len(regionFirst) > len(records) {
		p.errorf("cleaner grew the table: %d -> %d", len(records), len(regionFirst))
	}
	if len(regionFirst) != len(magFirst) {
		p.errorf("filter order changed the result: %d vs %d rows", len(regionFirst), len(magFirst))
	}
	for _, r := range regionFirst {
		if r.Magnitude == domain.UnknownMagnitude {
			p.errorf("sentinel magnitude survived cleaning: record %d", r.Number)
			break
		}
		if _, bad := excluded[r.State]; bad {
			p.errorf("excluded region survived cleaning: record %d state %s", r.Number, r.State)
			break
		}
	}
	for _, r := range domain.OutOfRangeMagnitudes(regionFirst) {
		p.errorf("magnitude %d outside EF range: record %d (encoding drift?)", r.Magnitude, r.Number)
	}
	return p
}

func checkGeometry(records []domain.TornadoRecord) *phase {
	p := &phase{name: "geometry"}
	set := domain.BuildGeometries(records)
	if len(set.Records) != len(records) {
		p.errorf("geometry count %d != record count %d", len(set.Records), len(records))
		return p
	}
	if set.CRS != domain.CRS {
		p.errorf("unexpected CRS %q", set.CRS)
	}
	invalid := 0
	for i, g := range set.Records {
		want := orb.Point{records[i].StartLon, records[i].StartLat}
		if g.Point != want {
			p.errorf("row %d geometry %v does not match coordinates %v", i, g.Point, want)
			break
		}
		if !g.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		fmt.Printf("note: %d records carry unusable coordinates and will not be drawn\n", invalid)
	}
	return p
}

func checkSeverity() *phase {
	p := &phase{name: "severity partition"}
	for mag := 0; mag <= 5; mag++ {
		s := domain.ClassifySeverity(mag)
		if mag >= domain.SevereThreshold && s != domain.SeveritySevere {
			p.errorf("magnitude %d classified %s, want severe", mag, s)
		}
		if mag < domain.SevereThreshold && s != domain.SeverityMinor {
			p.errorf("magnitude %d classified %s, want minor", mag, s)
		}
	}
	return p
}

func checkRegionTable() *phase {
	p := &phase{name: "region exclusion table"}
	postal := domain.ExcludedPostalCodes()
	fips := domain.ExcludedStateFIPS()
	if len(postal) != len(domain.NonContinental) || len(fips) != len(domain.NonContinental) {
		p.errorf("exclusion vocabularies out of sync: %d postal, %d fips, %d canonical",
			len(postal), len(fips), len(domain.NonContinental))
	}
	return p
}
