// Command genfixtures trims full-size source files into small deterministic
// fixtures for the test suite: a year's worth of tornado rows from the SPC
// CSV and a viewport-clipped subset of a boundary GeoJSON file.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -csv data/1950-2023_actual_tornadoes.csv \
//	  -year 2011 -limit 50 \
//	  -csv-out internal/adapter/spc/testdata/tornadoes_2011.csv \
//	  -geojson data/cb_2021_us_state_20m.json \
//	  -geojson-out internal/adapter/census/testdata/states_clipped.json
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/tornado-map/internal/adapter/census"
	"github.com/couchcryptid/tornado-map/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvIn := flag.String("csv", "", "full SPC tornado CSV")
	csvOut := flag.String("csv-out", "", "trimmed CSV fixture path")
	year := flag.Int("year", 0, "keep only this year's rows (0 = all)")
	limit := flag.Int("limit", 50, "maximum rows in the CSV fixture")
	geojsonIn := flag.String("geojson", "", "full boundary GeoJSON")
	geojsonOut := flag.String("geojson-out", "", "clipped GeoJSON fixture path")
	flag.Parse()

	if *csvIn != "" {
		if *csvOut == "" {
			return errors.New("-csv requires -csv-out")
		}
		if err := trimCSV(*csvIn, *csvOut, *year, *limit); err != nil {
			return err
		}
	}
	if *geojsonIn != "" {
		if *geojsonOut == "" {
			return errors.New("-geojson requires -geojson-out")
		}
		if err := trimGeoJSON(*geojsonIn, *geojsonOut); err != nil {
			return err
		}
	}
	if *csvIn == "" && *geojsonIn == "" {
		flag.Usage()
		return errors.New("nothing to do")
	}
	return nil
}

func trimCSV(in, out string, year, limit int) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	var kept []domain.TornadoRecord
	for len(kept) < limit {
		var rec domain.TornadoRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if year != 0 && rec.Year != year {
			continue
		}
		kept = append(kept, rec)
	}

	data, err := csvutil.Marshal(kept)
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %d rows to %s", len(kept), out)
	return nil
}

func trimGeoJSON(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("decode geojson: %w", err)
	}

	// Reuse the pipeline's own exclusion and clipping so fixtures match
	// what the boundary loader would produce.
	excludedFIPS := domain.ExcludedStateFIPS()
	set := domain.BoundarySet{Level: domain.LevelState}
	keptFeatures := make(map[string]*geojson.Feature)
	for _, f := range fc.Features {
		fips := f.Properties.MustString("STATEFP", f.Properties.MustString("STATE", ""))
		if _, skip := excludedFIPS[fips]; skip {
			continue
		}
		geoID := f.Properties.MustString("GEOID", fips)
		set.Boundaries = append(set.Boundaries, domain.Boundary{GeoID: geoID, Geometry: f.Geometry})
		keptFeatures[geoID] = f
	}

	clipped := census.ClipToViewport(set, domain.ContinentalViewport)
	outFC := geojson.NewFeatureCollection()
	for _, b := range clipped.Boundaries {
		f, ok := keptFeatures[b.GeoID]
		if !ok {
			continue
		}
		nf := geojson.NewFeature(b.Geometry)
		nf.Properties = f.Properties
		outFC.Append(nf)
	}

	trimmed, err := outFC.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(out, trimmed, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %d features to %s", len(outFC.Features), out)
	return nil
}
