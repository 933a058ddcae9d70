// Command gendata regenerates the sample dataset fixture from the bundled
// table. It runs the rows through the actual loader so the fixture reflects
// real parsing behavior (location assignment, year extraction), then writes
// the canonicalized CSV and prints per-year aggregates for eyeballing.
//
// Usage:
//
//	go run ./cmd/gendata -out internal/dataset/testdata/sample.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/pollution-trends-service/internal/dataset"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	observations, err := dataset.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load embedded table: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	if err := dataset.WriteObservationsCSV(f, observations); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	yearly := domain.AggregateYearly(observations)
	fmt.Printf("wrote %d observations (%d years) to %s\n", len(observations), len(yearly), *out)
	for _, row := range yearly {
		fmt.Printf("  %d  bod5=%6.2f  nh3n=%6.2f  ss=%6.2f\n", row.Year, row.BOD5, row.NH3N, row.SS)
	}
	return nil
}
