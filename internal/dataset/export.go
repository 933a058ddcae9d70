package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// WriteObservationsCSV writes the raw observation table. The date column is
// reconstructed as January 1st of the year so the output reloads through the
// same loader, reproducing the observation set (locations are reassigned in
// row order, which WriteObservationsCSV preserves).
func WriteObservationsCSV(w io.Writer, observations []domain.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Location", "BOD5", "NH3N", "SS"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range observations {
		record := []string{
			fmt.Sprintf("%04d-01-01", o.Year),
			o.Location,
			formatProportion(o.BOD5),
			formatProportion(o.NH3N),
			formatProportion(o.SS),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYearlyCSV writes the yearly-aggregated table.
func WriteYearlyCSV(w io.Writer, rows []domain.YearlyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Year", "BOD5", "NH3N", "SS"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Year),
			formatProportion(r.BOD5),
			formatProportion(r.NH3N),
			formatProportion(r.SS),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadYearlyCSV parses a table produced by WriteYearlyCSV back into rows.
func ReadYearlyCSV(r io.Reader) ([]domain.YearlyRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read yearly csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read yearly csv: no header row")
	}

	rows := make([]domain.YearlyRow, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("yearly csv row %d: want 4 fields, got %d", n+2, len(record))
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("yearly csv row %d: year: %w", n+2, err)
		}
		values := make([]float64, 3)
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("yearly csv row %d: %w", n+2, err)
			}
			values[i] = v
		}
		rows = append(rows, domain.YearlyRow{Year: year, BOD5: values[0], NH3N: values[1], SS: values[2]})
	}
	return rows, nil
}

// WriteInflectionsCSV writes the flagged years with their per-indicator
// changes. Infinite changes (prior-year zero) are written as "n/a".
func WriteInflectionsCSV(w io.Writer, inflections []analysis.InflectionYear) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Year", "BOD5 change %", "NH3N change %", "SS change %"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, inf := range inflections {
		record := []string{strconv.Itoa(inf.Year)}
		for _, p := range domain.Pollutants() {
			record = append(record, formatChange(inf.Changes[p]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatProportion(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatChange(v float64) string {
	if math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
