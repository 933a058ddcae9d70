// Package dataset loads pollution observations from the bundled table, CSV
// files, or XLSX workbooks, and exposes a load-once Store of the observation
// set plus every derived analysis artifact.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// Source selects where observations are loaded from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceCSV      Source = "csv"
	SourceXLSX     Source = "xlsx"
)

// column identifies a mapped table column.
type column int

const (
	colUnknown column = iota
	colDate
	colBOD5
	colNH3N
	colSS
)

// mapHeader resolves a header cell to a known column. Both the raw upstream
// names (Date, BOD5, NH3N, SS) and the report names (YEAR, Proportion bod5,
// ...) are accepted, case-insensitively. Unmapped columns are skipped.
func mapHeader(h string) column {
	switch strings.ToLower(strings.TrimSpace(h)) {
	case "date", "year":
		return colDate
	case "bod5", "proportion bod5":
		return colBOD5
	case "nh3n", "proportion nh3n":
		return colNH3N
	case "ss", "proportion ss":
		return colSS
	default:
		return colUnknown
	}
}

// LoadEmbedded parses the bundled monitoring table.
func LoadEmbedded() ([]domain.Observation, error) {
	return parseCSV(strings.NewReader(embeddedCSV))
}

// LoadCSVFile reads observations from a CSV file.
func LoadCSVFile(path string) ([]domain.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	obs, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	return obs, nil
}

// LoadXLSXFile reads observations from the first sheet of an XLSX workbook.
func LoadXLSXFile(path string) ([]domain.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("read xlsx %s: no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx %s sheet %s: %w", path, sheet, err)
	}

	obs, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx %s: %w", path, err)
	}
	return obs, nil
}

// Load dispatches to the loader for the configured source.
func Load(source Source, path string) ([]domain.Observation, error) {
	switch source {
	case SourceEmbedded:
		return LoadEmbedded()
	case SourceCSV:
		return LoadCSVFile(path)
	case SourceXLSX:
		return LoadXLSXFile(path)
	default:
		return nil, fmt.Errorf("unknown data source %q", source)
	}
}

// ParseCSV reads observations from CSV content.
func ParseCSV(r io.Reader) ([]domain.Observation, error) {
	return parseCSV(r)
}

func parseCSV(r io.Reader) ([]domain.Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(records)
}

// parseRows maps the header, parses each data row, and assigns location
// labels to rows sharing a year in file order.
func parseRows(rows [][]string) ([]domain.Observation, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse table: no header row")
	}

	mapping := make([]column, len(rows[0]))
	seen := make(map[column]bool)
	for i, h := range rows[0] {
		c := mapHeader(h)
		mapping[i] = c
		if c != colUnknown {
			seen[c] = true
		}
	}
	for _, c := range []column{colDate, colBOD5, colNH3N, colSS} {
		if !seen[c] {
			return nil, fmt.Errorf("parse table: missing required column (have %q)", rows[0])
		}
	}

	observations := make([]domain.Observation, 0, len(rows)-1)
	rowIndexInYear := make(map[int]int)
	for n, row := range rows[1:] {
		obs, err := parseRow(mapping, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		obs.Location = domain.LocationLabel(rowIndexInYear[obs.Year])
		rowIndexInYear[obs.Year]++
		observations = append(observations, obs)
	}

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Year < observations[j].Year
	})
	return observations, nil
}

func parseRow(mapping []column, row []string) (domain.Observation, error) {
	var obs domain.Observation
	for i, cell := range row {
		if i >= len(mapping) {
			break
		}
		switch mapping[i] {
		case colDate:
			year, err := domain.ParseYear(cell)
			if err != nil {
				return domain.Observation{}, err
			}
			obs.Year = year
		case colBOD5:
			v, err := domain.ParseProportion(cell)
			if err != nil {
				return domain.Observation{}, fmt.Errorf("bod5: %w", err)
			}
			obs.BOD5 = v
		case colNH3N:
			v, err := domain.ParseProportion(cell)
			if err != nil {
				return domain.Observation{}, fmt.Errorf("nh3n: %w", err)
			}
			obs.NH3N = v
		case colSS:
			v, err := domain.ParseProportion(cell)
			if err != nil {
				return domain.Observation{}, fmt.Errorf("ss: %w", err)
			}
			obs.SS = v
		}
	}
	return obs, nil
}
