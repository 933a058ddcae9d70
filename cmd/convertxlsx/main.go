// Command convertxlsx converts a monitoring workbook to the CSV format the
// dashboard loads. It reads the first sheet, echoes the detected columns and
// a preview, and writes the rows as CSV.
//
// Usage:
//
//	go run ./cmd/convertxlsx -in attached_assets/data2.xlsx -out data.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "input XLSX workbook")
	out := flag.String("out", "data.csv", "output CSV path")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -in")
	}

	f, err := excelize.OpenFile(*in)
	if err != nil {
		return fmt.Errorf("open %s: %w", *in, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return fmt.Errorf("%s: no sheets", *in)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("sheet %s is empty", sheet)
	}

	fmt.Printf("columns: %v\n", rows[0])
	for i, row := range rows[1:] {
		if i >= 5 {
			break
		}
		fmt.Printf("  %v\n", row)
	}

	dst, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer dst.Close()

	cw := csv.NewWriter(dst)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	fmt.Printf("wrote %d rows to %s\n", len(rows), *out)
	return nil
}
