package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pollutant identifies one of the three monitored indicators.
type Pollutant string

const (
	BOD5 Pollutant = "bod5"
	NH3N Pollutant = "nh3n"
	SS   Pollutant = "ss"
)

// Pollutants returns the indicators in canonical display order.
func Pollutants() []Pollutant {
	return []Pollutant{BOD5, NH3N, SS}
}

// DisplayName returns the user-facing indicator name.
func (p Pollutant) DisplayName() string {
	switch p {
	case BOD5:
		return "BOD5"
	case NH3N:
		return "NH3N"
	case SS:
		return "SS"
	default:
		return string(p)
	}
}

// Description returns a one-line explanation used in report prose.
func (p Pollutant) Description() string {
	switch p {
	case BOD5:
		return "Biochemical Oxygen Demand: dissolved oxygen needed by aerobic organisms to break down organic material."
	case NH3N:
		return "Ammonia Nitrogen: ammonia compounds in water, often from agricultural runoff or sewage."
	case SS:
		return "Suspended Solids: particles suspended in water, affecting clarity and quality."
	default:
		return ""
	}
}

// locationLabels are the synthetic labels assigned to rows sharing a year.
var locationLabels = []string{"Location A", "Location B", "Location C"}

// LocationLabel returns the synthetic label for the i-th row within a year.
// Rows beyond the third cycle back through the labels.
func LocationLabel(i int) string {
	return locationLabels[i%len(locationLabels)]
}

// Observation is a single measurement row: one year, one location, and the
// proportion (percent) for each of the three indicators.
type Observation struct {
	Year     int     `json:"year"`
	Location string  `json:"location"`
	BOD5     float64 `json:"bod5"`
	NH3N     float64 `json:"nh3n"`
	SS       float64 `json:"ss"`
}

// Value returns the proportion for the given indicator.
func (o Observation) Value(p Pollutant) float64 {
	switch p {
	case BOD5:
		return o.BOD5
	case NH3N:
		return o.NH3N
	case SS:
		return o.SS
	default:
		return 0
	}
}

// dateLayouts are accepted date formats, most specific first.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

// ParseYear extracts the year from a date cell. Accepts full dates
// ("2013-01-01") or a bare year ("2013").
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse year: empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), nil
		}
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse year %q: %w", s, err)
	}
	if year < 1900 || year > 2200 {
		return 0, fmt.Errorf("parse year %q: out of range", s)
	}
	return year, nil
}

// ParseProportion parses a proportion cell as a percentage value.
func ParseProportion(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, fmt.Errorf("parse proportion: empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse proportion %q: %w", s, err)
	}
	return v, nil
}
