package report

import (
	"fmt"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// TrendSummary is the prose rendering of one indicator's trend fit.
type TrendSummary struct {
	Description string `json:"description"`
	Strength    string `json:"strength"`
	Change      string `json:"change"`
}

// SummarizeTrend renders a fitted trend as display text. The percent-change
// sentence falls back to an explanation when the starting value was zero.
func SummarizeTrend(name string, tr analysis.TrendResult) TrendSummary {
	significance := "not statistically significant"
	if tr.Significant() {
		significance = "statistically significant"
	}

	change := fmt.Sprintf("%.1f%% change from first to last year", tr.PctChange)
	if !tr.PctChangeDefined {
		change = "percentage change could not be calculated (starting value was zero)"
	}

	return TrendSummary{
		Description: fmt.Sprintf("%s shows a %s over time, which is %s.", name, tr.Direction, significance),
		Strength:    fmt.Sprintf("R² = %.2f", tr.RSquared),
		Change:      change,
	}
}

// FallbackTrendSummary is shown when no trend could be fitted for an
// indicator; the render must not fail on a missing lookup.
func FallbackTrendSummary(name string) TrendSummary {
	return TrendSummary{
		Description: fmt.Sprintf("%s shows varying patterns over the monitoring period.", name),
		Strength:    "insufficient data for a trend fit",
		Change:      "not available",
	}
}

// increaseCauses and decreaseCauses catalog candidate explanations per
// indicator, keyed by the broad trend direction. General environmental
// knowledge, not site-specific findings.
var increaseCauses = map[domain.Pollutant][]string{
	domain.BOD5: {
		"Increased organic waste discharge from industrial sources",
		"Agricultural runoff containing organic matter",
		"Ineffective wastewater treatment processes",
		"Urban expansion leading to more sewage discharge",
	},
	domain.NH3N: {
		"Increased fertilizer use in agriculture",
		"Livestock waste management issues",
		"Industrial processes releasing ammonia compounds",
		"Insufficient nitrogen removal in wastewater treatment",
	},
	domain.SS: {
		"Increased soil erosion due to deforestation or land use changes",
		"Construction activities increasing sediment runoff",
		"Mining operations affecting water quality",
		"Reduced riparian buffer zones along waterways",
	},
}

var decreaseCauses = map[domain.Pollutant][]string{
	domain.BOD5: {
		"Improved wastewater treatment technologies",
		"Stricter industrial discharge regulations",
		"Better agricultural practices reducing runoff",
		"Implementation of water quality management programs",
	},
	domain.NH3N: {
		"Improved nitrogen removal in wastewater treatment",
		"Better agricultural fertilizer management",
		"Reduced livestock density or improved waste management",
		"Industrial emission controls",
	},
	domain.SS: {
		"Improved erosion control measures",
		"Reforestation or better land management practices",
		"Enhanced sedimentation control in construction and mining",
		"Establishment of riparian buffer zones",
	},
}

// PotentialCauses returns the cause catalog entry for an indicator given its
// classified trend direction. Directions containing "increase" select the
// increase catalog; everything else (including unknown) selects decrease.
func PotentialCauses(p domain.Pollutant, direction string) []string {
	if containsIncrease(direction) {
		return increaseCauses[p]
	}
	return decreaseCauses[p]
}

func containsIncrease(direction string) bool {
	switch direction {
	case analysis.StrongIncrease, analysis.ModerateIncrease, analysis.SlightIncrease:
		return true
	default:
		return false
	}
}
