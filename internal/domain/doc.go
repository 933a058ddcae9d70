// Package domain models water-pollution proportion measurements.
//
// # Data Source
//
// Observations come from a yearly water-quality monitoring table covering
// 2000–2021. Each row carries a date and the proportion (percent) of samples
// exceeding the standard for three indicators:
//
//	BOD5  Biochemical Oxygen Demand over 5 days (organic pollution)
//	NH3N  Ammonia-nitrogen concentration
//	SS    Suspended solids
//
// Proportions are percentages but are not required to sum to 100 across the
// three indicators; each is measured against its own standard.
//
// # Table Conventions
//
// Date format:
//
//	"2006-01-02"-style dates or bare years ("2006"). Only the year component
//	is meaningful; all rows in the source data use January 1st.
//
// Monitoring locations:
//
//	The source table carries up to three rows per year with no location
//	column. Rows sharing a year are assigned synthetic labels ("Location A",
//	"Location B", "Location C") in file order, matching how the upstream
//	report distinguished them. Years with a single row get "Location A".
//
// # Aggregation
//
// All trend analysis runs on yearly means: for each (year, indicator) pair
// the arithmetic mean across that year's observations. AggregateYearly
// guarantees one row per distinct year in ascending order, which downstream
// year-over-year change computation depends on.
package domain
