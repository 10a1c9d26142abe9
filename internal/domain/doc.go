// Package domain models the weekly weather-conditions mart and the mean
// aggregates derived from it.
//
// # Data Source
//
// The dashboard reads mart_conditions_week.csv, a weekly roll-up of forecast
// conditions per city. Each row is one city-week. The header row names the
// columns; the ones the dashboard depends on are:
//
//	country             country name as used by choropleth "country names" lookup
//	city                city name, e.g. "Yaounde"
//	year                four-digit calendar year
//	avg_temp_c          average temperature for the week, in Celsius
//	will_it_rain_days   number of days in the week with rain expected
//	will_it_snow_days   number of days in the week with snow expected
//
// Any other column is carried through untouched and only shows up in the
// row-level table.
//
// # Missing Values
//
// An empty cell, or one of "NA", "NaN", "null" (case-insensitive), is a
// missing measure value. Infinite values ("Inf") are parse errors. How
// missing values affect a mean is decided by [MissingPolicy]:
//
//	skip       mean over the values that are present (the default)
//	propagate  any missing value makes the whole group mean missing
//
// A group whose mean is missing is kept in the output with Valid=false so the
// group count still equals the number of distinct key tuples.
//
// # Ordering
//
// Aggregate rows are sorted by their key tuple. Keys that parse as finite
// numbers (years) compare numerically and sort before text keys, which compare
// bytewise. Re-running an aggregation over the same table always yields the
// same rows in the same order.
package domain
