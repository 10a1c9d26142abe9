// Command validate runs integrity checks over a conditions CSV and the
// aggregates built from it: schema, group counts, weighted sums, key
// uniqueness and determinism. It prints a per-phase report and exits non-zero on failure.
//
// Usage:
//
//	go run ./cmd/validate -data mart_conditions_week.csv -missing skip
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/couchcryptid/city-conditions-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/couchcryptid/city-conditions-dashboard/internal/pipeline"
)

// Weighted sums are compared with a relative tolerance.
const tolerance = 1e-9

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
	dataPath := flag.String("data", "mart_conditions_week.csv", "path to the conditions CSV")
	delimiter := flag.String("delimiter", ",", "field delimiter (single character)")
	missing := flag.String("missing", "skip", "missing value policy: skip or propagate")
	flag.Parse()

	if len([]rune(*delimiter)) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataPath, []rune(*delimiter)[0], *missing); code != 0 {
		os.Exit(code)
	}
}

func run(dataPath string, delimiter rune, missing string) int {
	fmt.Println("=== City Conditions Integrity Validation ===")
	fmt.Println()

	policy, err := domain.ParseMissingPolicy(missing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	f, err := os.Open(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open %s: %v\n", dataPath, err)
		return 1
	}
	table, err := csvfile.Read(f, delimiter)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", dataPath, err)
		return 1
	}

	schema := validateSchema(table)
	if !schema.passed() {
		return report([]*phase{schema}, table, pipeline.Aggregates{})
	}

	aggs, err := pipeline.Aggregate(table, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: aggregate: %v\n", err)
		return 1
	}

	phases := []*phase{
		schema,
		validateObservations(table),
		validateGroupCounts(table, aggs),
		validateWeightedSums(table, aggs, policy),
		validateUniqueness(aggs),
		validateDeterminism(table, aggs, policy),
	}
	return report(phases, table, aggs)
}

func report(phases []*phase, table *domain.Table, aggs pipeline.Aggregates) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d source, %d rain, %d snow, %d temperature, %d city temperature\n",
		table.Len(), len(aggs.Rain.Rows), len(aggs.Snow.Rows),
		len(aggs.Temperature.Rows), len(aggs.CityTemperature.Rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateSchema(table *domain.Table) *phase {
	p := &phase{name: "Schema (required columns)"}
	if err := table.Require(domain.RequiredColumns...); err != nil {
		p.errorf("%v", err)
	}
	if table.Len() == 0 {
		p.errorf("no data rows")
	}
	return p
}

func validateObservations(table *domain.Table) *phase {
	p := &phase{name: "Observations (typed parse)"}
	for i := range table.Len() {
		if _, err := table.Observation(i); err != nil {
			p.errorf("row %d: %v", i+1, err)
		}
	}
	return p
}

// validateGroupCounts checks that each table has one row per distinct key
// tuple and that group sizes add up to the source row count.
func validateGroupCounts(table *domain.Table, aggs pipeline.Aggregates) *phase {
	p := &phase{name: "Group counts (one row per key tuple)"}
	for _, agg := range aggs.All() {
		distinct := make(map[string]int)
		for i := range table.Len() {
			distinct[tupleOf(table, i, agg.GroupKeys)]++
		}
		if len(agg.Rows) != len(distinct) {
			p.errorf("%s: %d rows, want %d distinct tuples", agg.Name(), len(agg.Rows), len(distinct))
		}

		total := 0
		for _, row := range agg.Rows {
			total += row.Count
			if want := distinct[row.Key(agg.GroupKeys)]; row.Count != want {
				p.errorf("%s [%s]: count %d, want %d", agg.Name(), row.Key(agg.GroupKeys), row.Count, want)
			}
		}
		if total != table.Len() {
			p.errorf("%s: group counts sum to %d, want %d", agg.Name(), total, table.Len())
		}
	}
	return p
}

// validateWeightedSums checks mean*present against the sum of present values
// in each group.
func validateWeightedSums(table *domain.Table, aggs pipeline.Aggregates, policy domain.MissingPolicy) *phase {
	p := &phase{name: "Weighted sums (mean x count)"}
	for _, agg := range aggs.All() {
		sums := make(map[string]float64)
		present := make(map[string]int)
		missing := make(map[string]int)
		for i := range table.Len() {
			key := tupleOf(table, i, agg.GroupKeys)
			v, ok, err := domain.ParseMeasure(table.Value(i, agg.Measure))
			if err != nil {
				p.errorf("%s row %d: %v", agg.Name(), i+1, err)
				continue
			}
			if !ok {
				missing[key]++
				continue
			}
			sums[key] += v
			present[key]++
		}

		for _, row := range agg.Rows {
			key := row.Key(agg.GroupKeys)
			wantValid := present[key] > 0 && (policy == domain.MissingSkip || missing[key] == 0)
			if row.Valid != wantValid {
				p.errorf("%s [%s]: valid=%t, want %t", agg.Name(), key, row.Valid, wantValid)
				continue
			}
			if !row.Valid {
				continue
			}
			got := row.Mean * float64(row.Present)
			if !approxEqual(got, sums[key]) {
				p.errorf("%s [%s]: mean*count=%.6f, sum=%.6f", agg.Name(), key, got, sums[key])
			}
		}
	}
	return p
}

func validateUniqueness(aggs pipeline.Aggregates) *phase {
	p := &phase{name: "Uniqueness (distinct key tuples)"}
	for _, agg := range aggs.All() {
		seen := make(map[string]bool, len(agg.Rows))
		for _, row := range agg.Rows {
			key := row.Key(agg.GroupKeys)
			if seen[key] {
				p.errorf("%s: duplicate key tuple %s", agg.Name(), key)
			}
			seen[key] = true
		}
	}
	return p
}

func validateDeterminism(table *domain.Table, aggs pipeline.Aggregates, policy domain.MissingPolicy) *phase {
	p := &phase{name: "Determinism (repeat build)"}
	again, err := pipeline.Aggregate(table, policy)
	if err != nil {
		p.errorf("second aggregation failed: %v", err)
		return p
	}
	if !reflect.DeepEqual(aggs, again) {
		p.errorf("aggregates differ between runs")
	}
	if !reflect.DeepEqual(pipeline.Figures(aggs), pipeline.Figures(again)) {
		p.errorf("figures differ between runs")
	}
	return p
}

// ── Helpers ──

func tupleOf(table *domain.Table, i int, keys []string) string {
	parts := make([]string, len(keys))
	for j, k := range keys {
		parts[j] = table.Value(i, k)
	}
	return strings.Join(parts, "|")
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
