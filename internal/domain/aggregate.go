package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MissingPolicy decides how missing measure values affect a group mean.
type MissingPolicy string

const (
	// MissingSkip averages only the values that are present.
	MissingSkip MissingPolicy = "skip"
	// MissingPropagate makes the mean missing if any value in the group is missing.
	MissingPropagate MissingPolicy = "propagate"
)

// ParseMissingPolicy maps a config value onto a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MissingSkip, MissingPropagate:
		return p, nil
	case "":
		return MissingSkip, nil
	}
	return "", fmt.Errorf("unknown missing value policy %q", s)
}

// Aggregate is one derived row: the key tuple of a group and the mean of a
// measure over the rows sharing it.
type Aggregate struct {
	Keys    map[string]string `json:"keys"`
	Measure string            `json:"measure"`
	Mean    float64           `json:"mean"`
	// Valid is false when the mean is missing under the active policy.
	Valid bool `json:"valid"`
	// Count is the number of source rows in the group.
	Count int `json:"count"`
	// Present is the number of rows that contributed a value to Mean.
	Present int `json:"present"`
}

// Key returns the group's key values joined in groupKeys order.
func (a Aggregate) Key(groupKeys []string) string {
	parts := make([]string, len(groupKeys))
	for i, k := range groupKeys {
		parts[i] = a.Keys[k]
	}
	return strings.Join(parts, "|")
}

// AggregateTable is the result of one AggregateMean call.
type AggregateTable struct {
	GroupKeys []string    `json:"group_keys"`
	Measure   string      `json:"measure"`
	Rows      []Aggregate `json:"rows"`
}

// Name identifies the table by measure and keys, e.g. "will_it_rain_days_by_country_year".
func (t AggregateTable) Name() string {
	return t.Measure + "_by_" + strings.Join(t.GroupKeys, "_")
}

// Distinct returns the distinct values of a key column in row order.
func (t AggregateTable) Distinct(key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		v := r.Keys[key]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Filter returns the rows whose key column equals value.
func (t AggregateTable) Filter(key, value string) []Aggregate {
	var out []Aggregate
	for _, r := range t.Rows {
		if r.Keys[key] == value {
			out = append(out, r)
		}
	}
	return out
}

type accumulator struct {
	keys    []string
	sum     float64
	count   int
	present int
}

// AggregateMean groups the table by the ordered groupKeys tuple and returns
// the arithmetic mean of measure for each distinct tuple.
func AggregateMean(t *Table, groupKeys []string, measure string, policy MissingPolicy) (AggregateTable, error) {
	if len(groupKeys) == 0 {
		return AggregateTable{}, fmt.Errorf("aggregate %s: no group keys", measure)
	}
	if err := t.Require(append(append([]string{}, groupKeys...), measure)...); err != nil {
		return AggregateTable{}, fmt.Errorf("aggregate %s: %w", measure, err)
	}

	keyIdx := make([]int, len(groupKeys))
	for i, k := range groupKeys {
		keyIdx[i], _ = t.ColumnIndex(k)
	}
	measureIdx, _ := t.ColumnIndex(measure)

	groups := make(map[string]*accumulator)
	for i := range t.Rows {
		keys := make([]string, len(keyIdx))
		for j, c := range keyIdx {
			keys[j] = t.cell(i, c)
		}
		id := strings.Join(keys, "\x1f")

		acc, ok := groups[id]
		if !ok {
			acc = &accumulator{keys: keys}
			groups[id] = acc
		}
		acc.count++

		v, present, err := ParseMeasure(t.cell(i, measureIdx))
		if err != nil {
			return AggregateTable{}, fmt.Errorf("aggregate %s: row %d: %w", measure, i+1, err)
		}
		if present {
			acc.sum += v
			acc.present++
		}
	}

	accs := make([]*accumulator, 0, len(groups))
	for _, acc := range groups {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool { return lessKeys(accs[i].keys, accs[j].keys) })

	rows := make([]Aggregate, 0, len(accs))
	for _, acc := range accs {
		agg := Aggregate{
			Keys:    make(map[string]string, len(groupKeys)),
			Measure: measure,
			Count:   acc.count,
			Present: acc.present,
		}
		for i, k := range groupKeys {
			agg.Keys[k] = acc.keys[i]
		}
		agg.Valid = acc.present > 0
		if policy == MissingPropagate && acc.present < acc.count {
			agg.Valid = false
		}
		if agg.Valid {
			agg.Mean = acc.sum / float64(acc.present)
			if math.IsInf(agg.Mean, 0) || math.IsNaN(agg.Mean) {
				return AggregateTable{}, fmt.Errorf("aggregate %s: group %s: %w: mean overflows",
					measure, strings.Join(acc.keys, "|"), ErrParse)
			}
		}
		rows = append(rows, agg)
	}

	return AggregateTable{
		GroupKeys: append([]string{}, groupKeys...),
		Measure:   measure,
		Rows:      rows,
	}, nil
}

// lessKeys orders key tuples element by element. Within one element, finite
// numbers sort before text, numbers compare numerically and text compares
// bytewise; numerically equal spellings ("2", "2.0") fall back to text.
func lessKeys(a, b []string) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		af, aNum := numericKey(a[i])
		bf, bNum := numericKey(b[i])
		switch {
		case aNum && !bNum:
			return true
		case !aNum && bNum:
			return false
		case aNum && bNum && af != bf:
			return af < bf
		}
		return a[i] < b[i]
	}
	return false
}

func numericKey(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
