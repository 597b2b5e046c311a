package survey

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Count is one row of a frequency table.
type Count struct {
	Label string
	Count int
}

// Frequency is a frequency table sorted by count descending, then label.
type Frequency []Count

// ValueCounts tallies non-missing labels.
func ValueCounts(labels []string) Frequency {
	m := map[string]int{}
	for _, l := range labels {
		if l == "" {
			continue
		}
		m[l]++
	}
	out := make(Frequency, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Total sums the counts.
func (f Frequency) Total() int {
	n := 0
	for _, c := range f {
		n += c.Count
	}
	return n
}

// Labels returns the labels in table order.
func (f Frequency) Labels() []string {
	out := make([]string, len(f))
	for i, c := range f {
		out[i] = c.Label
	}
	return out
}

// Counts returns the counts in table order as floats, ready for plotting.
func (f Frequency) Counts() []float64 {
	out := make([]float64, len(f))
	for i, c := range f {
		out[i] = float64(c.Count)
	}
	return out
}

// Get returns the count for label (0 if absent).
func (f Frequency) Get(label string) int {
	for _, c := range f {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// CountsBy value-counts labelCol over the rows where groupCol equals groupValue.
func CountsBy(t *Table, groupCol string, groupValue float64, labelCol string) (Frequency, error) {
	if !t.Has(groupCol) {
		return nil, &ColumnError{Column: groupCol}
	}
	if !t.Has(labelCol) {
		return nil, &ColumnError{Column: labelCol}
	}
	sub := t.df.Filter(dataframe.F{Colname: groupCol, Comparator: series.Eq, Comparando: groupValue})
	if sub.Err != nil {
		return nil, fmt.Errorf("filter %s == %v: %w", groupCol, groupValue, sub.Err)
	}
	labels, err := FromFrame(sub).Labels(labelCol)
	if err != nil {
		return nil, err
	}
	return ValueCounts(labels), nil
}

// Group splits values by the parallel key slice, dropping rows whose key is ""
// or whose value is NaN. Keys keep the order given by order; keys absent from
// order are appended in first-seen order.
func Group(keys []string, values []float64, order []string) ([]string, map[string][]float64) {
	by := map[string][]float64{}
	var seen []string
	for i, k := range keys {
		if k == "" || i >= len(values) || math.IsNaN(values[i]) {
			continue
		}
		if _, ok := by[k]; !ok {
			seen = append(seen, k)
		}
		by[k] = append(by[k], values[i])
	}
	out := make([]string, 0, len(by))
	used := map[string]bool{}
	for _, k := range order {
		if _, ok := by[k]; ok && !used[k] {
			out = append(out, k)
			used[k] = true
		}
	}
	for _, k := range seen {
		if !used[k] {
			out = append(out, k)
			used[k] = true
		}
	}
	return out, by
}
