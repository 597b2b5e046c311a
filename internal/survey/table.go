package survey

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the survey table: one row per respondent, named float columns from
// the source file plus string label columns derived in place.
type Table struct {
	df dataframe.DataFrame
}

// FromFrame wraps an existing dataframe.
func FromFrame(df dataframe.DataFrame) *Table { return &Table{df: df} }

// Len is the number of rows.
func (t *Table) Len() int { return t.df.Nrow() }

// Names lists the columns in table order.
func (t *Table) Names() []string { return t.df.Names() }

// Has reports whether the named column exists.
func (t *Table) Has(col string) bool {
	for _, n := range t.df.Names() {
		if n == col {
			return true
		}
	}
	return false
}

// IsLabel reports whether col is a derived string column.
func (t *Table) IsLabel(col string) bool {
	return t.Has(col) && t.df.Col(col).Type() == series.String
}

func (t *Table) column(col string) (series.Series, error) {
	if !t.Has(col) {
		return series.Series{}, &ColumnError{Column: col}
	}
	s := t.df.Col(col)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("column %s: %w", col, s.Err)
	}
	return s, nil
}

// Floats returns the column as floats; missing cells are NaN.
func (t *Table) Floats(col string) ([]float64, error) {
	s, err := t.column(col)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Labels returns the column as strings; missing cells are "".
func (t *Table) Labels(col string) ([]string, error) {
	s, err := t.column(col)
	if err != nil {
		return nil, err
	}
	out := make([]string, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		if s.Type() == series.Float {
			out[i] = FormatCode(e.Float())
			continue
		}
		out[i] = e.String()
	}
	return out, nil
}

// SetLabels adds (or replaces) a derived string column. "" marks a missing label.
func (t *Table) SetLabels(col string, labels []string) error {
	if len(labels) != t.Len() {
		return fmt.Errorf("column %s: %d labels for %d rows", col, len(labels), t.Len())
	}
	vals := make([]string, len(labels))
	for i, l := range labels {
		if l == "" {
			vals[i] = "NaN"
			continue
		}
		vals[i] = l
	}
	df := t.df.Mutate(series.New(vals, series.String, col))
	if df.Err != nil {
		return fmt.Errorf("add column %s: %w", col, df.Err)
	}
	t.df = df
	return nil
}

// Head returns up to n rows rendered as strings, in column order.
func (t *Table) Head(n int) [][]string {
	if n > t.Len() {
		n = t.Len()
	}
	if n <= 0 {
		return nil
	}
	names := t.df.Names()
	cols := make([][]string, len(names))
	for j, name := range names {
		cols[j], _ = t.Labels(name)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return rows
}

// FormatCode renders a numeric cell the way it appears in the source file.
func FormatCode(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NonMissing drops NaN values.
func NonMissing(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
