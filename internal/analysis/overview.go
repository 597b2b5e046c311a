package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

// Overview is a compact schema summary of the survey table.
type Overview struct {
	Rows    int
	Cols    []ColumnSummary
	Header  []string
	Samples [][]string
}

// ColumnSummary captures the kind and completeness of one column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	NonNull int
	Missing int
	Unique  int
}

// Summarize builds an Overview with up to sampleRows head rows.
func Summarize(t *survey.Table, sampleRows int) (*Overview, error) {
	if sampleRows < 0 {
		sampleRows = 0
	}
	ov := &Overview{Rows: t.Len(), Header: t.Names()}
	for _, name := range t.Names() {
		labels, err := t.Labels(name)
		if err != nil {
			return nil, err
		}
		s := ColumnSummary{Name: name, Kind: "numeric"}
		if t.IsLabel(name) {
			s.Kind = "categorical"
		}
		seen := map[string]struct{}{}
		for _, l := range labels {
			if l == "" {
				s.Missing++
				continue
			}
			s.NonNull++
			seen[l] = struct{}{}
		}
		s.Unique = len(seen)
		ov.Cols = append(ov.Cols, s)
	}
	ov.Samples = t.Head(sampleRows)
	return ov, nil
}

// SchemaTable renders the per-column summary as a table.
func (o *Overview) SchemaTable() render.Table {
	rows := make([][]string, 0, len(o.Cols))
	for _, c := range o.Cols {
		rows = append(rows, []string{c.Name, c.Kind, strconv.Itoa(c.NonNull), fmt.Sprintf("%.1f%%", missingPct(c)), strconv.Itoa(c.Unique)})
	}
	return render.Table{
		Caption: fmt.Sprintf("%d rows, %d columns", o.Rows, len(o.Cols)),
		Header:  []string{"column", "kind", "non-null", "missing", "unique"},
		Rows:    rows,
	}
}

// SampleTable renders the head rows as a table.
func (o *Overview) SampleTable() render.Table {
	return render.Table{
		Caption: fmt.Sprintf("first %d of %d rows", len(o.Samples), o.Rows),
		Header:  o.Header,
		Rows:    o.Samples,
	}
}

func missingPct(c ColumnSummary) float64 {
	total := c.NonNull + c.Missing
	if total == 0 {
		return 0
	}
	return float64(c.Missing) * 100.0 / float64(total)
}

// Markdown renders a compact plain-text summary.
func (o *Overview) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", o.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(o.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range o.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%", safeName(c.Name), c.Kind, c.NonNull, missingPct(c)))
		if c.Kind == "categorical" {
			b.WriteString(fmt.Sprintf(", unique %d", c.Unique))
		}
		b.WriteString(")\n")
	}
	if len(o.Samples) > 0 {
		b.WriteString("\n[HEAD ROWS]\n")
		b.WriteString("| ")
		for i, h := range o.Header {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(h))
		}
		b.WriteString(" |\n|")
		for range o.Header {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for _, row := range o.Samples {
			b.WriteString("| ")
			for i := range o.Header {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
