package survey

import (
	"fmt"
	"math"
	"strconv"
)

// Recode maps the numeric codes of Source to human-readable labels stored in Target.
type Recode struct {
	Source string
	Target string
	Labels map[int]string
}

// Label looks up one code. Missing stays missing (""); a code with no entry
// keeps its raw value, so there is no default label.
func (r Recode) Label(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) {
		if l, ok := r.Labels[int(v)]; ok {
			return l
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Apply derives Target from Source for every row and returns the labels.
func (r Recode) Apply(t *Table) ([]string, error) {
	if r.Target == "" {
		return nil, fmt.Errorf("recode %s: empty target column", r.Source)
	}
	codes, err := t.Floats(r.Source)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(codes))
	for i, v := range codes {
		labels[i] = r.Label(v)
	}
	if err := t.SetLabels(r.Target, labels); err != nil {
		return nil, err
	}
	return labels, nil
}
