package survey

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Bins partitions a continuous column into fixed buckets (lo, hi]. Values at or
// below the first edge, above the last edge, or missing fall in no bucket.
type Bins struct {
	Edges []float64
}

// NewBins validates that edges are strictly increasing.
func NewBins(edges []float64) (Bins, error) {
	if len(edges) < 2 {
		return Bins{}, fmt.Errorf("bins: need at least 2 edges, got %d", len(edges))
	}
	if !sort.SliceIsSorted(edges, func(i, j int) bool { return edges[i] < edges[j] }) {
		return Bins{}, fmt.Errorf("bins: edges must increase: %v", edges)
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return Bins{}, fmt.Errorf("bins: duplicate edge %v", edges[i])
		}
	}
	cp := make([]float64, len(edges))
	copy(cp, edges)
	return Bins{Edges: cp}, nil
}

// Label returns the bucket label for v, or "" when v falls in no bucket.
func (b Bins) Label(v float64) string {
	if math.IsNaN(v) || len(b.Edges) < 2 {
		return ""
	}
	if v <= b.Edges[0] || v > b.Edges[len(b.Edges)-1] {
		return ""
	}
	i := sort.SearchFloat64s(b.Edges, v) // first edge >= v
	return bucketLabel(b.Edges[i-1], b.Edges[i])
}

// Labels lists every bucket label in edge order.
func (b Bins) Labels() []string {
	if len(b.Edges) < 2 {
		return nil
	}
	out := make([]string, 0, len(b.Edges)-1)
	for i := 1; i < len(b.Edges); i++ {
		out = append(out, bucketLabel(b.Edges[i-1], b.Edges[i]))
	}
	return out
}

// Apply derives target from source and returns the labels.
func (b Bins) Apply(t *Table, source, target string) ([]string, error) {
	vals, err := t.Floats(source)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(vals))
	for i, v := range vals {
		labels[i] = b.Label(v)
	}
	if err := t.SetLabels(target, labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func bucketLabel(lo, hi float64) string {
	return "(" + strconv.FormatFloat(lo, 'f', -1, 64) + ", " + strconv.FormatFloat(hi, 'f', -1, 64) + "]"
}
