package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
	"gonum.org/v1/gonum/stat"
)

// BoxSummary is the five-number summary behind one drawn box.
type BoxSummary struct {
	Trace   string
	Stratum string
	N       int
	Min     float64
	Q1      float64
	Median  float64
	Q3      float64
	Max     float64
}

// Summarize computes the five-number summary of every box in fig, one per
// trace and stratum, in drawing order. Non-box traces are skipped.
func Summarize(fig *grob.Fig) []BoxSummary {
	if fig == nil {
		return nil
	}
	var out []BoxSummary
	for _, tr := range fig.Data {
		b, ok := tr.(*grob.Box)
		if !ok {
			continue
		}
		ys, ok := b.Y.([]float64)
		if !ok {
			continue
		}
		name := traceName(b)
		xs, _ := b.X.([]string)
		if xs == nil || len(xs) != len(ys) {
			if s, ok := fiveNumber(ys); ok {
				s.Trace = name
				out = append(out, s)
			}
			continue
		}
		var order []string
		by := map[string][]float64{}
		for i, x := range xs {
			if _, seen := by[x]; !seen {
				order = append(order, x)
			}
			by[x] = append(by[x], ys[i])
		}
		for _, x := range order {
			if s, ok := fiveNumber(by[x]); ok {
				s.Trace = name
				s.Stratum = x
				out = append(out, s)
			}
		}
	}
	return out
}

func fiveNumber(vals []float64) (BoxSummary, bool) {
	x := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return BoxSummary{}, false
	}
	sort.Float64s(x)
	return BoxSummary{
		N:      len(x),
		Min:    x[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, x, nil),
		Max:    x[len(x)-1],
	}, true
}

// Export writes fig as a standalone HTML document.
func Export(fig *grob.Fig, path string) error {
	if fig == nil {
		return fmt.Errorf("export %s: nil figure", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir figures dir: %w", err)
	}
	offline.ToHtml(fig, path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
