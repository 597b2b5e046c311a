package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/nhanes-cli/internal/charts"
)

// Terminal renders a surface as plain text: narrative verbatim, tables as
// ASCII grids, charts as their title plus the box summaries behind them.
type Terminal struct {
	w      io.Writer
	charts int
}

func NewTerminal(w io.Writer) *Terminal { return &Terminal{w: w} }

func (t *Terminal) Title(title, subtitle string) {
	fmt.Fprintln(t.w, title)
	fmt.Fprintln(t.w, strings.Repeat("=", len([]rune(title))))
	if subtitle != "" {
		fmt.Fprintln(t.w, strings.TrimSpace(subtitle))
	}
	fmt.Fprintln(t.w)
}

func (t *Terminal) Markdown(text string) {
	fmt.Fprintln(t.w, strings.TrimSpace(text))
	fmt.Fprintln(t.w)
}

func (t *Terminal) Table(tb Table) {
	if tb.Caption != "" {
		fmt.Fprintln(t.w, tb.Caption)
	}
	tw := tablewriter.NewWriter(t.w)
	tw.SetHeader(tb.Header)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(tb.Rows)
	tw.Render()
	fmt.Fprintln(t.w)
}

func (t *Terminal) Chart(id string, fig *grob.Fig) {
	t.charts++
	title := charts.Title(fig)
	if title == "" {
		title = id
	}
	fmt.Fprintf(t.w, "[chart %d] %s (%s)\n", t.charts, title, strings.Join(charts.TraceNames(fig), ", "))
	sums := charts.Summarize(fig)
	if len(sums) == 0 {
		fmt.Fprintln(t.w)
		return
	}
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{s.Trace, s.Stratum, strconv.Itoa(s.N), num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max)})
	}
	t.Table(Table{Header: []string{"series", "stratum", "n", "min", "q1", "median", "q3", "max"}, Rows: rows})
}

// Columns has no side-by-side layout in a terminal; columns print in sequence.
func (t *Terminal) Columns(n int) []Surface {
	if n < 1 {
		n = 1
	}
	out := make([]Surface, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
