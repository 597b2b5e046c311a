package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/nhanes-cli/internal/charts"
)

func TestPage_RendersBlocksInOrder(t *testing.T) {
	p := NewPage("https://cdn.example/plotly.js")
	p.Title("NHANES", "By [someone](https://example.org)")
	p.Markdown("## Education Level\nSome *text*.")
	cols := p.Columns(2)
	cols[0].Table(Table{Header: []string{"label", "count"}, Rows: [][]string{{"<9", "1"}}})
	fig, err := charts.Pie([]string{"<9"}, []float64{1}, charts.WithTitle("Frequency Table Education Label"))
	require.NoError(t, err)
	cols[1].Chart("education-pie", fig)
	p.Markdown("## Body Weight")

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	html := buf.String()

	assert.Contains(t, html, "<title>NHANES</title>")
	assert.Contains(t, html, `<a href="https://example.org">someone</a>`)
	assert.Contains(t, html, "<h2>Education Level</h2>")
	assert.Contains(t, html, "&lt;9")
	assert.Contains(t, html, `id="education-pie"`)
	assert.Contains(t, html, "Frequency Table Education Label")
	assert.Contains(t, html, p.ID)

	edu := strings.Index(html, "Education Level</h2>")
	table := strings.Index(html, `<table class="data">`)
	chart := strings.Index(html, `id="education-pie"`)
	weight := strings.Index(html, "Body Weight</h2>")
	assert.True(t, edu < table && table < chart && chart < weight, "blocks out of order")

	require.Len(t, p.Charts(), 1)
	got, ok := p.Figure("education-pie")
	assert.True(t, ok)
	assert.Same(t, fig, got)
}

func TestPage_DuplicateChartID(t *testing.T) {
	p := NewPage("plotly.js")
	fig, err := charts.Pie([]string{"a"}, []float64{1})
	require.NoError(t, err)
	p.Chart("x", fig)
	p.Columns(1)[0].Chart("x", fig)
	assert.Error(t, p.Err())
	assert.Error(t, p.Render(&bytes.Buffer{}))
}

func TestTerminal_ChartSummaries(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.Title("NHANES", "")
	term.Markdown("## Comparing Distributions")
	term.Chart("bp-box", charts.Box([]charts.Trace{{Name: "BPXSY1", Y: []float64{110, 120, 130}}}, charts.WithTitle("Distributions Comparisons")))
	for _, c := range term.Columns(2) {
		c.Markdown("col")
	}

	out := buf.String()
	assert.Contains(t, out, "NHANES\n======")
	assert.Contains(t, out, "[chart 1] Distributions Comparisons (BPXSY1)")
	assert.Contains(t, out, "MEDIAN")
	assert.Contains(t, out, "120")
	assert.Equal(t, 2, strings.Count(out, "col\n"))
}
