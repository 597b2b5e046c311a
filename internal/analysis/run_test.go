package analysis

import (
	"strings"
	"testing"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

const header = "SEQN,RIAGENDR,DMDEDUC2,DMDMARTL,RIDAGEYR,BMXWT,BPXSY1,BPXSY2,BPXDI1,BPXDI2\n"

const twoRows = header +
	"1,1,1,1,25,70.5,120,118,80,78\n" +
	"2,2,5,5,62,61.2,135,130,85,84\n"

const mixedRows = header +
	"1,1,1,1,25,70.5,120,118,80,78\n" +
	"2,2,5,5,62,61.2,135,130,85,84\n" +
	"3,1,3,77,17,88.0,112,110,70,72\n" +
	"4,2,,99,81,,140,138,90,88\n" +
	"5,1,8,1,45,92.3,128,126,82,80\n" +
	"6,2,5,,30,55.0,118,,76,\n" +
	"7,1,4,3,30,80.1,,124,,79\n"

func readTable(t *testing.T, csv string) *survey.Table {
	t.Helper()
	tbl, err := survey.Read(strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

// recorder logs every surface call in order.
type recorder struct {
	events []string
}

func (r *recorder) Title(title, _ string) { r.events = append(r.events, "title:"+title) }

func (r *recorder) Markdown(text string) {
	first := strings.SplitN(text, "\n", 2)[0]
	r.events = append(r.events, "md:"+first)
}

func (r *recorder) Table(render.Table) { r.events = append(r.events, "table") }

func (r *recorder) Chart(id string, _ *grob.Fig) { r.events = append(r.events, "chart:"+id) }

func (r *recorder) Columns(n int) []render.Surface {
	r.events = append(r.events, "columns")
	out := make([]render.Surface, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func (r *recorder) charts() []string {
	var out []string
	for _, e := range r.events {
		if strings.HasPrefix(e, "chart:") {
			out = append(out, strings.TrimPrefix(e, "chart:"))
		}
	}
	return out
}

func TestRun_TwoRowEducation(t *testing.T) {
	page := render.NewPage("plotly.js")
	res, err := Run(page, readTable(t, twoRows), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, page.Err())

	assert.Equal(t, survey.Frequency{{Label: "<9", Count: 1}, {Label: "College", Count: 1}}, res.Education)

	fig, ok := page.Figure(ChartEducation)
	require.True(t, ok)
	require.Len(t, fig.Data, 1)
	pie, ok := fig.Data[0].(*grob.Pie)
	require.True(t, ok)
	assert.Len(t, pie.Labels, 2)
	assert.Equal(t, []float64{1, 1}, pie.Values)

	assert.Equal(t, 1, res.MaritalMale.Get("Married"))
	assert.Equal(t, 1, res.MaritalFemale.Get("Never married"))
	assert.Equal(t, 2, res.Overview.Rows)
}

func TestRun_SectionOrder(t *testing.T) {
	rec := &recorder{}
	_, err := Run(rec, readTable(t, twoRows), DefaultOptions())
	require.NoError(t, err)

	require.NotEmpty(t, rec.events)
	assert.Equal(t, "title:Analysis of univariate data - NHANES case study", rec.events[0])
	assert.Equal(t, "md:## App repository", rec.events[len(rec.events)-1])
	assert.Equal(t, []string{
		ChartEducation,
		ChartBodyWeight,
		ChartCompare,
		ChartAgeStrata,
		ChartAgeGender,
		ChartGenderAge,
		ChartCivilStatus,
	}, rec.charts())

	idx := func(ev string) int {
		for i, e := range rec.events {
			if e == ev {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("md:The dataframe:"), idx("md:## Education Level"))
	assert.Less(t, idx("md:## Education Level"), idx("columns"))
	assert.Less(t, idx("columns"), idx("chart:"+ChartEducation))
	assert.Less(t, idx("md:## Civil Status"), idx("chart:"+ChartCivilStatus))
}

func TestRun_MaritalSumsToGenderTotals(t *testing.T) {
	tbl := readTable(t, mixedRows)
	res, err := Run(&recorder{}, tbl, DefaultOptions())
	require.NoError(t, err)

	// rows 1,3,5,7 are male; row 6 (female) has no marital status
	assert.Equal(t, 4, res.MaritalMale.Total())
	assert.Equal(t, 2, res.MaritalFemale.Total())
	assert.Equal(t, 2, res.MaritalMale.Get("Married"))
	assert.Equal(t, 1, res.MaritalMale.Get("Refused"))
	assert.Equal(t, 1, res.MaritalMale.Get("Divorced"))
	assert.Equal(t, 1, res.MaritalFemale.Get("99"))

	// unmapped education code 8 keeps its raw value; the missing one is skipped
	assert.Equal(t, 2, res.Education.Get("College"))
	assert.Equal(t, 1, res.Education.Get("8"))
	assert.Equal(t, 6, res.Education.Total())

	// ages 17 and 81 fall outside every stratum
	assert.Equal(t, 5, res.AgeGroups.Total())
	assert.Equal(t, 3, res.AgeGroups.Get("(18, 30]"))
}

func TestRun_StratifiedTraces(t *testing.T) {
	page := render.NewPage("plotly.js")
	_, err := Run(page, readTable(t, mixedRows), DefaultOptions())
	require.NoError(t, err)

	fig, ok := page.Figure(ChartAgeGender)
	require.True(t, ok)
	require.Len(t, fig.Data, 2)
	male := fig.Data[0].(*grob.Box)
	female := fig.Data[1].(*grob.Box)
	assert.Equal(t, "Male", male.Name)
	assert.Equal(t, "Female", female.Name)
	// row 3 is unbinned and row 7 has no systolic reading
	assert.Equal(t, []string{"(18, 30]", "(40, 50]"}, male.X)
	assert.Equal(t, []float64{120, 128}, male.Y)
	assert.Equal(t, []string{"(18, 30]", "(60, 70]"}, female.X)
	assert.Equal(t, grob.True, male.Notched)
	assert.Equal(t, grob.BoxBoxmodeGroup, fig.Layout.Boxmode)

	rev, ok := page.Figure(ChartGenderAge)
	require.True(t, ok)
	assert.Equal(t, "(18, 30]", rev.Data[0].(*grob.Box).Name)
	for _, tr := range rev.Data {
		assert.NotEqual(t, grob.True, tr.(*grob.Box).Notched)
	}

	bar, ok := page.Figure(ChartCivilStatus)
	require.True(t, ok)
	require.Len(t, bar.Data, 2)
	assert.Equal(t, "Female", bar.Data[0].(*grob.Bar).Name)
	assert.Equal(t, "Male", bar.Data[1].(*grob.Bar).Name)
	assert.Equal(t, grob.BarBarmodeGroup, bar.Layout.Barmode)

	hist, ok := page.Figure(ChartBodyWeight)
	require.True(t, ok)
	assert.Equal(t, grob.HistogramBarmodeStack, hist.Layout.Barmode)
	assert.Len(t, hist.Data, 2)
}

func TestRun_MissingColumnFails(t *testing.T) {
	csv := "SEQN,RIAGENDR,DMDEDUC2\n1,1,1\n"
	rec := &recorder{}
	_, err := Run(rec, readTable(t, csv), DefaultOptions())
	var ce *survey.ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ColWeight, ce.Column)
	assert.Empty(t, rec.charts()[1:])
}

func TestRun_BadBins(t *testing.T) {
	opt := DefaultOptions()
	opt.AgeBins = []float64{30, 18}
	_, err := Run(&recorder{}, readTable(t, twoRows), opt)
	assert.Error(t, err)
}

func TestSummarize_Overview(t *testing.T) {
	ov, err := Summarize(readTable(t, mixedRows), 3)
	require.NoError(t, err)
	assert.Equal(t, 7, ov.Rows)
	assert.Len(t, ov.Samples, 3)

	var edu ColumnSummary
	for _, c := range ov.Cols {
		if c.Name == "DMDEDUC2" {
			edu = c
		}
	}
	assert.Equal(t, "numeric", edu.Kind)
	assert.Equal(t, 6, edu.NonNull)
	assert.Equal(t, 1, edu.Missing)

	md := ov.Markdown()
	assert.Contains(t, md, "Rows: 7")
	assert.Contains(t, md, "- DMDEDUC2: numeric (non-null 6, missing 14.3%)")
	assert.Contains(t, md, "[HEAD ROWS]")

	tb := ov.SchemaTable()
	assert.Equal(t, "7 rows, 10 columns", tb.Caption)
	assert.Len(t, tb.Rows, 10)
}
