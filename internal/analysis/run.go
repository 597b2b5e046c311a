package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/KaramelBytes/nhanes-cli/internal/charts"
	"github.com/KaramelBytes/nhanes-cli/internal/config"
	"github.com/KaramelBytes/nhanes-cli/internal/render"
	"github.com/KaramelBytes/nhanes-cli/internal/survey"
)

// Source and derived column names.
const (
	ColWeight   = "BMXWT"
	ColAge      = "RIDAGEYR"
	ColSystolic = "BPXSY1"
	ColAgeGroup = "agegrp"
)

// BloodPressureCols are compared side by side.
var BloodPressureCols = []string{"BPXSY1", "BPXSY2", "BPXDI1", "BPXDI2"}

// RIAGENDR codes.
const (
	codeMale   = 1
	codeFemale = 2
)

// Chart ids, stable across runs.
const (
	ChartEducation      = "education-pie"
	ChartBodyWeight     = "body-weight-histogram"
	ChartCompare        = "blood-pressure-box"
	ChartAgeStrata      = "age-strata-box"
	ChartAgeGender      = "age-gender-box"
	ChartGenderAge      = "gender-age-box"
	ChartCivilStatus    = "civil-status-bar"
	educationPieTitle   = "Frequency Table Education Label"
	bloodPressureTitle  = "Blood Pressure Distribution"
	civilStatusBarTitle = "Civil Status Frequency Table"
)

// Options controls the report run.
type Options struct {
	Title       string
	PreviewRows int
	AgeBins     []float64
	Education   survey.Recode
	Gender      survey.Recode
	Marital     survey.Recode
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(&config.Global{
		PageTitle:   "Analysis of univariate data - NHANES case study",
		PreviewRows: 20,
		AgeBins:     config.DefaultAgeBins(),
	})
}

// OptionsFromConfig maps the global configuration onto report options.
func OptionsFromConfig(c *config.Global) Options {
	conv := func(r config.Recode) survey.Recode {
		return survey.Recode{Source: r.Source, Target: r.Target, Labels: r.Labels}
	}
	return Options{
		Title:       c.PageTitle,
		PreviewRows: c.PreviewRows,
		AgeBins:     c.AgeBins,
		Education:   conv(c.Recode(config.RecodeEducation)),
		Gender:      conv(c.Recode(config.RecodeGender)),
		Marital:     conv(c.Recode(config.RecodeMarital)),
	}
}

// Result holds the tables computed along the way.
type Result struct {
	Overview      *Overview
	Education     survey.Frequency
	AgeGroups     survey.Frequency
	MaritalFemale survey.Frequency
	MaritalMale   survey.Frequency
}

type report struct {
	s    render.Surface
	t    *survey.Table
	opt  Options
	bins survey.Bins
	res  *Result
}

// Run emits every report section to s in a fixed order, deriving the label
// columns on t in place. The first failing section aborts the run.
func Run(s render.Surface, t *survey.Table, opt Options) (*Result, error) {
	bins, err := survey.NewBins(opt.AgeBins)
	if err != nil {
		return nil, err
	}
	r := &report{s: s, t: t, opt: opt, bins: bins, res: &Result{}}
	sections := []struct {
		name string
		run  func() error
	}{
		{"header", r.header},
		{"dataframe", r.dataframe},
		{"education", r.education},
		{"body weight", r.bodyWeight},
		{"comparing distributions", r.compare},
		{"stratification", r.stratify},
		{"double stratification", r.doubleStratify},
		{"reverse stratification", r.reverseStratify},
		{"civil status", r.civilStatus},
		{"footer", r.footer},
	}
	for _, sec := range sections {
		if err := sec.run(); err != nil {
			return nil, fmt.Errorf("%s: %w", sec.name, err)
		}
	}
	return r.res, nil
}

func (r *report) header() error {
	r.s.Title(r.opt.Title, subtitleText)
	r.s.Markdown(introText)
	return nil
}

func (r *report) dataframe() error {
	ov, err := Summarize(r.t, r.opt.PreviewRows)
	if err != nil {
		return err
	}
	r.res.Overview = ov
	r.s.Markdown(dataframeText)
	r.s.Table(ov.SampleTable())
	r.s.Table(ov.SchemaTable())
	return nil
}

func (r *report) education() error {
	r.s.Markdown(educationText)
	labels, err := r.opt.Education.Apply(r.t)
	if err != nil {
		return err
	}
	if _, err := r.opt.Gender.Apply(r.t); err != nil {
		return err
	}
	freq := survey.ValueCounts(labels)
	r.res.Education = freq

	cols := r.s.Columns(2)
	cols[0].Table(frequencyTable(freq, r.opt.Education.Target))
	fig, err := charts.Pie(freq.Labels(), freq.Counts(), charts.WithTitle(educationPieTitle))
	if err != nil {
		return err
	}
	cols[1].Chart(ChartEducation, fig)
	r.s.Markdown(educationOutroText)
	return nil
}

func (r *report) bodyWeight() error {
	r.s.Markdown(bodyWeightText)
	weights, err := r.t.Floats(ColWeight)
	if err != nil {
		return err
	}
	genders, err := r.t.Labels(r.opt.Gender.Target)
	if err != nil {
		return err
	}
	order, by := survey.Group(genders, weights, r.genderOrder())
	traces := make([]charts.Trace, 0, len(order))
	for _, g := range order {
		traces = append(traces, charts.Trace{Name: g, Y: by[g]})
	}
	r.s.Chart(ChartBodyWeight, charts.Histogram(traces,
		charts.WithTitle("Body Weight Distribution"),
		charts.WithXlabel(ColWeight),
		charts.WithYlabel("count"),
	))
	return nil
}

func (r *report) compare() error {
	r.s.Markdown(compareText)
	traces := make([]charts.Trace, 0, len(BloodPressureCols))
	for _, col := range BloodPressureCols {
		vals, err := r.t.Floats(col)
		if err != nil {
			return err
		}
		traces = append(traces, charts.Trace{Name: col, Y: survey.NonMissing(vals)})
	}
	r.s.Chart(ChartCompare, charts.Box(traces, charts.WithTitle("Distributions Comparisons")))
	return nil
}

func (r *report) stratify() error {
	r.s.Markdown(stratifyText)
	ages, err := r.bins.Apply(r.t, ColAge, ColAgeGroup)
	if err != nil {
		return err
	}
	r.res.AgeGroups = survey.ValueCounts(ages)
	bp, err := r.t.Floats(ColSystolic)
	if err != nil {
		return err
	}
	single := make([]string, len(ages))
	for i := range single {
		single[i] = ColSystolic
	}
	fig, err := charts.StratifiedBox(strata(single, ages, bp, nil, r.bins.Labels()), false,
		charts.WithTitle("Age Stratification Blood Pressure Distribution"),
		charts.WithXlabel("Age"),
		charts.WithYlabel(ColSystolic),
		charts.WithLegend(false),
	)
	if err != nil {
		return err
	}
	r.s.Chart(ChartAgeStrata, fig)
	return nil
}

func (r *report) doubleStratify() error {
	r.s.Markdown(doubleStratifyText)
	ages, genders, bp, err := r.strataColumns()
	if err != nil {
		return err
	}
	fig, err := charts.StratifiedBox(strata(genders, ages, bp, r.genderOrder(), r.bins.Labels()), true,
		charts.WithTitle(bloodPressureTitle),
		charts.WithXlabel(ColAgeGroup),
		charts.WithYlabel(ColSystolic),
	)
	if err != nil {
		return err
	}
	r.s.Chart(ChartAgeGender, fig)
	return nil
}

func (r *report) reverseStratify() error {
	r.s.Markdown(reverseStratifyText)
	ages, genders, bp, err := r.strataColumns()
	if err != nil {
		return err
	}
	fig, err := charts.StratifiedBox(strata(ages, genders, bp, r.bins.Labels(), r.genderOrder()), false,
		charts.WithTitle(bloodPressureTitle),
		charts.WithXlabel(r.opt.Gender.Target),
		charts.WithYlabel(ColSystolic),
	)
	if err != nil {
		return err
	}
	r.s.Chart(ChartGenderAge, fig)
	return nil
}

func (r *report) civilStatus() error {
	r.s.Markdown(civilStatusText)
	if _, err := r.opt.Marital.Apply(r.t); err != nil {
		return err
	}
	female, err := survey.CountsBy(r.t, r.opt.Gender.Source, codeFemale, r.opt.Marital.Target)
	if err != nil {
		return err
	}
	male, err := survey.CountsBy(r.t, r.opt.Gender.Source, codeMale, r.opt.Marital.Target)
	if err != nil {
		return err
	}
	r.res.MaritalFemale, r.res.MaritalMale = female, male

	fig, err := charts.GroupedBar([]charts.Trace{
		{Name: r.opt.Gender.Label(codeFemale), X: female.Labels(), Y: female.Counts()},
		{Name: r.opt.Gender.Label(codeMale), X: male.Labels(), Y: male.Counts()},
	},
		charts.WithTitle(civilStatusBarTitle),
		charts.WithXlabel("status"),
		charts.WithYlabel("count"),
	)
	if err != nil {
		return err
	}
	r.s.Chart(ChartCivilStatus, fig)
	return nil
}

func (r *report) footer() error {
	r.s.Markdown(footerText)
	return nil
}

// strataColumns reads the age group, gender label and systolic columns.
func (r *report) strataColumns() (ages, genders []string, bp []float64, err error) {
	if ages, err = r.t.Labels(ColAgeGroup); err != nil {
		return
	}
	if genders, err = r.t.Labels(r.opt.Gender.Target); err != nil {
		return
	}
	bp, err = r.t.Floats(ColSystolic)
	return
}

// genderOrder lists gender labels by ascending code.
func (r *report) genderOrder() []string {
	codes := make([]int, 0, len(r.opt.Gender.Labels))
	for c := range r.opt.Gender.Labels {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = r.opt.Gender.Labels[c]
	}
	return out
}

// strata builds one box trace per color value. Each trace lists its rows
// ordered by stratum; rows with no color, no stratum or no value are dropped.
func strata(color, x []string, y []float64, colorOrder, xOrder []string) []charts.Trace {
	colorKeys := make([]string, len(color))
	for i := range color {
		if i < len(x) && x[i] != "" {
			colorKeys[i] = color[i]
		}
	}
	colors, _ := survey.Group(colorKeys, y, colorOrder)
	out := make([]charts.Trace, 0, len(colors))
	for _, c := range colors {
		keys := make([]string, len(x))
		for i := range x {
			if i < len(color) && color[i] == c {
				keys[i] = x[i]
			}
		}
		order, by := survey.Group(keys, y, xOrder)
		tr := charts.Trace{Name: c, X: []string{}, Y: []float64{}}
		for _, k := range order {
			for _, v := range by[k] {
				tr.X = append(tr.X, k)
				tr.Y = append(tr.Y, v)
			}
		}
		out = append(out, tr)
	}
	return out
}

func frequencyTable(f survey.Frequency, column string) render.Table {
	rows := make([][]string, 0, len(f))
	for _, c := range f {
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Count)})
	}
	return render.Table{Header: []string{column, "count"}, Rows: rows}
}
