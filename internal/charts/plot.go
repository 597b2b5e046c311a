package charts

import (
	"fmt"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
)

// Option edits the layout of a figure under construction.
type Option func(lay *grob.Layout)

func newFigure(opts []Option) (*grob.Fig, *grob.Layout) {
	lay := &grob.Layout{}
	for _, o := range opts {
		o(lay)
	}
	return &grob.Fig{Layout: lay}, lay
}

func WithTitle(title string) Option {
	return func(lay *grob.Layout) { lay.Title = &grob.LayoutTitle{Text: title} }
}

func WithLegend(show bool) Option {
	return func(lay *grob.Layout) {
		lay.Showlegend = grob.False
		if show {
			lay.Showlegend = grob.True
		}
	}
}

// WithXlabel and WithYlabel title the axes.
func WithXlabel(label string) Option {
	return func(lay *grob.Layout) {
		if lay.Xaxis == nil {
			lay.Xaxis = &grob.LayoutXaxis{}
		}
		lay.Xaxis.Title = &grob.LayoutXaxisTitle{Text: label}
	}
}

func WithYlabel(label string) Option {
	return func(lay *grob.Layout) {
		if lay.Yaxis == nil {
			lay.Yaxis = &grob.LayoutYaxis{}
		}
		lay.Yaxis.Title = &grob.LayoutYaxisTitle{Text: label}
	}
}

// Title returns the layout title text of fig, or "".
func Title(fig *grob.Fig) string {
	if fig == nil || fig.Layout == nil || fig.Layout.Title == nil {
		return ""
	}
	if s, ok := fig.Layout.Title.Text.(string); ok {
		return s
	}
	return ""
}

// Trace is one named series. X is optional and, when set, parallels Y.
type Trace struct {
	Name string
	X    []string
	Y    []float64
}

// Pie draws one slice per label, annotated with its share to two decimals.
func Pie(labels []string, values []float64, opt ...Option) (*grob.Fig, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("pie: %d labels for %d values", len(labels), len(values))
	}
	fig, _ := newFigure(opt)
	fig.AddTraces(&grob.Pie{
		Type:         grob.TraceTypePie,
		Labels:       labels,
		Values:       values,
		Texttemplate: "%{percent:.2%}",
		Sort:         grob.False,
	})
	return fig, nil
}

// Histogram draws one stacked histogram trace per series.
func Histogram(series []Trace, opt ...Option) *grob.Fig {
	fig, lay := newFigure(opt)
	lay.Barmode = grob.HistogramBarmodeStack
	for _, s := range series {
		fig.AddTraces(&grob.Histogram{
			Type: grob.TraceTypeHistogram,
			Name: s.Name,
			X:    s.Y,
		})
	}
	return fig
}

// Box draws one box per series, each on its own category.
func Box(series []Trace, opt ...Option) *grob.Fig {
	fig, _ := newFigure(opt)
	for _, s := range series {
		fig.AddTraces(boxTrace(s, false))
	}
	return fig
}

// StratifiedBox draws one box trace per color group; X holds each row's
// stratum. Traces with more than one entry are grouped side by side.
func StratifiedBox(groups []Trace, notched bool, opt ...Option) (*grob.Fig, error) {
	fig, lay := newFigure(opt)
	if len(groups) > 1 {
		lay.Boxmode = grob.BoxBoxmodeGroup
	}
	for _, g := range groups {
		if len(g.X) != len(g.Y) {
			return nil, fmt.Errorf("box %q: %d strata for %d values", g.Name, len(g.X), len(g.Y))
		}
		fig.AddTraces(boxTrace(g, notched))
	}
	return fig, nil
}

// GroupedBar draws one bar trace per group with bars grouped by category.
func GroupedBar(groups []Trace, opt ...Option) (*grob.Fig, error) {
	fig, lay := newFigure(opt)
	lay.Barmode = grob.BarBarmodeGroup
	for _, g := range groups {
		if len(g.X) != len(g.Y) {
			return nil, fmt.Errorf("bar %q: %d categories for %d values", g.Name, len(g.X), len(g.Y))
		}
		fig.AddTraces(&grob.Bar{
			Type: grob.TraceTypeBar,
			Name: g.Name,
			X:    g.X,
			Y:    g.Y,
		})
	}
	return fig, nil
}

func boxTrace(t Trace, notched bool) *grob.Box {
	b := &grob.Box{
		Type: grob.TraceTypeBox,
		Name: t.Name,
		Y:    t.Y,
	}
	if t.X != nil {
		b.X = t.X
		b.Offsetgroup = t.Name
	}
	if notched {
		b.Notched = grob.True
	}
	return b
}

// TraceNames lists the trace names of fig in order.
func TraceNames(fig *grob.Fig) []string {
	var out []string
	for _, tr := range fig.Data {
		out = append(out, traceName(tr))
	}
	return out
}

func traceName(tr grob.Trace) string {
	var n interface{}
	switch t := tr.(type) {
	case *grob.Pie:
		n = t.Name
	case *grob.Histogram:
		n = t.Name
	case *grob.Box:
		n = t.Name
	case *grob.Bar:
		n = t.Name
	case *grob.Scatter:
		n = t.Name
	}
	if n == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(n))
}
