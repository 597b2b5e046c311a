package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ChartRef is a figure emitted to a Page.
type ChartRef struct {
	ID  string
	Fig *grob.Fig
}

type block struct {
	Kind      string // markdown|table|chart|columns
	HTML      template.HTML
	Table     *Table
	ChartID   string
	ChartJSON template.JS

	pages []*Page
}

// Cols returns the blocks of each column, read at render time.
func (b *block) Cols() [][]*block {
	out := make([][]*block, len(b.pages))
	for i, cp := range b.pages {
		out[i] = cp.blocks
	}
	return out
}

// Page is the single-page HTML dashboard.
type Page struct {
	ID          string
	PlotlyJSURL string
	Generated   time.Time

	heading  string
	subtitle template.HTML
	blocks   []*block

	// shared with column children
	root   *Page
	charts []ChartRef
	err    error
}

// NewPage starts an empty page that loads plotly.js from plotlyJSURL.
func NewPage(plotlyJSURL string) *Page {
	p := &Page{ID: uuid.NewString(), PlotlyJSURL: plotlyJSURL, Generated: time.Now()}
	p.root = p
	return p
}

func (p *Page) Title(title, subtitle string) {
	r := p.root
	r.heading = title
	if subtitle != "" {
		r.subtitle = r.toHTML(subtitle)
	}
}

func (p *Page) Markdown(text string) {
	p.blocks = append(p.blocks, &block{Kind: "markdown", HTML: p.root.toHTML(text)})
}

func (p *Page) Table(t Table) {
	tc := t
	p.blocks = append(p.blocks, &block{Kind: "table", Table: &tc})
}

func (p *Page) Chart(id string, fig *grob.Fig) {
	r := p.root
	for _, c := range r.charts {
		if c.ID == id {
			r.fail(fmt.Errorf("chart %s: duplicate id", id))
			return
		}
	}
	b, err := json.Marshal(fig)
	if err != nil {
		r.fail(fmt.Errorf("chart %s: marshal figure: %w", id, err))
		return
	}
	r.charts = append(r.charts, ChartRef{ID: id, Fig: fig})
	p.blocks = append(p.blocks, &block{Kind: "chart", ChartID: id, ChartJSON: template.JS(b)})
}

func (p *Page) Columns(n int) []Surface {
	if n < 1 {
		n = 1
	}
	b := &block{Kind: "columns", pages: make([]*Page, n)}
	p.blocks = append(p.blocks, b)
	out := make([]Surface, n)
	for i := range b.pages {
		b.pages[i] = &Page{root: p.root}
		out[i] = b.pages[i]
	}
	return out
}

// Charts lists emitted figures in emission order.
func (p *Page) Charts() []ChartRef { return p.root.charts }

// Figure finds an emitted figure by id.
func (p *Page) Figure(id string) (*grob.Fig, bool) {
	for _, c := range p.root.charts {
		if c.ID == id {
			return c.Fig, true
		}
	}
	return nil, false
}

// Err returns the first error recorded while building the page.
func (p *Page) Err() error { return p.root.err }

// Render writes the complete HTML document.
func (p *Page) Render(w io.Writer) error {
	r := p.root
	if r.err != nil {
		return r.err
	}
	data := struct {
		ID          string
		Title       string
		Subtitle    template.HTML
		PlotlyJSURL string
		Generated   string
		Blocks      []*block
	}{
		ID:          r.ID,
		Title:       r.heading,
		Subtitle:    r.subtitle,
		PlotlyJSURL: r.PlotlyJSURL,
		Generated:   r.Generated.UTC().Format(time.RFC3339),
		Blocks:      r.blocks,
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (p *Page) toHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		p.fail(fmt.Errorf("markdown: %w", err))
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func (p *Page) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
