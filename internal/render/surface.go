package render

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
)

// Surface is the rendering context every report section writes to. Calls are
// rendered in the order they are made.
type Surface interface {
	// Title sets the page heading; subtitle is markdown.
	Title(title, subtitle string)
	// Markdown appends a narrative block.
	Markdown(text string)
	// Table appends a small data table.
	Table(t Table)
	// Chart appends a figure under a stable id.
	Chart(id string, fig *grob.Fig)
	// Columns splits the next row into n side-by-side surfaces.
	Columns(n int) []Surface
}

// Table is a small rectangular table of preformatted cells.
type Table struct {
	Caption string
	Header  []string
	Rows    [][]string
}
