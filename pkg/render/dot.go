package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/cygraph/pkg/graph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes labels and properties in node labels.
	// When false, only the vertex ID is shown.
	Detailed bool
}

// ToDOT converts a property graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Implicit vertices (created as bare edge endpoints, carrying no properties
// or labels of their own) are rendered with dashed outlines and grey fill to
// distinguish them from explicitly defined vertices.
func ToDOT(g *graph.DiGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := fmtLabel(v, opts.Detailed)
		attrs := fmtAttrs(v, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.Detailed && len(e.Props) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, fmtProps(e.Props))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v *graph.Vertex, detailed bool) string {
	if !detailed {
		return v.ID
	}

	var parts []string
	if len(v.Labels) > 0 {
		parts = append(parts, ":"+strings.Join(v.Labels, ":"))
	}
	if props := fmtProps(v.Props); props != "" {
		parts = append(parts, props)
	}
	if len(parts) == 0 {
		return v.ID
	}
	return v.ID + "\n" + strings.Join(parts, "\n")
}

func fmtProps(props graph.Properties) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(props)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, props[k]))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(v *graph.Vertex, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if v.IsImplicit() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
