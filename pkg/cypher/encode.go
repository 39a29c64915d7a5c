package cypher

import (
	"bytes"
	"encoding/csv"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/cygraph/pkg/graph"
)

// Structural column names of the bulk-load convention.
const (
	colID    = ":ID"
	colStart = ":START_ID"
	colEnd   = ":END_ID"
	colLabel = ":LABEL"
)

// Graph is the capability set the codec needs from a graph implementation.
// [graph.DiGraph] satisfies it; [Read] returns the concrete type. The codec
// never retains the graph after a call returns.
type Graph interface {
	// Vertices returns all vertices in a stable iteration order.
	Vertices() []*graph.Vertex
	// Edges returns all edges in a stable iteration order.
	Edges() []*graph.Edge
	// Vertex looks up a vertex by ID.
	Vertex(id string) (*graph.Vertex, bool)
	// AddVertex upserts a vertex, merging props over existing ones.
	AddVertex(id string, props graph.Properties) *graph.Vertex
	// AddEdge adds an edge, creating missing endpoints implicitly.
	AddEdge(from, to string, props graph.Properties) *graph.Edge
}

var _ Graph = (*graph.DiGraph)(nil)

// column is a finalized header column: property name plus its single tag.
type column struct {
	name string
	tag  Tag
}

// Write encodes g as a vertex table and an edge table.
// The traversal is read-only and the output is deterministic for a given
// graph iteration order.
func Write(g Graph, vertexW, edgeW io.Writer) error {
	if err := writeVertexTable(g.Vertices(), vertexW); err != nil {
		return err
	}
	return writeEdgeTable(g.Edges(), edgeW)
}

// Marshal encodes g into in-memory vertex and edge buffers.
func Marshal(g Graph) (vertexBuf, edgeBuf []byte, err error) {
	var vb, eb bytes.Buffer
	if err := Write(g, &vb, &eb); err != nil {
		return nil, nil, err
	}
	return vb.Bytes(), eb.Bytes(), nil
}

// scanColumns is the scan phase: it examines every value present for every
// property key and finalizes one tag per column, widening on conflict.
// Columns are returned in sorted name order so headers are deterministic.
func scanColumns(propSets []graph.Properties) ([]column, error) {
	tags := make(map[string]Tag)
	for _, props := range propSets {
		for key, v := range props {
			if v == nil {
				continue
			}
			t, err := inferTag(key, v)
			if err != nil {
				return nil, err
			}
			if prev, ok := tags[key]; ok {
				tags[key] = widen(prev, t)
			} else {
				tags[key] = t
			}
		}
	}

	names := slices.Sorted(maps.Keys(tags))
	cols := make([]column, len(names))
	for i, name := range names {
		cols[i] = column{name: name, tag: tags[name]}
	}
	return cols, nil
}

func writeVertexTable(vertices []*graph.Vertex, w io.Writer) error {
	propSets := make([]graph.Properties, len(vertices))
	hasLabels := false
	for i, v := range vertices {
		propSets[i] = v.Props
		if len(v.Labels) > 0 {
			hasLabels = true
		}
	}

	cols, err := scanColumns(propSets)
	if err != nil {
		return err
	}

	header := make([]string, 0, len(cols)+2)
	header = append(header, colID)
	for _, c := range cols {
		header = append(header, c.name+":"+string(c.tag))
	}
	if hasLabels {
		header = append(header, colLabel+":"+string(TagStringArray))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, v := range vertices {
		record = record[:0]
		record = append(record, v.ID)
		for _, c := range cols {
			cell, err := formatCell(c, v.Props)
			if err != nil {
				return err
			}
			record = append(record, cell)
		}
		if hasLabels {
			record = append(record, strings.Join(v.Labels, ArrayDelimiter))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeEdgeTable(edges []*graph.Edge, w io.Writer) error {
	propSets := make([]graph.Properties, len(edges))
	for i, e := range edges {
		propSets[i] = e.Props
	}

	cols, err := scanColumns(propSets)
	if err != nil {
		return err
	}

	header := make([]string, 0, len(cols)+2)
	header = append(header, colStart, colEnd)
	for _, c := range cols {
		header = append(header, c.name+":"+string(c.tag))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, e := range edges {
		record = record[:0]
		record = append(record, e.From, e.To)
		for _, c := range cols {
			cell, err := formatCell(c, e.Props)
			if err != nil {
				return err
			}
			record = append(record, cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatCell renders one property cell; absent and nil values become the
// empty cell.
func formatCell(c column, props graph.Properties) (string, error) {
	v, ok := props[c.name]
	if !ok || v == nil {
		return "", nil
	}
	return formatValue(c.name, v, c.tag)
}
