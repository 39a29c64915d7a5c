package io

import (
	"fmt"
	"os"

	"github.com/matzehuels/cygraph/pkg/cypher"
	"github.com/matzehuels/cygraph/pkg/graph"
)

// ExportCSV writes a graph as a vertex table and an edge table at the given
// paths. Both files are created (or truncated) with 0644 permissions; on
// encoding failure the partially written files are left in place for
// inspection.
func ExportCSV(g cypher.Graph, vertexPath, edgePath string) error {
	vf, err := os.Create(vertexPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", vertexPath, err)
	}
	defer vf.Close()

	ef, err := os.Create(edgePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", edgePath, err)
	}
	defer ef.Close()

	return cypher.Write(g, vf, ef)
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [graph.WriteGraph] for file-based
// output.
func ExportJSON(g *graph.DiGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return graph.WriteGraph(g, f)
}
