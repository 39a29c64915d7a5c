package io

import (
	"fmt"
	"os"

	"github.com/matzehuels/cygraph/pkg/cypher"
	"github.com/matzehuels/cygraph/pkg/graph"
)

// ImportCSV reads a vertex table and an edge table from the given paths and
// returns the decoded graph.
//
// Decoding follows [cypher.Read] semantics: edges first with implicit
// endpoint creation, then vertex upserts. The returned graph is independent
// of the files.
func ImportCSV(vertexPath, edgePath string) (*graph.DiGraph, error) {
	vf, err := os.Open(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", vertexPath, err)
	}
	defer vf.Close()

	ef, err := os.Open(edgePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", edgePath, err)
	}
	defer ef.Close()

	return cypher.Read(vf, ef)
}

// ImportJSON reads a JSON graph file at path and returns the decoded graph.
//
// ImportJSON returns the same validation errors as [graph.ReadGraph] for
// malformed input, wrapped with the file path for context.
func ImportJSON(path string) (*graph.DiGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := graph.ReadGraph(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
