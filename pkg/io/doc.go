// Package io provides file-based import and export for property graphs.
//
// The core codecs are deliberately stream-oriented: package cypher consumes
// and produces io.Reader/io.Writer pairs, and package graph does the same
// for the JSON interchange format. This package owns the thin file layer on
// top - opening, creating and closing files is the caller's concern, not
// the codec's.
//
// # CSV pair
//
//	g, err := io.ImportCSV("vertices.csv", "edges.csv")
//	...
//	err = io.ExportCSV(g, "vertices.csv", "edges.csv")
//
// # JSON graph
//
//	g, err := io.ImportJSON("graph.json")
//	...
//	err = io.ExportJSON(g, "graph.json")
//
// Files are written with 0644 permissions and UTF-8 encoding. Errors wrap
// the underlying cause with the file path for context.
package io
