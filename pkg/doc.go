// Package pkg provides the core libraries for Cygraph property-graph conversion.
//
// # Overview
//
// Cygraph converts directed property graphs between a JSON interchange format
// and the OpenCypher bulk-load CSV convention. The pkg directory is organized
// into the following areas:
//
//  1. [graph] - Property graph structure and JSON interchange format
//  2. [cypher] - The CSV codec (typed columns, arrays, labels)
//  3. [render] - Node-link diagram rendering via Graphviz
//  4. [server] - HTTP conversion and graph storage API
//  5. [store] - Graph persistence (memory, MongoDB)
//  6. [cache] - Conversion and render caching (file, Redis)
//
// # Architecture
//
// The typical data flow through Cygraph:
//
//	JSON graph file
//	         ↓
//	    [graph] package (DiGraph + interchange types)
//	         ↓
//	    [cypher] package (vertex/edge CSV tables)
//	         ↓
//	    bulk loader / [render] diagrams / [server] API
//
// # Quick Start
//
// Encode a graph to CSV tables:
//
//	g := graph.New()
//	g.AddVertex("alice", graph.Properties{"age": int64(30)})
//	g.AddEdge("alice", "bob", graph.Properties{"since": int64(2020)})
//
//	vertexCSV, edgeCSV, err := cypher.Marshal(g)
//
// Decode CSV tables back into a graph:
//
//	g, err := cypher.Unmarshal(vertexCSV, edgeCSV)
//
// # Supporting Packages
//
// [errors] defines the structured error codes shared by the codec, CLI and
// HTTP API. [io] wraps the codec in file import/export helpers. [buildinfo]
// carries version metadata injected at build time, and [observability]
// exposes hook interfaces for instrumenting codec, cache and HTTP activity.
//
// [graph]: github.com/matzehuels/cygraph/pkg/graph
// [cypher]: github.com/matzehuels/cygraph/pkg/cypher
// [render]: github.com/matzehuels/cygraph/pkg/render
// [server]: github.com/matzehuels/cygraph/pkg/server
// [store]: github.com/matzehuels/cygraph/pkg/store
// [cache]: github.com/matzehuels/cygraph/pkg/cache
// [errors]: github.com/matzehuels/cygraph/pkg/errors
// [io]: github.com/matzehuels/cygraph/pkg/io
// [buildinfo]: github.com/matzehuels/cygraph/pkg/buildinfo
// [observability]: github.com/matzehuels/cygraph/pkg/observability
package pkg
