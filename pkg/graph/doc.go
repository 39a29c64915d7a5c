// Package graph provides the directed property graph that cygraph encodes
// to and decodes from the OpenCypher bulk-load CSV convention.
//
// # Overview
//
// A [DiGraph] is a directed multigraph: vertices are identified by opaque
// string IDs and carry a property map plus an optional ordered label list;
// edges carry a property map and are identified only by their (From, To)
// endpoint pair. Duplicate edges between the same endpoints are allowed.
//
// # Basic Usage
//
// Create a graph with [New], add vertices with [DiGraph.AddVertex] and edges
// with [DiGraph.AddEdge]:
//
//	g := graph.New()
//	g.AddVertex("alice", graph.Properties{"age": 30})
//	g.AddVertex("bob", nil)
//	g.AddEdge("alice", "bob", graph.Properties{"since": 2020})
//
// AddVertex upserts: calling it again for an existing ID merges the new
// properties over the old ones (later keys win). AddEdge creates missing
// endpoint vertices implicitly, with no properties and no labels. This
// mirrors the bulk-load convention, where an edge table alone is enough to
// build a structural graph. Use [Vertex.IsImplicit] to detect vertices that
// exist only because an edge referenced them.
//
// # Labels
//
// Labels are a first-class field on [Vertex] rather than a reserved property
// key. They are ordered, optional, and never nil-vs-empty significant:
// a vertex either has labels or it does not.
//
// # Iteration Order
//
// [DiGraph.Vertices] and [DiGraph.Edges] return entities in insertion order.
// The CSV encoder relies on this for deterministic output, which is what
// makes round-trip tests byte-stable.
//
// # Serialization
//
// The [Graph], [Node] and [EdgeRecord] types are the JSON/BSON interchange
// format used by the CLI, the HTTP API and the MongoDB store. Convert with
// [FromGraph] and [ToGraph], or use [MarshalGraph], [WriteGraph] and
// [ReadGraph] directly. For the CSV wire format, see package cypher.
//
// # Concurrency
//
// DiGraph instances are not safe for concurrent mutation. Concurrent reads
// of a graph that is no longer being modified are safe.
package graph
