package graph

// =============================================================================
// Graph - Interchange Format
// =============================================================================

// Graph is the JSON/BSON interchange format for property graphs.
// Used for CLI input/output, API responses and MongoDB storage.
//
// The format is human-readable and designed for round-trip fidelity:
// import → encode → decode → export produces identical results, modulo the
// documented empty-cell-is-absent rule of the CSV wire format.
type Graph struct {
	Nodes []Node       `json:"nodes" bson:"nodes"`
	Edges []EdgeRecord `json:"edges" bson:"edges"`
}

// Node is the portable representation of a vertex.
type Node struct {
	ID     string         `json:"id" bson:"id"`
	Labels []string       `json:"labels,omitempty" bson:"labels,omitempty"`
	Props  map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// EdgeRecord is the portable representation of an edge.
type EdgeRecord struct {
	From  string         `json:"from" bson:"from"`
	To    string         `json:"to" bson:"to"`
	Props map[string]any `json:"props,omitempty" bson:"props,omitempty"`
}

// =============================================================================
// DiGraph ↔ Graph Conversion
// =============================================================================

// FromGraph converts a DiGraph to its interchange format.
// Vertices and edges appear in iteration (insertion) order, so output is
// deterministic for a given construction sequence. Property maps are copied;
// mutating the result does not affect the source graph.
func FromGraph(g *DiGraph) Graph {
	vertices := g.Vertices()
	edges := g.Edges()

	out := Graph{
		Nodes: make([]Node, len(vertices)),
		Edges: make([]EdgeRecord, len(edges)),
	}

	for i, v := range vertices {
		n := Node{ID: v.ID, Labels: v.Labels}
		if len(v.Props) > 0 {
			n.Props = v.Props.Clone()
		}
		out.Nodes[i] = n
	}

	for i, e := range edges {
		r := EdgeRecord{From: e.From, To: e.To}
		if len(e.Props) > 0 {
			r.Props = Properties(e.Props).Clone()
		}
		out.Edges[i] = r
	}

	return out
}

// ToGraph converts an interchange Graph to a DiGraph.
// Nodes are added first in record order, then edges; edges referencing IDs
// absent from the node list create implicit endpoint vertices, matching the
// CSV decoder's behavior. Duplicate node IDs merge with later records
// winning.
func ToGraph(gr Graph) *DiGraph {
	g := New()
	for _, n := range gr.Nodes {
		v := g.AddVertex(n.ID, n.Props)
		if len(n.Labels) > 0 {
			v.SetLabels(n.Labels)
		}
	}
	for _, e := range gr.Edges {
		g.AddEdge(e.From, e.To, e.Props)
	}
	return g
}
