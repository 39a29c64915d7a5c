package graph

import "maps"

// Properties stores arbitrary key-value pairs attached to vertices or edges.
// Values are restricted to scalars (bool, string, signed/unsigned integers,
// floats) and homogeneous slices of those when the graph is destined for the
// CSV wire format; the map type itself does not enforce this. The encoder
// rejects unsupported values at encode time.
type Properties map[string]any

// Clone returns a shallow copy of the property map, or nil for a nil map.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Vertex represents a node in the graph.
//
// The zero value is not usable - vertices are created through
// [DiGraph.AddVertex] or implicitly by [DiGraph.AddEdge].
type Vertex struct {
	ID     string     // Unique identifier, the join key across tables
	Props  Properties // Property map (never nil after creation)
	Labels []string   // Ordered labels; nil when the vertex has none
}

// IsImplicit reports whether the vertex carries no properties and no labels.
// Vertices created only because an edge referenced their ID look like this
// after decoding an edge table.
func (v *Vertex) IsImplicit() bool {
	return len(v.Props) == 0 && len(v.Labels) == 0
}

// SetLabels replaces the vertex's label list. The slice is stored as-is;
// callers that reuse the slice should pass a copy.
func (v *Vertex) SetLabels(labels []string) {
	v.Labels = labels
}

// Edge represents a directed connection between two vertices.
// Edges have no independent identifier: identity is the (From, To) pair
// plus insertion position when duplicates exist.
type Edge struct {
	From  string     // Source vertex ID
	To    string     // Target vertex ID
	Props Properties // Property map (never nil after creation)
}

// DiGraph is a directed property multigraph with insertion-ordered
// iteration. The zero value is not usable - use New.
//
// DiGraph is not safe for concurrent mutation.
type DiGraph struct {
	vertices map[string]*Vertex
	order    []string // vertex IDs in insertion order
	edges    []*Edge
}

// New creates an empty directed graph.
func New() *DiGraph {
	return &DiGraph{
		vertices: make(map[string]*Vertex),
	}
}

// AddVertex adds or updates the vertex with the given ID and returns it.
//
// If the vertex already exists (including implicitly created endpoints),
// props are merged over its existing properties with later keys winning.
// Labels are untouched; use [Vertex.SetLabels]. IDs must be non-empty and
// stable - that is the caller's responsibility, and the CSV decoder rejects
// empty IDs before ever calling this.
func (g *DiGraph) AddVertex(id string, props Properties) *Vertex {
	v, ok := g.vertices[id]
	if !ok {
		v = &Vertex{ID: id, Props: Properties{}}
		g.vertices[id] = v
		g.order = append(g.order, id)
	}
	maps.Copy(v.Props, props)
	return v
}

// AddEdge adds a directed edge and returns it. Either endpoint vertex is
// created implicitly if absent, with no properties and no labels.
// Duplicate (from, to) pairs add another parallel edge.
func (g *DiGraph) AddEdge(from, to string, props Properties) *Edge {
	g.ensureVertex(from)
	g.ensureVertex(to)

	e := &Edge{From: from, To: to, Props: Properties{}}
	maps.Copy(e.Props, props)
	g.edges = append(g.edges, e)
	return e
}

// Vertex returns the vertex with the given ID, if present.
func (g *DiGraph) Vertex(id string) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Vertices returns all vertices in insertion order.
// The returned slice is freshly allocated; the vertices are not copies.
func (g *DiGraph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.order))
	for i, id := range g.order {
		out[i] = g.vertices[id]
	}
	return out
}

// Edges returns all edges in insertion order.
// The returned slice is freshly allocated; the edges are not copies.
func (g *DiGraph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Order returns the number of vertices.
func (g *DiGraph) Order() int { return len(g.order) }

// Size returns the number of edges.
func (g *DiGraph) Size() int { return len(g.edges) }

func (g *DiGraph) ensureVertex(id string) *Vertex {
	v, ok := g.vertices[id]
	if !ok {
		v = &Vertex{ID: id, Props: Properties{}}
		g.vertices[id] = v
		g.order = append(g.order, id)
	}
	return v
}
