package cypher

import (
	"testing"

	"github.com/matzehuels/cygraph/pkg/errors"
	"github.com/matzehuels/cygraph/pkg/graph"
)

func TestMarshalBasic(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"name": "Alice", "age": int64(30)})
	g.AddVertex("2", graph.Properties{"name": "Bob"})
	g.AddEdge("1", "2", graph.Properties{"since": int64(2020)})

	vbuf, ebuf, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	wantVertices := ":ID,age:int,name:string\n" +
		"1,30,Alice\n" +
		"2,,Bob\n"
	if string(vbuf) != wantVertices {
		t.Errorf("vertex buffer = %q, want %q", vbuf, wantVertices)
	}

	wantEdges := ":START_ID,:END_ID,since:int\n" +
		"1,2,2020\n"
	if string(ebuf) != wantEdges {
		t.Errorf("edge buffer = %q, want %q", ebuf, wantEdges)
	}
}

func TestMarshalEmptyGraph(t *testing.T) {
	vbuf, ebuf, err := Marshal(graph.New())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(vbuf) != ":ID\n" {
		t.Errorf("vertex buffer = %q, want header only", vbuf)
	}
	if string(ebuf) != ":START_ID,:END_ID\n" {
		t.Errorf("edge buffer = %q, want header only", ebuf)
	}
}

func TestMarshalWidensIntFloat(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"age": int64(5)})
	g.AddVertex("2", graph.Properties{"age": 5.5})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := ":ID,age:float\n1,5.0\n2,5.5\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalWidensToString(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"v": int64(7)})
	g.AddVertex("2", graph.Properties{"v": true})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := ":ID,v:string\n1,7\n2,true\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalLabels(t *testing.T) {
	g := graph.New()
	v := g.AddVertex("1", graph.Properties{"name": "Alice"})
	v.SetLabels([]string{"Person", "Employee"})
	g.AddVertex("2", graph.Properties{"name": "Bob"})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := ":ID,name:string,:LABEL:string[]\n" +
		"1,Alice,Person;Employee\n" +
		"2,Bob,\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalNoLabelColumnWithoutLabels(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"name": "Alice"})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(vbuf) != ":ID,name:string\n1,Alice\n" {
		t.Errorf("vertex buffer = %q, no :LABEL column expected", vbuf)
	}
}

func TestMarshalArrays(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"scores": []int64{90, 85, 72}})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := ":ID,scores:int[]\n" + `1,90;85;72` + "\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalQuoting(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"note": `say "hi", ok`})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := ":ID,note:string\n" + `1,"say ""hi"", ok"` + "\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalNilValueMeansAbsent(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"name": "Alice", "gone": nil})
	g.AddVertex("2", graph.Properties{"name": "Bob"})

	vbuf, _, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// A key whose only values are nil never becomes a column.
	want := ":ID,name:string\n1,Alice\n2,Bob\n"
	if string(vbuf) != want {
		t.Errorf("vertex buffer = %q, want %q", vbuf, want)
	}
}

func TestMarshalUnsupportedType(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"NestedMap", map[string]any{"x": 1}},
		{"MixedSlice", []any{int64(1), "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			g.AddVertex("1", graph.Properties{"bad": tt.value})

			_, _, err := Marshal(g)
			if !errors.Is(err, errors.ErrCodeUnsupportedType) {
				t.Errorf("Marshal err = %v, want UNSUPPORTED_TYPE", err)
			}
		})
	}
}

func TestMarshalEdgeProperties(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", graph.Properties{"weight": 0.5, "kind": "ref"})
	g.AddEdge("b", "c", nil)

	_, ebuf, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := ":START_ID,:END_ID,kind:string,weight:float\n" +
		"a,b,ref,0.5\n" +
		"b,c,,\n"
	if string(ebuf) != want {
		t.Errorf("edge buffer = %q, want %q", ebuf, want)
	}
}

func TestMarshalReadOnly(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"n": int64(1)})
	g.AddEdge("1", "2", nil)

	if _, _, err := Marshal(g); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if g.Order() != 2 || g.Size() != 1 {
		t.Errorf("graph mutated during encode: order=%d size=%d", g.Order(), g.Size())
	}
	v, _ := g.Vertex("1")
	if len(v.Props) != 1 {
		t.Errorf("vertex props mutated: %v", v.Props)
	}
}
