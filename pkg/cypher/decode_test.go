package cypher

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/cygraph/pkg/errors"
	"github.com/matzehuels/cygraph/pkg/graph"
)

func decodeStrings(t *testing.T, vertices, edges string) (*graph.DiGraph, error) {
	t.Helper()
	return Read(strings.NewReader(vertices), strings.NewReader(edges))
}

func TestReadBasic(t *testing.T) {
	g, err := decodeStrings(t,
		":ID,age:int,name:string\n1,30,Alice\n2,,Bob\n",
		":START_ID,:END_ID,since:int\n1,2,2020\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if g.Order() != 2 || g.Size() != 1 {
		t.Fatalf("order/size = %d/%d, want 2/1", g.Order(), g.Size())
	}

	alice, _ := g.Vertex("1")
	if alice.Props["name"] != "Alice" || alice.Props["age"] != int64(30) {
		t.Errorf("alice props = %v", alice.Props)
	}

	bob, _ := g.Vertex("2")
	if _, ok := bob.Props["age"]; ok {
		t.Error("empty age cell should decode to absent key")
	}

	e := g.Edges()[0]
	if e.From != "1" || e.To != "2" || e.Props["since"] != int64(2020) {
		t.Errorf("edge = %+v", e)
	}
}

func TestReadImplicitVertices(t *testing.T) {
	g, err := decodeStrings(t,
		":ID\n",
		":START_ID,:END_ID\na,b\nb,c\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if g.Order() != 3 {
		t.Fatalf("Order = %d, want 3", g.Order())
	}
	for _, id := range []string{"a", "b", "c"} {
		v, ok := g.Vertex(id)
		if !ok {
			t.Fatalf("vertex %q missing", id)
		}
		if !v.IsImplicit() {
			t.Errorf("vertex %q should have no properties and no labels", id)
		}
	}
}

func TestReadLabels(t *testing.T) {
	g, err := decodeStrings(t,
		":ID,:LABEL:string[]\n1,Person;Employee\n2,\n",
		":START_ID,:END_ID\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	v1, _ := g.Vertex("1")
	if !reflect.DeepEqual(v1.Labels, []string{"Person", "Employee"}) {
		t.Errorf("labels = %v, want ordered [Person Employee]", v1.Labels)
	}
	v2, _ := g.Vertex("2")
	if v2.Labels != nil {
		t.Errorf("empty :LABEL cell should leave labels absent, got %v", v2.Labels)
	}
}

func TestReadUpsertsOntoImplicitVertices(t *testing.T) {
	g, err := decodeStrings(t,
		":ID,name:string\nb,Bee\n",
		":START_ID,:END_ID\na,b\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	b, _ := g.Vertex("b")
	if b.Props["name"] != "Bee" {
		t.Errorf("props not merged onto implicit vertex: %v", b.Props)
	}
	if g.Order() != 2 {
		t.Errorf("Order = %d, want 2 (no duplicate vertex)", g.Order())
	}
}

func TestReadDuplicateVertexLastRowWins(t *testing.T) {
	g, err := decodeStrings(t,
		":ID,v:int,w:int\na,1,9\na,2,\n",
		":START_ID,:END_ID\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if g.Order() != 1 {
		t.Fatalf("Order = %d, want 1", g.Order())
	}
	a, _ := g.Vertex("a")
	if a.Props["v"] != int64(2) {
		t.Errorf("v = %v, want 2 (last row wins)", a.Props["v"])
	}
	if a.Props["w"] != int64(9) {
		t.Errorf("w = %v, want 9 (earlier keys survive the merge)", a.Props["w"])
	}
}

func TestReadQuotedFields(t *testing.T) {
	g, err := decodeStrings(t,
		":ID,note:string\n1,\"say \"\"hi\"\", ok\"\n",
		":START_ID,:END_ID\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	v, _ := g.Vertex("1")
	if v.Props["note"] != `say "hi", ok` {
		t.Errorf("note = %q", v.Props["note"])
	}
}

func TestReadMalformedHeader(t *testing.T) {
	tests := []struct {
		name     string
		vertices string
		edges    string
	}{
		{"MissingID", "name:string\nAlice\n", ":START_ID,:END_ID\n"},
		{"MissingStartID", ":ID\n", ":END_ID,since:int\n"},
		{"MissingEndID", ":ID\n", ":START_ID,since:int\n"},
		{"UnknownTag", ":ID,age:date\n", ":START_ID,:END_ID\n"},
		{"UntaggedColumn", ":ID,age\n", ":START_ID,:END_ID\n"},
		{"BadLabelTag", ":ID,:LABEL:string\n", ":START_ID,:END_ID\n"},
		{"ReservedInEdges", ":ID\n", ":START_ID,:END_ID,:LABEL:string[]\n"},
		{"EmptyVertexBuffer", "", ":START_ID,:END_ID\n"},
		{"EmptyEdgeBuffer", ":ID\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := decodeStrings(t, tt.vertices, tt.edges)
			if !errors.Is(err, errors.ErrCodeMalformedHeader) {
				t.Errorf("err = %v, want MALFORMED_HEADER", err)
			}
			if g != nil {
				t.Error("no graph should be returned on header failure")
			}
		})
	}
}

func TestReadFailsBeforeRowsOnBadVertexHeader(t *testing.T) {
	// The edge table is valid, but the vertex header is checked first:
	// nothing must be decoded when either header is malformed.
	into := graph.New()
	err := ReadInto(
		strings.NewReader("oops\n"),
		strings.NewReader(":START_ID,:END_ID\na,b\n"),
		into)
	if !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Fatalf("err = %v, want MALFORMED_HEADER", err)
	}
	if into.Order() != 0 || into.Size() != 0 {
		t.Errorf("graph partially built: order=%d size=%d", into.Order(), into.Size())
	}
}

func TestReadMalformedRow(t *testing.T) {
	tests := []struct {
		name     string
		vertices string
		edges    string
	}{
		{"EmptyVertexID", ":ID,name:string\n,Alice\n", ":START_ID,:END_ID\n"},
		{"EmptyStartID", ":ID\n", ":START_ID,:END_ID\n,b\n"},
		{"EmptyEndID", ":ID\n", ":START_ID,:END_ID\na,\n"},
		{"VertexColumnCount", ":ID,age:int\n1\n", ":START_ID,:END_ID\n"},
		{"EdgeColumnCount", ":ID\n", ":START_ID,:END_ID\na,b,extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeStrings(t, tt.vertices, tt.edges)
			if !errors.Is(err, errors.ErrCodeMalformedRow) {
				t.Errorf("err = %v, want MALFORMED_ROW", err)
			}
		})
	}
}

func TestReadTypeMismatch(t *testing.T) {
	_, err := decodeStrings(t,
		":ID,age:int\n1,30\n2,thirty\n",
		":START_ID,:END_ID\n")
	if !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Fatalf("err = %v, want TYPE_MISMATCH", err)
	}
	// The error must identify the offending cell.
	msg := err.Error()
	for _, want := range []string{"row 2", `"age"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestReadStructuralColumnsByName(t *testing.T) {
	// Other producers may order columns differently; structural columns are
	// located by name, not position.
	g, err := decodeStrings(t,
		"name:string,:ID\nAlice,1\n",
		"since:int,:END_ID,:START_ID\n2020,2,1\n")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	v, ok := g.Vertex("1")
	if !ok || v.Props["name"] != "Alice" {
		t.Errorf("vertex 1 = %+v", v)
	}
	e := g.Edges()[0]
	if e.From != "1" || e.To != "2" {
		t.Errorf("edge = %+v", e)
	}
}

func TestReadIntoMergesWithExisting(t *testing.T) {
	g := graph.New()
	g.AddVertex("1", graph.Properties{"existing": true})

	err := ReadInto(
		strings.NewReader(":ID,name:string\n1,Alice\n"),
		strings.NewReader(":START_ID,:END_ID\n"),
		g)
	if err != nil {
		t.Fatalf("ReadInto: %v", err)
	}

	v, _ := g.Vertex("1")
	if v.Props["existing"] != true || v.Props["name"] != "Alice" {
		t.Errorf("props = %v, want merge of existing and decoded", v.Props)
	}
}
