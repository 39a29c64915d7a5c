package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const testGraphJSON = `{
	"nodes": [
		{"id": "alice", "labels": ["Person"], "props": {"name": "Alice", "age": 30}},
		{"id": "bob", "props": {"name": "Bob"}}
	],
	"edges": [
		{"from": "alice", "to": "bob", "props": {"since": 2020}}
	]
}`

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	vertexPath := filepath.Join(dir, "vertices.csv")
	edgePath := filepath.Join(dir, "edges.csv")
	output := filepath.Join(dir, "decoded.json")

	if err := os.WriteFile(input, []byte(testGraphJSON), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := runEncode(testCommand(t), input, vertexPath, edgePath); err != nil {
		t.Fatalf("runEncode() error = %v", err)
	}

	vertices, err := os.ReadFile(vertexPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	wantVertices := ":ID,age:int,name:string,:LABEL:string[]\nalice,30,Alice,Person\nbob,,Bob,\n"
	if string(vertices) != wantVertices {
		t.Errorf("vertex table = %q, want %q", vertices, wantVertices)
	}

	edges, err := os.ReadFile(edgePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	wantEdges := ":START_ID,:END_ID,since:int\nalice,bob,2020\n"
	if string(edges) != wantEdges {
		t.Errorf("edge table = %q, want %q", edges, wantEdges)
	}

	opts := &decodeOpts{vertexPath: vertexPath, edgePath: edgePath, output: output}
	if err := runDecode(testCommand(t), opts); err != nil {
		t.Fatalf("runDecode() error = %v", err)
	}

	decoded, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{`"alice"`, `"Person"`, `"since": 2020`} {
		if !strings.Contains(string(decoded), want) {
			t.Errorf("decoded JSON missing %s:\n%s", want, decoded)
		}
	}
}

func TestDecodeIntoMergesGraphs(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.json")
	vertexPath := filepath.Join(dir, "vertices.csv")
	edgePath := filepath.Join(dir, "edges.csv")
	output := filepath.Join(dir, "merged.json")

	baseJSON := `{"nodes": [{"id": "carol", "props": {"name": "Carol"}}], "edges": []}`
	if err := os.WriteFile(base, []byte(baseJSON), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(vertexPath, []byte(":ID,name:string\nalice,Alice\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(edgePath, []byte(":START_ID,:END_ID\nalice,carol\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	opts := &decodeOpts{vertexPath: vertexPath, edgePath: edgePath, output: output, into: base}
	if err := runDecode(testCommand(t), opts); err != nil {
		t.Fatalf("runDecode() error = %v", err)
	}

	merged, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{`"carol"`, `"alice"`, `"Carol"`} {
		if !strings.Contains(string(merged), want) {
			t.Errorf("merged JSON missing %s:\n%s", want, merged)
		}
	}
}
