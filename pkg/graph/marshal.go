package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// JSON Serialization API
// =============================================================================

// MarshalGraph converts a DiGraph to indented JSON bytes.
func MarshalGraph(g *DiGraph) ([]byte, error) {
	data, err := json.MarshalIndent(FromGraph(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// WriteGraph writes a DiGraph as indented JSON to w.
func WriteGraph(g *DiGraph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r into a DiGraph.
//
// Numbers are decoded with integer fidelity: a JSON number without a
// fractional part becomes int64, everything else float64. Plain
// encoding/json would turn every number into float64, which would make the
// CSV encoder infer float columns for integer properties.
//
// The returned graph is independent of r and can be modified safely.
// ReadGraph does not close r.
func ReadGraph(r io.Reader) (*DiGraph, error) {
	data, err := DecodeGraph(r)
	if err != nil {
		return nil, err
	}
	return ToGraph(data), nil
}

// DecodeGraph decodes a JSON graph from r into the interchange format,
// with the same number fidelity as [ReadGraph].
func DecodeGraph(r io.Reader) (Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data Graph
	if err := dec.Decode(&data); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}

	for _, n := range data.Nodes {
		normalizeProps(n.Props)
	}
	for _, e := range data.Edges {
		normalizeProps(e.Props)
	}
	return data, nil
}

// normalizeProps rewrites json.Number values (scalar or inside slices) into
// int64 or float64 in place.
func normalizeProps(props map[string]any) {
	for k, v := range props {
		props[k] = normalizeValue(v)
	}
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case []any:
		for i, elem := range val {
			val[i] = normalizeValue(elem)
		}
		return val
	default:
		return v
	}
}
