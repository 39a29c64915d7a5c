package cypher

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/cygraph/pkg/errors"
	"github.com/matzehuels/cygraph/pkg/graph"
)

// propColumn is a parsed non-structural header column.
type propColumn struct {
	idx  int
	name string
	tag  Tag
}

type vertexHeader struct {
	idIdx    int
	labelIdx int // -1 when the table has no :LABEL column
	props    []propColumn
}

type edgeHeader struct {
	startIdx int
	endIdx   int
	props    []propColumn
}

// Read decodes a vertex table and an edge table into a fresh graph.
//
// Edges are processed before vertices: endpoint IDs appearing only in the
// edge table become implicit vertices with no properties and no labels.
// Vertex rows then upsert properties and labels onto the graph; when the
// same :ID appears in multiple rows the last row wins. Any malformed
// header or row fails the whole call - Read never returns a partial graph.
func Read(vertexR, edgeR io.Reader) (*graph.DiGraph, error) {
	g := graph.New()
	if err := ReadInto(vertexR, edgeR, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Unmarshal decodes in-memory vertex and edge buffers. See [Read].
func Unmarshal(vertexBuf, edgeBuf []byte) (*graph.DiGraph, error) {
	return Read(bytes.NewReader(vertexBuf), bytes.NewReader(edgeBuf))
}

// ReadInto decodes both tables into a caller-supplied graph, merging with
// whatever it already contains. Both headers are validated before any row
// is processed, but a row failure can leave g partially updated; use [Read]
// when all-or-nothing results matter.
func ReadInto(vertexR, edgeR io.Reader, g Graph) error {
	vr := csv.NewReader(vertexR)
	er := csv.NewReader(edgeR)

	vh, err := readVertexHeader(vr)
	if err != nil {
		return err
	}
	eh, err := readEdgeHeader(er)
	if err != nil {
		return err
	}

	if err := readEdgeRows(er, eh, g); err != nil {
		return err
	}
	return readVertexRows(vr, vh, g)
}

// =============================================================================
// Header Parsing
// =============================================================================

func readVertexHeader(r *csv.Reader) (vertexHeader, error) {
	rec, err := r.Read()
	if err != nil {
		return vertexHeader{}, errors.Wrap(errors.ErrCodeMalformedHeader, err,
			"vertex table header")
	}

	h := vertexHeader{idIdx: -1, labelIdx: -1}
	for i, col := range rec {
		if col == colID {
			h.idIdx = i
			continue
		}
		name, tag, err := splitColumn(col)
		if err != nil {
			return vertexHeader{}, err
		}
		if name == colLabel {
			if tag != TagStringArray {
				return vertexHeader{}, errors.New(errors.ErrCodeMalformedHeader,
					"%s column must be tagged %s, got %s", colLabel, TagStringArray, tag)
			}
			h.labelIdx = i
			continue
		}
		if strings.HasPrefix(name, ":") {
			return vertexHeader{}, errors.New(errors.ErrCodeMalformedHeader,
				"unrecognized reserved column %q in vertex table", col)
		}
		h.props = append(h.props, propColumn{idx: i, name: name, tag: tag})
	}

	if h.idIdx < 0 {
		return vertexHeader{}, errors.New(errors.ErrCodeMalformedHeader,
			"vertex table header missing %s column", colID)
	}
	return h, nil
}

func readEdgeHeader(r *csv.Reader) (edgeHeader, error) {
	rec, err := r.Read()
	if err != nil {
		return edgeHeader{}, errors.Wrap(errors.ErrCodeMalformedHeader, err,
			"edge table header")
	}

	h := edgeHeader{startIdx: -1, endIdx: -1}
	for i, col := range rec {
		switch col {
		case colStart:
			h.startIdx = i
			continue
		case colEnd:
			h.endIdx = i
			continue
		}
		name, tag, err := splitColumn(col)
		if err != nil {
			return edgeHeader{}, err
		}
		if strings.HasPrefix(name, ":") {
			return edgeHeader{}, errors.New(errors.ErrCodeMalformedHeader,
				"unrecognized reserved column %q in edge table", col)
		}
		h.props = append(h.props, propColumn{idx: i, name: name, tag: tag})
	}

	if h.startIdx < 0 {
		return edgeHeader{}, errors.New(errors.ErrCodeMalformedHeader,
			"edge table header missing %s column", colStart)
	}
	if h.endIdx < 0 {
		return edgeHeader{}, errors.New(errors.ErrCodeMalformedHeader,
			"edge table header missing %s column", colEnd)
	}
	return h, nil
}

// splitColumn splits "name:tag" on the last colon, so reserved names like
// ":LABEL" keep their leading colon.
func splitColumn(col string) (string, Tag, error) {
	i := strings.LastIndex(col, ":")
	if i <= 0 {
		return "", "", errors.New(errors.ErrCodeMalformedHeader,
			"column %q missing type tag", col)
	}
	tag, err := ParseTag(col[i+1:])
	if err != nil {
		return "", "", err
	}
	return col[:i], tag, nil
}

// =============================================================================
// Row Parsing
// =============================================================================

func readEdgeRows(r *csv.Reader, h edgeHeader, g Graph) error {
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedRow, err, "edge table row %d", row)
		}

		from, to := rec[h.startIdx], rec[h.endIdx]
		if from == "" || to == "" {
			return errors.New(errors.ErrCodeMalformedRow,
				"edge table row %d: empty %s or %s", row, colStart, colEnd)
		}

		props, err := decodeProps(rec, h.props, "edge", row)
		if err != nil {
			return err
		}
		g.AddEdge(from, to, props)
	}
}

func readVertexRows(r *csv.Reader, h vertexHeader, g Graph) error {
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeMalformedRow, err, "vertex table row %d", row)
		}

		id := rec[h.idIdx]
		if id == "" {
			return errors.New(errors.ErrCodeMalformedRow,
				"vertex table row %d: empty %s", row, colID)
		}

		props, err := decodeProps(rec, h.props, "vertex", row)
		if err != nil {
			return err
		}
		v := g.AddVertex(id, props)

		if h.labelIdx >= 0 && rec[h.labelIdx] != "" {
			labels, err := parseValue(rec[h.labelIdx], TagStringArray)
			if err != nil {
				return errors.Wrap(errors.ErrCodeTypeMismatch, err,
					"vertex table row %d column %q", row, colLabel)
			}
			v.SetLabels(labels.([]string))
		}
	}
}

// decodeProps decodes every non-empty property cell of a row.
// Empty cells decode to an absent key, never an empty value.
func decodeProps(rec []string, cols []propColumn, table string, row int) (graph.Properties, error) {
	props := graph.Properties{}
	for _, c := range cols {
		cell := rec[c.idx]
		if cell == "" {
			continue
		}
		v, err := parseValue(cell, c.tag)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTypeMismatch, err,
				"%s table row %d column %q", table, row, c.name)
		}
		props[c.name] = v
	}
	return props, nil
}
