package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/cygraph/pkg/cache"
	"github.com/matzehuels/cygraph/pkg/cypher"
	"github.com/matzehuels/cygraph/pkg/graph"
	"github.com/matzehuels/cygraph/pkg/observability"
)

// csvTables is the JSON shape of a CSV table pair, used both as the encode
// response and the decode request.
type csvTables struct {
	Vertices string `json:"vertices"`
	Edges    string `json:"edges"`
}

// createResponse is returned by POST /v1/graphs.
type createResponse struct {
	ID string `json:"id"`
}

// listResponse is returned by GET /v1/graphs.
type listResponse struct {
	IDs []string `json:"ids"`
}

// handleEncode converts a JSON graph to a CSV table pair.
// Results are memoized in the conversion cache keyed by the request body.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, err, "read request body")
		return
	}

	key := cache.ConversionKey("encode", body)
	if data, ok, _ := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gr, err := graph.DecodeGraph(bytes.NewReader(body))
	if err != nil {
		badRequest(w, err, "decode graph JSON")
		return
	}

	g := graph.ToGraph(gr)
	start := time.Now()
	observability.Codec().OnEncodeStart(r.Context(), g.Order(), g.Size())
	vertexBuf, edgeBuf, err := cypher.Marshal(g)
	observability.Codec().OnEncodeComplete(r.Context(), g.Order(), g.Size(), time.Since(start), err)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := csvTables{Vertices: string(vertexBuf), Edges: string(edgeBuf)}
	s.writeCached(w, r, key, resp)
}

// writeCached serializes v, stores the exact bytes in the conversion cache
// and serves them, so cache hits return byte-identical responses.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.cacheTTL); err != nil {
		s.log.Warn("cache conversion", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleDecode converts a CSV table pair to a JSON graph.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, err, "read request body")
		return
	}

	var req csvTables
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(w, err, "decode request JSON")
		return
	}

	key := cache.ConversionKey("decode", body)
	if data, ok, _ := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	start := time.Now()
	observability.Codec().OnDecodeStart(r.Context())
	g, err := cypher.Unmarshal([]byte(req.Vertices), []byte(req.Edges))
	if err != nil {
		observability.Codec().OnDecodeComplete(r.Context(), 0, 0, time.Since(start), err)
		writeError(w, err)
		return
	}
	observability.Codec().OnDecodeComplete(r.Context(), g.Order(), g.Size(), time.Since(start), nil)

	s.writeCached(w, r, key, graph.FromGraph(g))
}

// handleCreateGraph stores a JSON graph and returns its assigned ID.
func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	gr, err := graph.DecodeGraph(r.Body)
	if err != nil {
		badRequest(w, err, "decode graph JSON")
		return
	}

	id := uuid.NewString()
	if err := s.store.Put(r.Context(), id, gr); err != nil {
		writeError(w, err)
		return
	}

	s.log.Info("graph stored", "id", id, "nodes", len(gr.Nodes), "edges", len(gr.Edges))
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

// handleListGraphs returns the IDs of all stored graphs.
func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, listResponse{IDs: ids})
}

// handleGetGraph returns a stored graph as JSON.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id, err := graphID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	gr, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gr)
}

// handleDeleteGraph removes a stored graph.
func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id, err := graphID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGraphCSV returns a stored graph encoded as a CSV table pair.
func (s *Server) handleGraphCSV(w http.ResponseWriter, r *http.Request) {
	id, err := graphID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	gr, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	vertexBuf, edgeBuf, err := cypher.Marshal(graph.ToGraph(gr))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, csvTables{
		Vertices: string(vertexBuf),
		Edges:    string(edgeBuf),
	})
}
