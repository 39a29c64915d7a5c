package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/matzehuels/cygraph/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Config{
		Store:  store.NewMemoryStore(),
		Logger: charmlog.New(io.Discard),
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return resp, data
}

const sampleGraphJSON = `{
	"nodes": [
		{"id": "1", "props": {"name": "Alice", "age": 30}},
		{"id": "2", "props": {"name": "Bob"}}
	],
	"edges": [
		{"from": "1", "to": "2", "props": {"since": 2020}}
	]
}`

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestEncode(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/encode", sampleGraphJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var got csvTables
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	wantVertices := ":ID,age:int,name:string\n1,30,Alice\n2,,Bob\n"
	if got.Vertices != wantVertices {
		t.Errorf("vertices = %q, want %q", got.Vertices, wantVertices)
	}
	wantEdges := ":START_ID,:END_ID,since:int\n1,2,2020\n"
	if got.Edges != wantEdges {
		t.Errorf("edges = %q, want %q", got.Edges, wantEdges)
	}
}

func TestEncodeInvalidJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/encode", "{not json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "INVALID_INPUT") {
		t.Errorf("body = %s, want INVALID_INPUT code", body)
	}
}

func TestDecode(t *testing.T) {
	ts := newTestServer(t)
	req := csvTables{
		Vertices: ":ID,age:int,name:string\n1,30,Alice\n",
		Edges:    ":START_ID,:END_ID\n1,2\n",
	}
	reqBody, _ := json.Marshal(req)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/decode", string(reqBody))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var got struct {
		Nodes []struct {
			ID    string         `json:"id"`
			Props map[string]any `json:"props"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (explicit + implicit endpoint)", len(got.Nodes))
	}
	if got.Nodes[0].ID != "1" || got.Nodes[0].Props["name"] != "Alice" {
		t.Errorf("node[0] = %+v", got.Nodes[0])
	}
	if len(got.Edges) != 1 || got.Edges[0].From != "1" || got.Edges[0].To != "2" {
		t.Errorf("edges = %+v", got.Edges)
	}
}

func TestDecodeMalformedHeader(t *testing.T) {
	ts := newTestServer(t)
	req := csvTables{
		Vertices: "id,name:string\n1,Alice\n",
		Edges:    ":START_ID,:END_ID\n",
	}
	reqBody, _ := json.Marshal(req)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/decode", string(reqBody))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "MALFORMED_HEADER") {
		t.Errorf("body = %s, want MALFORMED_HEADER code", body)
	}
}

func TestGraphLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/graphs", sampleGraphJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, body)
	}
	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("create returned empty ID")
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/graphs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var listed listResponse
	if err := json.Unmarshal(body, &listed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(listed.IDs) != 1 || listed.IDs[0] != created.ID {
		t.Errorf("list = %v, want [%s]", listed.IDs, created.ID)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/graphs/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"Alice"`) {
		t.Errorf("get body = %s", body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/graphs/"+created.ID+"/csv", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("csv status = %d, body = %s", resp.StatusCode, body)
	}
	var tables csvTables
	if err := json.Unmarshal(body, &tables); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !strings.HasPrefix(tables.Vertices, ":ID,") {
		t.Errorf("csv vertices = %q", tables.Vertices)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/v1/graphs/"+created.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/graphs/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "GRAPH_NOT_FOUND") {
		t.Errorf("body = %s, want GRAPH_NOT_FOUND code", body)
	}
}

func TestDeleteMissingGraph(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodDelete, ts.URL+"/v1/graphs/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
}

// countingCache records Get/Set traffic so tests can observe memoization.
type countingCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string][]byte)}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return data, ok, nil
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error { return nil }
func (c *countingCache) Close() error                                 { return nil }

func TestEncodeUsesConversionCache(t *testing.T) {
	cc := newCountingCache()
	srv := New(Config{
		Store:  store.NewMemoryStore(),
		Cache:  cc,
		Logger: charmlog.New(io.Discard),
	})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	_, first := doJSON(t, http.MethodPost, ts.URL+"/v1/encode", sampleGraphJSON)
	_, second := doJSON(t, http.MethodPost, ts.URL+"/v1/encode", sampleGraphJSON)

	if cc.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cc.sets)
	}
	if cc.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cc.hits)
	}
	if string(first) != string(second) {
		t.Errorf("cached response differs:\n%s\n%s", first, second)
	}
}
