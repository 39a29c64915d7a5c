package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCodecHooks struct {
	NoopCodecHooks
	encodes int
	decodes int
}

func (h *recordingCodecHooks) OnEncodeComplete(_ context.Context, _, _ int, _ time.Duration, _ error) {
	h.encodes++
}

func (h *recordingCodecHooks) OnDecodeComplete(_ context.Context, _, _ int, _ time.Duration, _ error) {
	h.decodes++
}

func TestSetCodecHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCodecHooks{}
	SetCodecHooks(rec)

	Codec().OnEncodeComplete(context.Background(), 1, 2, time.Millisecond, nil)
	Codec().OnDecodeComplete(context.Background(), 1, 2, time.Millisecond, nil)

	if rec.encodes != 1 || rec.decodes != 1 {
		t.Errorf("encodes/decodes = %d/%d, want 1/1", rec.encodes, rec.decodes)
	}
}

func TestSetNilKeepsDefaults(t *testing.T) {
	defer Reset()

	SetCodecHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	// Defaults must survive a nil registration and be callable.
	Codec().OnEncodeStart(context.Background(), 0, 0)
	CacheOps().OnCacheMiss(context.Background(), "file")
	HTTP().OnRequest(context.Background(), "GET", "/healthz")
}

func TestReset(t *testing.T) {
	rec := &recordingCodecHooks{}
	SetCodecHooks(rec)
	Reset()

	Codec().OnEncodeComplete(context.Background(), 0, 0, 0, nil)
	if rec.encodes != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
