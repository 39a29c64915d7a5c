// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about codec runs, cache operations, and API
// requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Codec().OnEncodeStart(ctx, vertexCount, edgeCount)
//	// ... encode ...
//	observability.Codec().OnEncodeComplete(ctx, vertexCount, edgeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from encode and decode runs.
type CodecHooks interface {
	// Encode events
	OnEncodeStart(ctx context.Context, vertices, edges int)
	OnEncodeComplete(ctx context.Context, vertices, edges int, duration time.Duration, err error)

	// Decode events; counts are of the resulting graph, 0 on failure
	OnDecodeStart(ctx context.Context)
	OnDecodeComplete(ctx context.Context, vertices, edges int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
// backend names the implementation ("file", "redis").
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, backend string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, backend string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncodeStart(context.Context, int, int)                          {}
func (NoopCodecHooks) OnEncodeComplete(context.Context, int, int, time.Duration, error) {}
func (NoopCodecHooks) OnDecodeStart(context.Context)                                    {}
func (NoopCodecHooks) OnDecodeComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks CodecHooks = NoopCodecHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup before any conversions.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// CacheOps returns the registered cache hooks.
func CacheOps() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
