// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about effect sessions, swipe interactions and
// frame cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Effect and interaction hooks are called synchronously from the goroutine
// that drives the animation, so implementations must return quickly.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEffectHooks(&myEffectHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Effect().OnSessionStart(id, "right", 0.5)
//	// ... swipe ...
//	observability.Effect().OnSessionEnd(id, true)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Effect Hooks
// =============================================================================

// EffectHooks receives lifecycle events from effect sessions.
type EffectHooks interface {
	// OnSessionStart records the creation of an effect session.
	OnSessionStart(id, direction string, verticalPosition float64)

	// OnAnimationComplete records a programmatic animation reaching its target.
	OnAnimationComplete(id string, target float64, duration time.Duration)

	// OnSessionEnd records the teardown of an effect session.
	OnSessionEnd(id string, animated bool)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives events from the swipe state machine.
type InteractionHooks interface {
	// OnGestureRejected records a drag that could not start a session.
	OnGestureRejected(direction, reason string)

	// OnRelease records the decision taken when the finger lifts.
	OnRelease(id, direction string, progress float64, commit bool)

	// OnActionTriggered records a committed swipe.
	OnActionTriggered(id, direction string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEffectHooks is a no-op implementation of EffectHooks.
type NoopEffectHooks struct{}

func (NoopEffectHooks) OnSessionStart(string, string, float64)             {}
func (NoopEffectHooks) OnAnimationComplete(string, float64, time.Duration) {}
func (NoopEffectHooks) OnSessionEnd(string, bool)                          {}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnGestureRejected(string, string)        {}
func (NoopInteractionHooks) OnRelease(string, string, float64, bool) {}
func (NoopInteractionHooks) OnActionTriggered(string, string)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	effectHooks      EffectHooks      = NoopEffectHooks{}
	interactionHooks InteractionHooks = NoopInteractionHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	hooksMu          sync.RWMutex
)

// SetEffectHooks registers custom effect hooks.
// This should be called once at application startup before any effect is created.
func SetEffectHooks(h EffectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		effectHooks = h
	}
}

// SetInteractionHooks registers custom interaction hooks.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
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

// Effect returns the registered effect hooks.
func Effect() EffectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return effectHooks
}

// Interaction returns the registered interaction hooks.
func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	effectHooks = NoopEffectHooks{}
	interactionHooks = NoopInteractionHooks{}
	cacheHooks = NoopCacheHooks{}
}
