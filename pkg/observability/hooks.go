// Package observability provides hooks for instrumenting theme applies,
// external tool invocations and cache operations.
//
// Libraries call the registered hooks; the application decides what they do.
// The defaults are no-ops. The CLI registers [LogHooks] so that `-v` prints a
// debug line per event.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetThemeHooks(observability.NewLogHooks(logger))
//
// Libraries call hooks to emit events:
//
//	observability.Theme().OnApplyStart(ctx, "color", hex)
//	// ... run matugen ...
//	observability.Theme().OnApplyComplete(ctx, "color", hex, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ThemeHooks receives events from the theme manager.
type ThemeHooks interface {
	OnApplyStart(ctx context.Context, kind, source string)
	OnApplyComplete(ctx context.Context, kind, source string, duration time.Duration, err error)
}

// CommandHooks receives events for external tool invocations.
type CommandHooks interface {
	OnCommand(ctx context.Context, name string, args []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopThemeHooks is a no-op implementation of ThemeHooks.
type NoopThemeHooks struct{}

func (NoopThemeHooks) OnApplyStart(context.Context, string, string)                           {}
func (NoopThemeHooks) OnApplyComplete(context.Context, string, string, time.Duration, error) {}

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommand(context.Context, string, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	themeHooks   ThemeHooks   = NoopThemeHooks{}
	commandHooks CommandHooks = NoopCommandHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetThemeHooks registers custom theme hooks. Nil is ignored.
func SetThemeHooks(h ThemeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		themeHooks = h
	}
}

// SetCommandHooks registers custom command hooks. Nil is ignored.
func SetCommandHooks(h CommandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commandHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Theme returns the registered theme hooks.
func Theme() ThemeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return themeHooks
}

// Command returns the registered command hooks.
func Command() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	themeHooks = NoopThemeHooks{}
	commandHooks = NoopCommandHooks{}
	cacheHooks = NoopCacheHooks{}
}
