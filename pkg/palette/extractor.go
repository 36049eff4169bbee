package palette

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chromash/chromash/pkg/cache"
	"github.com/chromash/chromash/pkg/observability"
	"github.com/chromash/chromash/pkg/theme"
)

// Extractor memoizes Dominant results by image content.
type Extractor struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewExtractor creates an extractor. A nil cache disables caching.
func NewExtractor(c cache.Cache, ttl time.Duration, logger *log.Logger) *Extractor {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		TTL:    ttl,
		Logger: logger,
	}
}

// Dominant returns the dominant color of the image at path, consulting the
// cache first. Cache failures are logged and never fail the extraction.
func (e *Extractor) Dominant(ctx context.Context, path string) (theme.RGB, error) {
	hash, err := cache.HashFile(path)
	if err != nil {
		return DominantFile(path)
	}
	key := e.Keyer.PaletteKey(hash)

	if data, hit, err := e.Cache.Get(ctx, key); err != nil {
		e.Logger.Warn("palette cache read failed", "err", err)
	} else if hit {
		var c theme.RGB
		if json.Unmarshal(data, &c) == nil {
			observability.Cache().OnCacheHit(ctx, "palette")
			e.Logger.Debug("palette cache hit", "path", path, "color", c)
			return c, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "palette")

	c, err := DominantFile(path)
	if err != nil {
		return theme.RGB{}, err
	}

	if data, err := json.Marshal(c); err == nil {
		if err := e.Cache.Set(ctx, key, data, e.TTL); err != nil {
			e.Logger.Warn("palette cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "palette", len(data))
		}
	}
	return c, nil
}
