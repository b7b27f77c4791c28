package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/ports"
)

// DefaultTTL bounds the lifetime of every cache entry in both tiers.
const DefaultTTL = time.Hour

// Options configures a LayeredCache. Zero values fall back to defaults.
type Options struct {
	// TTL for entries in both tiers. Defaults to DefaultTTL.
	TTL time.Duration
	// KeyPrefix namespaces shared-tier entries.
	KeyPrefix string
	// ReconnectInterval is the pause between shared-tier reconnection
	// probes. Defaults to 15s.
	ReconnectInterval time.Duration
	// Clock overrides the time source for the local tier (tests).
	Clock func() time.Time
	Logger *logrus.Logger
}

// LayeredCache implements ports.TranslationCache over a shared Redis tier
// and an in-process fallback tier. The shared tier is authoritative when
// reachable: hits there never touch the local tier, and successful writes
// skip the local tier. Any shared-tier failure degrades the operation to
// the local tier without surfacing an error.
type LayeredCache struct {
	shared *sharedTier
	local  *localTier
	ttl    time.Duration
	logger *logrus.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLayeredCache builds a layered cache over the given Redis client.
// A nil client degrades permanently to the local tier, which keeps the
// service usable without a shared tier. The initial connection attempt and
// all reconnection happen out-of-band.
func NewLayeredCache(r redis.Cmdable, opts Options) *LayeredCache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = 15 * time.Second
	}

	c := &LayeredCache{
		local:  newLocalTier(opts.Clock),
		ttl:    opts.TTL,
		logger: opts.Logger,
		stop:   make(chan struct{}),
	}
	if r != nil {
		c.shared = newSharedTier(r, opts.KeyPrefix, opts.Logger)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		c.shared.probe(ctx)
		cancel()

		go c.reconnectLoop(opts.ReconnectInterval)
	}
	return c
}

// reconnectLoop periodically probes a non-connected shared tier. Probing
// out-of-band keeps request latency bounded: operations never retry the
// shared tier synchronously.
func (c *LayeredCache) reconnectLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if c.shared.connected() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			c.shared.probe(ctx)
			cancel()
		}
	}
}

// Close stops the reconnection probe. It does not close the Redis client,
// which is owned by the caller.
func (c *LayeredCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// compositeKey is the raw semantic key concatenated with the language code,
// unique per (semantic key, language).
func compositeKey(key, lang string) string {
	return key + ":" + lang
}

// Get tries the shared tier first; a hit there returns immediately without
// populating the local tier. On shared-tier error or absence the local
// tier answers, honoring entry expiry.
func (c *LayeredCache) Get(ctx context.Context, key, lang string) (string, ports.CacheTier, bool) {
	ck := compositeKey(key, lang)

	if c.shared != nil && c.shared.connected() {
		if val, ok, err := c.shared.get(ctx, ck); err == nil && ok {
			hitsTotal.WithLabelValues(string(ports.TierShared)).Inc()
			return val, ports.TierShared, true
		}
	}

	if val, ok := c.local.get(ck); ok {
		hitsTotal.WithLabelValues(string(ports.TierLocal)).Inc()
		return val, ports.TierLocal, true
	}

	missesTotal.Inc()
	return "", "", false
}

// Set writes to the shared tier when reachable; the shared tier stays
// authoritative, so the local tier is written only when the shared write
// is skipped or fails.
func (c *LayeredCache) Set(ctx context.Context, key, lang, value string) {
	ck := compositeKey(key, lang)

	if c.shared != nil && c.shared.connected() {
		if err := c.shared.set(ctx, ck, value, c.ttl); err == nil {
			return
		}
	}
	c.local.set(ck, value, c.ttl)
}

// Delete removes the composite key from both tiers; absence is not an error.
func (c *LayeredCache) Delete(ctx context.Context, key, lang string) {
	ck := compositeKey(key, lang)

	if c.shared != nil && c.shared.connected() {
		_ = c.shared.delete(ctx, ck)
	}
	c.local.delete(ck)
}

// ClearLanguage removes every entry whose composite key ends in the
// language code. A shared-tier scan failure still lets the local clear
// proceed.
func (c *LayeredCache) ClearLanguage(ctx context.Context, lang string) {
	if c.shared != nil && c.shared.connected() {
		_ = c.shared.deleteMatching(ctx, "*:"+lang)
	}
	c.local.deleteSuffix(":" + lang)
}

// ClearAll flushes both tiers unconditionally.
func (c *LayeredCache) ClearAll(ctx context.Context) {
	if c.shared != nil && c.shared.connected() {
		_ = c.shared.deleteMatching(ctx, "*")
	}
	c.local.clear()
}

// Stats reports tier availability and the live local entry count.
func (c *LayeredCache) Stats(ctx context.Context) ports.CacheStats {
	return ports.CacheStats{
		SharedAvailable: c.shared != nil && c.shared.connected(),
		LocalEntryCount: c.local.len(),
	}
}

var _ ports.TranslationCache = (*LayeredCache)(nil)
