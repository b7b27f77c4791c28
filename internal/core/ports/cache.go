package ports

import (
	"context"
)

// CacheTier identifies which tier of the layered cache served a hit.
type CacheTier string

const (
	TierShared CacheTier = "shared"
	TierLocal  CacheTier = "local"
)

// CacheStats is a read-only snapshot of cache health.
type CacheStats struct {
	SharedAvailable bool `json:"shared_available"`
	LocalEntryCount int  `json:"local_entry_count"`
}

// TranslationCache serves (key, language) -> value lookups through a shared
// tier with an in-process fallback. Shared-tier failures must never be
// surfaced to callers: implementations degrade to the local tier silently,
// which is why none of the operations return an error.
type TranslationCache interface {
	// Get returns the cached value and the tier that served it.
	// ok=false when neither tier holds a live entry.
	Get(ctx context.Context, key, lang string) (value string, tier CacheTier, ok bool)
	// Set stores the value with the cache's fixed TTL. The local tier is
	// written only when the shared tier is unreachable.
	Set(ctx context.Context, key, lang, value string)
	// Delete removes the entry from both tiers; absence is not an error.
	Delete(ctx context.Context, key, lang string)
	// ClearLanguage removes every entry for the language from both tiers.
	// Partial success (shared-tier scan failure) is acceptable.
	ClearLanguage(ctx context.Context, lang string)
	// ClearAll flushes both tiers unconditionally.
	ClearAll(ctx context.Context)
	// Stats reports tier availability and local entry count. No side effects.
	Stats(ctx context.Context) CacheStats
}
